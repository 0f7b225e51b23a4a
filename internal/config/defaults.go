package config

import "time"

// Default configuration values. Endpoint defaults point at the production
// LibreView hosts; note the account endpoint lives on a different host than
// the rest of the API.
const (
	DefaultAPIVersion      = "4.16.0"
	DefaultProduct         = "llu.android"
	DefaultTimeout         = 10 * time.Second
	DefaultRefreshInterval = 5 * time.Minute

	DefaultLoginURL       = "https://api.libreview.io/llu/auth/login"
	DefaultAccountURL     = "https://api-us.libreview.io/account"
	DefaultConnectionsURL = "https://api.libreview.io/llu/connections"
)

// defaults returns a StructuredConfig carrying only built-in default values.
// It is merged last by the builder so it fills gaps without overriding
// anything supplied via env or JSON.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		API: API{
			Version:        DefaultAPIVersion,
			Product:        DefaultProduct,
			Timeout:        DefaultTimeout,
			LoginURL:       DefaultLoginURL,
			AccountURL:     DefaultAccountURL,
			ConnectionsURL: DefaultConnectionsURL,
		},
		Workers: Workers{RefreshInterval: DefaultRefreshInterval},
	}
}
