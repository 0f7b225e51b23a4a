package config

import (
	"fmt"
	"time"
)

// StructuredConfig is the top-level configuration container for glucoterm.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Account holds the LibreView account credentials.
	Account Account `envPrefix:"LIBRE_"`

	// API holds LibreView API client settings: versions, product
	// identifier, endpoint URLs, timeout, and TLS policy.
	API API `envPrefix:"LIBRE_API_"`

	// Workers holds background refresh job settings.
	Workers Workers `envPrefix:"GLUCOTERM_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from environment variables.
	// Populated via the CONFIG environment variable.
	JSONFilePath string `env:"CONFIG"`
}

// Account holds the LibreView credentials. Both fields are immutable for
// the lifetime of the process.
type Account struct {
	// Email is the LibreView account email.
	// Env: LIBRE_EMAIL
	Email string `env:"EMAIL"`

	// Password is the LibreView account password.
	// Env: LIBRE_PASSWORD
	Password string `env:"PASSWORD"`
}

// API holds settings for the LibreView API client.
type API struct {
	// Version is the default "version" header value sent on API requests
	// (the account endpoint pins its own version regardless).
	// Env: LIBRE_API_VERSION
	Version string `env:"VERSION"`

	// Product is the "product" header value identifying the client app.
	// Env: LIBRE_API_PRODUCT
	Product string `env:"PRODUCT"`

	// Timeout is the per-request deadline for API calls (e.g. "10s").
	// Env: LIBRE_API_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`

	// VerifyTLS enables TLS certificate verification. The upstream API is
	// historically served with certificates the stock verifier rejects,
	// so verification is off unless explicitly enabled.
	// Env: LIBRE_API_VERIFY_TLS
	VerifyTLS bool `env:"VERIFY_TLS"`

	// LoginURL is the authentication endpoint.
	// Env: LIBRE_API_LOGIN_URL
	LoginURL string `env:"LOGIN_URL"`

	// AccountURL is the account lookup endpoint.
	// Env: LIBRE_API_ACCOUNT_URL
	AccountURL string `env:"ACCOUNT_URL"`

	// ConnectionsURL is the connections listing endpoint; per-patient
	// graph URLs are derived from it.
	// Env: LIBRE_API_CONNECTIONS_URL
	ConnectionsURL string `env:"CONNECTIONS_URL"`
}

// Workers contains background refresh job settings.
type Workers struct {
	// RefreshInterval defines how often the latest reading is fetched
	// from the API (e.g. "5m").
	// Env: GLUCOTERM_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetConfig builds and validates the process configuration.
//
// Values are merged in priority order: environment variables win over the
// optional JSON file, which wins over built-in defaults.
func GetConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error building config: %w", err)
	}

	return cfg, nil
}
