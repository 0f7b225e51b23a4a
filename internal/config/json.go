package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags for the
// optional configuration file.
type StructuredJSONConfig struct {
	Account struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"account,omitempty"`

	API struct {
		Version        string   `json:"version"`
		Product        string   `json:"product"`
		Timeout        Duration `json:"timeout"`
		VerifyTLS      bool     `json:"verify_tls"`
		LoginURL       string   `json:"login_url"`
		AccountURL     string   `json:"account_url"`
		ConnectionsURL string   `json:"connections_url"`
	} `json:"api,omitempty"`

	Workers struct {
		RefreshInterval Duration `json:"refresh_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Account: Account{
			Email:    jsonCfg.Account.Email,
			Password: jsonCfg.Account.Password,
		},
		API: API{
			Version:        jsonCfg.API.Version,
			Product:        jsonCfg.API.Product,
			Timeout:        time.Duration(jsonCfg.API.Timeout),
			VerifyTLS:      jsonCfg.API.VerifyTLS,
			LoginURL:       jsonCfg.API.LoginURL,
			AccountURL:     jsonCfg.API.AccountURL,
			ConnectionsURL: jsonCfg.API.ConnectionsURL,
		},
		Workers: Workers{
			RefreshInterval: time.Duration(jsonCfg.Workers.RefreshInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
