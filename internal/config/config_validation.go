// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants required at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Account.Email == "" || cfg.Account.Password == "" {
		return ErrMissingCredentials
	}

	if cfg.API.Version == "" || cfg.API.Product == "" || cfg.API.Timeout <= 0 {
		return ErrInvalidAPIConfigs
	}

	if cfg.API.LoginURL == "" || cfg.API.AccountURL == "" || cfg.API.ConnectionsURL == "" {
		return ErrInvalidAPIConfigs
	}

	if cfg.Workers.RefreshInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
