package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrMissingCredentials indicates that the account email or password
	// was not supplied via environment or JSON file.
	ErrMissingCredentials = errors.New("missing account credentials")
	// ErrInvalidAPIConfigs indicates invalid API client settings
	// (for example, missing endpoint URL or zero timeout).
	ErrInvalidAPIConfigs = errors.New("invalid api configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero refresh interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
