// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── parseEnv ──────────────────────────────────────────────────────────────────

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"LIBRE_EMAIL":    "user@example.com",
		"LIBRE_PASSWORD": "hunter2",

		"LIBRE_API_VERSION":         "4.16.0",
		"LIBRE_API_PRODUCT":         "llu.android",
		"LIBRE_API_TIMEOUT":         "15s",
		"LIBRE_API_VERIFY_TLS":      "true",
		"LIBRE_API_LOGIN_URL":       "https://login.example.com",
		"LIBRE_API_ACCOUNT_URL":     "https://account.example.com",
		"LIBRE_API_CONNECTIONS_URL": "https://connections.example.com",

		"GLUCOTERM_REFRESH_INTERVAL": "2m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "user@example.com", cfg.Account.Email)
	assert.Equal(t, "hunter2", cfg.Account.Password)

	assert.Equal(t, "4.16.0", cfg.API.Version)
	assert.Equal(t, "llu.android", cfg.API.Product)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.API.VerifyTLS)
	assert.Equal(t, "https://login.example.com", cfg.API.LoginURL)
	assert.Equal(t, "https://account.example.com", cfg.API.AccountURL)
	assert.Equal(t, "https://connections.example.com", cfg.API.ConnectionsURL)

	assert.Equal(t, 2*time.Minute, cfg.Workers.RefreshInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"LIBRE_EMAIL": "user@example.com",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "user@example.com", cfg.Account.Email)
	assert.Empty(t, cfg.Account.Password)
	assert.Empty(t, cfg.API.Version)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"LIBRE_API_TIMEOUT": "not-a-duration",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	assert.Error(t, err)
}

// ── builder ───────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierLayersWin verifies merge priority: the first layer that
// sets a field keeps it, later layers only fill gaps.
func TestBuild_EarlierLayersWin(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			Account: Account{Email: "env@example.com", Password: "env-pass"},
			API:     API{Version: "9.9.9"},
		},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env@example.com", cfg.Account.Email)
	assert.Equal(t, "9.9.9", cfg.API.Version, "env layer must win over defaults")
	assert.Equal(t, DefaultProduct, cfg.API.Product, "defaults must fill the gap")
	assert.Equal(t, DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, DefaultRefreshInterval, cfg.Workers.RefreshInterval)
}

func TestBuild_EmptyBuilder_FailsValidation(t *testing.T) {
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_MergesFileBelowEnv(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"account": map[string]any{"email": "json@example.com", "password": "json-pass"},
		"api":     map[string]any{"timeout": "30s"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Account:      Account{Email: "env@example.com"},
		JSONFilePath: path,
	})
	b.withJSON().withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env@example.com", cfg.Account.Email, "env value wins over JSON")
	assert.Equal(t, "json-pass", cfg.Account.Password, "JSON fills fields env left empty")
	assert.Equal(t, 30*time.Second, cfg.API.Timeout, "JSON value wins over defaults")
}

func TestWithJSON_NoFileConfigured(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1, "no JSON layer should be appended")
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate_MissingCredentials(t *testing.T) {
	cfg := defaults()
	err := cfg.validate()
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestValidate_InvalidAPI(t *testing.T) {
	cfg := defaults()
	cfg.Account = Account{Email: "a@b.c", Password: "p"}
	cfg.API.Timeout = 0

	assert.ErrorIs(t, cfg.validate(), ErrInvalidAPIConfigs)
}

func TestValidate_InvalidWorkers(t *testing.T) {
	cfg := defaults()
	cfg.Account = Account{Email: "a@b.c", Password: "p"}
	cfg.Workers.RefreshInterval = 0

	assert.ErrorIs(t, cfg.validate(), ErrInvalidWorkerConfigs)
}

func TestValidate_OK(t *testing.T) {
	cfg := defaults()
	cfg.Account = Account{Email: "a@b.c", Password: "p"}

	assert.NoError(t, cfg.validate())
}

// ── GetConfig ─────────────────────────────────────────────────────────────────

func TestGetConfig_EnvOnly(t *testing.T) {
	setEnvVars(t, map[string]string{
		"LIBRE_EMAIL":    "user@example.com",
		"LIBRE_PASSWORD": "hunter2",
	})

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", cfg.Account.Email)
	assert.Equal(t, DefaultAPIVersion, cfg.API.Version)
	assert.Equal(t, DefaultLoginURL, cfg.API.LoginURL)
	assert.False(t, cfg.API.VerifyTLS, "verification stays off unless enabled")
}

func TestGetConfig_MissingCredentials(t *testing.T) {
	cfg, err := GetConfig()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}
