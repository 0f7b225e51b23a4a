package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_NotNil verifies that New returns a non-nil *Logger.
func TestNew_NotNil(t *testing.T) {
	l := New("test")
	require.NotNil(t, l)
}

// TestNew_RoleField verifies that every log entry produced by a logger
// created with New contains the expected "role" field.
func TestNew_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := New("test-role")
	// redirect output to buffer for inspection
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-role", entry["role"])
}

// TestNew_ContainsTimestamp verifies that log entries contain a timestamp field.
func TestNew_ContainsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := New("ts-role")
	l.Logger = l.Output(&buf)

	l.Info().Msg("ts check")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// TestNew_CallerFieldName verifies that the caller field is named "func".
func TestNew_CallerFieldName(t *testing.T) {
	New("caller-role") // sets zerolog.CallerFieldName as a side-effect
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)

	// must not panic and must not write anywhere
	l.Error().Msg("discarded")
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := New("parent-role")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	child.Info().Msg("from child")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parent-role", entry["role"])
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).With().Str("role", "ctx-role").Logger()
	ctx := l.WithContext(context.Background())

	got := FromContext(ctx)
	require.NotNil(t, got)

	got.Info().Msg("via context")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ctx-role", entry["role"])
}
