package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.log")
	l, err := NewLogger(LogConfig{Level: "warn", Format: "json", File: path})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("checkout rejected", "reason", "invalid verification code")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"checkout rejected"`)
	assert.Contains(t, string(data), `"reason":"invalid verification code"`)
}

func TestNewLoggerErrors(t *testing.T) {
	_, err := NewLogger(LogConfig{Level: "chatty"})
	assert.Error(t, err)

	_, err = NewLogger(LogConfig{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)

	l, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	assert.NoError(t, l.Close())
}
