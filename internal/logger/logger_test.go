package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_InvalidLevel(t *testing.T) {
	err := Setup(LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestSetup_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoicekit.log")

	require.NoError(t, Setup(LogConfig{Level: "info", Format: "json", Output: path}))
	t.Cleanup(func() { _ = Setup(DefaultConfig()) })

	log := WithDocument("test", "invoice", "INV-202601-01")
	log.Info().Msg("numbered")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"document_number":"INV-202601-01"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "stderr", cfg.Output)
	assert.Equal(t, "info", cfg.Level)
}
