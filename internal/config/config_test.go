package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"COUNTER_STORE", "COUNTER_FILE", "INVOICE_PREFIX", "PROPOSAL_PREFIX", "BATCH_WORKERS", "COMPANY_NAME"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreFile, cfg.CounterStore)
	assert.Equal(t, "INV", cfg.InvoicePrefix)
	assert.Equal(t, "SPN", cfg.ProposalPrefix)
	assert.Equal(t, 4, cfg.BatchWorkers)
	assert.Equal(t, 30*time.Second, cfg.ChromeTimeout)
	assert.Equal(t, "SEMESTA TEKNO", cfg.Company().Name)
	assert.Equal(t, "stderr", cfg.GetLoggerConfig().Output)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("COUNTER_STORE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("COMPANY_NAME", "ACME")
	t.Setenv("CHROME_NO_SANDBOX", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreRedis, cfg.CounterStore)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.ChromeNoSandbox)
	assert.Equal(t, "ACME", cfg.Company().Name)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"COUNTER_STORE": "postgres",
		"REDIS_DB":      "zero",
		"BATCH_WORKERS": "-1",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
