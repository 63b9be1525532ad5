package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"invoicekit/internal/logger"
	"invoicekit/pkg/models"
)

// Counter store backends accepted by COUNTER_STORE.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	// Document numbering
	CounterStore      string
	CounterFile       string
	CounterSQLitePath string
	InvoicePrefix     string
	ProposalPrefix    string

	// Redis counter store
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Vendor profile printed on documents
	CompanyName     string
	CompanyTagline  string
	CompanyPhone    string
	CompanyWhatsApp string
	CompanyEmail    string
	CompanyWebsite  string
	BankName        string
	BankAccount     string
	BankHolder      string

	// PDF export
	ChromeRemoteURL string
	ChromeNoSandbox bool
	ChromeTimeout   time.Duration

	// Batch export
	BatchWorkers int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	company := models.DefaultCompany()

	config := &Config{
		CounterStore:      getEnv("COUNTER_STORE", StoreFile),
		CounterFile:       getEnv("COUNTER_FILE", "invoicekit-counters.json"),
		CounterSQLitePath: getEnv("COUNTER_SQLITE_PATH", "invoicekit.db"),
		InvoicePrefix:     getEnv("INVOICE_PREFIX", "INV"),
		ProposalPrefix:    getEnv("PROPOSAL_PREFIX", "SPN"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		CompanyName:       getEnv("COMPANY_NAME", company.Name),
		CompanyTagline:    getEnv("COMPANY_TAGLINE", company.Tagline),
		CompanyPhone:      getEnv("COMPANY_PHONE", company.Phone),
		CompanyWhatsApp:   getEnv("COMPANY_WHATSAPP", company.WhatsApp),
		CompanyEmail:      getEnv("COMPANY_EMAIL", company.Email),
		CompanyWebsite:    getEnv("COMPANY_WEBSITE", company.Website),
		BankName:          getEnv("BANK_NAME", company.BankName),
		BankAccount:       getEnv("BANK_ACCOUNT", company.BankAccount),
		BankHolder:        getEnv("BANK_HOLDER", company.AccountHolder),
		ChromeRemoteURL:   getEnv("CHROME_REMOTE_URL", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:     getEnv("LOG_TIME_FORMAT", time.RFC3339),
		LogOutput:         getEnv("LOG_OUTPUT", "stderr"),
	}

	var err error
	if config.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if config.BatchWorkers, err = getEnvInt("BATCH_WORKERS", 4); err != nil {
		return nil, err
	}
	if config.ChromeNoSandbox, err = getEnvBool("CHROME_NO_SANDBOX", false); err != nil {
		return nil, err
	}
	timeoutSecs, err := getEnvInt("CHROME_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	config.ChromeTimeout = time.Duration(timeoutSecs) * time.Second

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.CounterStore {
	case StoreFile:
		if c.CounterFile == "" {
			return fmt.Errorf("COUNTER_FILE is required for the file counter store")
		}
	case StoreSQLite:
		if c.CounterSQLitePath == "" {
			return fmt.Errorf("COUNTER_SQLITE_PATH is required for the sqlite counter store")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis counter store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("COUNTER_STORE must be one of file, sqlite, redis, memory (got %q)", c.CounterStore)
	}
	if c.InvoicePrefix == "" || c.ProposalPrefix == "" {
		return fmt.Errorf("INVOICE_PREFIX and PROPOSAL_PREFIX must not be empty")
	}
	if c.BatchWorkers <= 0 {
		return fmt.Errorf("BATCH_WORKERS must be positive")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// Company returns the vendor profile assembled from the COMPANY_* and BANK_* variables.
func (c *Config) Company() models.Company {
	return models.Company{
		Name:          c.CompanyName,
		Tagline:       c.CompanyTagline,
		Phone:         c.CompanyPhone,
		WhatsApp:      c.CompanyWhatsApp,
		Email:         c.CompanyEmail,
		Website:       c.CompanyWebsite,
		BankName:      c.BankName,
		BankAccount:   c.BankAccount,
		AccountHolder: c.BankHolder,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
