package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"invoicegen/internal/invoice"
	"invoicegen/internal/logger"
	"invoicegen/pkg/models"
)

// Config carries everything the host passes to the engine at construction
// time. There is no process-wide mutable state; components receive their
// slice of this struct explicitly.
type Config struct {
	// Invoice Engine Configuration
	OutputDir string
	Currency  string
	TaxRate   decimal.Decimal
	DueInDays int

	// Seller Profile Configuration
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string
	CompanyVAT     string
	CompanyLogo    string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment with defaults.
func Load() (*Config, error) {
	config := &Config{
		OutputDir:      getEnv("INVOICE_OUTPUT_DIR", "invoices"),
		Currency:       getEnv("INVOICE_CURRENCY", invoice.DefaultCurrency),
		TaxRate:        invoice.DefaultTaxRate(),
		DueInDays:      invoice.DefaultDueInDays,
		CompanyName:    getEnv("COMPANY_NAME", ""),
		CompanyAddress: getEnv("COMPANY_ADDRESS", ""),
		CompanyEmail:   getEnv("COMPANY_EMAIL", ""),
		CompanyPhone:   getEnv("COMPANY_PHONE", ""),
		CompanyVAT:     getEnv("COMPANY_VAT", ""),
		CompanyLogo:    getEnv("COMPANY_LOGO", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stdout"),
	}

	if v := os.Getenv("INVOICE_TAX_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("config validation failed: invalid INVOICE_TAX_RATE %q: %w", v, err)
		}
		config.TaxRate = rate
	}
	if v := os.Getenv("INVOICE_DUE_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config validation failed: invalid INVOICE_DUE_DAYS %q: %w", v, err)
		}
		config.DueInDays = days
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("INVOICE_OUTPUT_DIR must not be empty")
	}
	if c.TaxRate.IsNegative() || c.TaxRate.GreaterThan(decimal.New(1, 0)) {
		return fmt.Errorf("INVOICE_TAX_RATE must be a fraction in [0,1], got %s", c.TaxRate)
	}
	if c.DueInDays <= 0 {
		return fmt.Errorf("INVOICE_DUE_DAYS must be positive, got %d", c.DueInDays)
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

// NormalizerDefaults returns the normalization defaults derived from the
// configuration. Empty seller fields are backfilled by the normalizer.
// The tax rate is always resolved here, so a configured zero rate reaches
// the normalizer as an explicit value.
func (c *Config) NormalizerDefaults() invoice.Defaults {
	rate := c.TaxRate
	return invoice.Defaults{
		Currency:  c.Currency,
		TaxRate:   &rate,
		DueInDays: c.DueInDays,
		Seller: models.SellerProfile{
			Name:     c.CompanyName,
			Address:  c.CompanyAddress,
			Email:    c.CompanyEmail,
			Phone:    c.CompanyPhone,
			VATID:    c.CompanyVAT,
			LogoPath: c.CompanyLogo,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
