package config

import (
	"fmt"
	"os"

	"voenrecon/internal/logger"
)

type Config struct {
	// Input files
	BankHistoryFile string
	InvoicesFile    string

	// Output files
	ReconciliationReportFile string
	CompanyReportFile        string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		BankHistoryFile:          getEnv("BANK_HISTORY_FILE", "Bank History.xls"),
		InvoicesFile:             getEnv("INVOICES_FILE", "Invoices.xlsx"),
		ReconciliationReportFile: getEnv("RECONCILIATION_REPORT_FILE", "reconciliation_report.xlsx"),
		CompanyReportFile:        getEnv("COMPANY_REPORT_FILE", "company_report.xlsx"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		LogFormat:                getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:            getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:                getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.BankHistoryFile == "" {
		return fmt.Errorf("BANK_HISTORY_FILE must not be empty")
	}
	if c.InvoicesFile == "" {
		return fmt.Errorf("INVOICES_FILE must not be empty")
	}
	if c.ReconciliationReportFile == "" {
		return fmt.Errorf("RECONCILIATION_REPORT_FILE must not be empty")
	}
	if c.CompanyReportFile == "" {
		return fmt.Errorf("COMPANY_REPORT_FILE must not be empty")
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
