package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Billing   BillingConfig   `yaml:"billing"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Export    ExportConfig    `yaml:"export"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SendGridConfig contains outbound message delivery settings. Rendered
// messages are delivered to the shop outbox address; the recipient
// handle (customer phone) rides in the subject for manual forwarding.
type SendGridConfig struct {
	APIKey      string `yaml:"api_key"`
	FromName    string `yaml:"from_name"`
	FromEmail   string `yaml:"from_email"`
	OutboxEmail string `yaml:"outbox_email"`
}

// AuthConfig contains the shared-secret login settings. SecretHash is a
// bcrypt hash of the shop secret; TokenSecret signs session tokens.
type AuthConfig struct {
	SecretHash         string `yaml:"secret_hash"`
	TokenSecret        string `yaml:"token_secret"`
	SessionExpiryHours int    `yaml:"session_expiry_hours"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BillingConfig contains alerting thresholds in currency units.
// Pointers distinguish an absent key from an explicit zero: nil gets
// the shop default, a configured zero is kept as-is.
type BillingConfig struct {
	PendingBalanceThreshold *float64 `yaml:"pending_balance_threshold"`
	LowStockThreshold       *int     `yaml:"low_stock_threshold"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	AccrualPass          string `yaml:"accrual_pass"`
	SendOverdueReminders string `yaml:"send_overdue_reminders"`
	SendBalanceReminders string `yaml:"send_balance_reminders"`
}

// ExportConfig contains document export settings
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}
	if val := os.Getenv("SENDGRID_OUTBOX_EMAIL"); val != "" {
		c.SendGrid.OutboxEmail = val
	}

	// Auth
	if val := os.Getenv("AUTH_SECRET_HASH"); val != "" {
		c.Auth.SecretHash = val
	}
	if val := os.Getenv("AUTH_TOKEN_SECRET"); val != "" {
		c.Auth.TokenSecret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Export
	if val := os.Getenv("EXPORT_DIR"); val != "" {
		c.Export.Dir = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Auth.SecretHash == "" {
		return fmt.Errorf("auth secret hash is required")
	}
	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("auth token secret is required")
	}
	if len(c.Auth.TokenSecret) < 32 {
		return fmt.Errorf("auth token secret must be at least 32 characters")
	}
	if c.Auth.SessionExpiryHours == 0 {
		c.Auth.SessionExpiryHours = 12
	}

	if c.Export.Dir == "" {
		c.Export.Dir = "exports"
	}

	// Billing defaults, only for keys the file leaves out
	if c.Billing.PendingBalanceThreshold == nil {
		v := 100.0
		c.Billing.PendingBalanceThreshold = &v
	}
	if c.Billing.LowStockThreshold == nil {
		v := 2
		c.Billing.LowStockThreshold = &v
	}

	// Scheduler defaults
	if c.Scheduler.AccrualPass == "" {
		c.Scheduler.AccrualPass = "0 0 1 * * *" // 1 AM UTC
	}
	if c.Scheduler.SendOverdueReminders == "" {
		c.Scheduler.SendOverdueReminders = "0 0 3 * * *" // 3 AM UTC
	}
	if c.Scheduler.SendBalanceReminders == "" {
		c.Scheduler.SendBalanceReminders = "0 0 4 * * *" // 4 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
