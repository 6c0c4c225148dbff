package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds all configuration for the service.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
}

// AppConfig holds process-level settings.
type AppConfig struct {
	Env       string
	Port      string
	LogLevel  string
	LogFormat string
	// SeedDemoData fills an empty product collection with the demo catalog.
	SeedDemoData bool
}

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string

	SQLitePath string
	// AutoMigrate applies schema migrations on startup.
	AutoMigrate bool

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RabbitMQConfig configures inventory event publishing. An empty URL
// disables events.
type RabbitMQConfig struct {
	URL   string
	Queue string
}

// Load reads configuration from the environment, after loading a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SEED_DEMO_DATA", false)
	v.SetDefault("STORAGE_DRIVER", DriverPostgres)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("SQLITE_PATH", "inventory.db")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("RABBITMQ_QUEUE", "inventory_events")
	v.AutomaticEnv() // Load environment variables

	// PORT is accepted as an alias.
	if err := v.BindEnv("APP_PORT", "APP_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("binding APP_PORT: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:          v.GetString("APP_ENV"),
			Port:         normalizePort(v.GetString("APP_PORT")),
			LogLevel:     v.GetString("LOG_LEVEL"),
			LogFormat:    v.GetString("LOG_FORMAT"),
			SeedDemoData: v.GetBool("SEED_DEMO_DATA"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			Name:            v.GetString("DB_NAME"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			SQLitePath:      v.GetString("SQLITE_PATH"),
			AutoMigrate:     v.GetBool("AUTO_MIGRATE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports missing required settings for the selected driver.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		var missing []string
		if c.Database.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if c.Database.Name == "" {
			missing = append(missing, "DB_NAME")
		}
		if c.Database.User == "" {
			missing = append(missing, "DB_USER")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("missing required configuration: SQLITE_PATH")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (expected %s, %s or %s)",
			c.Database.Driver, DriverPostgres, DriverSQLite, DriverMemory)
	}
	if c.App.Port == "" {
		return fmt.Errorf("missing required configuration: APP_PORT")
	}
	return nil
}

// DSN returns the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func normalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
