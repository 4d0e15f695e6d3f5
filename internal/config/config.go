package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DB       DBConfig
	Log      LogConfig
	Sequence SequenceConfig
	Sweep    SweepConfig
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SequenceConfig tunes the invoice number allocator retry loop.
type SequenceConfig struct {
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// SweepConfig tunes the overdue sweep worker.
type SweepConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// Load reads configuration from environment variables with the FATTURO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FATTURO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "fatturo")
	v.SetDefault("db.password", "fatturo_secret")
	v.SetDefault("db.name", "fatturo_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Sequence allocator defaults
	v.SetDefault("sequence.max_retries", 5)
	v.SetDefault("sequence.retry_backoff", "25ms")

	// Sweep defaults
	v.SetDefault("sweep.interval", "10m")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"db.host":                "FATTURO_DB_HOST",
		"db.port":                "FATTURO_DB_PORT",
		"db.user":                "FATTURO_DB_USER",
		"db.password":            "FATTURO_DB_PASSWORD",
		"db.name":                "FATTURO_DB_NAME",
		"db.sslmode":             "FATTURO_DB_SSLMODE",
		"db.max_open":            "FATTURO_DB_MAX_OPEN",
		"db.max_idle":            "FATTURO_DB_MAX_IDLE",
		"log.level":              "FATTURO_LOG_LEVEL",
		"log.format":             "FATTURO_LOG_FORMAT",
		"sequence.max_retries":   "FATTURO_SEQUENCE_MAX_RETRIES",
		"sequence.retry_backoff": "FATTURO_SEQUENCE_RETRY_BACKOFF",
		"sweep.interval":         "FATTURO_SWEEP_INTERVAL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Sequence = SequenceConfig{
		MaxRetries:   v.GetInt("sequence.max_retries"),
		RetryBackoff: v.GetDuration("sequence.retry_backoff"),
	}
	cfg.Sweep = SweepConfig{
		Interval: v.GetDuration("sweep.interval"),
	}

	return cfg, nil
}
