package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" env:"PORT" envDefault:"8080" validate:"required,numeric"`
	Env             string        `json:"env" env:"APP_ENV" envDefault:"development"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" env:"HTTP_TIMEOUT" envDefault:"30s" validate:"gt=0"`

	// Redis configuration. An empty URL keeps the response cache in memory.
	RedisURL    string `json:"redis_url" env:"REDIS_URL" validate:"omitempty,url"`
	RedisPrefix string `json:"redis_prefix" env:"REDIS_PREFIX" envDefault:"mrz:"`

	// Video feed
	FeedURLTemplate   string        `json:"feed_url_template" env:"FEED_URL_TEMPLATE" envDefault:"https://www.youtube.com/feeds/videos.xml?channel_id=%s" validate:"required,contains=%s"`
	FeedUserAgent     string        `json:"feed_user_agent" env:"FEED_USER_AGENT" envDefault:"Mozilla/5.0" validate:"required"`
	FeedTimeout       time.Duration `json:"feed_timeout" env:"FEED_TIMEOUT" envDefault:"15s" validate:"gt=0"`
	FeedRevalidate    time.Duration `json:"feed_revalidate" env:"FEED_REVALIDATE" envDefault:"5m" validate:"gte=0"`
	FeedMaxResultsCap int           `json:"feed_max_results_cap" env:"FEED_MAX_RESULTS_CAP" envDefault:"50" validate:"gt=0"`

	// Calendar
	CalendarProdID       string `json:"calendar_prodid" env:"CALENDAR_PRODID" envDefault:"-//MRZ Gang//Events//EN" validate:"required"`
	CalendarUIDDomain    string `json:"calendar_uid_domain" env:"CALENDAR_UID_DOMAIN" envDefault:"mrzgang" validate:"required"`
	CalendarFilePrefix   string `json:"calendar_file_prefix" env:"CALENDAR_FILE_PREFIX" envDefault:"mrz" validate:"required"`
	CalendarDefaultTitle string `json:"calendar_default_title" env:"CALENDAR_DEFAULT_TITLE" envDefault:"MRZ Event"`
	CalendarDefaultDesc  string `json:"calendar_default_desc" env:"CALENDAR_DEFAULT_DESC" envDefault:"MRZ Gang Event"`

	// Logging
	LogLevel  string `json:"log_level" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error fatal panic disabled"`
	LogFile   string `json:"log_file" env:"LOG_FILE"`
	LogPretty bool   `json:"log_pretty" env:"LOG_PRETTY" envDefault:"true"`
}

// Load loads configuration from the environment and exits on invalid values
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Parse reads the process environment into a validated Config
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// LogOutput returns the logger destination derived from LogFile
func (c *Config) LogOutput() string {
	if c.LogFile == "" {
		return "stdout"
	}
	return c.LogFile
}
