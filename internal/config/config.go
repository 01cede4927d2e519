package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. FAMBALANCE_STORE_TYPE
const Prefix = "FAMBALANCE"

// Store backends
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMySQL    = "mysql"
)

// Connection point bookkeeping modes
const (
	PointsModeToggle    = "toggle"
	PointsModeReconcile = "reconcile"
)

// AIConfig configures the optional recommendation hook
type AIConfig struct {
	BaseURL string        `envconfig:"BASE_URL" default:"https://generativelanguage.googleapis.com"`
	APIKey  string        `envconfig:"API_KEY"`
	Model   string        `envconfig:"MODEL" default:"gemini-2.5-flash"`
	UseADC  bool          `envconfig:"USE_ADC" default:"false"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"20s"`
}

// Enabled reports whether any credential source is configured
func (a AIConfig) Enabled() bool {
	return a.APIKey != "" || a.UseADC
}

// SESConfig configures outgoing email
type SESConfig struct {
	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-1"`
	FromEmail string `envconfig:"FROM_EMAIL"`
	FromName  string `envconfig:"FROM_NAME" default:"FamBalance"`
}

// Config holds application configuration
type Config struct {
	StoreType    string `envconfig:"STORE_TYPE" default:"sqlite"`
	DatabasePath string `envconfig:"DB_PATH" default:"./fambalance.db"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	CacheSize    int    `envconfig:"CACHE_SIZE" default:"64"`

	FreeMissionLimit     int    `envconfig:"FREE_MISSION_LIMIT" default:"3"`
	ConnectionReward     int    `envconfig:"CONNECTION_REWARD" default:"25"`
	ConnectionPointsMode string `envconfig:"CONNECTION_POINTS_MODE" default:"toggle"`
	TrialDays            int    `envconfig:"TRIAL_DAYS" default:"14"`
	ReportWindowDays     int    `envconfig:"REPORT_WINDOW_DAYS" default:"7"`
	BirthdayWindowDays   int    `envconfig:"BIRTHDAY_WINDOW_DAYS" default:"30"`

	AI  AIConfig  `envconfig:"AI"`
	SES SESConfig `envconfig:"SES"`

	Debug bool `envconfig:"DEBUG" default:"false"`
}

// Load reads an optional .env file and then the FAMBALANCE_* environment
func Load() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	cfg.StoreType = strings.ToLower(strings.TrimSpace(cfg.StoreType))
	cfg.ConnectionPointsMode = strings.ToLower(strings.TrimSpace(cfg.ConnectionPointsMode))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in defaults with an in-memory store
func Default() *Config {
	return &Config{
		StoreType:            StoreMemory,
		CacheSize:            64,
		FreeMissionLimit:     3,
		ConnectionReward:     25,
		ConnectionPointsMode: PointsModeToggle,
		TrialDays:            14,
		ReportWindowDays:     7,
		BirthdayWindowDays:   30,
		AI: AIConfig{
			BaseURL: "https://generativelanguage.googleapis.com",
			Model:   "gemini-2.5-flash",
			Timeout: 20 * time.Second,
		},
		SES: SESConfig{AWSRegion: "us-east-1", FromName: "FamBalance"},
	}
}

// Validate checks the configuration for values the services cannot work with
func (c *Config) Validate() error {
	switch c.StoreType {
	case StoreMemory:
	case StoreSQLite, "sqlite3":
		if c.DatabasePath == "" {
			return fmt.Errorf("DB_PATH is required for store type %s", c.StoreType)
		}
	case StorePostgres, "postgresql", StoreMySQL:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for store type %s", c.StoreType)
		}
	default:
		return fmt.Errorf("unsupported STORE_TYPE: %s", c.StoreType)
	}

	switch c.ConnectionPointsMode {
	case PointsModeToggle, PointsModeReconcile:
	default:
		return fmt.Errorf("unsupported CONNECTION_POINTS_MODE: %s", c.ConnectionPointsMode)
	}

	if c.FreeMissionLimit < 0 {
		return fmt.Errorf("FREE_MISSION_LIMIT must not be negative")
	}
	if c.ConnectionReward < 0 {
		return fmt.Errorf("CONNECTION_REWARD must not be negative")
	}
	if c.TrialDays < 0 || c.ReportWindowDays < 0 || c.BirthdayWindowDays < 0 {
		return fmt.Errorf("day windows must not be negative")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("CACHE_SIZE must not be negative")
	}
	return nil
}

// UsesDatabase reports whether the store is SQL-backed
func (c *Config) UsesDatabase() bool {
	return c.StoreType != StoreMemory
}
