package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const DefaultPath = "gherk.toml"

// Config holds the application configuration
type Config struct {
	FeaturesDir string    `toml:"features_dir" validate:"required"`
	Database    string    `toml:"database" validate:"required"`
	Workers     int       `toml:"workers" validate:"min=1,max=64"`
	Log         LogConfig `toml:"log"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

func Default() *Config {
	return &Config{
		FeaturesDir: "features",
		Database:    "features/gherk.db",
		Workers:     4,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the TOML file at path over the defaults, then applies .env and
// environment overrides and validates the result. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// Load .env file if it exists, but don't fail if it doesn't
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.FeaturesDir = getEnv("GHERK_FEATURES_DIR", c.FeaturesDir)
	c.Database = getEnv("GHERK_DATABASE", c.Database)
	c.Log.Level = getEnv("GHERK_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("GHERK_LOG_FORMAT", c.Log.Format)

	if v, ok := os.LookupEnv("GHERK_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GHERK_WORKERS value: %w", err)
		}
		c.Workers = n
	}
	return nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
