package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"salaryclean/internal/domain"
	"salaryclean/internal/etl"
	"salaryclean/internal/secret"
)

// EnvPrefix is the prefix for every environment variable read by Load.
const EnvPrefix = "SALARYCLEAN"

// FileEnvVar names the optional YAML config file.
const FileEnvVar = EnvPrefix + "_CONFIG"

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database" envconfig:"DB"`
	Output   OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOG"`
}

// DatabaseConfig contains connection parameters for the salary database.
// Leaf fields carry no envconfig tag: a tag would make envconfig fall back
// to the unprefixed variable (USER, PATH) when the prefixed one is unset.
type DatabaseConfig struct {
	Driver      string `yaml:"driver"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Name        string `yaml:"name"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	SSLMode     string `yaml:"sslmode"`
	KeychainKey string `yaml:"keychain_key" split_words:"true"`
	Table       string `yaml:"table"`
}

// OutputConfig contains the CSV target
type OutputConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: string(domain.DatabaseDriverPostgres),
			Host:   "localhost",
			Table:  etl.DefaultTable,
		},
		Output:  OutputConfig{Path: "salary_data_clean.csv"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// SALARYCLEAN_CONFIG if set, then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(FileEnvVar); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks required fields
func (c *Config) Validate() error {
	if !domain.DatabaseDriver(c.Database.Driver).Valid() {
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}
	if !etl.ValidTableName(c.Database.Table) {
		return fmt.Errorf("invalid table name: %q", c.Database.Table)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output path is required")
	}
	return nil
}

// Connection converts the database section into a DatabaseConnection.
func (c *Config) Connection() *domain.DatabaseConnection {
	return &domain.DatabaseConnection{
		Driver:   domain.DatabaseDriver(c.Database.Driver),
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		Database: c.Database.Name,
		Username: c.Database.User,
		SSLMode:  c.Database.SSLMode,
	}
}

// ResolvePassword returns the configured password, falling back to the
// secret store when the password is empty and a keychain key is set.
func (c *Config) ResolvePassword(store secret.SecretStore) (string, error) {
	if c.Database.Password != "" || c.Database.KeychainKey == "" {
		return c.Database.Password, nil
	}
	v, err := store.Get(c.Database.KeychainKey)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", fmt.Errorf("no secret stored for %q", c.Database.KeychainKey)
	}
	return string(v), nil
}
