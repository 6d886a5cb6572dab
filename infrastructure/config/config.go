// Package config loads application configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"herdly-go/infrastructure/logging"
	"herdly-go/infrastructure/repository"
)

// yamlConfig is the YAML structure of the config file.
type yamlConfig struct {
	Mongo   yamlMongo   `yaml:"mongo"`
	Logging yamlLogging `yaml:"logging"`
}

type yamlMongo struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	ConnectTimeout int    `yaml:"connect_timeout_seconds"`
	PingTimeout    int    `yaml:"ping_timeout_seconds"`
}

type yamlLogging struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   *bool  `yaml:"compress"`
	AddSource  bool   `yaml:"add_source"`
}

// Config is the resolved application configuration.
type Config struct {
	Mongo   *repository.MongoDBConfig
	Logging *logging.Config
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Mongo:   repository.DefaultMongoDBConfig(),
		Logging: logging.DefaultConfig(),
	}
}

// Load reads a YAML config file and merges it over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := applyMongo(cfg.Mongo, &yc.Mongo); err != nil {
		return nil, err
	}
	if err := applyLogging(cfg.Logging, &yc.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyMongo(dst *repository.MongoDBConfig, src *yamlMongo) error {
	if src.URI != "" {
		dst.URI = src.URI
	}
	if src.Database != "" {
		dst.Database = src.Database
	}
	if src.ConnectTimeout < 0 || src.PingTimeout < 0 {
		return fmt.Errorf("mongo timeouts must not be negative")
	}
	if src.ConnectTimeout > 0 {
		dst.ConnectTimeout = time.Duration(src.ConnectTimeout) * time.Second
	}
	if src.PingTimeout > 0 {
		dst.PingTimeout = time.Duration(src.PingTimeout) * time.Second
	}
	return nil
}

func applyLogging(dst *logging.Config, src *yamlLogging) error {
	level, err := logging.ParseLevel(src.Level)
	if err != nil {
		return err
	}
	dst.Level = level

	if src.Dir != "" {
		dst.Dir = src.Dir
	}
	if src.MaxSizeMB > 0 {
		dst.MaxSizeMB = src.MaxSizeMB
	}
	if src.MaxBackups > 0 {
		dst.MaxBackups = src.MaxBackups
	}
	if src.MaxAgeDays > 0 {
		dst.MaxAgeDays = src.MaxAgeDays
	}
	if src.Compress != nil {
		dst.Compress = *src.Compress
	}
	dst.AddSource = src.AddSource
	return nil
}
