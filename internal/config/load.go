package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvHost     = "PARCELUP_HOST"
	EnvPort     = "PARCELUP_PORT"
	EnvUser     = "PARCELUP_USER"
	EnvPassword = "PARCELUP_PASSWORD"
	EnvCluster  = "PARCELUP_CLUSTER"
	EnvProduct  = "PARCELUP_PRODUCT"
)

// LoadFile reads a YAML configuration file on top of the defaults.
// Keys missing from the file keep their default value.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load returns the configuration from path, or the defaults when path is
// empty and no DefaultConfigFile exists in the working directory.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return Default(), nil
		}
		path = DefaultConfigFile
	}
	return LoadFile(path)
}

// ApplyEnv overrides fields from PARCELUP_* environment variables.
// Unset variables leave the field untouched.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvHost); ok {
		cfg.Host = v
	}
	if v, ok := os.LookupEnv(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}
	if v, ok := os.LookupEnv(EnvUser); ok {
		cfg.User = v
	}
	if v, ok := os.LookupEnv(EnvPassword); ok {
		cfg.Password = v
	}
	if v, ok := os.LookupEnv(EnvCluster); ok {
		cfg.Cluster = v
	}
	if v, ok := os.LookupEnv(EnvProduct); ok {
		cfg.Product = v
	}
	return nil
}
