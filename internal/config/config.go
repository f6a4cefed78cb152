package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// Defaults for a stock control plane install.
const (
	DefaultHost            = "localhost"
	DefaultPort            = 7180
	DefaultTLSPort         = 7183
	DefaultAPIVersion      = 10
	DefaultUser            = "admin"
	DefaultPassword        = "admin"
	DefaultProduct         = "KUDU"
	DefaultMaxTimePerStage = 120

	// DefaultConfigFile is looked up in the working directory when no
	// --config flag is given.
	DefaultConfigFile = "parcelup.yaml"
)

// Config holds the connection and upgrade settings.
type Config struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	TLS        bool   `yaml:"tls"`
	APIVersion int    `yaml:"api_version"`
	User       string `yaml:"user"`
	Password   string `yaml:"password,omitempty"`

	// Cluster is optional; without it the only cluster is used.
	Cluster string `yaml:"cluster,omitempty"`

	// Product is the parcel product to upgrade.
	Product string `yaml:"product"`

	// MaxTimePerStage is the per-stage poll budget in seconds.
	MaxTimePerStage int `yaml:"max_time_per_stage"`
}

// Default returns a Config filled with defaults.
func Default() *Config {
	return &Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		APIVersion:      DefaultAPIVersion,
		User:            DefaultUser,
		Password:        DefaultPassword,
		Product:         DefaultProduct,
		MaxTimePerStage: DefaultMaxTimePerStage,
	}
}

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if c.Host == "" {
		errs = append(errs, errors.New("host is required"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.APIVersion < 1 {
		errs = append(errs, fmt.Errorf("api_version must be positive, got %d", c.APIVersion))
	}
	if c.User == "" {
		errs = append(errs, errors.New("user is required"))
	}
	if c.Product == "" {
		errs = append(errs, errors.New("product is required"))
	}
	if c.MaxTimePerStage < 1 {
		errs = append(errs, fmt.Errorf("max_time_per_stage must be at least 1 second, got %d", c.MaxTimePerStage))
	}

	return errors.Join(errs...)
}

// BaseURL returns the versioned API root, e.g. http://localhost:7180/api/v10.
func (c *Config) BaseURL() string {
	scheme := "http"
	if c.TLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api/v%d", scheme, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.APIVersion)
}
