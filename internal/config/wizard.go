package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the answers given to the init wizard.
type WizardResult struct {
	Host            string
	Port            string
	TLS             bool
	APIVersion      int
	User            string
	Cluster         string
	Product         string
	MaxTimePerStage string
}

// RunWizard asks for the connection and upgrade settings.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Host:            DefaultHost,
		Port:            strconv.Itoa(DefaultPort),
		APIVersion:      DefaultAPIVersion,
		User:            DefaultUser,
		Product:         DefaultProduct,
		MaxTimePerStage: strconv.Itoa(DefaultMaxTimePerStage),
	}

	form := huh.NewForm(
		// Control plane endpoint
		huh.NewGroup(
			huh.NewInput().
				Title("Control plane host").
				Description("Hostname of the cluster manager server").
				Value(&result.Host).
				Validate(validateHost),
			huh.NewInput().
				Title("Port").
				Description("7180 for HTTP, 7183 for HTTPS on a stock install").
				Value(&result.Port).
				Validate(validatePort),
			huh.NewConfirm().
				Title("Use HTTPS?").
				Value(&result.TLS),
			huh.NewSelect[int]().
				Title("API version").
				Options(
					huh.NewOption("v10", 10),
					huh.NewOption("v19", 19),
					huh.NewOption("v31", 31),
				).
				Value(&result.APIVersion),
		),

		// Credentials and scope
		huh.NewGroup(
			huh.NewInput().
				Title("User").
				Value(&result.User).
				Validate(requireValue("user")),
			huh.NewInput().
				Title("Cluster (optional)").
				Description("Leave empty when the control plane manages a single cluster").
				Value(&result.Cluster),
		),

		// Upgrade settings
		huh.NewGroup(
			huh.NewInput().
				Title("Parcel product").
				Value(&result.Product).
				Validate(requireValue("product")),
			huh.NewInput().
				Title("Seconds allowed per stage").
				Description("Budget for each of download, distribution and activation").
				Value(&result.MaxTimePerStage).
				Validate(validatePositiveInt),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the answers into a Config. Inputs are validated by the
// form; unparsable numbers fall back to their defaults.
func (r *WizardResult) ToConfig() *Config {
	cfg := Default()
	cfg.Host = strings.TrimSpace(r.Host)
	cfg.TLS = r.TLS
	cfg.APIVersion = r.APIVersion
	cfg.User = strings.TrimSpace(r.User)
	cfg.Cluster = strings.TrimSpace(r.Cluster)
	cfg.Product = strings.TrimSpace(r.Product)
	cfg.Password = ""

	if port, err := strconv.Atoi(r.Port); err == nil {
		cfg.Port = port
	}
	if budget, err := strconv.Atoi(r.MaxTimePerStage); err == nil {
		cfg.MaxTimePerStage = budget
	}
	return cfg
}

func validateHost(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("host is required")
	}
	if strings.Contains(s, "://") || strings.Contains(s, "/") {
		return errors.New("enter a hostname, not a URL")
	}
	return nil
}

func validatePort(s string) error {
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("port must be a number")
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return errors.New("enter a whole number of seconds, at least 1")
	}
	return nil
}

func requireValue(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
