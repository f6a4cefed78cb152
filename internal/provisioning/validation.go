package provisioning

import (
	"fmt"
	"strings"

	"github.com/imamik/parcelup/internal/config"
)

const validationPhase = "Validation"

// Severities of a ValidationError.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string // Configuration field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == SeverityError
}

// ValidationPhase implements the Phase interface for pre-flight validation.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface. Warnings are logged; any error
// fails the phase before the control plane is contacted.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	ctx.Observer.Printf("[%s] Running pre-flight validation...", validationPhase)

	var errs []string
	for _, ve := range Validate(ctx.Config) {
		LogValidation(ctx.Observer, validationPhase, ve)
		if ve.IsError() {
			errs = append(errs, ve.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	ctx.Observer.Printf("[%s] Validation passed", validationPhase)
	return nil
}

// Validate runs all checks against cfg and returns errors and warnings.
func Validate(cfg *config.Config) []ValidationError {
	var errs []ValidationError

	// --- Required fields ---

	if cfg.Host == "" {
		errs = append(errs, ValidationError{
			Field:    "Host",
			Message:  "control plane host is required",
			Severity: SeverityError,
		})
	}

	if cfg.Product == "" {
		errs = append(errs, ValidationError{
			Field:    "Product",
			Message:  "parcel product is required (e.g., 'KUDU')",
			Severity: SeverityError,
		})
	}

	if cfg.MaxTimePerStage < 1 {
		errs = append(errs, ValidationError{
			Field:    "MaxTimePerStage",
			Message:  fmt.Sprintf("max time per stage must be at least 1 second, got %d", cfg.MaxTimePerStage),
			Severity: SeverityError,
		})
	}

	if cfg.APIVersion < 1 {
		errs = append(errs, ValidationError{
			Field:    "APIVersion",
			Message:  fmt.Sprintf("API version must be positive, got %d", cfg.APIVersion),
			Severity: SeverityError,
		})
	}

	// --- Connection ---

	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:    "Port",
			Message:  fmt.Sprintf("port %d out of range", cfg.Port),
			Severity: SeverityError,
		})
	} else {
		if cfg.TLS && cfg.Port == config.DefaultPort {
			errs = append(errs, ValidationError{
				Field:    "Port",
				Message:  fmt.Sprintf("TLS enabled on port %d, the control plane usually serves TLS on %d", cfg.Port, config.DefaultTLSPort),
				Severity: SeverityWarning,
			})
		}
		if !cfg.TLS && cfg.Port == config.DefaultTLSPort {
			errs = append(errs, ValidationError{
				Field:    "TLS",
				Message:  fmt.Sprintf("port %d is the usual TLS port but TLS is disabled", cfg.Port),
				Severity: SeverityWarning,
			})
		}
	}

	if !cfg.TLS && cfg.Host != "" && !isLoopback(cfg.Host) {
		errs = append(errs, ValidationError{
			Field:    "TLS",
			Message:  fmt.Sprintf("credentials are sent in clear text to %s, consider --tls", cfg.Host),
			Severity: SeverityWarning,
		})
	}

	// --- Credentials ---

	if cfg.User == "" {
		errs = append(errs, ValidationError{
			Field:    "User",
			Message:  "user is required",
			Severity: SeverityError,
		})
	}

	if cfg.User == config.DefaultUser && cfg.Password == config.DefaultPassword {
		errs = append(errs, ValidationError{
			Field:    "Password",
			Message:  "using the factory default credentials",
			Severity: SeverityWarning,
		})
	}

	return errs
}

func isLoopback(host string) bool {
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
