// Package handlers implements the business logic for CLI commands.
//
// Handlers resolve configuration, build the control plane client and run
// the upgrade phases. Collaborators are created through package-level
// factory variables so tests can swap them out.
package handlers

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/parcelup/internal/config"
	"github.com/imamik/parcelup/internal/platform/cm"
	"github.com/imamik/parcelup/internal/provisioning"
)

// Log formats accepted by --log-format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig reads the configuration file.
	loadConfig = config.Load

	// loadTimeouts reads request and poll timings from the environment.
	loadTimeouts = config.LoadTimeouts

	// newClient creates the control plane client.
	newClient = func(cfg *config.Config, timeouts *config.Timeouts, onRetry cm.RetryFunc) cm.ClusterManager {
		return cm.NewClient(cfg, cm.WithTimeouts(timeouts), cm.WithRetryNotify(onRetry))
	}

	// stdout receives command output.
	stdout io.Writer = os.Stdout

	// stderr receives structured logs.
	stderr io.Writer = os.Stderr
)

// GlobalOptions holds the connection flags shared by all commands.
type GlobalOptions struct {
	ConfigPath      string
	Host            string
	Port            int
	TLS             bool
	APIVersion      int
	User            string
	Password        string
	Cluster         string
	Product         string
	MaxTimePerStage int
	LogFormat       string

	// Changed holds the names of flags set on the command line. Only those
	// override the environment and the config file.
	Changed map[string]bool
}

// resolveConfig merges defaults, the config file, the environment and
// explicitly set flags, in increasing order of precedence.
func resolveConfig(opts *GlobalOptions) (*config.Config, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	opts.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (o *GlobalOptions) apply(cfg *config.Config) {
	set := func(name string) bool { return o.Changed[name] }

	if set("host") {
		cfg.Host = o.Host
	}
	if set("port") {
		cfg.Port = o.Port
	}
	if set("tls") {
		cfg.TLS = o.TLS
		if !set("port") && o.TLS && cfg.Port == config.DefaultPort {
			cfg.Port = config.DefaultTLSPort
		}
	}
	if set("api-version") {
		cfg.APIVersion = o.APIVersion
	}
	if set("user") {
		cfg.User = o.User
	}
	if set("password") {
		cfg.Password = o.Password
	}
	if set("cluster") {
		cfg.Cluster = o.Cluster
	}
	if set("product") {
		cfg.Product = o.Product
	}
	if set("max_time_per_stage") {
		cfg.MaxTimePerStage = o.MaxTimePerStage
	}
}

// newObserver returns the observer for the requested log format.
func newObserver(format string) (provisioning.Observer, error) {
	switch format {
	case "", LogFormatText:
		return provisioning.NewConsoleObserver(), nil
	case LogFormatJSON:
		logger := funcr.NewJSON(func(obj string) {
			fmt.Fprintln(stderr, obj)
		}, funcr.Options{LogTimestamp: true})
		return provisioning.NewLogrObserver(logger.WithName("parcelup")), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", format, LogFormatText, LogFormatJSON)
	}
}

// retryNotifier logs retried reads through observer.
func retryNotifier(observer provisioning.Observer) cm.RetryFunc {
	return func(path string, attempt int, err error, delay time.Duration) {
		observer.Printf("Retrying GET %s (attempt %d) in %v: %v", path, attempt, delay, err)
	}
}

func isInteractiveTTY() bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
