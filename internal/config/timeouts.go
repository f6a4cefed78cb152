package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds request and polling timings.
type Timeouts struct {
	Request           time.Duration // Per-request HTTP timeout
	RetryMaxAttempts  int           // Retries for transient read failures
	RetryInitialDelay time.Duration // First backoff delay
	PollInterval      time.Duration // Pause between stage polls
}

// LoadTimeouts loads timings from environment variables.
// If a variable is not set or invalid, the default is used.
//
// Environment Variables:
//   - PARCELUP_TIMEOUT_REQUEST (default: 30s)
//   - PARCELUP_RETRY_MAX_ATTEMPTS (default: 3)
//   - PARCELUP_RETRY_INITIAL_DELAY (default: 500ms)
//   - PARCELUP_POLL_INTERVAL (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Request:           parseDuration("PARCELUP_TIMEOUT_REQUEST", 30*time.Second),
		RetryMaxAttempts:  parseInt("PARCELUP_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: parseDuration("PARCELUP_RETRY_INITIAL_DELAY", 500*time.Millisecond),
		PollInterval:      parseDuration("PARCELUP_POLL_INTERVAL", time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}

	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
