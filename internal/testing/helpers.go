package testing

import (
	"context"
	"testing"
	"time"

	"github.com/imamik/parcelup/internal/config"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// FastTimeouts returns timings that keep polling loops quick in tests.
func FastTimeouts() *config.Timeouts {
	return &config.Timeouts{
		Request:           time.Second,
		RetryMaxAttempts:  0,
		RetryInitialDelay: time.Millisecond,
		PollInterval:      time.Millisecond,
	}
}
