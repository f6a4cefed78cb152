package handlers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/parcelup/internal/config"
	"github.com/imamik/parcelup/internal/platform/cm"
	th "github.com/imamik/parcelup/internal/testing"
)

// useClient makes handlers talk to client. Tests using it must not run in parallel.
func useClient(t *testing.T, client cm.ClusterManager) {
	t.Helper()
	origClient, origTimeouts := newClient, loadTimeouts
	newClient = func(*config.Config, *config.Timeouts, cm.RetryFunc) cm.ClusterManager { return client }
	loadTimeouts = th.FastTimeouts
	t.Cleanup(func() {
		newClient = origClient
		loadTimeouts = origTimeouts
	})
}

// captureOutput redirects handler output to buffers.
func captureOutput(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	origOut, origErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() {
		stdout, stderr = origOut, origErr
	})
	return out, errOut
}

// writeConfigFile writes content to a temporary parcelup.yaml.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parcelup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// globalOptions returns options pointing at an empty config file.
func globalOptions(t *testing.T) *GlobalOptions {
	t.Helper()
	return &GlobalOptions{
		ConfigPath: writeConfigFile(t, "password: s3cret\n"),
		LogFormat:  LogFormatText,
	}
}
