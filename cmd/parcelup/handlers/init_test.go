package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/parcelup/internal/config"
)

// stubInit replaces the init collaborators and returns the config passed to writeConfig.
func stubInit(t *testing.T, exists bool, result *config.WizardResult, wizardErr, writeErr error) **config.Config {
	t.Helper()
	origExists, origWizard, origWrite := fileExists, runWizard, writeConfig
	t.Cleanup(func() {
		fileExists, runWizard, writeConfig = origExists, origWizard, origWrite
	})

	var written *config.Config
	fileExists = func(string) bool { return exists }
	runWizard = func(context.Context) (*config.WizardResult, error) { return result, wizardErr }
	writeConfig = func(cfg *config.Config, _ string) error {
		written = cfg
		return writeErr
	}
	return &written
}

func wizardResult() *config.WizardResult {
	return &config.WizardResult{
		Host:            "cm.example.com",
		Port:            "7183",
		TLS:             true,
		APIVersion:      10,
		User:            "ops",
		Product:         "KUDU",
		MaxTimePerStage: "300",
	}
}

func TestInit_WritesConfig(t *testing.T) {
	out, _ := captureOutput(t)
	written := stubInit(t, false, wizardResult(), nil, nil)

	err := Init(context.Background(), "parcelup.yaml")
	require.NoError(t, err)

	require.NotNil(t, *written)
	cfg := *written
	assert.Equal(t, "cm.example.com", cfg.Host)
	assert.Equal(t, 7183, cfg.Port)
	assert.Equal(t, 300, cfg.MaxTimePerStage)
	assert.Empty(t, cfg.Password)

	assert.NotContains(t, out.String(), "Warning:")
	assert.Contains(t, out.String(), "Configuration saved!")
	assert.Contains(t, out.String(), "https://cm.example.com:7183/api/v10")
	assert.Contains(t, out.String(), "(the only cluster)")
	assert.Contains(t, out.String(), "export "+config.EnvPassword)
}

func TestInit_WarnsOnExistingFile(t *testing.T) {
	out, _ := captureOutput(t)
	stubInit(t, true, wizardResult(), nil, nil)

	require.NoError(t, Init(context.Background(), "parcelup.yaml"))
	assert.Contains(t, out.String(), "Warning: parcelup.yaml already exists")
}

func TestInit_Errors(t *testing.T) {
	t.Run("wizard canceled", func(t *testing.T) {
		captureOutput(t)
		written := stubInit(t, false, nil, errors.New("wizard canceled"), nil)

		err := Init(context.Background(), "parcelup.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wizard canceled")
		assert.Nil(t, *written)
	})

	t.Run("invalid answers", func(t *testing.T) {
		captureOutput(t)
		result := wizardResult()
		result.Product = ""
		written := stubInit(t, false, result, nil, nil)

		err := Init(context.Background(), "parcelup.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Nil(t, *written)
	})

	t.Run("write failure", func(t *testing.T) {
		out, _ := captureOutput(t)
		stubInit(t, false, wizardResult(), nil, errors.New("permission denied"))

		err := Init(context.Background(), "/readonly/parcelup.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write config: permission denied")
		assert.NotContains(t, out.String(), "Configuration saved!")
	})
}
