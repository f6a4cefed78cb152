package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/parcelup/cmd/parcelup/handlers"
)

func TestUpgrade(t *testing.T) {
	cmd := Upgrade(&handlers.GlobalOptions{})

	require.NotNil(t, cmd)
	assert.Equal(t, "upgrade", cmd.Use)
	assert.Equal(t, "Upgrade the parcel to the newest compatible version", cmd.Short)
	assert.Contains(t, cmd.Long, "services must be restarted")
	assert.NotNil(t, cmd.RunE, "Upgrade command should have RunE function")
}

func TestUpgrade_MaxTimePerStageFlag(t *testing.T) {
	opts := &handlers.GlobalOptions{}
	cmd := Upgrade(opts)

	flag := cmd.Flags().Lookup("max_time_per_stage")
	require.NotNil(t, flag, "max_time_per_stage flag should exist")
	assert.Equal(t, "120", flag.DefValue)

	require.NoError(t, flag.Value.Set("45"))
	assert.Equal(t, 45, opts.MaxTimePerStage)
}

func TestUpgrade_DryRunFlag(t *testing.T) {
	cmd := Upgrade(&handlers.GlobalOptions{})

	flag := cmd.Flags().Lookup("dry-run")
	require.NotNil(t, flag, "dry-run flag should exist")
	assert.Equal(t, "", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
	assert.Equal(t, "Show what would be upgraded without executing", flag.Usage)
}

func TestUpgrade_MetricsFileFlag(t *testing.T) {
	cmd := Upgrade(&handlers.GlobalOptions{})

	flag := cmd.Flags().Lookup("metrics-file")
	require.NotNil(t, flag, "metrics-file flag should exist")
	assert.Equal(t, "", flag.DefValue)
}

func TestUpgrade_RejectsArgs(t *testing.T) {
	cmd := Root()
	cmd.SetArgs([]string{"upgrade", "KUDU"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
