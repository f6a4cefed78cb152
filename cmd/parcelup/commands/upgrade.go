package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/parcelup/cmd/parcelup/handlers"
	"github.com/imamik/parcelup/internal/config"
)

// Upgrade returns the command that activates the newest compatible parcel.
//
// The upgrade process:
// - Resolves the cluster (--cluster, or the only one)
// - Picks the greatest parcel with the active parcel's release version
// - Downloads, distributes and activates it, waiting for each stage
//
// Optional flags:
//
//	--max_time_per_stage: Poll budget in seconds for each stage
//	--dry-run: Show what would be requested without sending actions
//	--metrics-file: Write run metrics in Prometheus text format
//
// Environment variables:
//
//	PARCELUP_PASSWORD: Cluster manager password
func Upgrade(opts *handlers.GlobalOptions) *cobra.Command {
	var dryRun bool
	var metricsFile string

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the parcel to the newest compatible version",
		Long: `Upgrade the parcel to the newest build of its release version.

Will not upgrade to a new release: the major, minor and patch version of
the new parcel match the active one. A parcel that is already downloaded or
distributed resumes from its current stage.

After a successful run the old parcel is no longer active, but running
services must be restarted to use the new parcel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Upgrade(cmd.Context(), opts, handlers.UpgradeOptions{
				DryRun:      dryRun,
				MetricsFile: metricsFile,
			})
		},
	}

	cmd.Flags().IntVar(&opts.MaxTimePerStage, "max_time_per_stage", config.DefaultMaxTimePerStage,
		"Maximum time in seconds to wait for any single stage (downloading, distributing, activating)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be upgraded without executing")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics to this file in Prometheus text format")

	return cmd
}
