package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/parcelup/cmd/parcelup/handlers"
)

// Status returns the command that shows the product's parcels and the
// upgrade candidate.
func Status(opts *handlers.GlobalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show parcel stages and the upgrade candidate",
		Long: `Show the parcels of the configured product on the cluster, their
stages and transfer progress, and which parcel an upgrade would pick.

Nothing is changed on the cluster.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), opts, handlers.StatusOptions{Output: output})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", handlers.OutputTable, "Output format: table, json or yaml")

	return cmd
}
