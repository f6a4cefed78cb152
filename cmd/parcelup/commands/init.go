package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/parcelup/cmd/parcelup/handlers"
	"github.com/imamik/parcelup/internal/config"
)

// Init returns the command that writes a configuration file interactively.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Ask for the cluster manager endpoint, credentials and upgrade settings
and write them to a YAML file. The password is never written; provide it
through PARCELUP_PASSWORD or --password.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFile, "Output file path")

	return cmd
}
