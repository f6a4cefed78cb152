// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/imamik/parcelup/cmd/parcelup/handlers"
	"github.com/imamik/parcelup/internal/config"
)

// Root returns the root command for the parcelup CLI.
//
// Connection flags are persistent so every subcommand shares them. Only
// flags given on the command line override the environment and the config
// file.
func Root() *cobra.Command {
	opts := &handlers.GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "parcelup",
		Short: "Upgrade a parcel to the newest compatible build",
		Long: `Upgrade a parcel through the cluster manager REST API.

parcelup picks the newest parcel that keeps the release version of the
active one and drives it through download, distribution and activation.
Existing services must be restarted afterwards to use the new parcel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.Changed = changedFlags(cmd.Flags())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default ./parcelup.yaml if present)")
	flags.StringVar(&opts.Host, "host", config.DefaultHost, "Hostname of the cluster manager server")
	flags.IntVar(&opts.Port, "port", config.DefaultPort, "Port of the cluster manager API")
	flags.BoolVar(&opts.TLS, "tls", false, "Connect over HTTPS")
	flags.IntVar(&opts.APIVersion, "api-version", config.DefaultAPIVersion, "REST API version")
	flags.StringVar(&opts.User, "user", config.DefaultUser, "Username with which to log into the cluster manager")
	flags.StringVar(&opts.Password, "password", config.DefaultPassword, "Password with which to log into the cluster manager (prefer "+config.EnvPassword+")")
	flags.StringVar(&opts.Cluster, "cluster", "", "Name of the cluster to upgrade (default the only cluster)")
	flags.StringVar(&opts.Product, "product", config.DefaultProduct, "Parcel product to upgrade")
	flags.StringVar(&opts.LogFormat, "log-format", handlers.LogFormatText, "Log format: text or json")

	cmd.AddCommand(Upgrade(opts))
	cmd.AddCommand(Status(opts))
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

func changedFlags(flags *pflag.FlagSet) map[string]bool {
	changed := make(map[string]bool)
	flags.Visit(func(f *pflag.Flag) {
		changed[f.Name] = true
	})
	return changed
}
