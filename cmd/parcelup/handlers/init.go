package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/parcelup/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.WriteYAML
)

// Init runs the configuration wizard and writes the result to outputPath.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "parcelup - parcel upgrades for the cluster manager")
	fmt.Fprintln(stdout, "==================================================")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard writes the connection and upgrade settings to a file.")
	fmt.Fprintln(stdout, "The password is not stored.")
	fmt.Fprintln(stdout)
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Summary")
	fmt.Fprintln(stdout, "-------")
	fmt.Fprintf(stdout, "  Endpoint:       %s\n", cfg.BaseURL())
	fmt.Fprintf(stdout, "  User:           %s\n", cfg.User)
	if cfg.Cluster != "" {
		fmt.Fprintf(stdout, "  Cluster:        %s\n", cfg.Cluster)
	} else {
		fmt.Fprintln(stdout, "  Cluster:        (the only cluster)")
	}
	fmt.Fprintf(stdout, "  Product:        %s\n", cfg.Product)
	fmt.Fprintf(stdout, "  Stage budget:   %ds\n", cfg.MaxTimePerStage)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Next Steps")
	fmt.Fprintln(stdout, "----------")
	fmt.Fprintln(stdout, "  1. Provide the password:")
	fmt.Fprintf(stdout, "     export %s=<password>\n", config.EnvPassword)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "  2. Check what an upgrade would pick:")
	fmt.Fprintf(stdout, "     parcelup status -c %s\n", outputPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "  3. Upgrade:")
	fmt.Fprintf(stdout, "     parcelup upgrade -c %s\n", outputPath)
	fmt.Fprintln(stdout)
}
