package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"telepace/telepace/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load the configuration file, apply defaults and environment overrides,
and report every validation error found. Exits non-zero when the
configuration is invalid.

Examples:
  # Validate the default config
  telepace validate

  # Validate a specific file
  telepace validate --config /etc/telepace/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		var vErr config.ValidationError
		if errors.As(err, &vErr) {
			fmt.Fprintf(os.Stderr, "✗ %s\n", vErr.Error())
			os.Exit(1)
		}
		return err
	}

	fmt.Println("✓ Configuration valid")
	if verbose {
		fmt.Printf("  limits enabled: %v\n", cfg.Limits.IsEnabled())
		fmt.Printf("  storage backend: %s\n", cfg.Storage.Backend)
		fmt.Printf("  admin server: %v (%s)\n", cfg.Admin.Enabled, cfg.Admin.ListenAddress)
	}
	return nil
}
