package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "telepace",
	Short: "Telepace - request admission and pacing engine for Telegram",
	Long: `Telepace shapes outbound Telegram API traffic so a long-running user
account stays inside the platform's tolerated request rates.

It enforces:
  - Sliding-window ceilings (global, per-chat, per-group)
  - A hard daily quota on resolve-class lookups
  - Bounded concurrency with randomized pacing delays
  - Automatic retries on server FLOOD_WAIT signals`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
