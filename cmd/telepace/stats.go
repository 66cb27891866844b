package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"telepace/telepace/pkg/cli"
	"telepace/telepace/pkg/config"
	"telepace/telepace/pkg/limits"
)

var statsOutput string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics from a running instance",
	Long: `Fetch the current usage snapshot from the admin server of a running
telepace instance and print it.

Examples:
  # Plain text summary
  telepace stats

  # Machine-readable output
  telepace stats --output json`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "text", "output format (text, json)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, err.Error())
	}

	if !cfg.Admin.Enabled {
		return cli.NewCommandError("stats", errors.New("admin server is disabled in the configuration"))
	}

	snap, err := fetchStats(cfg.Admin.ListenAddress)
	if err != nil {
		return cli.NewCommandError("stats", fmt.Errorf("failed to fetch usage snapshot: %w", err))
	}

	formatter := cli.NewFormatter(cli.OutputFormat(statsOutput))
	if statsOutput == string(cli.FormatJSON) {
		return formatter.FormatTo(os.Stdout, snap)
	}
	return formatter.FormatTo(os.Stdout, renderStats(snap))
}

// fetchStats retrieves the usage snapshot from the admin /stats endpoint.
func fetchStats(address string) (*limits.Snapshot, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(fmt.Sprintf("http://%s/stats", address))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("admin server answered %s", resp.Status)
	}

	var snap limits.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// renderStats formats a snapshot as a human-readable summary.
func renderStats(snap *limits.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total requests:        %d\n", snap.TotalRequests)
	fmt.Fprintf(&b, "Successful requests:   %d\n", snap.SuccessfulRequests)
	fmt.Fprintf(&b, "Rate limited requests: %d\n", snap.RateLimitedRequests)
	fmt.Fprintf(&b, "Flood errors:          %d\n", snap.FloodErrors)
	fmt.Fprintf(&b, "Resolve requests:      %d\n", snap.ResolveRequestsToday)
	fmt.Fprintf(&b, "Success rate:          %.1f%%\n", snap.SuccessRate*100)
	fmt.Fprintf(&b, "Flood rate:            %.1f%%", snap.FloodRate*100)

	return b.String()
}
