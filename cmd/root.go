// Package cmd implements the intel-watcher command-line interface.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "intel-watcher",
		Short: "Per-domain intelligence watcher pipeline",
		Long: `intel-watcher runs per-domain watcher agents that pull external
feeds on independent cron cadences, classify and score each item, persist
daily snapshots, render digests, and roll agents up into a dashboard
report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yml", "config file path")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("intel-watcher version %s\n", version)
		},
	})

	rootCmd.AddCommand(runCommand())
	rootCmd.AddCommand(collectCommand())
	rootCmd.AddCommand(dashboardCommand())
	rootCmd.AddCommand(reportCommand())
	rootCmd.AddCommand(agentsCommand())
}
