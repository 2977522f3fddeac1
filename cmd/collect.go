package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/bootstrap"
)

// collectCommand runs one agent's pipeline once, outside the scheduler.
func collectCommand() *cobra.Command {
	var agentSlug string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run a single agent's collection pipeline once",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New(cfgFile)
			if err != nil {
				return err
			}
			defer app.Close()

			reg, ok := app.Registry.Get(agentSlug)
			if !ok {
				return fmt.Errorf("unknown agent %q", agentSlug)
			}

			return app.Runner.Run(cmd.Context(), reg)
		},
	}

	cmd.Flags().StringVar(&agentSlug, "agent", "", "agent slug to collect")
	_ = cmd.MarkFlagRequired("agent")

	return cmd
}
