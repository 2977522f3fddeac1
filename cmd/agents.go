package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/bootstrap"
)

// agentsCommand lists the registered agents and their sources.
func agentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List registered agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New(cfgFile)
			if err != nil {
				return err
			}
			defer app.Close()

			for _, reg := range app.Registry.All() {
				fmt.Printf("%s (%s) cron=%q\n", reg.Agent.Slug, reg.Agent.Label, reg.Agent.CronExpr)
				for _, src := range reg.Agent.Sources {
					fmt.Printf("  - %s [%s] default=%s %s\n",
						src.ID, src.FetchKind, src.DefaultPriority, src.Endpoint)
				}
			}
			return nil
		},
	}
}
