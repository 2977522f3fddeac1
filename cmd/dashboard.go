package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
)

// dashboardCommand builds and persists the cross-agent report for a day.
func dashboardCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Generate the cross-agent dashboard report for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New(cfgFile)
			if err != nil {
				return err
			}
			defer app.Close()

			dateStamp := date
			if dateStamp == "" {
				dateStamp = domain.DateStamp(time.Now())
			} else if _, parseErr := time.Parse(domain.DateStampLayout, dateStamp); parseErr != nil {
				return fmt.Errorf("invalid --date %q: %w", dateStamp, parseErr)
			}

			report, err := app.Aggregator.BuildReport(cmd.Context(), app.Registry.Slugs(), dateStamp)
			if err != nil {
				return err
			}

			fmt.Printf("dashboard report %s: %d agents, %d records, %d alerts\n",
				report.DateStamp, len(report.Agents), report.Totals.Records, report.Totals.Alerts)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "report date (YYYY-MM-DD, default today)")

	return cmd
}
