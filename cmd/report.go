package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
)

// reportCommand prints a day's persisted dashboard report without
// regenerating it.
func reportCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the persisted dashboard report for a day",
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

			report, err := app.Snapshots.LoadReport(cmd.Context(), dateStamp)
			if err != nil {
				return err
			}

			fmt.Printf("dashboard report %s (generated %s)\n",
				report.DateStamp, report.GeneratedAt.Format(time.RFC3339))
			for _, summary := range report.Agents {
				fmt.Printf("  %s: %d records, %d alerts\n",
					summary.AgentSlug, summary.TotalRecords, len(summary.Alerts))
			}
			fmt.Printf("totals: %d records, %d alerts\n",
				report.Totals.Records, report.Totals.Alerts)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "report date (YYYY-MM-DD, default today)")

	return cmd
}
