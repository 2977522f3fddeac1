package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/logger"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/scheduler"
)

// runCommand starts the scheduler daemon: every registered agent attached
// to its own cron trigger until SIGINT/SIGTERM.
func runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the watcher daemon with all agents scheduled",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New(cfgFile)
			if err != nil {
				return err
			}
			defer app.Close()

			sched := scheduler.New(app.Runner, app.Logger)
			for _, reg := range app.Registry.All() {
				if err := sched.Register(cmd.Context(), reg); err != nil {
					return err
				}
			}
			sched.Start()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			sig := <-quit

			app.Logger.Info("shutdown signal received", logger.String("signal", sig.String()))
			sched.Stop()
			return nil
		},
	}
}
