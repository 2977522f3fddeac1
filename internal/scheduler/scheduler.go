// Package scheduler attaches each agent's run to its own cron trigger.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/agents"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/logger"
)

// AgentRunner executes one agent's end-to-end run.
type AgentRunner interface {
	Run(ctx context.Context, reg agents.Registered) error
}

// Scheduler holds one cron entry per agent. Triggers fire independently
// and never block one another; any unhandled error from a run is logged
// and the scheduler waits for the next tick rather than retrying.
type Scheduler struct {
	cron    *cron.Cron
	runner  AgentRunner
	logger  logger.Logger
	entries map[string]cron.EntryID
}

// New creates a Scheduler using the standard 5-field cron parser with a
// panic-recovering job chain.
func New(runner AgentRunner, log logger.Logger) *Scheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger)))

	return &Scheduler{
		cron:    c,
		runner:  runner,
		logger:  log,
		entries: make(map[string]cron.EntryID),
	}
}

// Register schedules the agent against its own cron expression.
func (s *Scheduler) Register(ctx context.Context, reg agents.Registered) error {
	if reg.Agent.CronExpr == "" {
		return fmt.Errorf("agent %s: empty cron expression", reg.Agent.Slug)
	}

	id, err := s.cron.AddFunc(reg.Agent.CronExpr, func() {
		if err := s.runner.Run(ctx, reg); err != nil {
			s.logger.Error("agent run failed",
				logger.String("agent", reg.Agent.Slug),
				logger.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule agent %s: %w", reg.Agent.Slug, err)
	}

	s.entries[reg.Agent.Slug] = id
	s.logger.Info("agent scheduled",
		logger.String("agent", reg.Agent.Slug),
		logger.String("cron", reg.Agent.CronExpr))

	return nil
}

// Start begins firing triggers.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", logger.Int("agents", len(s.entries)))
}

// Stop stops the cron scheduler and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
}

// ScheduledCount returns the number of registered agent triggers.
func (s *Scheduler) ScheduledCount() int {
	return len(s.entries)
}
