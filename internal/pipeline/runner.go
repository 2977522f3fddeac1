// Package pipeline orchestrates one agent's end-to-end run: collect,
// normalize, persist, and optionally render the daily digest.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/agents"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/digest"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/logger"
)

// runIDLength shortens run ids for log readability.
const runIDLength = 8

// Collector is the collection stage contract.
type Collector interface {
	Collect(ctx context.Context, agent string, sources []domain.IntelSource, now time.Time) []domain.RawIntelRecord
}

// SnapshotWriter is the persistence surface the runner needs.
type SnapshotWriter interface {
	PersistRaw(ctx context.Context, agent, dateStamp string, records []domain.RawIntelRecord) error
	PersistNormalized(ctx context.Context, agent, dateStamp string, records []domain.NormalizedIntelRecord) error
}

// Runner executes agent runs. Each run constructs its own state; runs of
// distinct agents share nothing but the snapshot store, whose keys never
// collide across agents.
type Runner struct {
	collector Collector
	snapshots SnapshotWriter
	sink      digest.Sink
	logger    logger.Logger
	now       func() time.Time
}

// NewRunner creates a Runner.
func NewRunner(
	collector Collector,
	snapshots SnapshotWriter,
	sink digest.Sink,
	log logger.Logger,
) *Runner {
	return &Runner{
		collector: collector,
		snapshots: snapshots,
		sink:      sink,
		logger:    log,
		now:       time.Now,
	}
}

// Run executes one collection run for the agent. Source fetch failures
// were already absorbed by the collector; a persistence failure
// propagates to the caller, which logs and waits for the next tick.
func (r *Runner) Run(ctx context.Context, reg agents.Registered) error {
	now := r.now()
	dateStamp := domain.DateStamp(now)
	runLog := r.logger.With(
		logger.String("agent", reg.Agent.Slug),
		logger.String("run_id", uuid.NewString()[:runIDLength]),
		logger.String("date", dateStamp))

	raw := r.collector.Collect(ctx, reg.Agent.Slug, reg.Agent.Sources, now)
	records := reg.Normalizer.Normalize(raw)

	if err := r.snapshots.PersistRaw(ctx, reg.Agent.Slug, dateStamp, raw); err != nil {
		return fmt.Errorf("agent %s: %w", reg.Agent.Slug, err)
	}
	if err := r.snapshots.PersistNormalized(ctx, reg.Agent.Slug, dateStamp, records); err != nil {
		return fmt.Errorf("agent %s: %w", reg.Agent.Slug, err)
	}

	if len(records) > 0 {
		markdown := digest.Render(reg.Agent.Label, dateStamp, records)
		path, err := r.sink.Write(reg.Agent.Slug, dateStamp, markdown)
		if err != nil {
			return fmt.Errorf("agent %s: write digest: %w", reg.Agent.Slug, err)
		}
		runLog.Info("digest written", logger.String("path", path))
	}

	runLog.Info("agent run complete",
		logger.Int("raw_records", len(raw)),
		logger.Int("normalized_records", len(records)),
		logger.Time("completed_at", r.now()))

	return nil
}
