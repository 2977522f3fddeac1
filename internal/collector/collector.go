// Package collector pulls an agent's configured sources and tags the
// results with agent-scoped defaults.
package collector

import (
	"context"
	"time"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/feed"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/logger"
)

// Collector fetches every source of one agent sequentially. Sequential
// iteration is deliberate: one slow or failing source must not cancel the
// rest of the batch, and failure attribution stays unambiguous. Worst-case
// outbound concurrency is bounded to one request per agent.
type Collector struct {
	fetcher      feed.Fetcher
	logger       logger.Logger
	fetchTimeout time.Duration
}

// New creates a Collector. A non-positive fetchTimeout disables the
// per-source deadline.
func New(fetcher feed.Fetcher, log logger.Logger, fetchTimeout time.Duration) *Collector {
	return &Collector{
		fetcher:      fetcher,
		logger:       log,
		fetchTimeout: fetchTimeout,
	}
}

// Collect fetches each source in order. A source failure is logged with
// the source id and skipped; it degrades coverage but never aborts the
// run. Every record is stamped with collectedAt = now and the source's
// default priority.
func (c *Collector) Collect(
	ctx context.Context,
	agent string,
	sources []domain.IntelSource,
	now time.Time,
) []domain.RawIntelRecord {
	records := make([]domain.RawIntelRecord, 0, len(sources))

	for _, source := range sources {
		fetched, err := c.fetchOne(ctx, source, now)
		if err != nil {
			c.logger.Warn("source fetch failed",
				logger.String("agent", agent),
				logger.String("source_id", source.ID),
				logger.Error(err))
			continue
		}

		for i := range fetched {
			fetched[i].SourceID = source.ID
			fetched[i].CollectedAt = now
			if fetched[i].Priority == "" {
				fetched[i].Priority = source.DefaultPriority
			}
		}
		records = append(records, fetched...)

		c.logger.Debug("source collected",
			logger.String("agent", agent),
			logger.String("source_id", source.ID),
			logger.Int("records", len(fetched)))
	}

	return records
}

func (c *Collector) fetchOne(
	ctx context.Context,
	source domain.IntelSource,
	now time.Time,
) ([]domain.RawIntelRecord, error) {
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}
	return c.fetcher.Fetch(ctx, source, now)
}
