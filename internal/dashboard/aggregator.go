// Package dashboard builds per-agent summaries and the cross-agent daily
// report from already-persisted snapshots.
package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/logger"
)

// Result-shaping limits and thresholds.
const (
	topHighlightsLimit  = 3
	alertsLimit         = 5
	alertScoreThreshold = 70.0
)

// SnapshotStore is the read/write surface the aggregator needs from the
// snapshot layer.
type SnapshotStore interface {
	Load(ctx context.Context, agent, dateStamp string) ([]domain.NormalizedIntelRecord, error)
	PersistReport(ctx context.Context, report *domain.DashboardReport) error
}

// Aggregator assembles dashboard reports. Per-agent snapshot reads are
// issued concurrently: they are pure reads against durable data with no
// ordering dependency, so concurrency carries no politeness cost and cuts
// report latency when rolling up many agents.
type Aggregator struct {
	store  SnapshotStore
	logger logger.Logger
	now    func() time.Time
}

// New creates an Aggregator.
func New(store SnapshotStore, log logger.Logger) *Aggregator {
	return &Aggregator{
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

// BuildAgentSummary loads one agent's snapshot for the day and computes
// its summary. An agent with nothing collected yields an all-zero summary.
func (a *Aggregator) BuildAgentSummary(
	ctx context.Context,
	agent, dateStamp string,
) (domain.AgentDashboardSummary, error) {
	records, err := a.store.Load(ctx, agent, dateStamp)
	if err != nil {
		return domain.EmptyAgentSummary(agent, dateStamp), err
	}
	return summarize(agent, dateStamp, records), nil
}

// BuildReport fans BuildAgentSummary out across the requested agents
// concurrently, folds the results into aggregate totals, and persists the
// day's report. A failed read isolates to its agent: the report carries
// that agent's zero-valued summary instead of failing as a whole.
func (a *Aggregator) BuildReport(
	ctx context.Context,
	agents []string,
	dateStamp string,
) (*domain.DashboardReport, error) {
	summaries := make([]domain.AgentDashboardSummary, len(agents))

	var wg sync.WaitGroup
	for i, agent := range agents {
		wg.Add(1)
		go func(i int, agent string) {
			defer wg.Done()

			summary, err := a.BuildAgentSummary(ctx, agent, dateStamp)
			if err != nil {
				a.logger.Warn("agent summary failed, reporting empty",
					logger.String("agent", agent),
					logger.String("date", dateStamp),
					logger.Error(err))
			}
			summaries[i] = summary
		}(i, agent)
	}
	wg.Wait()

	report := &domain.DashboardReport{
		DateStamp:   dateStamp,
		GeneratedAt: a.now().UTC(),
		Agents:      summaries,
	}
	for i := range summaries {
		report.Totals.Records += summaries[i].TotalRecords
		report.Totals.Alerts += len(summaries[i].Alerts)
	}

	if err := a.store.PersistReport(ctx, report); err != nil {
		return nil, err
	}

	a.logger.Info("dashboard report generated",
		logger.String("date", dateStamp),
		logger.Int("agents", len(agents)),
		logger.Int("records", report.Totals.Records),
		logger.Int("alerts", report.Totals.Alerts))

	return report, nil
}

// summarize computes the derived summary for one agent's record set.
func summarize(agent, dateStamp string, records []domain.NormalizedIntelRecord) domain.AgentDashboardSummary {
	summary := domain.EmptyAgentSummary(agent, dateStamp)
	summary.TotalRecords = len(records)

	for _, record := range records {
		summary.ClassificationCounts[record.Classification]++
		summary.SourceBreakdown[record.Source]++
	}

	summary.TopHighlights = PickTopRecords(records, topHighlightsLimit, func(r domain.NormalizedIntelRecord) bool {
		return r.Classification == domain.ClassificationPublic
	})
	summary.Alerts = PickTopRecords(records, alertsLimit, isAlert)

	return summary
}

// isAlert selects records worth surfacing on the dashboard alert strip:
// anything not public, anything scoring at or above the alert threshold,
// and anything critical or high priority.
func isAlert(r domain.NormalizedIntelRecord) bool {
	if r.Classification != domain.ClassificationPublic {
		return true
	}
	if r.RelevanceScore >= alertScoreThreshold {
		return true
	}
	return r.Priority == domain.PriorityCritical || r.Priority == domain.PriorityHigh
}

// PickTopRecords filters by predicate, sorts by relevance score
// descending, and takes the first limit records. The sort is stable:
// equal scores preserve original collection order, keeping result
// ordering deterministic.
func PickTopRecords(
	records []domain.NormalizedIntelRecord,
	limit int,
	predicate func(domain.NormalizedIntelRecord) bool,
) []domain.NormalizedIntelRecord {
	picked := make([]domain.NormalizedIntelRecord, 0, len(records))
	for _, record := range records {
		if predicate(record) {
			picked = append(picked, record)
		}
	}

	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].RelevanceScore > picked[j].RelevanceScore
	})

	if len(picked) > limit {
		picked = picked[:limit]
	}
	return picked
}
