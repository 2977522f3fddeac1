package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/dashboard"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/testhelpers"
)

// fakeStore serves canned snapshots and records persisted reports.
type fakeStore struct {
	snapshots map[string][]domain.NormalizedIntelRecord
	loadErrs  map[string]error
	persisted []*domain.DashboardReport
}

func (f *fakeStore) Load(_ context.Context, agent, _ string) ([]domain.NormalizedIntelRecord, error) {
	if err := f.loadErrs[agent]; err != nil {
		return nil, err
	}
	records, ok := f.snapshots[agent]
	if !ok {
		return []domain.NormalizedIntelRecord{}, nil
	}
	return records, nil
}

func (f *fakeStore) PersistReport(_ context.Context, report *domain.DashboardReport) error {
	f.persisted = append(f.persisted, report)
	return nil
}

func record(id string, class domain.Classification, score float64) domain.NormalizedIntelRecord {
	return domain.NormalizedIntelRecord{
		ID:             id,
		Title:          "record " + id,
		Source:         "src-" + id,
		Classification: class,
		RelevanceScore: score,
		Priority:       domain.PriorityLow,
	}
}

func TestPickTopRecords_StableOnEqualScores(t *testing.T) {
	records := []domain.NormalizedIntelRecord{
		record("a", domain.ClassificationPublic, 50),
		record("b", domain.ClassificationPublic, 50),
		record("c", domain.ClassificationPublic, 80),
		record("d", domain.ClassificationPublic, 50),
	}

	picked := dashboard.PickTopRecords(records, 4, func(domain.NormalizedIntelRecord) bool {
		return true
	})

	require.Len(t, picked, 4)
	assert.Equal(t, "c", picked[0].ID)
	// Equal scores keep original collection order.
	assert.Equal(t, "a", picked[1].ID)
	assert.Equal(t, "b", picked[2].ID)
	assert.Equal(t, "d", picked[3].ID)
}

func TestPickTopRecords_FilterAndLimit(t *testing.T) {
	records := []domain.NormalizedIntelRecord{
		record("pub1", domain.ClassificationPublic, 10),
		record("int1", domain.ClassificationInternal, 99),
		record("pub2", domain.ClassificationPublic, 70),
	}

	picked := dashboard.PickTopRecords(records, 1, func(r domain.NormalizedIntelRecord) bool {
		return r.Classification == domain.ClassificationPublic
	})

	require.Len(t, picked, 1)
	assert.Equal(t, "pub2", picked[0].ID)
}

func TestBuildAgentSummary_CountsAndBreakdown(t *testing.T) {
	store := &fakeStore{
		snapshots: map[string][]domain.NormalizedIntelRecord{
			"licensing-watch": {
				record("a", domain.ClassificationPublic, 90),
				record("b", domain.ClassificationInternal, 60),
				record("c", domain.ClassificationConfidential, 30),
				{
					ID: "d", Source: "src-a", Classification: domain.ClassificationInternal,
					RelevanceScore: 10, Priority: domain.PriorityLow,
				},
			},
		},
	}
	agg := dashboard.New(store, testhelpers.NewCapturingLogger())

	summary, err := agg.BuildAgentSummary(context.Background(), "licensing-watch", "2025-01-10")
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalRecords)

	// All three classification keys are present and sum to the total.
	require.Len(t, summary.ClassificationCounts, 3)
	total := 0
	for _, c := range domain.Classifications {
		count, ok := summary.ClassificationCounts[c]
		require.True(t, ok, "missing classification key %s", c)
		total += count
	}
	assert.Equal(t, summary.TotalRecords, total)

	assert.Equal(t, map[string]int{"src-a": 2, "src-b": 1, "src-c": 1}, summary.SourceBreakdown)
}

func TestBuildAgentSummary_AlertSelection(t *testing.T) {
	store := &fakeStore{
		snapshots: map[string][]domain.NormalizedIntelRecord{
			"agent": {
				record("quiet-public", domain.ClassificationPublic, 10),
				record("hot-public", domain.ClassificationPublic, 75),
				record("internal", domain.ClassificationInternal, 5),
				{
					ID: "urgent", Source: "s", Classification: domain.ClassificationPublic,
					RelevanceScore: 20, Priority: domain.PriorityCritical,
				},
			},
		},
	}
	agg := dashboard.New(store, testhelpers.NewCapturingLogger())

	summary, err := agg.BuildAgentSummary(context.Background(), "agent", "2025-01-10")
	require.NoError(t, err)

	ids := make([]string, 0, len(summary.Alerts))
	for _, alert := range summary.Alerts {
		ids = append(ids, alert.ID)
	}
	// Low-scoring plain-public records are not alerts; everything hot,
	// non-public, or high-priority is.
	assert.ElementsMatch(t, []string{"hot-public", "internal", "urgent"}, ids)
}

func TestBuildReport_TwoAgentScenario(t *testing.T) {
	store := &fakeStore{
		snapshots: map[string][]domain.NormalizedIntelRecord{
			"agentX": {
				record("x1", domain.ClassificationPublic, 90),
				record("x2", domain.ClassificationPublic, 80),
				record("x3", domain.ClassificationPublic, 10),
			},
			"agentY": {},
		},
	}
	agg := dashboard.New(store, testhelpers.NewCapturingLogger())

	report, err := agg.BuildReport(context.Background(), []string{"agentX", "agentY"}, "2025-01-10")
	require.NoError(t, err)
	require.Len(t, report.Agents, 2)

	x, y := report.Agents[0], report.Agents[1]
	require.Equal(t, "agentX", x.AgentSlug)
	require.Equal(t, "agentY", y.AgentSlug)

	// All three public records fit within the highlight limit of 3,
	// ordered by score.
	require.Len(t, x.TopHighlights, 3)
	assert.Equal(t, "x1", x.TopHighlights[0].ID)
	assert.Equal(t, "x2", x.TopHighlights[1].ID)
	assert.Equal(t, "x3", x.TopHighlights[2].ID)

	assert.Equal(t, 0, y.TotalRecords)
	for _, c := range domain.Classifications {
		assert.Equal(t, 0, y.ClassificationCounts[c])
	}

	assert.Equal(t, 3, report.Totals.Records)
	assert.Equal(t, "2025-01-10", report.DateStamp)

	// The report was persisted as the day's artifact.
	require.Len(t, store.persisted, 1)
	assert.Equal(t, report, store.persisted[0])
}

func TestBuildReport_PartialFailureIsIsolated(t *testing.T) {
	store := &fakeStore{
		snapshots: map[string][]domain.NormalizedIntelRecord{
			"healthy": {record("h1", domain.ClassificationPublic, 90)},
		},
		loadErrs: map[string]error{
			"broken": errors.New("disk failure"),
		},
	}
	log := testhelpers.NewCapturingLogger()
	agg := dashboard.New(store, log)

	report, err := agg.BuildReport(context.Background(), []string{"healthy", "broken"}, "2025-01-10")
	require.NoError(t, err, "one agent's read failure must not fail the report")
	require.Len(t, report.Agents, 2)

	assert.Equal(t, 1, report.Agents[0].TotalRecords)
	// The broken agent is present with an empty-defaulted summary.
	assert.Equal(t, "broken", report.Agents[1].AgentSlug)
	assert.Equal(t, 0, report.Agents[1].TotalRecords)
	assert.Equal(t, 1, report.Totals.Records)

	assert.True(t, log.HasEntry("warn", "agent summary failed, reporting empty", "agent", "broken"))
}
