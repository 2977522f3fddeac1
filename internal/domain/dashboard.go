package domain

import "time"

// AgentDashboardSummary is the derived per-agent rollup for one calendar
// day. It is recomputed on every dashboard request and only ever persisted
// as part of the DashboardReport that wraps it.
type AgentDashboardSummary struct {
	AgentSlug            string                  `json:"agent_slug"`
	DateStamp            string                  `json:"date_stamp"`
	TotalRecords         int                     `json:"total_records"`
	ClassificationCounts map[Classification]int  `json:"classification_counts"`
	TopHighlights        []NormalizedIntelRecord `json:"top_highlights"`
	Alerts               []NormalizedIntelRecord `json:"alerts"`
	SourceBreakdown      map[string]int          `json:"source_breakdown"`
}

// EmptyAgentSummary returns a zero-valued summary for an agent with
// nothing collected (or an unreadable snapshot). All classification keys
// are present and zero-filled so consumers never need a presence check.
func EmptyAgentSummary(agentSlug, dateStamp string) AgentDashboardSummary {
	counts := make(map[Classification]int, len(Classifications))
	for _, c := range Classifications {
		counts[c] = 0
	}
	return AgentDashboardSummary{
		AgentSlug:            agentSlug,
		DateStamp:            dateStamp,
		ClassificationCounts: counts,
		TopHighlights:        []NormalizedIntelRecord{},
		Alerts:               []NormalizedIntelRecord{},
		SourceBreakdown:      map[string]int{},
	}
}

// ReportTotals aggregates record and alert counts across all agents.
type ReportTotals struct {
	Records int `json:"records"`
	Alerts  int `json:"alerts"`
}

// DashboardReport is the cross-agent rollup for one calendar day. It is
// created fresh per request and persisted as an immutable daily artifact;
// re-generation overwrites the day's artifact, it does not version it.
type DashboardReport struct {
	DateStamp   string                  `json:"date_stamp"`
	GeneratedAt time.Time               `json:"generated_at"`
	Agents      []AgentDashboardSummary `json:"agents"`
	Totals      ReportTotals            `json:"totals"`
}
