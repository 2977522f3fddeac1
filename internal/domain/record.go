// Package domain holds the data model shared by every intel-watcher component.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Classification is the confidentiality tier assigned to a normalized record.
type Classification string

const (
	// ClassificationPublic marks records safe to surface outside the org.
	ClassificationPublic Classification = "PUBLIC"
	// ClassificationInternal marks records for internal consumption only.
	// It is also the conservative default when no rule matches.
	ClassificationInternal Classification = "INTERNAL"
	// ClassificationConfidential marks records restricted to need-to-know.
	ClassificationConfidential Classification = "CONFIDENTIAL"
)

// Classifications lists all tiers in display order. Aggregation code relies
// on this to zero-fill counts so every tier is always reported.
var Classifications = []Classification{
	ClassificationPublic,
	ClassificationInternal,
	ClassificationConfidential,
}

// Priority is the urgency tier of a record, distinct from its classification.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// priorityRank orders priorities for upgrade-only comparisons.
var priorityRank = map[Priority]int{
	PriorityCritical: 4,
	PriorityHigh:     3,
	PriorityMedium:   2,
	PriorityLow:      1,
}

// Rank returns the ordering weight of the priority. Unknown values rank
// below low so they never suppress a derived priority.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Max returns the higher-urgency of the two priorities.
func (p Priority) Max(other Priority) Priority {
	if other.Rank() > p.Rank() {
		return other
	}
	return p
}

// IntelSource describes one external feed an agent watches. Sources are
// declared at agent-configuration time and never mutated at runtime.
type IntelSource struct {
	ID        string `json:"id"         yaml:"id"`
	Label     string `json:"label"      yaml:"label"`
	FetchKind string `json:"fetch_kind" yaml:"fetch_kind"`
	Endpoint  string `json:"endpoint"   yaml:"endpoint"`
	// PollMinutes is advisory metadata for operators tuning cron cadence.
	// The collector does not enforce it as a throttle.
	PollMinutes int `json:"poll_minutes" yaml:"poll_minutes"`
	// DefaultPriority is the source-scoped starting priority. A regulator's
	// official channel typically declares a higher default than a secondary
	// aggregator. The normalizer may upgrade it but never downgrades it.
	DefaultPriority Priority `json:"default_priority" yaml:"default_priority"`
}

// FetchKindFeed is the only fetch kind currently implemented.
const FetchKindFeed = "feed"

// RawIntelRecord is an item as returned by the fetch collaborator, before
// any domain logic. It exists only within one collection run.
type RawIntelRecord struct {
	Title          string
	URL            string
	PublishedAt    *time.Time
	SourceID       string
	ContentSnippet string
	CollectedAt    time.Time
	Priority       Priority
}

// NormalizedIntelRecord is the durable unit persisted in daily snapshots.
type NormalizedIntelRecord struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	Source         string         `json:"source"`
	Classification Classification `json:"classification"`
	RelevanceScore float64        `json:"relevance_score"`
	Priority       Priority       `json:"priority"`
	Tags           []string       `json:"tags"`
	CollectedAt    time.Time      `json:"collected_at"`
}

// recordIDLength truncates the hash so ids stay readable in logs and digests.
const recordIDLength = 16

// RecordID derives the deterministic record id from the source and the
// item's URL, falling back to the title for items without one. The same
// real-world item collected in two runs on the same day collapses to one
// record because this id is stable across runs.
func RecordID(sourceID, url, title string) string {
	key := url
	if key == "" {
		key = title
	}
	hash := sha256.Sum256([]byte(sourceID + "|" + key))
	return hex.EncodeToString(hash[:])[:recordIDLength]
}

// DateStampLayout is the calendar-day partition key format.
const DateStampLayout = "2006-01-02"

// DateStamp returns the UTC calendar-day partition key for t. Every
// component keys snapshots, digests, and reports with this function so
// cross-component keys cannot diverge on timezone handling.
func DateStamp(t time.Time) string {
	return t.UTC().Format(DateStampLayout)
}
