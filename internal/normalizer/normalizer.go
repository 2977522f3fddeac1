// Package normalizer converts raw fetched items into normalized intel
// records: it classifies confidentiality, scores relevance with time
// decay, derives priority, and deduplicates by deterministic id.
package normalizer

import (
	"fmt"
	"sort"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/logger"
)

// Score thresholds for derived priority.
const (
	criticalScoreThreshold = 90.0
	highScoreThreshold     = 80.0
	mediumScoreThreshold   = 50.0

	hoursPerDay = 24.0
	maxScore    = 100.0
	minScore    = 0.0
)

// Normalizer holds the compiled rule automatons for one agent. It is
// immutable after construction and safe for concurrent use.
type Normalizer struct {
	opts   domain.NormalizationOptions
	logger logger.Logger

	confidential *keywordMatcher
	internal     *keywordMatcher
	public       *keywordMatcher
	highImpact   *keywordMatcher
	mediumImpact *keywordMatcher
}

// New validates the options once and compiles the keyword automatons.
func New(opts domain.NormalizationOptions, log logger.Logger) (*Normalizer, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("normalizer options: %w", err)
	}

	return &Normalizer{
		opts:         opts,
		logger:       log,
		confidential: newKeywordMatcher(opts.Classification.ConfidentialKeywords),
		internal:     newKeywordMatcher(opts.Classification.InternalKeywords),
		public:       newKeywordMatcher(opts.Classification.PublicKeywords),
		highImpact:   newKeywordMatcher(opts.Relevance.HighImpactKeywords),
		mediumImpact: newKeywordMatcher(opts.Relevance.MediumImpactKeywords),
	}, nil
}

// Normalize converts the raw records of one collection run. Records
// collapsing to the same deterministic id union their tag sets and keep
// the higher relevance score. Output order follows first appearance in
// the input, which keeps downstream sorting deterministic.
func (n *Normalizer) Normalize(raw []domain.RawIntelRecord) []domain.NormalizedIntelRecord {
	byID := make(map[string]int, len(raw))
	out := make([]domain.NormalizedIntelRecord, 0, len(raw))

	for i := range raw {
		record := n.normalizeOne(&raw[i])

		idx, exists := byID[record.ID]
		if !exists {
			byID[record.ID] = len(out)
			out = append(out, record)
			continue
		}

		merged := mergeRecords(out[idx], record)
		out[idx] = merged
	}

	n.logger.Debug("normalized records",
		logger.String("agent", n.opts.AgentSlug),
		logger.Int("raw", len(raw)),
		logger.Int("normalized", len(out)))

	return out
}

// normalizeOne classifies, scores, and tags a single raw record.
func (n *Normalizer) normalizeOne(raw *domain.RawIntelRecord) domain.NormalizedIntelRecord {
	text := normalizeText(raw.Title + " " + raw.ContentSnippet)

	classification := n.classify(text)
	score, matched := n.score(raw, text)
	priority := n.derivePriority(raw.Priority, score)

	tags := make([]string, 0, len(matched)+len(n.opts.EnrichTags))
	tags = append(tags, matched...)
	tags = append(tags, n.opts.EnrichTags...)

	return domain.NormalizedIntelRecord{
		ID:             domain.RecordID(raw.SourceID, raw.URL, raw.Title),
		Title:          raw.Title,
		URL:            raw.URL,
		Source:         raw.SourceID,
		Classification: classification,
		RelevanceScore: score,
		Priority:       priority,
		Tags:           dedupeTags(tags),
		CollectedAt:    raw.CollectedAt,
	}
}

// classify applies the bucket precedence: confidential wins over internal
// wins over public. An item matching no bucket is never assumed safe to
// surface publicly, so the default is INTERNAL.
func (n *Normalizer) classify(text string) domain.Classification {
	switch {
	case n.confidential.any(text):
		return domain.ClassificationConfidential
	case n.internal.any(text):
		return domain.ClassificationInternal
	case n.public.any(text):
		return domain.ClassificationPublic
	default:
		return domain.ClassificationInternal
	}
}

// score computes the decayed relevance score and returns the distinct
// impact keywords that contributed, for tagging.
func (n *Normalizer) score(raw *domain.RawIntelRecord, text string) (float64, []string) {
	rules := n.opts.Relevance

	high := n.highImpact.matches(text)
	medium := n.mediumImpact.matches(text)

	bonus := float64(len(high))*rules.HighImpactIncrement +
		float64(len(medium))*rules.MediumImpactIncrement
	if bonus > rules.MaxKeywordBonus {
		bonus = rules.MaxKeywordBonus
	}

	score := rules.BaseScore + bonus
	score *= decayFactor(raw, rules.DecayDays)

	matched := make([]string, 0, len(high)+len(medium))
	matched = append(matched, high...)
	matched = append(matched, medium...)

	return clampScore(score), matched
}

// decayFactor computes the linear age decay in [0,1]. Items without a
// publication date, and future-dated items, do not decay.
func decayFactor(raw *domain.RawIntelRecord, decayDays float64) float64 {
	if raw.PublishedAt == nil {
		return 1
	}

	ageDays := raw.CollectedAt.Sub(*raw.PublishedAt).Hours() / hoursPerDay
	if ageDays <= 0 {
		return 1
	}

	factor := 1 - ageDays/decayDays
	if factor < 0 {
		return 0
	}
	return factor
}

// derivePriority upgrades the collector's source-level default based on
// score thresholds. Source operators know their own feed's importance, so
// an explicit default is never downgraded.
func (n *Normalizer) derivePriority(sourceDefault domain.Priority, score float64) domain.Priority {
	var derived domain.Priority
	switch {
	case score >= criticalScoreThreshold:
		derived = domain.PriorityCritical
	case score >= highScoreThreshold:
		derived = domain.PriorityHigh
	case score >= mediumScoreThreshold:
		derived = domain.PriorityMedium
	default:
		derived = domain.PriorityLow
	}

	if sourceDefault == "" {
		return derived
	}
	return sourceDefault.Max(derived)
}

// mergeRecords collapses two normalized records with the same id: tag
// sets are unioned and the higher relevance score wins. Priority keeps
// the more urgent of the two.
func mergeRecords(a, b domain.NormalizedIntelRecord) domain.NormalizedIntelRecord {
	if b.RelevanceScore > a.RelevanceScore {
		a.RelevanceScore = b.RelevanceScore
	}
	a.Priority = a.Priority.Max(b.Priority)
	a.Tags = dedupeTags(append(a.Tags, b.Tags...))
	return a
}

// dedupeTags returns the sorted distinct tags.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func clampScore(score float64) float64 {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
