package domain

import (
	"errors"
	"fmt"
)

// Default relevance increments. Agents may override them per their own
// signal profile; these are starting points, not pipeline contracts.
const (
	DefaultHighImpactIncrement   = 25.0
	DefaultMediumImpactIncrement = 10.0
	DefaultMaxKeywordBonus       = 50.0
	maxRelevanceScore            = 100.0
)

var (
	// ErrEmptyAgentSlug is returned when an agent is registered without a slug.
	ErrEmptyAgentSlug = errors.New("agent slug must not be empty")
	// ErrInvalidDecayDays is returned when decay days is zero or negative.
	ErrInvalidDecayDays = errors.New("relevance decay days must be positive")
	// ErrInvalidBaseScore is returned when the base score is outside [0,100].
	ErrInvalidBaseScore = errors.New("relevance base score must be in [0,100]")
)

// ClassificationRules holds the keyword buckets driving confidentiality
// classification. Precedence is confidential, then internal, then public.
type ClassificationRules struct {
	ConfidentialKeywords []string `yaml:"confidential_keywords"`
	InternalKeywords     []string `yaml:"internal_keywords"`
	PublicKeywords       []string `yaml:"public_keywords"`
}

// RelevanceRules holds the scoring configuration for one agent.
type RelevanceRules struct {
	BaseScore             float64  `yaml:"base_score"`
	HighImpactKeywords    []string `yaml:"high_impact_keywords"`
	MediumImpactKeywords  []string `yaml:"medium_impact_keywords"`
	HighImpactIncrement   float64  `yaml:"high_impact_increment"`
	MediumImpactIncrement float64  `yaml:"medium_impact_increment"`
	// MaxKeywordBonus caps the total keyword bonus so repeated hits cannot
	// blow past 100 before decay is applied.
	MaxKeywordBonus float64 `yaml:"max_keyword_bonus"`
	DecayDays       float64 `yaml:"decay_days"`
}

// NormalizationOptions is the immutable per-agent configuration for the
// normalizer. It is validated once at agent registration and never
// re-validated per record.
type NormalizationOptions struct {
	AgentSlug      string              `yaml:"agent_slug"`
	Classification ClassificationRules `yaml:"classification_rules"`
	Relevance      RelevanceRules      `yaml:"relevance_rules"`
	// EnrichTags are fixed domain tags stamped onto every record the agent
	// produces, e.g. a licensing watcher always adds "licensing".
	EnrichTags []string `yaml:"enrich_tags"`
}

// SetDefaults fills unset relevance increments with the package defaults.
func (o *NormalizationOptions) SetDefaults() {
	if o.Relevance.HighImpactIncrement == 0 {
		o.Relevance.HighImpactIncrement = DefaultHighImpactIncrement
	}
	if o.Relevance.MediumImpactIncrement == 0 {
		o.Relevance.MediumImpactIncrement = DefaultMediumImpactIncrement
	}
	if o.Relevance.MaxKeywordBonus == 0 {
		o.Relevance.MaxKeywordBonus = DefaultMaxKeywordBonus
	}
}

// Validate checks the options for configuration mistakes that would
// silently corrupt scoring.
func (o *NormalizationOptions) Validate() error {
	if o.AgentSlug == "" {
		return ErrEmptyAgentSlug
	}
	if o.Relevance.DecayDays <= 0 {
		return fmt.Errorf("agent %s: %w", o.AgentSlug, ErrInvalidDecayDays)
	}
	if o.Relevance.BaseScore < 0 || o.Relevance.BaseScore > maxRelevanceScore {
		return fmt.Errorf("agent %s: %w", o.AgentSlug, ErrInvalidBaseScore)
	}
	return nil
}

// Agent is one independently scheduled intelligence watcher: its sources,
// its normalization rules, and its cron cadence.
type Agent struct {
	Slug     string               `yaml:"slug"`
	Label    string               `yaml:"label"`
	CronExpr string               `yaml:"cron"`
	Sources  []IntelSource        `yaml:"sources"`
	Options  NormalizationOptions `yaml:"options"`
}

// Validate checks the agent definition at registration time.
func (a *Agent) Validate() error {
	if a.Slug == "" {
		return ErrEmptyAgentSlug
	}
	if a.Options.AgentSlug == "" {
		a.Options.AgentSlug = a.Slug
	}
	if a.Options.AgentSlug != a.Slug {
		return fmt.Errorf("agent %s: options slug %q does not match", a.Slug, a.Options.AgentSlug)
	}
	for i := range a.Sources {
		if a.Sources[i].ID == "" {
			return fmt.Errorf("agent %s: source %d has no id", a.Slug, i)
		}
	}
	return a.Options.Validate()
}
