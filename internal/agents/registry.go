// Package agents holds the agent registry: each watcher's sources,
// normalization rules, and cadence, validated and compiled once at
// startup.
package agents

import (
	"fmt"
	"sort"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/logger"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/normalizer"
)

// Registered pairs an agent definition with its compiled normalizer.
type Registered struct {
	Agent      domain.Agent
	Normalizer *normalizer.Normalizer
}

// Registry is the immutable set of registered agents.
type Registry struct {
	bySlug map[string]Registered
	order  []string
}

// NewRegistry validates every agent definition and compiles its
// normalizer. An invalid agent rejects startup; rules are never
// re-validated per record after this point.
func NewRegistry(defs []domain.Agent, log logger.Logger) (*Registry, error) {
	reg := &Registry{bySlug: make(map[string]Registered, len(defs))}

	for i := range defs {
		agent := defs[i]
		if err := agent.Validate(); err != nil {
			return nil, fmt.Errorf("register agent: %w", err)
		}
		if _, exists := reg.bySlug[agent.Slug]; exists {
			return nil, fmt.Errorf("register agent: duplicate slug %q", agent.Slug)
		}

		norm, err := normalizer.New(agent.Options, log)
		if err != nil {
			return nil, fmt.Errorf("register agent %s: %w", agent.Slug, err)
		}

		reg.bySlug[agent.Slug] = Registered{Agent: agent, Normalizer: norm}
		reg.order = append(reg.order, agent.Slug)

		log.Info("agent registered",
			logger.String("agent", agent.Slug),
			logger.String("cron", agent.CronExpr),
			logger.Int("sources", len(agent.Sources)))
	}

	return reg, nil
}

// Get returns the registered agent for slug.
func (r *Registry) Get(slug string) (Registered, bool) {
	reg, ok := r.bySlug[slug]
	return reg, ok
}

// All returns the registered agents in registration order.
func (r *Registry) All() []Registered {
	out := make([]Registered, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.bySlug[slug])
	}
	return out
}

// Slugs returns the sorted agent slugs.
func (r *Registry) Slugs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	sort.Strings(out)
	return out
}
