package agents

import "github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"

// Builtin returns the built-in agent definitions. A config file may
// replace this set entirely; these are the watchers the service ships
// with.
func Builtin() []domain.Agent {
	return []domain.Agent{
		licensingWatch(),
		visaWatch(),
	}
}
