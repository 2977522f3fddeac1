// Package digest renders a day's normalized snapshot into a markdown
// report and writes it to the digest sink.
package digest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
)

// Render turns a record set into the agent's daily markdown digest.
// Records are sorted by relevance score descending (stable, so equal
// scores keep collection order) with classification and priority inline.
// Callers skip rendering entirely when there is nothing to report: no
// digest file is itself the "no news today" signal.
func Render(agentLabel, dateStamp string, records []domain.NormalizedIntelRecord) string {
	sorted := make([]domain.NormalizedIntelRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RelevanceScore > sorted[j].RelevanceScore
	})

	var b strings.Builder

	fmt.Fprintf(&b, "# %s — Daily Intel Digest (%s)\n\n", agentLabel, dateStamp)
	fmt.Fprintf(&b, "%d item(s) collected.\n\n", len(sorted))

	for i, record := range sorted {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, record.Title)
		fmt.Fprintf(&b, "- Classification: `%s` | Priority: `%s` | Relevance: %.1f\n",
			record.Classification, record.Priority, record.RelevanceScore)
		fmt.Fprintf(&b, "- Source: %s\n", record.Source)
		if record.URL != "" {
			fmt.Fprintf(&b, "- Link: %s\n", record.URL)
		}
		if len(record.Tags) > 0 {
			fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(record.Tags, ", "))
		}
		b.WriteString("\n")
	}

	counts := countByClassification(sorted)
	fmt.Fprintf(&b, "---\n\nTotals: %d public, %d internal, %d confidential.\n",
		counts[domain.ClassificationPublic],
		counts[domain.ClassificationInternal],
		counts[domain.ClassificationConfidential])

	return b.String()
}

func countByClassification(records []domain.NormalizedIntelRecord) map[domain.Classification]int {
	counts := make(map[domain.Classification]int, len(domain.Classifications))
	for _, record := range records {
		counts[record.Classification]++
	}
	return counts
}
