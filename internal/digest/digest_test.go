package digest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/digest"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
)

func testRecord(title string, score float64, class domain.Classification) domain.NormalizedIntelRecord {
	return domain.NormalizedIntelRecord{
		ID:             "id-" + title,
		Title:          title,
		URL:            "https://example.com/" + title,
		Source:         "src",
		Classification: class,
		RelevanceScore: score,
		Priority:       domain.PriorityMedium,
		Tags:           []string{"tag"},
		CollectedAt:    time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC),
	}
}

func TestRender_SortsByScoreDescending(t *testing.T) {
	records := []domain.NormalizedIntelRecord{
		testRecord("low", 10, domain.ClassificationPublic),
		testRecord("high", 90, domain.ClassificationInternal),
		testRecord("mid", 50, domain.ClassificationConfidential),
	}

	markdown := digest.Render("Licensing Watch", "2025-01-10", records)

	highIdx := strings.Index(markdown, "high")
	midIdx := strings.Index(markdown, "mid")
	lowIdx := strings.Index(markdown, "low")
	require.True(t, highIdx >= 0 && midIdx >= 0 && lowIdx >= 0)
	assert.Less(t, highIdx, midIdx)
	assert.Less(t, midIdx, lowIdx)
}

func TestRender_ShowsClassificationAndPriorityInline(t *testing.T) {
	records := []domain.NormalizedIntelRecord{
		testRecord("item", 75, domain.ClassificationConfidential),
	}

	markdown := digest.Render("Visa Watch", "2025-01-10", records)

	assert.Contains(t, markdown, "# Visa Watch")
	assert.Contains(t, markdown, "2025-01-10")
	assert.Contains(t, markdown, "`CONFIDENTIAL`")
	assert.Contains(t, markdown, "`medium`")
	assert.Contains(t, markdown, "Relevance: 75.0")
	assert.Contains(t, markdown, "1 item(s) collected")
}

func TestRender_TotalsFooter(t *testing.T) {
	records := []domain.NormalizedIntelRecord{
		testRecord("a", 10, domain.ClassificationPublic),
		testRecord("b", 20, domain.ClassificationPublic),
		testRecord("c", 30, domain.ClassificationConfidential),
	}

	markdown := digest.Render("Agent", "2025-01-10", records)
	assert.Contains(t, markdown, "Totals: 2 public, 0 internal, 1 confidential.")
}

func TestFileSink_WriteCreatesAgentScopedPath(t *testing.T) {
	dir := t.TempDir()
	sink := digest.NewFileSink(dir)

	path, err := sink.Write("licensing-watch", "2025-01-10", "# digest\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "licensing-watch", "2025-01-10.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# digest\n", string(data))
}
