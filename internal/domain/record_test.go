package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
)

func TestRecordID(t *testing.T) {
	t.Run("deterministic across calls", func(t *testing.T) {
		a := domain.RecordID("oss-news", "https://example.com/a", "Title A")
		b := domain.RecordID("oss-news", "https://example.com/a", "Title A")
		assert.Equal(t, a, b)
		assert.Len(t, a, 16)
	})

	t.Run("url dominates title", func(t *testing.T) {
		a := domain.RecordID("oss-news", "https://example.com/a", "Title A")
		b := domain.RecordID("oss-news", "https://example.com/a", "Different title")
		assert.Equal(t, a, b)
	})

	t.Run("falls back to title without url", func(t *testing.T) {
		a := domain.RecordID("oss-news", "", "Title A")
		b := domain.RecordID("oss-news", "", "Title A")
		c := domain.RecordID("oss-news", "", "Title B")
		assert.Equal(t, a, b)
		assert.NotEqual(t, a, c)
	})

	t.Run("source id is part of the identity", func(t *testing.T) {
		a := domain.RecordID("oss-news", "https://example.com/a", "")
		b := domain.RecordID("trade-press", "https://example.com/a", "")
		assert.NotEqual(t, a, b)
	})
}

func TestDateStamp(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "utc midday",
			in:   time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
			want: "2025-01-15",
		},
		{
			name: "local time before utc midnight",
			in:   time.Date(2025, 1, 15, 5, 0, 0, 0, jakarta),
			want: "2025-01-14",
		},
		{
			name: "local time after utc midnight",
			in:   time.Date(2025, 1, 15, 8, 0, 0, 0, jakarta),
			want: "2025-01-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DateStamp(tt.in))
		})
	}
}

func TestPriorityMax(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Priority
		want domain.Priority
	}{
		{"critical beats high", domain.PriorityCritical, domain.PriorityHigh, domain.PriorityCritical},
		{"order does not matter", domain.PriorityLow, domain.PriorityMedium, domain.PriorityMedium},
		{"equal stays", domain.PriorityHigh, domain.PriorityHigh, domain.PriorityHigh},
		{"unknown never wins", domain.PriorityLow, domain.Priority("bogus"), domain.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Max(tt.b))
		})
	}
}
