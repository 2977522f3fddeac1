package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
)

// Snapshots layers record-set semantics over a blob Store.
type Snapshots struct {
	store Store
}

// New creates a Snapshots facade over the given backend.
func New(store Store) *Snapshots {
	return &Snapshots{store: store}
}

// PersistNormalized writes the agent's normalized record set for the day.
// Idempotent: a re-run with an updated set overwrites the day's blob.
func (s *Snapshots) PersistNormalized(
	ctx context.Context,
	agent, dateStamp string,
	records []domain.NormalizedIntelRecord,
) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal normalized snapshot: %w", err)
	}
	if err := s.store.Put(ctx, path.Join(nsNormalized, agent), dateStamp, data); err != nil {
		return fmt.Errorf("persist normalized snapshot %s/%s: %w", agent, dateStamp, err)
	}
	return nil
}

// PersistRaw writes the agent's raw record set for the day alongside the
// normalized one, for replay and debugging.
func (s *Snapshots) PersistRaw(
	ctx context.Context,
	agent, dateStamp string,
	records []domain.RawIntelRecord,
) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal raw snapshot: %w", err)
	}
	if err := s.store.Put(ctx, path.Join(nsRaw, agent), dateStamp, data); err != nil {
		return fmt.Errorf("persist raw snapshot %s/%s: %w", agent, dateStamp, err)
	}
	return nil
}

// Load reads the agent's normalized record set for the day. A day with no
// prior collection returns an empty slice; that is "nothing collected yet
// for that agent today", not an error. Any other failure propagates.
func (s *Snapshots) Load(
	ctx context.Context,
	agent, dateStamp string,
) ([]domain.NormalizedIntelRecord, error) {
	data, err := s.store.Get(ctx, path.Join(nsNormalized, agent), dateStamp)
	if errors.Is(err, ErrNotFound) {
		return []domain.NormalizedIntelRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s/%s: %w", agent, dateStamp, err)
	}

	var records []domain.NormalizedIntelRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot %s/%s: %w", agent, dateStamp, err)
	}
	if records == nil {
		records = []domain.NormalizedIntelRecord{}
	}
	return records, nil
}

// PersistReport writes the cross-agent dashboard report for its day.
// Re-generation overwrites the day's artifact.
func (s *Snapshots) PersistReport(ctx context.Context, report *domain.DashboardReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dashboard report: %w", err)
	}
	key := reportKeyPrefix + report.DateStamp
	if err := s.store.Put(ctx, nsReports, key, data); err != nil {
		return fmt.Errorf("persist dashboard report %s: %w", report.DateStamp, err)
	}
	return nil
}

// LoadReport reads the day's dashboard report, if one was generated.
func (s *Snapshots) LoadReport(ctx context.Context, dateStamp string) (*domain.DashboardReport, error) {
	data, err := s.store.Get(ctx, nsReports, reportKeyPrefix+dateStamp)
	if err != nil {
		return nil, fmt.Errorf("load dashboard report %s: %w", dateStamp, err)
	}

	var report domain.DashboardReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode dashboard report %s: %w", dateStamp, err)
	}
	return &report, nil
}
