package decorators

import (
	"context"
	"time"

	"symptomcheck/application/ports"
	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/infrastructure/persistence"
	"symptomcheck/pkg/observability"
)

// MetricsStore records the latency and outcome of every store call
type MetricsStore struct {
	inner    ports.HistoryStore
	recorder observability.Recorder
	now      func() time.Time
}

// NewMetricsStore wraps inner so each call is reported to recorder
func NewMetricsStore(inner ports.HistoryStore, recorder observability.Recorder) *MetricsStore {
	if recorder == nil {
		recorder = observability.NopRecorder{}
	}
	return &MetricsStore{inner: inner, recorder: recorder, now: time.Now}
}

func (s *MetricsStore) observe(op string, start time.Time, err error) {
	s.recorder.RecordStoreCall(op, observability.OutcomeOf(err), s.now().Sub(start))
}

// Create implements ports.HistoryStore
func (s *MetricsStore) Create(ctx context.Context, record *entities.DiagnosisRecord) (*entities.DiagnosisRecord, error) {
	start := s.now()
	saved, err := s.inner.Create(ctx, record)
	s.observe(persistence.OpCreate, start, err)
	return saved, err
}

// ListForOwner implements ports.HistoryStore
func (s *MetricsStore) ListForOwner(ctx context.Context, ownerID string) ([]*entities.DiagnosisRecord, error) {
	start := s.now()
	records, err := s.inner.ListForOwner(ctx, ownerID)
	s.observe(persistence.OpList, start, err)
	return records, err
}

// DeleteByID implements ports.HistoryStore
func (s *MetricsStore) DeleteByID(ctx context.Context, ownerID string, id valueobjects.RecordID) error {
	start := s.now()
	err := s.inner.DeleteByID(ctx, ownerID, id)
	s.observe(persistence.OpDelete, start, err)
	return err
}

// Ping forwards to the wrapped store when it supports health checks
func (s *MetricsStore) Ping(ctx context.Context) error {
	return ping(ctx, s.inner)
}
