package memory

import (
	"context"
	"sync"

	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/infrastructure/persistence"
	pkgerrors "symptomcheck/pkg/errors"

	"go.uber.org/zap"
)

// HistoryStore keeps records in process memory. It backs local development
// and tests; records are lost on restart.
type HistoryStore struct {
	mu      sync.RWMutex
	byOwner map[string][]*entities.DiagnosisRecord
	logger  *zap.Logger
}

// NewHistoryStore creates an empty in-memory store
func NewHistoryStore(logger *zap.Logger) *HistoryStore {
	return &HistoryStore{
		byOwner: make(map[string][]*entities.DiagnosisRecord),
		logger:  logger,
	}
}

// Create implements ports.HistoryStore
func (s *HistoryStore) Create(ctx context.Context, record *entities.DiagnosisRecord) (*entities.DiagnosisRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.NewPersistenceError(persistence.OpCreate, err)
	}
	if record == nil {
		return nil, pkgerrors.NewValidationError("record is required")
	}

	stored := record.WithID(valueobjects.NewRecordID())

	s.mu.Lock()
	s.byOwner[stored.OwnerID()] = append(s.byOwner[stored.OwnerID()], stored)
	s.mu.Unlock()

	s.logger.Debug("Stored symptom check",
		zap.String("ownerID", stored.OwnerID()),
		zap.String("recordID", stored.ID().String()),
	)
	return stored, nil
}

// ListForOwner implements ports.HistoryStore
func (s *HistoryStore) ListForOwner(ctx context.Context, ownerID string) ([]*entities.DiagnosisRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.NewPersistenceError(persistence.OpList, err)
	}

	s.mu.RLock()
	records := append([]*entities.DiagnosisRecord{}, s.byOwner[ownerID]...)
	s.mu.RUnlock()

	persistence.SortNewestFirst(records)
	return records, nil
}

// DeleteByID implements ports.HistoryStore
func (s *HistoryStore) DeleteByID(ctx context.Context, ownerID string, id valueobjects.RecordID) error {
	if err := ctx.Err(); err != nil {
		return pkgerrors.NewPersistenceError(persistence.OpDelete, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.byOwner[ownerID]
	for i, r := range records {
		if r.ID().Equals(id) {
			s.byOwner[ownerID] = append(records[:i:i], records[i+1:]...)
			return nil
		}
	}
	return nil
}

// Ping implements ports.HealthChecker
func (s *HistoryStore) Ping(ctx context.Context) error {
	return nil
}
