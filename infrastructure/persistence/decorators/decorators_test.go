package decorators

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"symptomcheck/application/ports/mocks"
	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/infrastructure/persistence"
	"symptomcheck/infrastructure/persistence/memory"
	pkgerrors "symptomcheck/pkg/errors"
	"symptomcheck/pkg/observability"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type storeCall struct {
	op      string
	outcome string
}

type recordingRecorder struct {
	observability.NopRecorder
	mu    sync.Mutex
	calls []storeCall
}

func (r *recordingRecorder) RecordStoreCall(op, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, storeCall{op: op, outcome: outcome})
}

func newRecord(t *testing.T) *entities.DiagnosisRecord {
	t.Helper()
	r, err := entities.NewDiagnosisRecord("user-1", "fever", []string{"Flu"}, nil, time.Now())
	require.NoError(t, err)
	return r
}

func testBreakerConfig() CircuitBreakerConfig {
	cfg := DefaultCircuitBreakerConfig("history-test")
	cfg.MinRequests = 2
	cfg.FailureThreshold = 0.5
	return cfg
}

func TestMetricsStore_RecordsOutcomes(t *testing.T) {
	rec := &recordingRecorder{}
	store := NewMetricsStore(memory.NewHistoryStore(zap.NewNop()), rec)
	ctx := context.Background()

	saved, err := store.Create(ctx, newRecord(t))
	require.NoError(t, err)
	_, err = store.ListForOwner(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, store.DeleteByID(ctx, "user-1", saved.ID()))

	assert.Equal(t, []storeCall{
		{persistence.OpCreate, observability.OutcomeSuccess},
		{persistence.OpList, observability.OutcomeSuccess},
		{persistence.OpDelete, observability.OutcomeSuccess},
	}, rec.calls)
}

func TestMetricsStore_RecordsFailure(t *testing.T) {
	rec := &recordingRecorder{}
	inner := &mocks.MockHistoryStore{}
	inner.On("ListForOwner", mock.Anything, "user-1").
		Return(nil, pkgerrors.NewPersistenceError(persistence.OpList, errors.New("down")))
	store := NewMetricsStore(inner, rec)

	_, err := store.ListForOwner(context.Background(), "user-1")

	assert.True(t, pkgerrors.IsPersistence(err))
	assert.Equal(t, []storeCall{{persistence.OpList, observability.OutcomeFailure}}, rec.calls)
}

func TestCircuitBreakerStore_PassesThrough(t *testing.T) {
	store := NewCircuitBreakerStore(memory.NewHistoryStore(zap.NewNop()), testBreakerConfig(), zap.NewNop())
	ctx := context.Background()

	saved, err := store.Create(ctx, newRecord(t))
	require.NoError(t, err)

	list, err := store.ListForOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID(), list[0].ID())

	require.NoError(t, store.DeleteByID(ctx, "user-1", saved.ID()))
	assert.NoError(t, store.Ping(ctx))
	assert.Equal(t, gobreaker.StateClosed, store.State())
}

func TestCircuitBreakerStore_OpensAfterFailures(t *testing.T) {
	inner := &mocks.MockHistoryStore{}
	inner.On("DeleteByID", mock.Anything, "user-1", mock.Anything).
		Return(pkgerrors.NewPersistenceError(persistence.OpDelete, errors.New("down")))
	store := NewCircuitBreakerStore(inner, testBreakerConfig(), zap.NewNop())
	ctx := context.Background()
	id := valueobjects.NewRecordID()

	for i := 0; i < 2; i++ {
		err := store.DeleteByID(ctx, "user-1", id)
		require.True(t, pkgerrors.IsPersistence(err))
	}
	assert.Equal(t, gobreaker.StateOpen, store.State())

	err := store.DeleteByID(ctx, "user-1", id)
	assert.True(t, pkgerrors.IsPersistence(err))
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	inner.AssertNumberOfCalls(t, "DeleteByID", 2)
}

func TestCircuitBreakerStore_IgnoresCancellation(t *testing.T) {
	inner := &mocks.MockHistoryStore{}
	inner.On("ListForOwner", mock.Anything, "user-1").Return(nil, context.Canceled)
	store := NewCircuitBreakerStore(inner, testBreakerConfig(), zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := store.ListForOwner(context.Background(), "user-1")
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, store.State())
}
