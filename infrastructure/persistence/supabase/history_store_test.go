package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/domain/services"
	pkgerrors "symptomcheck/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTable struct {
	rows     []Row
	extra    []json.RawMessage
	failWith error
}

func (f *fakeTable) Insert(row Row) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeTable) SelectForUser(userID string) ([]json.RawMessage, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []json.RawMessage
	for _, r := range f.rows {
		if r.UserID != userID {
			continue
		}
		b, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return append(out, f.extra...), nil
}

func (f *fakeTable) Delete(userID, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.UserID == userID && r.ID == id {
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return nil
}

func (f *fakeTable) Ping() error { return f.failWith }

func analyze(t *testing.T, owner, text string, at time.Time) *entities.DiagnosisRecord {
	t.Helper()
	matcher := services.NewSymptomMatcher(services.WithClock(func() time.Time { return at }))
	r, _, err := matcher.Analyze(text, owner)
	require.NoError(t, err)
	return r
}

func TestHistoryStore_CreateWritesRow(t *testing.T) {
	table := &fakeTable{}
	store := NewHistoryStore(table, zap.NewNop())

	saved, err := store.Create(context.Background(), analyze(t, "user-1", "congestion", time.Now()))
	require.NoError(t, err)

	require.Len(t, table.rows, 1)
	row := table.rows[0]
	assert.Equal(t, saved.ID().String(), row.ID)
	assert.Equal(t, "user-1", row.UserID)
	assert.Equal(t, "congestion", row.Symptoms)
	assert.Equal(t, []string{"Common Cold", "Sinusitis", "Allergies"}, row.Diagnoses)
	assert.NotEmpty(t, row.Medicines)
}

func TestHistoryStore_ListSortsAndSkipsMalformed(t *testing.T) {
	table := &fakeTable{}
	store := NewHistoryStore(table, zap.NewNop())
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	older, err := store.Create(ctx, analyze(t, "user-1", "fever", base))
	require.NoError(t, err)
	newer, err := store.Create(ctx, analyze(t, "user-1", "cough", base.Add(time.Minute)))
	require.NoError(t, err)
	_, err = store.Create(ctx, analyze(t, "user-2", "cough", base))
	require.NoError(t, err)

	table.extra = []json.RawMessage{
		json.RawMessage(`{"id":"abc","user_id":"user-1","symptoms":"x","diagnoses":[],"created_at":"2024-05-01T00:00:00Z"}`),
		json.RawMessage(`"not an object"`),
	}

	list, err := store.ListForOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID(), list[0].ID())
	assert.Equal(t, older.ID(), list[1].ID())
}

func TestHistoryStore_Delete(t *testing.T) {
	table := &fakeTable{}
	store := NewHistoryStore(table, zap.NewNop())
	ctx := context.Background()

	saved, err := store.Create(ctx, analyze(t, "user-1", "fever", time.Now()))
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, "user-2", saved.ID()))
	assert.Len(t, table.rows, 1)

	require.NoError(t, store.DeleteByID(ctx, "user-1", saved.ID()))
	assert.Empty(t, table.rows)

	assert.NoError(t, store.DeleteByID(ctx, "user-1", valueobjects.NewRecordID()))
}

func TestHistoryStore_FailuresArePersistenceErrors(t *testing.T) {
	table := &fakeTable{failWith: errors.New("connection refused")}
	store := NewHistoryStore(table, zap.NewNop())
	ctx := context.Background()

	_, err := store.Create(ctx, analyze(t, "user-1", "fever", time.Now()))
	assert.True(t, pkgerrors.IsPersistence(err))

	_, err = store.ListForOwner(ctx, "user-1")
	assert.True(t, pkgerrors.IsPersistence(err))

	err = store.DeleteByID(ctx, "user-1", valueobjects.NewRecordID())
	assert.True(t, pkgerrors.IsPersistence(err))

	assert.Error(t, store.Ping(ctx))
}

func TestRow_RoundTripsUndeterminedRecord(t *testing.T) {
	r := analyze(t, "user-1", "I feel odd", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	row := toRow(r.WithID(valueobjects.NewRecordID()))

	got, err := row.toRecord()
	require.NoError(t, err)
	assert.True(t, got.IsUndetermined())
	assert.Empty(t, got.Remedies())
}
