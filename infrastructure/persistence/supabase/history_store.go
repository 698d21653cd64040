package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/infrastructure/persistence"
	pkgerrors "symptomcheck/pkg/errors"
	"symptomcheck/pkg/utils"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

// Table is the row-level access the store needs from PostgREST
type Table interface {
	Insert(row Row) error
	SelectForUser(userID string) ([]json.RawMessage, error)
	Delete(userID, id string) error
	Ping() error
}

// Row mirrors the symptom_checks table
type Row struct {
	ID        string     `json:"id" validate:"required,uuid"`
	UserID    string     `json:"user_id" validate:"required"`
	Symptoms  string     `json:"symptoms" validate:"required"`
	Diagnoses []string   `json:"diagnoses" validate:"required,min=1,dive,required"`
	Medicines []Medicine `json:"medicines" validate:"dive"`
	CreatedAt string     `json:"created_at" validate:"required"`
}

// Medicine is one element of the medicines jsonb column
type Medicine struct {
	Name        string `json:"name" validate:"required"`
	Link        string `json:"link" validate:"required"`
	Description string `json:"description"`
}

// HistoryStore keeps symptom checks in a Supabase Postgres table
type HistoryStore struct {
	table  Table
	logger *zap.Logger
}

// NewHistoryStore creates a store over the given table
func NewHistoryStore(table Table, logger *zap.Logger) *HistoryStore {
	return &HistoryStore{table: table, logger: logger}
}

// NewHistoryStoreFromClient creates a store over tableName using a Supabase client
func NewHistoryStoreFromClient(client *supabase.Client, tableName string, logger *zap.Logger) *HistoryStore {
	return NewHistoryStore(&postgrestTable{client: client, name: tableName}, logger)
}

func toRow(r *entities.DiagnosisRecord) Row {
	remedies := r.Remedies()
	medicines := make([]Medicine, 0, len(remedies))
	for _, m := range remedies {
		medicines = append(medicines, Medicine{Name: m.Name, Link: m.PurchaseLink, Description: m.Description})
	}
	return Row{
		ID:        r.ID().String(),
		UserID:    r.OwnerID(),
		Symptoms:  r.InputText(),
		Diagnoses: r.Diagnoses(),
		Medicines: medicines,
		CreatedAt: utils.FormatTimestamp(r.CreatedAt()),
	}
}

func (row Row) toRecord() (*entities.DiagnosisRecord, error) {
	if err := utils.ValidateStruct(row); err != nil {
		return nil, err
	}
	id, err := valueobjects.NewRecordIDFromString(row.ID)
	if err != nil {
		return nil, err
	}
	createdAt, err := utils.ParseTimestamp(row.CreatedAt)
	if err != nil {
		return nil, err
	}

	remedies := make([]valueobjects.RemedyEntry, 0, len(row.Medicines))
	for _, m := range row.Medicines {
		remedies = append(remedies, valueobjects.RemedyEntry{Name: m.Name, PurchaseLink: m.Link, Description: m.Description})
	}
	return entities.ReconstructDiagnosisRecord(id, row.UserID, row.Symptoms, row.Diagnoses, remedies, createdAt)
}

// Create implements ports.HistoryStore
func (s *HistoryStore) Create(ctx context.Context, record *entities.DiagnosisRecord) (*entities.DiagnosisRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.NewPersistenceError(persistence.OpCreate, err)
	}

	stored := record.WithID(valueobjects.NewRecordID())
	if err := s.table.Insert(toRow(stored)); err != nil {
		s.logger.Error("Supabase insert failed", zap.String("ownerID", stored.OwnerID()), zap.Error(err))
		return nil, pkgerrors.NewPersistenceError(persistence.OpCreate, err)
	}
	return stored, nil
}

// ListForOwner implements ports.HistoryStore. Rows that fail to decode or
// validate are skipped and logged.
func (s *HistoryStore) ListForOwner(ctx context.Context, ownerID string) ([]*entities.DiagnosisRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.NewPersistenceError(persistence.OpList, err)
	}

	raw, err := s.table.SelectForUser(ownerID)
	if err != nil {
		s.logger.Error("Supabase select failed", zap.String("ownerID", ownerID), zap.Error(err))
		return nil, pkgerrors.NewPersistenceError(persistence.OpList, err)
	}

	records := make([]*entities.DiagnosisRecord, 0, len(raw))
	for _, msg := range raw {
		var row Row
		if err := json.Unmarshal(msg, &row); err != nil {
			s.logger.Warn("Skipping undecodable symptom check row", zap.String("ownerID", ownerID), zap.Error(err))
			continue
		}
		record, err := row.toRecord()
		if err != nil {
			s.logger.Warn("Skipping malformed symptom check row",
				zap.String("ownerID", ownerID),
				zap.String("id", row.ID),
				zap.Error(err),
			)
			continue
		}
		records = append(records, record)
	}

	persistence.SortNewestFirst(records)
	return records, nil
}

// DeleteByID implements ports.HistoryStore
func (s *HistoryStore) DeleteByID(ctx context.Context, ownerID string, id valueobjects.RecordID) error {
	if err := ctx.Err(); err != nil {
		return pkgerrors.NewPersistenceError(persistence.OpDelete, err)
	}
	if err := s.table.Delete(ownerID, id.String()); err != nil {
		s.logger.Error("Supabase delete failed",
			zap.String("ownerID", ownerID),
			zap.String("recordID", id.String()),
			zap.Error(err),
		)
		return pkgerrors.NewPersistenceError(persistence.OpDelete, err)
	}
	return nil
}

// Ping implements ports.HealthChecker
func (s *HistoryStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.table.Ping()
}

// postgrestTable implements Table with the PostgREST query builder
type postgrestTable struct {
	client *supabase.Client
	name   string
}

func (t *postgrestTable) Insert(row Row) error {
	_, _, err := t.client.From(t.name).Insert(row, false, "", "minimal", "").Execute()
	return err
}

func (t *postgrestTable) SelectForUser(userID string) ([]json.RawMessage, error) {
	body, _, err := t.client.From(t.name).
		Select("id,user_id,symptoms,diagnoses,medicines,created_at", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return rows, nil
}

func (t *postgrestTable) Delete(userID, id string) error {
	_, _, err := t.client.From(t.name).
		Delete("minimal", "").
		Eq("user_id", userID).
		Eq("id", id).
		Execute()
	return err
}

func (t *postgrestTable) Ping() error {
	_, _, err := t.client.From(t.name).Select("id", "", false).Limit(1, "").Execute()
	return err
}
