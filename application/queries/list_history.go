package queries

import (
	"strings"

	"symptomcheck/domain/core/entities"
	pkgerrors "symptomcheck/pkg/errors"
)

// ListHistoryQuery fetches the caller's past symptom checks
type ListHistoryQuery struct {
	OwnerID string
}

// Validate validates the ListHistoryQuery
func (q ListHistoryQuery) Validate() error {
	if strings.TrimSpace(q.OwnerID) == "" {
		return pkgerrors.NewUnauthenticatedError("please sign in to view your history")
	}
	return nil
}

// ListHistoryResult holds the records newest first
type ListHistoryResult struct {
	Records []*entities.DiagnosisRecord
}
