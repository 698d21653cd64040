package entities

import (
	"fmt"
	"strings"
	"time"

	"symptomcheck/domain/core/valueobjects"
	pkgerrors "symptomcheck/pkg/errors"
)

// SentinelDiagnosis is the single diagnosis reported when no keyword matched
const SentinelDiagnosis = "Unable to determine"

// DiagnosisRecord is the result of one symptom analysis for one owner.
// Records are created once and never modified; WithID hands back a copy.
type DiagnosisRecord struct {
	id        valueobjects.RecordID
	ownerID   string
	inputText string
	diagnoses []string
	remedies  []valueobjects.RemedyEntry
	createdAt time.Time
}

// NewDiagnosisRecord creates an unsaved record. An empty diagnosis list is
// replaced by the sentinel and the remedies are dropped with it.
func NewDiagnosisRecord(
	ownerID string,
	inputText string,
	diagnoses []string,
	remedies []valueobjects.RemedyEntry,
	createdAt time.Time,
) (*DiagnosisRecord, error) {
	if len(diagnoses) == 0 {
		diagnoses = []string{SentinelDiagnosis}
		remedies = nil
	}

	record := &DiagnosisRecord{
		ownerID:   ownerID,
		inputText: inputText,
		diagnoses: append([]string(nil), diagnoses...),
		remedies:  append([]valueobjects.RemedyEntry{}, remedies...),
		createdAt: createdAt.UTC(),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

// ReconstructDiagnosisRecord rebuilds a stored record and rejects rows that
// break the record invariants.
func ReconstructDiagnosisRecord(
	id valueobjects.RecordID,
	ownerID string,
	inputText string,
	diagnoses []string,
	remedies []valueobjects.RemedyEntry,
	createdAt time.Time,
) (*DiagnosisRecord, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("record id cannot be empty")
	}

	record := &DiagnosisRecord{
		id:        id,
		ownerID:   ownerID,
		inputText: inputText,
		diagnoses: append([]string(nil), diagnoses...),
		remedies:  append([]valueobjects.RemedyEntry{}, remedies...),
		createdAt: createdAt.UTC(),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

// Validate checks the record invariants
func (r *DiagnosisRecord) Validate() error {
	if strings.TrimSpace(r.ownerID) == "" {
		return pkgerrors.NewValidationError("owner id cannot be empty")
	}
	if strings.TrimSpace(r.inputText) == "" {
		return pkgerrors.NewValidationError("input text cannot be empty")
	}
	if r.createdAt.IsZero() {
		return pkgerrors.NewValidationError("created at cannot be zero")
	}
	if len(r.diagnoses) == 0 {
		return pkgerrors.NewValidationError("record must contain at least one diagnosis")
	}

	seen := make(map[string]struct{}, len(r.diagnoses))
	for _, d := range r.diagnoses {
		if strings.TrimSpace(d) == "" {
			return pkgerrors.NewValidationError("diagnosis name cannot be empty")
		}
		if _, dup := seen[d]; dup {
			return pkgerrors.NewValidationError(fmt.Sprintf("duplicate diagnosis %q", d))
		}
		seen[d] = struct{}{}
	}

	if r.IsUndetermined() && len(r.remedies) > 0 {
		return pkgerrors.NewValidationError("undetermined record cannot carry remedies")
	}

	names := make(map[string]struct{}, len(r.remedies))
	for _, m := range r.remedies {
		if err := m.Validate(); err != nil {
			return pkgerrors.NewValidationError(err.Error())
		}
		if _, dup := names[m.Name]; dup {
			return pkgerrors.NewValidationError(fmt.Sprintf("duplicate remedy %q", m.Name))
		}
		names[m.Name] = struct{}{}
	}

	return nil
}

// WithID returns a copy of the record carrying id
func (r *DiagnosisRecord) WithID(id valueobjects.RecordID) *DiagnosisRecord {
	return &DiagnosisRecord{
		id:        id,
		ownerID:   r.ownerID,
		inputText: r.inputText,
		diagnoses: append([]string(nil), r.diagnoses...),
		remedies:  append([]valueobjects.RemedyEntry{}, r.remedies...),
		createdAt: r.createdAt,
	}
}

// IsUndetermined reports whether the record holds only the sentinel diagnosis
func (r *DiagnosisRecord) IsUndetermined() bool {
	return len(r.diagnoses) == 1 && r.diagnoses[0] == SentinelDiagnosis
}

// Getters

func (r *DiagnosisRecord) ID() valueobjects.RecordID { return r.id }
func (r *DiagnosisRecord) OwnerID() string           { return r.ownerID }
func (r *DiagnosisRecord) InputText() string         { return r.inputText }
func (r *DiagnosisRecord) CreatedAt() time.Time      { return r.createdAt }

// Diagnoses returns the matched diagnosis names in first-match order
func (r *DiagnosisRecord) Diagnoses() []string {
	return append([]string(nil), r.diagnoses...)
}

// Remedies returns the matched remedies in first-match order
func (r *DiagnosisRecord) Remedies() []valueobjects.RemedyEntry {
	return append([]valueobjects.RemedyEntry{}, r.remedies...)
}

// DiagnosisCount returns the number of matched diagnoses
func (r *DiagnosisRecord) DiagnosisCount() int {
	return len(r.diagnoses)
}

// IsPersisted reports whether the record carries a store-assigned id
func (r *DiagnosisRecord) IsPersisted() bool {
	return !r.id.IsZero() && !r.id.IsPlaceholder()
}
