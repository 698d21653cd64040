package entities

import (
	"testing"
	"time"

	"symptomcheck/domain/core/valueobjects"
	pkgerrors "symptomcheck/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func TestNewDiagnosisRecord(t *testing.T) {
	remedies := []valueobjects.RemedyEntry{
		valueobjects.NewRemedyEntry("Aspirin", "Pain reliever"),
	}

	record, err := NewDiagnosisRecord("user-1", "bad headache", []string{"Migraine"}, remedies, testTime)
	require.NoError(t, err)

	assert.True(t, record.ID().IsZero())
	assert.False(t, record.IsPersisted())
	assert.Equal(t, "user-1", record.OwnerID())
	assert.Equal(t, "bad headache", record.InputText())
	assert.Equal(t, []string{"Migraine"}, record.Diagnoses())
	assert.Equal(t, remedies, record.Remedies())
	assert.Equal(t, testTime, record.CreatedAt())
	assert.False(t, record.IsUndetermined())
}

func TestNewDiagnosisRecord_EmptyDiagnosesBecomeSentinel(t *testing.T) {
	remedies := []valueobjects.RemedyEntry{valueobjects.NewRemedyEntry("Aspirin", "Pain reliever")}

	record, err := NewDiagnosisRecord("user-1", "purple elephants", nil, remedies, testTime)
	require.NoError(t, err)

	assert.Equal(t, []string{SentinelDiagnosis}, record.Diagnoses())
	assert.Empty(t, record.Remedies())
	assert.True(t, record.IsUndetermined())
}

func TestNewDiagnosisRecord_Invalid(t *testing.T) {
	dupRemedy := valueobjects.NewRemedyEntry("Aspirin", "one")

	tests := []struct {
		name      string
		ownerID   string
		input     string
		diagnoses []string
		remedies  []valueobjects.RemedyEntry
		createdAt time.Time
		errMsg    string
	}{
		{name: "missing owner", input: "cough", diagnoses: []string{"Flu"}, createdAt: testTime, errMsg: "owner id"},
		{name: "blank input", ownerID: "u", input: "  ", diagnoses: []string{"Flu"}, createdAt: testTime, errMsg: "input text"},
		{name: "zero time", ownerID: "u", input: "cough", diagnoses: []string{"Flu"}, errMsg: "created at"},
		{name: "duplicate diagnosis", ownerID: "u", input: "cough", diagnoses: []string{"Flu", "Flu"}, createdAt: testTime, errMsg: "duplicate diagnosis"},
		{name: "duplicate remedy", ownerID: "u", input: "cough", diagnoses: []string{"Flu"}, remedies: []valueobjects.RemedyEntry{dupRemedy, dupRemedy}, createdAt: testTime, errMsg: "duplicate remedy"},
		{name: "remedy without link", ownerID: "u", input: "cough", diagnoses: []string{"Flu"}, remedies: []valueobjects.RemedyEntry{{Name: "x"}}, createdAt: testTime, errMsg: "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDiagnosisRecord(tt.ownerID, tt.input, tt.diagnoses, tt.remedies, tt.createdAt)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestReconstructDiagnosisRecord(t *testing.T) {
	id := valueobjects.NewRecordID()

	record, err := ReconstructDiagnosisRecord(id, "user-1", "cough", []string{"Common Cold"}, nil, testTime)
	require.NoError(t, err)
	assert.Equal(t, id, record.ID())
	assert.True(t, record.IsPersisted())

	_, err = ReconstructDiagnosisRecord(valueobjects.RecordID{}, "user-1", "cough", []string{"Common Cold"}, nil, testTime)
	assert.Error(t, err)

	_, err = ReconstructDiagnosisRecord(id, "user-1", "cough", nil, nil, testTime)
	assert.Error(t, err, "stored rows must already carry a diagnosis")

	sentinelWithRemedy := []valueobjects.RemedyEntry{valueobjects.NewRemedyEntry("Aspirin", "x")}
	_, err = ReconstructDiagnosisRecord(id, "user-1", "cough", []string{SentinelDiagnosis}, sentinelWithRemedy, testTime)
	assert.Error(t, err)
}

func TestDiagnosisRecord_WithIDCopies(t *testing.T) {
	record, err := NewDiagnosisRecord("user-1", "fever", []string{"Flu"}, nil, testTime)
	require.NoError(t, err)

	id := valueobjects.NewRecordID()
	saved := record.WithID(id)

	assert.True(t, record.ID().IsZero(), "original must stay untouched")
	assert.Equal(t, id, saved.ID())
	assert.Equal(t, record.Diagnoses(), saved.Diagnoses())

	placeholder := record.WithID(valueobjects.NewPlaceholderRecordID())
	assert.False(t, placeholder.IsPersisted())
}

func TestDiagnosisRecord_GettersReturnCopies(t *testing.T) {
	record, err := NewDiagnosisRecord("user-1", "fever", []string{"Flu", "Common Cold"}, nil, testTime)
	require.NoError(t, err)

	d := record.Diagnoses()
	d[0] = "tampered"

	assert.Equal(t, "Flu", record.Diagnoses()[0])
	assert.Equal(t, 2, record.DiagnosisCount())
}
