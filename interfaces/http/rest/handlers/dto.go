package handlers

import (
	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/domain/reference"
	"symptomcheck/pkg/utils"
)

// AnalyzeRequest is the body of POST /symptom-checks
type AnalyzeRequest struct {
	Symptoms string `json:"symptoms" validate:"max=2000"`
}

// DiagnosisResponse is one diagnosis enriched with its reference entry
type DiagnosisResponse struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Danger      valueobjects.DangerLevel `json:"danger"`
	Contagious  bool                     `json:"contagious"`
	ColorClass  string                   `json:"colorClass"`
}

// RecordResponse is the wire form of a symptom check
type RecordResponse struct {
	ID        string                     `json:"id"`
	UserID    string                     `json:"userId"`
	Symptoms  string                     `json:"symptoms"`
	Diagnoses []DiagnosisResponse        `json:"diagnoses"`
	Medicines []valueobjects.RemedyEntry `json:"medicines"`
	CreatedAt string                     `json:"createdAt"`
	Persisted bool                       `json:"persisted"`
}

// AnalyzeResponse is returned by POST /symptom-checks
type AnalyzeResponse struct {
	Record   RecordResponse `json:"record"`
	Keywords []string       `json:"keywords"`
	Notice   string         `json:"notice"`
}

// HistoryItem is one entry of the history list
type HistoryItem struct {
	RecordResponse
	DiagnosisCount int `json:"diagnosisCount"`
}

// HistoryResponse is returned by GET /symptom-checks
type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
	Count int           `json:"count"`
}

// ConditionResponse is returned by GET /conditions/{name}
type ConditionResponse struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Danger      valueobjects.DangerLevel `json:"danger"`
	Contagious  bool                     `json:"contagious"`
	ColorClass  string                   `json:"colorClass"`
	Known       bool                     `json:"known"`
}

// SymptomsResponse is returned by GET /symptoms
type SymptomsResponse struct {
	Symptoms []reference.SymptomRule `json:"symptoms"`
}

func toDiagnosisResponse(name string) DiagnosisResponse {
	detail := reference.Describe(name)
	return DiagnosisResponse{
		Name:        name,
		Description: detail.Description,
		Danger:      detail.DangerLevel,
		Contagious:  detail.Contagious,
		ColorClass:  valueobjects.ColorClassFor(detail.DangerLevel),
	}
}

func toRecordResponse(r *entities.DiagnosisRecord) RecordResponse {
	names := r.Diagnoses()
	diagnoses := make([]DiagnosisResponse, 0, len(names))
	for _, name := range names {
		diagnoses = append(diagnoses, toDiagnosisResponse(name))
	}

	return RecordResponse{
		ID:        r.ID().String(),
		UserID:    r.OwnerID(),
		Symptoms:  r.InputText(),
		Diagnoses: diagnoses,
		Medicines: r.Remedies(),
		CreatedAt: utils.FormatTimestamp(r.CreatedAt()),
		Persisted: r.IsPersisted(),
	}
}

func toConditionResponse(detail reference.ConditionDetail, known bool) ConditionResponse {
	return ConditionResponse{
		Name:        detail.Name,
		Description: detail.Description,
		Danger:      detail.DangerLevel,
		Contagious:  detail.Contagious,
		ColorClass:  valueobjects.ColorClassFor(detail.DangerLevel),
		Known:       known,
	}
}
