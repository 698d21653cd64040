package events

import (
	"time"

	"symptomcheck/domain/core/valueobjects"
)

// SourceSymptomCheck is the event source name used on the bus
const SourceSymptomCheck = "symptomcheck.api"

// Event type names
const (
	TypeSymptomCheckRecorded = "symptom_check.recorded"
	TypeSymptomCheckDeleted  = "symptom_check.deleted"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// SymptomCheckRecorded is raised after a record has been stored
type SymptomCheckRecorded struct {
	BaseEvent
	RecordID       valueobjects.RecordID `json:"record_id"`
	OwnerID        string                `json:"owner_id"`
	Keywords       []string              `json:"keywords"`
	DiagnosisCount int                   `json:"diagnosis_count"`
	Undetermined   bool                  `json:"undetermined"`
}

// NewSymptomCheckRecorded creates a SymptomCheckRecorded event
func NewSymptomCheckRecorded(recordID valueobjects.RecordID, ownerID string, keywords []string, diagnosisCount int, undetermined bool, timestamp time.Time) SymptomCheckRecorded {
	return SymptomCheckRecorded{
		BaseEvent: BaseEvent{
			AggregateID: recordID.String(),
			EventType:   TypeSymptomCheckRecorded,
			Timestamp:   timestamp,
			Version:     1,
		},
		RecordID:       recordID,
		OwnerID:        ownerID,
		Keywords:       keywords,
		DiagnosisCount: diagnosisCount,
		Undetermined:   undetermined,
	}
}

// SymptomCheckDeleted is raised after an owner removed a history entry
type SymptomCheckDeleted struct {
	BaseEvent
	RecordID valueobjects.RecordID `json:"record_id"`
	OwnerID  string                `json:"owner_id"`
}

// NewSymptomCheckDeleted creates a SymptomCheckDeleted event
func NewSymptomCheckDeleted(recordID valueobjects.RecordID, ownerID string, timestamp time.Time) SymptomCheckDeleted {
	return SymptomCheckDeleted{
		BaseEvent: BaseEvent{
			AggregateID: recordID.String(),
			EventType:   TypeSymptomCheckDeleted,
			Timestamp:   timestamp,
			Version:     1,
		},
		RecordID: recordID,
		OwnerID:  ownerID,
	}
}
