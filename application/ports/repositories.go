package ports

import (
	"context"

	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/domain/events"
)

// HistoryStore persists diagnosis records per owner.
// Implementations wrap every failure in a persistence error.
type HistoryStore interface {
	// Create stores a new record and returns it with the store-assigned id
	Create(ctx context.Context, record *entities.DiagnosisRecord) (*entities.DiagnosisRecord, error)

	// ListForOwner returns the owner's records, newest first
	ListForOwner(ctx context.Context, ownerID string) ([]*entities.DiagnosisRecord, error)

	// DeleteByID removes one of the owner's records. Deleting a record that
	// does not exist is not an error.
	DeleteByID(ctx context.Context, ownerID string, id valueobjects.RecordID) error
}

// HealthChecker is implemented by stores that can report readiness
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// IdentityProvider resolves the signed-in user for a request
type IdentityProvider interface {
	// CurrentOwner returns the owner id, or false when nobody is signed in
	CurrentOwner(ctx context.Context) (string, bool)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// EventBus is the publisher used by the application services
type EventBus interface {
	EventPublisher
}
