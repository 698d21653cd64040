package mocks

import (
	"context"

	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockHistoryStore is a testify mock of ports.HistoryStore
type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) Create(ctx context.Context, record *entities.DiagnosisRecord) (*entities.DiagnosisRecord, error) {
	args := m.Called(ctx, record)
	if fn, ok := args.Get(0).(func(context.Context, *entities.DiagnosisRecord) *entities.DiagnosisRecord); ok {
		return fn(ctx, record), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DiagnosisRecord), args.Error(1)
}

func (m *MockHistoryStore) ListForOwner(ctx context.Context, ownerID string) ([]*entities.DiagnosisRecord, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DiagnosisRecord), args.Error(1)
}

func (m *MockHistoryStore) DeleteByID(ctx context.Context, ownerID string, id valueobjects.RecordID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// MockEventBus is a testify mock of ports.EventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventBus) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

// MockIdentityProvider is a testify mock of ports.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CurrentOwner(ctx context.Context) (string, bool) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1)
}
