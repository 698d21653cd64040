package decorators

import (
	"context"
	"errors"
	"time"

	"symptomcheck/application/ports"
	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/infrastructure/persistence"
	pkgerrors "symptomcheck/pkg/errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// CircuitBreakerConfig holds configuration for the store circuit breaker
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultCircuitBreakerConfig returns the default breaker settings
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// CircuitBreakerStore stops calling a failing history store until it has
// had time to recover. Rejected calls fail fast as persistence errors and
// are never retried here.
type CircuitBreakerStore struct {
	inner  ports.HistoryStore
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewCircuitBreakerStore wraps inner with a circuit breaker
func NewCircuitBreakerStore(inner ports.HistoryStore, config CircuitBreakerConfig, logger *zap.Logger) *CircuitBreakerStore {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// Caller cancellations say nothing about store health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &CircuitBreakerStore{inner: inner, cb: cb, logger: logger}
}

// State reports the current breaker state
func (s *CircuitBreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *CircuitBreakerStore) execute(op string, fn func() (interface{}, error)) (interface{}, error) {
	result, err := s.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		s.logger.Warn("History store call rejected by circuit breaker",
			zap.String("operation", op),
			zap.Error(err),
		)
		return nil, pkgerrors.NewPersistenceError(op, err)
	}
	return result, err
}

// Create implements ports.HistoryStore
func (s *CircuitBreakerStore) Create(ctx context.Context, record *entities.DiagnosisRecord) (*entities.DiagnosisRecord, error) {
	result, err := s.execute(persistence.OpCreate, func() (interface{}, error) {
		return s.inner.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return result.(*entities.DiagnosisRecord), nil
}

// ListForOwner implements ports.HistoryStore
func (s *CircuitBreakerStore) ListForOwner(ctx context.Context, ownerID string) ([]*entities.DiagnosisRecord, error) {
	result, err := s.execute(persistence.OpList, func() (interface{}, error) {
		return s.inner.ListForOwner(ctx, ownerID)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*entities.DiagnosisRecord), nil
}

// DeleteByID implements ports.HistoryStore
func (s *CircuitBreakerStore) DeleteByID(ctx context.Context, ownerID string, id valueobjects.RecordID) error {
	_, err := s.execute(persistence.OpDelete, func() (interface{}, error) {
		return nil, s.inner.DeleteByID(ctx, ownerID, id)
	})
	return err
}

// Ping forwards to the wrapped store when it supports health checks
func (s *CircuitBreakerStore) Ping(ctx context.Context) error {
	return ping(ctx, s.inner)
}

func ping(ctx context.Context, store ports.HistoryStore) error {
	if hc, ok := store.(ports.HealthChecker); ok {
		return hc.Ping(ctx)
	}
	return nil
}
