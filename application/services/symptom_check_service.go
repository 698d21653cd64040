package services

import (
	"context"
	"fmt"
	"time"

	"symptomcheck/application/ports"
	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/domain/events"
	domainservices "symptomcheck/domain/services"
	"symptomcheck/pkg/observability"

	"go.uber.org/zap"
)

// Notices shown to the user after an analysis
const (
	NoticeSaveFailed = "Your analysis was complete but couldn't be saved to history."
)

// AnalysisResult is the outcome of one analyze call. Persisted is false when
// the store rejected the record; the record then carries a placeholder id.
type AnalysisResult struct {
	Record    *entities.DiagnosisRecord
	Keywords  []string
	Persisted bool
	Notice    string
}

// SymptomCheckService runs the analyze use case directly rather than through
// the command bus, because callers need the computed record back even when
// saving it failed.
type SymptomCheckService struct {
	matcher  *domainservices.SymptomMatcher
	store    ports.HistoryStore
	eventBus ports.EventBus
	tracer   *observability.Tracer
	metrics  observability.Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewSymptomCheckService creates a new symptom check service
func NewSymptomCheckService(
	matcher *domainservices.SymptomMatcher,
	store ports.HistoryStore,
	eventBus ports.EventBus,
	tracer *observability.Tracer,
	metrics observability.Recorder,
	logger *zap.Logger,
) *SymptomCheckService {
	if metrics == nil {
		metrics = observability.NopRecorder{}
	}
	return &SymptomCheckService{
		matcher:  matcher,
		store:    store,
		eventBus: eventBus,
		tracer:   tracer,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Analyze matches the symptoms and saves the record for the owner.
// Input errors are returned as-is. A store failure is not returned as an
// error: the result keeps the computed diagnoses with a placeholder id.
func (s *SymptomCheckService) Analyze(ctx context.Context, ownerID, inputText string) (*AnalysisResult, error) {
	var (
		record *entities.DiagnosisRecord
		match  domainservices.MatchResult
	)
	err := s.tracer.TraceFunction(ctx, "symptomcheck.analyze", func(ctx context.Context) error {
		var err error
		record, match, err = s.matcher.Analyze(inputText, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	keywords := match.Keywords
	s.tracer.AddAnnotation(ctx, "owner_id", ownerID)

	var saved *entities.DiagnosisRecord
	err = s.tracer.TraceFunction(ctx, "symptomcheck.store.create", func(ctx context.Context) error {
		var err error
		saved, err = s.store.Create(ctx, record)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to save symptom check",
			zap.String("ownerID", ownerID),
			zap.Int("diagnoses", record.DiagnosisCount()),
			zap.Error(err),
		)
		s.metrics.RecordAnalysis(false, record.DiagnosisCount())

		return &AnalysisResult{
			Record:    record.WithID(valueobjects.NewPlaceholderRecordID()),
			Keywords:  keywords,
			Persisted: false,
			Notice:    NoticeSaveFailed,
		}, nil
	}

	s.metrics.RecordAnalysis(true, saved.DiagnosisCount())
	s.logger.Info("Symptom check recorded",
		zap.String("ownerID", ownerID),
		zap.String("recordID", saved.ID().String()),
		zap.Strings("keywords", keywords),
		zap.Int("diagnoses", saved.DiagnosisCount()),
	)

	s.publish(ctx, events.NewSymptomCheckRecorded(
		saved.ID(),
		ownerID,
		keywords,
		saved.DiagnosisCount(),
		saved.IsUndetermined(),
		s.now(),
	))

	return &AnalysisResult{
		Record:    saved,
		Keywords:  keywords,
		Persisted: true,
		Notice:    FoundNotice(saved),
	}, nil
}

// FoundNotice is the success message for a saved analysis
func FoundNotice(record *entities.DiagnosisRecord) string {
	n := record.DiagnosisCount()
	if n == 1 {
		return "Found 1 possible diagnosis"
	}
	return fmt.Sprintf("Found %d possible diagnoses", n)
}

func (s *SymptomCheckService) publish(ctx context.Context, event events.DomainEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
			zap.Error(err),
		)
	}
}
