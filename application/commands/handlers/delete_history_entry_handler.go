package handlers

import (
	"context"
	"fmt"
	"time"

	"symptomcheck/application/commands"
	"symptomcheck/application/commands/bus"
	"symptomcheck/application/ports"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/domain/events"
	pkgerrors "symptomcheck/pkg/errors"

	"go.uber.org/zap"
)

// DeleteHistoryEntryHandler handles history deletion commands
type DeleteHistoryEntryHandler struct {
	store    ports.HistoryStore
	eventBus ports.EventBus
	logger   *zap.Logger
	now      func() time.Time
}

// NewDeleteHistoryEntryHandler creates a new delete handler
func NewDeleteHistoryEntryHandler(
	store ports.HistoryStore,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *DeleteHistoryEntryHandler {
	return &DeleteHistoryEntryHandler{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle implements bus.CommandHandler
func (h *DeleteHistoryEntryHandler) Handle(ctx context.Context, cmd bus.Command) error {
	deleteCmd, ok := cmd.(commands.DeleteHistoryEntryCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	recordID, err := valueobjects.NewRecordIDFromString(deleteCmd.RecordID)
	if err != nil {
		return pkgerrors.NewValidationError("invalid record id").WithCause(err)
	}
	// Placeholder ids were never stored
	if recordID.IsPlaceholder() {
		return nil
	}

	if err := h.store.DeleteByID(ctx, deleteCmd.OwnerID, recordID); err != nil {
		return err
	}

	h.logger.Info("History entry deleted",
		zap.String("ownerID", deleteCmd.OwnerID),
		zap.String("recordID", recordID.String()),
	)

	if h.eventBus != nil {
		event := events.NewSymptomCheckDeleted(recordID, deleteCmd.OwnerID, h.now())
		if err := h.eventBus.Publish(ctx, event); err != nil {
			h.logger.Warn("Failed to publish event",
				zap.String("eventType", event.GetEventType()),
				zap.Error(err),
			)
		}
	}

	return nil
}
