package handlers

import (
	"context"
	"fmt"

	"symptomcheck/application/ports"
	"symptomcheck/application/queries"
	"symptomcheck/application/queries/bus"

	"go.uber.org/zap"
)

// ListHistoryHandler serves ListHistoryQuery from the history store
type ListHistoryHandler struct {
	store  ports.HistoryStore
	logger *zap.Logger
}

// NewListHistoryHandler creates a new list history handler
func NewListHistoryHandler(store ports.HistoryStore, logger *zap.Logger) *ListHistoryHandler {
	return &ListHistoryHandler{
		store:  store,
		logger: logger,
	}
}

// Handle implements bus.QueryHandler
func (h *ListHistoryHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListHistoryQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	records, err := h.store.ListForOwner(ctx, q.OwnerID)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Listed history",
		zap.String("ownerID", q.OwnerID),
		zap.Int("count", len(records)),
	)

	return &queries.ListHistoryResult{Records: records}, nil
}
