package handlers

import (
	"context"
	"net/http"

	"symptomcheck/application/commands"
	"symptomcheck/application/commands/bus"
	"symptomcheck/application/ports"
	"symptomcheck/application/queries"
	querybus "symptomcheck/application/queries/bus"
	"symptomcheck/application/services"
	"symptomcheck/pkg/common"
	pkgerrors "symptomcheck/pkg/errors"
	"symptomcheck/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Analyzer runs the analyze use case
type Analyzer interface {
	Analyze(ctx context.Context, ownerID, inputText string) (*services.AnalysisResult, error)
}

// SymptomCheckHandler handles symptom check HTTP requests
type SymptomCheckHandler struct {
	analyzer   Analyzer
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	identity   ports.IdentityProvider
	errHandler *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewSymptomCheckHandler creates a new symptom check handler
func NewSymptomCheckHandler(
	analyzer Analyzer,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	identity ports.IdentityProvider,
	errHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *SymptomCheckHandler {
	return &SymptomCheckHandler{
		analyzer:   analyzer,
		commandBus: commandBus,
		queryBus:   queryBus,
		identity:   identity,
		errHandler: errHandler,
		logger:     logger,
	}
}

// Analyze handles POST /symptom-checks. A record that could not be saved is
// still returned, with 200 instead of 201 and persisted=false.
func (h *SymptomCheckHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.identity.CurrentOwner(r.Context())
	if !ok {
		h.errHandler.Handle(w, r, pkgerrors.NewUnauthenticatedError("please sign in to analyze symptoms"))
		return
	}

	var req AnalyzeRequest
	if err := common.DecodeJSONBody(w, r, &req); err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), ownerID, req.Symptoms)
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	status := http.StatusCreated
	if !result.Persisted {
		status = http.StatusOK
	}

	keywords := result.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	common.RespondJSON(w, status, AnalyzeResponse{
		Record:   toRecordResponse(result.Record),
		Keywords: keywords,
		Notice:   result.Notice,
	})
}

// ListHistory handles GET /symptom-checks
func (h *SymptomCheckHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.identity.CurrentOwner(r.Context())
	if !ok {
		h.errHandler.Handle(w, r, pkgerrors.NewUnauthenticatedError("please sign in to view your history"))
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListHistoryQuery{OwnerID: ownerID})
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	history, ok := result.(*queries.ListHistoryResult)
	if !ok {
		h.errHandler.Handle(w, r, pkgerrors.NewInternalError("unexpected history result"))
		return
	}

	items := make([]HistoryItem, 0, len(history.Records))
	for _, record := range history.Records {
		items = append(items, HistoryItem{
			RecordResponse: toRecordResponse(record),
			DiagnosisCount: record.DiagnosisCount(),
		})
	}

	common.RespondJSON(w, http.StatusOK, HistoryResponse{Items: items, Count: len(items)})
}

// DeleteHistoryEntry handles DELETE /symptom-checks/{id}
func (h *SymptomCheckHandler) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.identity.CurrentOwner(r.Context())
	if !ok {
		h.errHandler.Handle(w, r, pkgerrors.NewUnauthenticatedError("please sign in to manage your history"))
		return
	}

	cmd := commands.DeleteHistoryEntryCommand{
		OwnerID:  ownerID,
		RecordID: chi.URLParam(r, "id"),
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	common.RespondNoContent(w)
}
