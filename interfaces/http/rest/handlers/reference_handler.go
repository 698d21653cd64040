package handlers

import (
	"net/http"
	"net/url"

	"symptomcheck/application/queries"
	querybus "symptomcheck/application/queries/bus"
	"symptomcheck/domain/reference"
	"symptomcheck/pkg/common"
	pkgerrors "symptomcheck/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReferenceHandler serves the static condition and symptom tables
type ReferenceHandler struct {
	queryBus   *querybus.QueryBus
	errHandler *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler(queryBus *querybus.QueryBus, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		queryBus:   queryBus,
		errHandler: errHandler,
		logger:     logger,
	}
}

// DescribeCondition handles GET /conditions/{name}. Unknown names get the
// generic entry with known=false rather than a 404.
func (h *ReferenceHandler) DescribeCondition(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		// chi matched on the escaped path, so the parameter is still encoded
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			h.errHandler.Handle(w, r, pkgerrors.NewValidationError("invalid condition name").WithCause(err))
			return
		}
		name = unescaped
	}

	result, err := h.queryBus.Ask(r.Context(), queries.DescribeConditionQuery{Name: name})
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	described, ok := result.(*queries.DescribeConditionResult)
	if !ok {
		h.errHandler.Handle(w, r, pkgerrors.NewInternalError("unexpected condition result"))
		return
	}

	common.RespondJSON(w, http.StatusOK, toConditionResponse(described.Condition, described.Known))
}

// ListSymptoms handles GET /symptoms
func (h *ReferenceHandler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListSymptomsQuery{})
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	rules, ok := result.([]reference.SymptomRule)
	if !ok {
		h.errHandler.Handle(w, r, pkgerrors.NewInternalError("unexpected symptoms result"))
		return
	}

	common.RespondJSON(w, http.StatusOK, SymptomsResponse{Symptoms: rules})
}
