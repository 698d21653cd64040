package errors

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorResponse represents the API error response format
type ErrorResponse struct {
	Error     bool                   `json:"error"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// ErrorHandler writes errors as JSON responses. Server-side failures are
// logged with their cause and stack; the cause reaches the client only when
// exposeCauses is set.
type ErrorHandler struct {
	logger       *zap.Logger
	exposeCauses bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger, exposeCauses bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger,
		exposeCauses: exposeCauses,
	}
}

// Handle processes an error and sends an HTTP response. Errors that are
// not AppErrors are reported as INTERNAL with a generic message.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	appErr := GetAppError(err)
	if appErr == nil {
		appErr = &AppError{
			Type:       ErrorTypeInternal,
			Message:    "An internal error occurred",
			Cause:      err,
			HTTPStatus: http.StatusInternalServerError,
		}
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	requestID := middleware.GetReqID(r.Context())
	h.logError(r, appErr, status, requestID)
	h.sendJSON(w, status, h.response(appErr, requestID))
}

// response builds the client view of appErr without touching its Details
func (h *ErrorHandler) response(appErr *AppError, requestID string) ErrorResponse {
	resp := ErrorResponse{
		Error:     true,
		Type:      string(appErr.Type),
		Message:   appErr.Message,
		Code:      appErr.Code,
		RequestID: requestID,
	}

	details := make(map[string]interface{}, len(appErr.Details)+1)
	for k, v := range appErr.Details {
		details[k] = v
	}
	if h.exposeCauses && appErr.Cause != nil {
		details["cause"] = appErr.Cause.Error()
	}
	if len(details) > 0 {
		resp.Details = details
	}
	return resp
}

// logError logs at Error for 5xx with the captured stack, Warn for 4xx
func (h *ErrorHandler) logError(r *http.Request, err *AppError, status int, requestID string) {
	fields := []zap.Field{
		zap.String("error_type", string(err.Type)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", requestID),
	}
	if err.Code != "" {
		fields = append(fields, zap.String("error_code", err.Code))
	}
	if err.Cause != nil {
		fields = append(fields, zap.Error(err.Cause))
	}

	if status >= 500 {
		if err.StackTrace != "" {
			fields = append(fields, zap.String("stack", err.StackTrace))
		}
		h.logger.Error(err.Message, fields...)
		return
	}
	h.logger.Warn(err.Message, fields...)
}

func (h *ErrorHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}
