package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/utafrali/brandcatalog/pkg/errors"
	"github.com/utafrali/brandcatalog/pkg/logger"
	"github.com/utafrali/brandcatalog/pkg/validator"
)

// InvalidIDMessage is returned when an id path parameter is not a valid integer.
const InvalidIDMessage = "El ID debe ser válido."

// ErrorResponse is the JSON body written for every error response.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteStatus writes a response with no body.
func WriteStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// WriteError maps err to a status code and writes an error body. Internal
// errors get a generic message and are logged; their details never reach the
// client. The request-scoped logger is preferred over fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	requestID := logger.CorrelationIDFromContext(r.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Status != http.StatusInternalServerError {
		WriteJSON(w, appErr.Status, ErrorResponse{Error: appErr.Message, Code: appErr.Code, RequestID: requestID})
		return
	}

	status := apperrors.HTTPStatus(err)
	resp := ErrorResponse{Code: "INTERNAL_ERROR", Error: "an internal error occurred", RequestID: requestID}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		resp.Code, resp.Error = "NOT_FOUND", "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrInvalidArgument):
		resp.Code, resp.Error = "INVALID_INPUT", err.Error()
	case status == http.StatusInternalServerError:
		logError(r, err, fallback)
	}

	WriteJSON(w, status, resp)
}

// WriteErrorMessage writes err with an explicit status, using the AppError
// message when one is in the chain and err.Error() otherwise. Errors that are
// not AppErrors are unexpected and logged at error level.
func WriteErrorMessage(w http.ResponseWriter, r *http.Request, status int, err error, fallback *slog.Logger) {
	resp := ErrorResponse{
		Error:     apperrors.Message(err),
		Code:      "UNEXPECTED_ERROR",
		RequestID: logger.CorrelationIDFromContext(r.Context()),
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp.Code = appErr.Code
	} else {
		logError(r, err, fallback)
	}

	WriteJSON(w, status, resp)
}

// WriteValidationError writes a 400 response. A *validator.ValidationError
// yields per-field messages keyed by JSON field name; any other error (for
// example a malformed body) is reported as INVALID_INPUT.
func WriteValidationError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{
		Code:      "INVALID_INPUT",
		Error:     err.Error(),
		RequestID: logger.CorrelationIDFromContext(r.Context()),
	}

	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		resp.Code = "VALIDATION_ERROR"
		resp.Error = "request validation failed"
		resp.Fields = valErr.Fields()
	}

	WriteJSON(w, http.StatusBadRequest, resp)
}

// ParseID parses an integer id path parameter. On failure it writes a 400
// response and returns false, signaling the caller to return early.
func ParseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     InvalidIDMessage,
			Code:      "INVALID_PARAMETER",
			RequestID: logger.CorrelationIDFromContext(r.Context()),
		})
		return 0, false
	}
	return id, true
}

func logError(r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContextOr(r.Context(), fallback)
	if l == nil {
		l = slog.Default()
	}
	l.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}
