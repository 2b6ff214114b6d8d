package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sagarc03/apitour"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string        `json:"error"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail describes one failed parameter.
type ErrorDetail struct {
	Field   string `json:"field"`
	Source  string `json:"source"`
	Rule    string `json:"rule"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	writeErrorResponse(w, code, ErrorResponse{Error: errCode, Message: message})
}

func writeErrorResponse(w http.ResponseWriter, code int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type
func HandleError(w http.ResponseWriter, err error) {
	var verr *apitour.ValidationError
	if errors.As(err, &verr) {
		slog.Debug("request validation failed", "error", err)
		writeErrorResponse(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_error",
			Message: "Request validation failed",
			Details: details(verr),
		})
		return
	}

	if errors.Is(err, apitour.ErrForbidden) {
		slog.Debug("request forbidden", "error", err)
		WriteError(w, http.StatusForbidden, "forbidden", "Forbidden")
		return
	}

	if errors.Is(err, apitour.ErrMismatch) {
		WriteError(w, http.StatusBadRequest, "mismatch", err.Error())
		return
	}

	if errors.Is(err, apitour.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "not_found", "Not found")
		return
	}

	if errors.Is(err, apitour.ErrInvalidInput) {
		WriteError(w, http.StatusBadRequest, "invalid_input", "Invalid input")
		return
	}

	slog.Error("request error", "error", err)

	// Default internal error
	WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
}

func details(verr *apitour.ValidationError) []ErrorDetail {
	out := make([]ErrorDetail, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		out = append(out, ErrorDetail{
			Field:   fe.Field,
			Source:  fe.Source.String(),
			Rule:    fe.Rule,
			Value:   fe.Value,
			Message: fe.Message,
		})
	}
	return out
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

// WriteContent writes body verbatim with the given media type.
func WriteContent(w http.ResponseWriter, code int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	if _, err := io.WriteString(w, body); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}
