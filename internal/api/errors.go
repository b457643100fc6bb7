package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// Error represents a structured error response.
type Error struct {
	Status  int            `json:"status"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Common error codes.
const (
	ErrCodeBadRequest        = "bad_request"
	ErrCodeNotFound          = "not_found"
	ErrCodeInternal          = "internal_error"
	ErrCodeUnavailable       = "unavailable"
	ErrCodeInvalidTransition = "invalid_transition"
	ErrCodeStaleProposal     = "stale_proposal"
	ErrCodeContention        = "contention"
	ErrCodeStoreUnavailable  = "store_unavailable"
	ErrCodeCancelled         = "cancelled"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeScenarioError maps a scenario error onto a status and code.
// Internal failures never leak their message.
func writeScenarioError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, ErrCodeInternal
	switch scenario.KindOf(err) {
	case scenario.KindInvalidRequest:
		status, code = http.StatusBadRequest, ErrCodeBadRequest
	case scenario.KindNotFound:
		status, code = http.StatusNotFound, ErrCodeNotFound
	case scenario.KindInvalidTransition:
		status, code = http.StatusUnprocessableEntity, ErrCodeInvalidTransition
	case scenario.KindStaleProposal:
		status, code = http.StatusConflict, ErrCodeStaleProposal
	case scenario.KindContention:
		status, code = http.StatusConflict, ErrCodeContention
	case scenario.KindStoreUnavailable:
		status, code = http.StatusServiceUnavailable, ErrCodeStoreUnavailable
	case scenario.KindCancelled:
		status, code = http.StatusServiceUnavailable, ErrCodeCancelled
	}

	msg := err.Error()
	if code == ErrCodeInternal {
		msg = "internal error"
	}
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: msg,
		Details: errorDetails(err),
	})
}

// errorDetails extracts the fields a caller needs to recover from a rejection.
func errorDetails(err error) map[string]any {
	var (
		te *scenario.TransitionError
		se *scenario.StaleError
		ce *scenario.ContentionError
	)
	switch {
	case errors.As(err, &te):
		return map[string]any{"from_state": te.From, "to_state": te.To}
	case errors.As(err, &se):
		return map[string]any{"believed_state": se.Believed, "actual_state": se.Actual, "version": se.Version}
	case errors.As(err, &ce):
		return map[string]any{"attempts": ce.Attempts, "actual_state": ce.State, "version": ce.Version}
	}
	return nil
}
