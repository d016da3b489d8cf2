package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gaurav-prasanna/link2itinerary/core"
	"github.com/gaurav-prasanna/link2itinerary/trips"
	"github.com/gaurav-prasanna/link2itinerary/validation"
)

// statusClientClosedRequest is logged when the caller went away mid-run.
const statusClientClosedRequest = 499

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	if code == "" {
		code = http.StatusText(status)
	}
	writeJSON(w, status, ErrorResponse{Error: message, Code: code, Details: details})
}

// respondFailure maps a surfaced planner failure to a response.
func (s *Server) respondFailure(w http.ResponseWriter, f *core.Failure) {
	switch f.Kind {
	case core.FailureConfig:
		respondError(w, http.StatusBadRequest, "config_error", "Itinerary generator is not configured", nil)
	case core.FailureFetch:
		msg := "Failed to fetch URL"
		var details interface{}
		if f.StatusCode != 0 {
			msg = fmt.Sprintf("Failed to fetch URL (%d)", f.StatusCode)
			details = map[string]int{"status": f.StatusCode}
		}
		respondError(w, http.StatusBadRequest, "fetch_failed", msg, details)
	case core.FailureCanceled:
		s.log.Info("request canceled by client", nil)
		w.WriteHeader(statusClientClosedRequest)
	default:
		s.log.WithError(f).Error("unexpected planner failure", nil)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

// respondServiceError maps validation and trip store errors to responses.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, "validation_error", verr.Error(), verr.Fields)
	case errors.Is(err, trips.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	default:
		s.log.WithError(err).Error("trip store error", nil)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}
