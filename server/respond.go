package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ByLCY/acta/acta"
	"github.com/ByLCY/acta/sink"
)

// apiError is the error half of the JSON envelope.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
	// Outcome is set when delivery was attempted.
	Outcome *sink.Outcome `json:"outcome,omitempty"`
}

func (e *apiError) Error() string { return e.Message }

var errInternal = &apiError{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: "internal error"}

type successEnvelope struct {
	Data any `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func ok(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Data: data})
}

func writeError(w http.ResponseWriter, e *apiError) {
	writeJSON(w, e.Status, e)
}

func badRequest(code, msg string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: msg}
}

// classify maps engine errors onto HTTP statuses. Anything unknown is a
// 500 whose cause is logged but not returned.
func classify(err error, out sink.Outcome, logger *slog.Logger) *apiError {
	var ae *apiError
	switch {
	case errors.As(err, &ae):
		return ae
	case errors.Is(err, acta.ErrUnknownFlavor):
		return &apiError{Status: http.StatusNotFound, Code: "UNKNOWN_FLAVOR", Message: err.Error()}
	case errors.Is(err, acta.ErrNoLineItems):
		return &apiError{Status: http.StatusUnprocessableEntity, Code: "NO_LINE_ITEMS", Message: err.Error()}
	case errors.Is(err, sink.ErrPrintUnavailable):
		return &apiError{Status: http.StatusServiceUnavailable, Code: "PRINT_UNAVAILABLE", Message: err.Error(), Outcome: &out}
	}
	logger.Error("api_server_error", slog.Any("error", err))
	return errInternal
}
