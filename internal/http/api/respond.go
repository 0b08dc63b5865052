package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/colegioelo/estoque/internal/audit"
	"github.com/colegioelo/estoque/internal/feed"
	"github.com/colegioelo/estoque/internal/importer"
	"github.com/colegioelo/estoque/internal/importer/siga"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/record"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

var statuses = []struct {
	target error
	status int
}{
	{record.ErrNotFound, http.StatusNotFound},
	{audit.ErrNotFound, http.StatusNotFound},
	{record.ErrCorruptedFeed, http.StatusConflict},
	{record.ErrEmptyFeed, http.StatusUnprocessableEntity},
	{ledger.ErrUnknownProduct, http.StatusBadRequest},
	{ledger.ErrUnknownUnit, http.StatusBadRequest},
	{ledger.ErrUnknownGrade, http.StatusBadRequest},
	{ledger.ErrNegative, http.StatusBadRequest},
	{importer.ErrUnknownFormat, http.StatusBadRequest},
	{importer.ErrUnknownUnit, http.StatusBadRequest},
	{importer.ErrUnitRequired, http.StatusBadRequest},
	{feed.ErrNoFiles, http.StatusBadRequest},
	{feed.ErrFetchDisabled, http.StatusServiceUnavailable},
	{siga.ErrLogin, http.StatusBadGateway},
}

// Status maps a service error to its HTTP status code.
func Status(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}

	for _, s := range statuses {
		if errors.Is(err, s.target) {
			return s.status
		}
	}

	return http.StatusInternalServerError
}

type validationResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields"`
}

// Error writes err with the status of Status. Internal errors are logged and
// never echoed to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		JSON(w, http.StatusBadRequest, validationResponse{Error: "request validation failed", Fields: verr.Fields})
		return
	}

	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}
