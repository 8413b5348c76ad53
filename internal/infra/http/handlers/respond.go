package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/triggerlab/trigger-crm/internal/sheet"
	"github.com/triggerlab/trigger-crm/internal/usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError traduz a taxonomia de erros dos usecases para status HTTP.
func writeError(w http.ResponseWriter, err error) {
	var formatErr *sheet.FormatError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "registro não encontrado"})
	case errors.As(err, &formatErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case usecase.IsDomainError(err):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
