package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/triggerlab/trigger-crm/internal/infra/http/middleware"
	"github.com/triggerlab/trigger-crm/internal/infra/integration/extractor"
	"github.com/triggerlab/trigger-crm/internal/usecase"
)

type DispatchHandler struct {
	StartUC      *usecase.StartDispatchUseCase
	Extractor    *extractor.Client
	ExtractorURL string
}

func NewDispatchHandler(startUC *usecase.StartDispatchUseCase, ext *extractor.Client, extractorURL string) *DispatchHandler {
	return &DispatchHandler{StartUC: startUC, Extractor: ext, ExtractorURL: extractorURL}
}

// HandleStart valida e publica a run na fila. O envio em si acontece no
// worker, fora do ciclo da requisição.
func (h *DispatchHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var input usecase.StartDispatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido: " + err.Error()})
		return
	}

	output, err := h.StartUC.Execute(r.Context(), middleware.UserID(r.Context()), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordDispatchRun()
	writeJSON(w, http.StatusAccepted, output)
}

// HandleExtract recebe um arquivo (planilha, PDF, imagem) e devolve os
// contatos que o webhook extrator conseguiu ler.
func (h *DispatchHandler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	if h.ExtractorURL == "" {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "extrator de contatos não configurado"})
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "upload inválido: " + err.Error()})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "arquivo ausente"})
		return
	}
	defer file.Close()

	contacts, err := h.Extractor.Extract(r.Context(), h.ExtractorURL, header.Filename, file)
	if err != nil {
		middleware.RecordIntegrationError("extractor")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contacts": contacts,
		"count":    len(contacts),
	})
}
