package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/triggerlab/trigger-crm/internal/entity"
	"github.com/triggerlab/trigger-crm/internal/infra/http/middleware"
	"github.com/triggerlab/trigger-crm/internal/usecase"
)

type LeadHandler struct {
	LeadRepo entity.LeadRepositoryInterface
	ImportUC *usecase.ImportLeadsUseCase
}

func NewLeadHandler(leadRepo entity.LeadRepositoryInterface, importUC *usecase.ImportLeadsUseCase) *LeadHandler {
	return &LeadHandler{LeadRepo: leadRepo, ImportUC: importUC}
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.LeadRepo.ListByUser(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido: " + err.Error()})
		return
	}

	if errs := usecase.ValidateLeadInput(input); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: errs[0].Error()})
		return
	}

	lead := &entity.Lead{
		Name:                    input.Name,
		Status:                  entity.ClassifyStatus(string(input.Status)),
		Phone:                   input.Phone,
		Email:                   input.Email,
		InterestLocation:        input.InterestLocation,
		GrossIncome:             input.GrossIncome,
		DownPayment:             input.DownPayment,
		ExpectedSaleValue:       input.ExpectedSaleValue,
		ExpectedCommissionValue: input.ExpectedCommissionValue,
		Summary:                 input.Summary,
		PotentialNotes:          input.PotentialNotes,
		IsHighPotential:         input.IsHighPotential,
	}

	if err := h.LeadRepo.Create(r.Context(), middleware.UserID(r.Context()), lead); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch entity.LeadPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido: " + err.Error()})
		return
	}

	lead, err := h.LeadRepo.Update(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.LeadRepo.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleImport aceita o link da planilha ou o texto colado e grava o lote.
func (h *LeadHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var input usecase.ImportLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido: " + err.Error()})
		return
	}

	output, err := h.ImportUC.Execute(r.Context(), middleware.UserID(r.Context()), input)
	if err != nil {
		writeError(w, err)
		return
	}

	source := "paste"
	if input.Text == "" {
		source = "sheet"
	}
	middleware.RecordImport(source, output.Imported)

	writeJSON(w, http.StatusOK, output)
}
