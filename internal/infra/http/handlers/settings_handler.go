package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/triggerlab/trigger-crm/internal/entity"
	"github.com/triggerlab/trigger-crm/internal/infra/http/middleware"
)

type SettingsHandler struct {
	ProfileRepo entity.ProfileRepositoryInterface
	AIRepo      entity.AISettingsRepositoryInterface
}

func NewSettingsHandler(profileRepo entity.ProfileRepositoryInterface, aiRepo entity.AISettingsRepositoryInterface) *SettingsHandler {
	return &SettingsHandler{ProfileRepo: profileRepo, AIRepo: aiRepo}
}

func (h *SettingsHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ProfileRepo.Get(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *SettingsHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch entity.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido: " + err.Error()})
		return
	}

	profile, err := h.ProfileRepo.Update(r.Context(), middleware.UserID(r.Context()), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleGetAISettings devolve registro vazio (não 404) quando a conta ainda
// não salvou nada: o formulário do front abre em branco.
func (h *SettingsHandler) HandleGetAISettings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	settings, err := h.AIRepo.Get(r.Context(), userID)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusOK, &entity.AISettings{UserID: userID})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) HandleUpdateAISettings(w http.ResponseWriter, r *http.Request) {
	var settings entity.AISettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido: " + err.Error()})
		return
	}

	settings.UserID = middleware.UserID(r.Context())
	settings.SetDenylist(settings.Denylist())

	if err := h.AIRepo.Upsert(r.Context(), &settings); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &settings)
}
