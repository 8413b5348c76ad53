package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/triggerlab/trigger-crm/internal/entity"
	"github.com/triggerlab/trigger-crm/internal/infra/http/middleware"
	"github.com/triggerlab/trigger-crm/internal/infra/integration/whatsapp"
)

type WhatsAppHandler struct {
	ProfileRepo entity.ProfileRepositoryInterface
	Client      *whatsapp.Client
}

func NewWhatsAppHandler(profileRepo entity.ProfileRepositoryInterface, client *whatsapp.Client) *WhatsAppHandler {
	return &WhatsAppHandler{ProfileRepo: profileRepo, Client: client}
}

type StatusResponse struct {
	Configured bool `json:"configured"`
	Connected  bool `json:"connected"`
}

// HandleStatus consulta a automação da conta. Conta sem instância não é
// erro: devolve configured=false e o front esconde o recurso.
func (h *WhatsAppHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	profile, err := h.loadProfile(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if !profile.HasInstance() || !profile.HasWebhook() {
		writeJSON(w, http.StatusOK, StatusResponse{Configured: false})
		return
	}

	connected, err := h.Client.CheckStatus(r.Context(), profile.WhatsAppWebhookURL, profile.WhatsAppInstance)
	if err != nil {
		middleware.RecordIntegrationError("whatsapp")
		writeJSON(w, http.StatusOK, StatusResponse{Configured: true, Connected: false})
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Configured: true, Connected: connected})
}

type PairBody struct {
	Email string `json:"email"`
}

// HandlePair pede QR code ou código de pareamento à automação.
func (h *WhatsAppHandler) HandlePair(w http.ResponseWriter, r *http.Request) {
	var body PairBody
	json.NewDecoder(r.Body).Decode(&body)

	profile, err := h.loadProfile(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if !profile.HasInstance() || !profile.HasWebhook() {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "conta sem instância de disparo configurada"})
		return
	}

	result, err := h.Client.Pair(r.Context(), profile.WhatsAppWebhookURL, whatsapp.PairRequest{
		UserID:    profile.UserID,
		Instance:  profile.WhatsAppInstance,
		Email:     body.Email,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		middleware.RecordIntegrationError("whatsapp")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *WhatsAppHandler) loadProfile(ctx context.Context) (*entity.Profile, error) {
	return h.ProfileRepo.Get(ctx, middleware.UserID(ctx))
}
