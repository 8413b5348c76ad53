package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/triggerlab/trigger-crm/internal/entity"
	"github.com/triggerlab/trigger-crm/internal/infra/http/middleware"
	"github.com/triggerlab/trigger-crm/internal/infra/integration/assistant"
	"github.com/triggerlab/trigger-crm/internal/usecase"
)

// ChatHandler expõe a conversa de teste com o atendente IA. Cada turno
// reenviamos o bloco de configuração inteiro; a memória fica no N8N,
// indexada pelo session id.
type ChatHandler struct {
	AIRepo  entity.AISettingsRepositoryInterface
	Client  *assistant.Client
	Fetcher usecase.SheetFetcher
}

func NewChatHandler(aiRepo entity.AISettingsRepositoryInterface, client *assistant.Client, fetcher usecase.SheetFetcher) *ChatHandler {
	return &ChatHandler{AIRepo: aiRepo, Client: client, Fetcher: fetcher}
}

type ChatBody struct {
	SessionID   string `json:"session_id"`
	Message     string `json:"message"`
	AudioBase64 string `json:"audio_base64"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

func (h *ChatHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var body ChatBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido: " + err.Error()})
		return
	}
	if body.Message == "" && body.AudioBase64 == "" {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "mensagem vazia"})
		return
	}

	userID := middleware.UserID(r.Context())
	if body.SessionID == "" {
		body.SessionID = userID
	}

	config := h.buildConfig(r.Context(), userID)

	reply, err := h.Client.SendMessage(r.Context(), assistant.ChatInput{
		SessionID:   body.SessionID,
		Message:     body.Message,
		AudioBase64: body.AudioBase64,
		Config:      config,
	})
	if err != nil {
		middleware.RecordIntegrationError("assistant")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

func (h *ChatHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var body ChatBody
	json.NewDecoder(r.Body).Decode(&body)
	if body.SessionID == "" {
		body.SessionID = middleware.UserID(r.Context())
	}

	reply, err := h.Client.Reset(r.Context(), body.SessionID)
	if err != nil {
		middleware.RecordIntegrationError("assistant")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

// buildConfig monta o bloco de prompt da conta. Configuração ausente vira
// bloco vazio; planilha de imóveis inacessível só perde o inventário.
func (h *ChatHandler) buildConfig(ctx context.Context, userID string) assistant.ChatConfig {
	settings, err := h.AIRepo.Get(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) || settings == nil {
		return assistant.ChatConfig{}
	}
	if err != nil {
		return assistant.ChatConfig{}
	}

	config := assistant.ChatConfig{
		Personality: settings.Personality,
		Instruction: settings.Instruction,
		Rules:       settings.Rules,
		Limitations: settings.Limitations,
		Context:     settings.Context,
		Examples:    settings.Examples,
	}

	if settings.SheetLink != "" && h.Fetcher != nil {
		if csv, err := h.Fetcher.FetchCSV(ctx, settings.SheetLink); err == nil {
			config.Inventory = csv
		} else {
			middleware.RecordIntegrationError("sheets")
		}
	}
	return config
}
