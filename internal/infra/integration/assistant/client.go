// Package assistant fala com o webhook de chat do atendente IA. A automação
// devolve a resposta sob nomes de campo variados; ExtractReply resolve isso
// com uma precedência documentada em vez de tateio ad hoc.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnrecognizedShape indica resposta do chat sem nenhum campo de texto
// conhecido.
var ErrUnrecognizedShape = errors.New("assistant: resposta em formato não reconhecido")

// replyKeys é a precedência de extração da resposta do chat.
var replyKeys = []string{"text", "output", "response", "message"}

type Client struct {
	WebhookURL string
	HTTPClient *http.Client
}

func NewClient(webhookURL string) *Client {
	return &Client{
		WebhookURL: webhookURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SendMessage envia um turno (texto ou áudio) e devolve a resposta do modelo.
func (c *Client) SendMessage(ctx context.Context, input ChatInput) (string, error) {
	msgType := "text"
	message := input.Message
	if input.AudioBase64 != "" {
		msgType = "audio"
		if message == "" {
			message = "[Áudio enviado pelo usuário]"
		}
	}

	body, _ := json.Marshal(chatRequest{
		Action:    "message",
		SessionID: input.SessionID,
		Message:   message,
		Audio:     input.AudioBase64,
		Type:      msgType,
		Config:    input.Config,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	raw, err := c.post(ctx, body)
	if err != nil {
		return "", err
	}
	return ExtractReply(raw)
}

// Reset limpa a memória da sessão na automação. Devolve a mensagem de
// confirmação quando houver.
func (c *Client) Reset(ctx context.Context, sessionID string) (string, error) {
	body, _ := json.Marshal(resetRequest{
		Action:    "reset",
		SessionID: sessionID,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	raw, err := c.post(ctx, body)
	if err != nil {
		return "", err
	}
	reply, err := ExtractReply(raw)
	if err != nil {
		return "Memória reiniciada.", nil
	}
	return reply, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		text := string(raw)
		if strings.Contains(text, "<!DOCTYPE html>") {
			// Página de erro do gateway no lugar da automação.
			return nil, fmt.Errorf("assistant: erro %d do servidor de automação", resp.StatusCode)
		}
		return nil, fmt.Errorf("assistant: %s", strings.TrimSpace(text))
	}
	return raw, nil
}

// ExtractReply resolve o texto de resposta: tenta, na ordem, os campos
// text, output, response e message de um objeto JSON; depois aceita uma
// string JSON crua. Qualquer outro shape é erro classificado.
func ExtractReply(raw []byte) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, key := range replyKeys {
			v, ok := obj[key]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(v, &s); err == nil && s != "" {
				return s, nil
			}
		}
		return "", ErrUnrecognizedShape
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, nil
	}
	return "", ErrUnrecognizedShape
}
