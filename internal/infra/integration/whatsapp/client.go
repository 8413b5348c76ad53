package whatsapp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/triggerlab/trigger-crm/internal/infra/queue"
)

// ErrUnrecognizedShape indica resposta da automação em formato que o client
// não sabe interpretar. O chamador decide se trata como "reconsultar status".
var ErrUnrecognizedShape = errors.New("whatsapp: resposta em formato não reconhecido")

// Client fala com o webhook de automação de WhatsApp configurado por conta.
// A URL vem do perfil do usuário, por isso entra em cada chamada.
type Client struct {
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CheckStatus pergunta à automação se a instância está conectada. A resposta
// positiva é "OK" literal ou um JSON com "state":"open".
func (c *Client) CheckStatus(ctx context.Context, webhookURL, instance string) (bool, error) {
	if instance == "" {
		instance = "Standard"
	}
	body, _ := json.Marshal(StatusCheckRequest{Instance: instance, CheckOnly: true})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}
	text := string(raw)
	if strings.ToUpper(strings.TrimSpace(text)) == "OK" {
		return true, nil
	}
	return strings.Contains(strings.ToLower(text), `"state":"open"`), nil
}

// Pair pede um QR code ou pairing code. A automação pode responder com uma
// imagem direta, um JSON com base64/pairingCode (às vezes num array, às
// vezes aninhado em data), ou um indicador de "já conectado".
func (c *Client) Pair(ctx context.Context, webhookURL string, input PairRequest) (*PairResult, error) {
	if input.Instance == "" {
		input.Instance = "Standard"
	}
	if input.Timestamp == "" {
		input.Timestamp = time.Now().Format(time.RFC3339)
	}
	body, _ := json.Marshal(input)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whatsapp: servidor respondeu com erro %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "image") {
		return &PairResult{QRBase64: "data:image/png;base64," + encodeBase64(raw)}, nil
	}

	return ParsePairResponse(raw)
}

// ParsePairResponse resolve as variações de shape da automação para um
// PairResult. Precedência: estado conectado > base64/qrcode no topo >
// aninhado em data; pairingCode segue a mesma ordem.
func ParsePairResponse(raw []byte) (*PairResult, error) {
	payload := raw
	// Algumas automações devolvem um array com um único elemento.
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
		payload = arr[0]
	}

	var data pairResponse
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, ErrUnrecognizedShape
	}

	state := strings.ToLower(firstNonEmpty(data.Data.Instance.State, data.Instance.State, data.State))
	if state == "open" || state == "connected" || (data.Connected != nil && *data.Connected) {
		return &PairResult{AlreadyConnected: true}, nil
	}

	result := &PairResult{
		PairingCode: firstNonEmpty(data.PairingCode, data.Data.PairingCode),
	}
	if code := firstNonEmpty(data.Base64, data.QRCode, data.Data.Base64, data.Data.QRCode); code != "" {
		if strings.Contains(code, "base64") {
			result.QRBase64 = code
		} else {
			result.QRBase64 = "data:image/png;base64," + code
		}
	}

	if result.QRBase64 == "" && result.PairingCode == "" && !result.AlreadyConnected {
		return nil, ErrUnrecognizedShape
	}
	return result, nil
}

// SendDispatch envia a mensagem de um destinatário da run. Satisfaz
// queue.MessengerClient.
func (c *Client) SendDispatch(ctx context.Context, webhookURL string, payload queue.DispatchPayload, recipient queue.DispatchRecipient, message string) (bool, error) {
	reqBody, _ := json.Marshal(dispatchRequest{
		Leads:    []dispatchLead{{Nome: recipient.Nome, Numero: recipient.Numero}},
		Mensagem: message,
		DelayMin: 1,
		DelayMax: 2,
		UsarIA:   payload.UseAI,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(reqBody))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	var data dispatchResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return false, fmt.Errorf("whatsapp: resposta inválida do disparo: %w", err)
	}
	// success ausente conta como enviado; só false explícito é falha.
	return data.Success == nil || *data.Success, nil
}

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
