// Package extractor envia um arquivo (PDF ou imagem de planilha) para o
// webhook de extração de contatos e normaliza a resposta em pares
// nome/telefone.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Client struct {
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Extract sobe o arquivo em multipart (campo "data") e devolve os contatos
// extraídos pela automação.
func (c *Client) Extract(ctx context.Context, webhookURL, filename string, file io.Reader) ([]Contact, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("data", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extractor: erro HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return ParseContacts(raw)
}

// extractedItem é um item da resposta: a automação junta vários contatos em
// strings separadas por vírgula, com nomes de campo variados.
type extractedItem struct {
	Nome     string `json:"nome"`
	Name     string `json:"name"`
	Numero   string `json:"numero"`
	Telefone string `json:"telefone"`
	Phone    string `json:"phone"`
}

// ParseContacts aceita objeto único ou array e pareia as listas de nomes e
// números índice a índice. Entrada com só nome ou só número vale; par
// totalmente vazio é descartado.
func ParseContacts(raw []byte) ([]Contact, error) {
	var items []extractedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		var single extractedItem
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("extractor: resposta inválida: %w", err)
		}
		items = []extractedItem{single}
	}

	var contacts []Contact
	for _, item := range items {
		names := splitList(firstNonEmpty(item.Nome, item.Name))
		phones := splitList(firstNonEmpty(item.Numero, item.Telefone, item.Phone))

		max := len(names)
		if len(phones) > max {
			max = len(phones)
		}
		for i := 0; i < max; i++ {
			var name, phone string
			if i < len(names) {
				name = names[i]
			}
			if i < len(phones) {
				phone = phones[i]
			}
			if name == "" && phone == "" {
				continue
			}
			contacts = append(contacts, Contact{Name: name, Phone: phone})
		}
	}
	return contacts, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
