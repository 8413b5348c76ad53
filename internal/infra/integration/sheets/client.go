// Package sheets busca o CSV bruto de uma planilha compartilhada. O export
// do Google não manda CORS, então a busca passa por um proxy; o parse do
// texto é responsabilidade do pacote sheet.
package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/triggerlab/trigger-crm/internal/sheet"
)

const DefaultProxyURL = "https://api.allorigins.win/raw?url="

type Client struct {
	ProxyURL   string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		ProxyURL:   DefaultProxyURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// FetchCSV deriva a URL de export a partir do link compartilhado e baixa o
// texto via proxy. O conteúdo volta cru; HTML de erro é detectado depois,
// pelo parser.
func (c *Client) FetchCSV(ctx context.Context, shareURL string) (string, error) {
	details, err := sheet.ExtractSheetDetails(shareURL)
	if err != nil {
		return "", err
	}

	target := c.ProxyURL + url.QueryEscape(details.ExportURL())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("falha ao acessar planilha: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("falha ao acessar planilha: HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
