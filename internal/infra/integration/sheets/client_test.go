package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/triggerlab/trigger-crm/internal/sheet"
)

func TestFetchCSVThroughProxy(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Query().Get("url")
		w.Write([]byte("nome,status\nJoão,Quente"))
	}))
	defer srv.Close()

	client := NewClient()
	client.ProxyURL = srv.URL + "/raw?url="

	csv, err := client.FetchCSV(context.Background(),
		"https://docs.google.com/spreadsheets/d/ABC123/edit#gid=7")

	assert.NoError(t, err)
	assert.Equal(t, "nome,status\nJoão,Quente", csv)

	// O proxy recebe a URL de export derivada, não o link compartilhado.
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/ABC123/gviz/tq?tqx=out:csv&gid=7", requested)
}

func TestFetchCSVInvalidLink(t *testing.T) {
	_, err := NewClient().FetchCSV(context.Background(), "https://example.com/outra-coisa")
	assert.ErrorIs(t, err, sheet.ErrInvalidSheetURL)
}

func TestFetchCSVUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient()
	client.ProxyURL = srv.URL + "/raw?url="

	_, err := client.FetchCSV(context.Background(),
		"https://docs.google.com/spreadsheets/d/ABC123/edit")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}
