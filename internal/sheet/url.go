package sheet

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidSheetURL indica que o link compartilhado não é de planilha.
var ErrInvalidSheetURL = errors.New("url da planilha inválida")

var (
	publishedIDPattern = regexp.MustCompile(`/spreadsheets/d/e/([a-zA-Z0-9-_]+)`)
	standardIDPattern  = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
)

// SheetDetails é o resultado da extração do link: id do documento, se é um
// link "publicado na web" e o gid da aba quando presente.
type SheetDetails struct {
	ID          string
	IsPublished bool
	GID         string
}

// ExtractSheetDetails aceita tanto o link de edição padrão quanto o link
// "publicar na web" e extrai o necessário para montar a URL de export.
func ExtractSheetDetails(rawURL string) (*SheetDetails, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrInvalidSheetURL
	}

	if strings.Contains(rawURL, "/d/e/") {
		m := publishedIDPattern.FindStringSubmatch(rawURL)
		if m == nil {
			return nil, ErrInvalidSheetURL
		}
		return &SheetDetails{ID: m[1], IsPublished: true}, nil
	}

	m := standardIDPattern.FindStringSubmatch(rawURL)
	if m == nil || m[1] == "e" {
		return nil, ErrInvalidSheetURL
	}

	gid := u.Query().Get("gid")
	if gid == "" && strings.Contains(u.Fragment, "gid=") {
		parts := strings.SplitN(u.Fragment, "gid=", 2)
		gid = parts[1]
	}
	return &SheetDetails{ID: m[1], GID: gid}, nil
}

// ExportURL monta a URL de download do CSV: links publicados usam o export
// pub?output=csv, links de edição usam o endpoint gviz com a aba (gid).
func (d *SheetDetails) ExportURL() string {
	if d.IsPublished {
		return fmt.Sprintf("https://docs.google.com/spreadsheets/d/e/%s/pub?output=csv", d.ID)
	}
	gidParam := ""
	if d.GID != "" {
		gidParam = "&gid=" + d.GID
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv%s", d.ID, gidParam)
}
