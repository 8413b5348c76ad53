package entity

import (
	"context"
	"strings"
)

// AISettings guarda os campos de prompt do atendente IA. Sempre zero ou um
// registro por conta (semântica de upsert).
type AISettings struct {
	UserID      string `json:"user_id"`
	Personality string `json:"personality"`
	Instruction string `json:"instruction"`
	Rules       string `json:"rules"`
	Context     string `json:"context"`
	Limitations string `json:"limitations"`
	Examples    string `json:"examples"`
	// ExcludedNumbers é a lista negra, números separados por vírgula.
	ExcludedNumbers string `json:"excluded_numbers"`
	SheetLink       string `json:"imoveis_sheet_link"`
}

// Denylist devolve a lista negra normalizada: só dígitos, mínimo 8,
// sem duplicatas.
func (s *AISettings) Denylist() []string {
	var out []string
	seen := make(map[string]bool)
	for _, raw := range strings.Split(s.ExcludedNumbers, ",") {
		n := CleanPhone(strings.TrimSpace(raw))
		if len(n) < 8 || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// SetDenylist grava a lista de volta no formato persistido.
func (s *AISettings) SetDenylist(numbers []string) {
	s.ExcludedNumbers = strings.Join(numbers, ",")
}

type AISettingsRepositoryInterface interface {
	Get(ctx context.Context, userID string) (*AISettings, error)
	Upsert(ctx context.Context, settings *AISettings) error
}
