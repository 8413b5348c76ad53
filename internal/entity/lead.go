package entity

import (
	"context"
	"strings"
	"time"
)

// LeadStatus é o funil fixo do CRM. As constantes carregam os rótulos
// em português porque são os valores persistidos e exibidos.
type LeadStatus string

const (
	StatusFrio         LeadStatus = "Frio"
	StatusSegmentado   LeadStatus = "Segmentando"
	StatusQuente       LeadStatus = "Quente"
	StatusVendido      LeadStatus = "Vendido"
	StatusDesqualifica LeadStatus = "Desqualificado"
)

type Lead struct {
	ID                      string     `json:"id"`
	Name                    string     `json:"name"`
	Status                  LeadStatus `json:"status"`
	Phone                   string     `json:"phone"`
	Email                   string     `json:"email"`
	InterestLocation        string     `json:"interest_location"`
	GrossIncome             float64    `json:"gross_income"`
	DownPayment             float64    `json:"down_payment"`
	ExpectedSaleValue       float64    `json:"expected_sale_value"`
	ExpectedCommissionValue float64    `json:"expected_commission_value"`
	Summary                 string     `json:"summary"`
	PotentialNotes          string     `json:"potential_notes"`
	IsHighPotential         bool       `json:"is_high_potential"`
	CreatedAt               time.Time  `json:"created_at"`
}

// LeadPatch carrega uma atualização parcial. Ponteiro nil = campo não tocado.
type LeadPatch struct {
	Name                    *string     `json:"name,omitempty"`
	Status                  *LeadStatus `json:"status,omitempty"`
	Phone                   *string     `json:"phone,omitempty"`
	Email                   *string     `json:"email,omitempty"`
	InterestLocation        *string     `json:"interest_location,omitempty"`
	GrossIncome             *float64    `json:"gross_income,omitempty"`
	DownPayment             *float64    `json:"down_payment,omitempty"`
	ExpectedSaleValue       *float64    `json:"expected_sale_value,omitempty"`
	ExpectedCommissionValue *float64    `json:"expected_commission_value,omitempty"`
	Summary                 *string     `json:"summary,omitempty"`
	PotentialNotes          *string     `json:"potential_notes,omitempty"`
	IsHighPotential         *bool       `json:"is_high_potential,omitempty"`
}

type LeadRepositoryInterface interface {
	ListByUser(ctx context.Context, userID string) ([]Lead, error)
	Create(ctx context.Context, userID string, lead *Lead) error
	Update(ctx context.Context, userID, id string, patch LeadPatch) (*Lead, error)
	Delete(ctx context.Context, userID, id string) error
	// CreateBatch grava um lote importado em uma única transação.
	CreateBatch(ctx context.Context, userID string, leads []Lead) error
}

// statusSynonyms classifica texto livre de status por substring,
// case-insensitive. Tabela em português (terminologia imobiliária).
var statusSynonyms = []struct {
	status LeadStatus
	terms  []string
}{
	{StatusFrio, []string{"frio", "novo", "início", "inicio"}},
	{StatusSegmentado, []string{"segmentado", "qualificado", "morno"}},
	{StatusQuente, []string{"quente", "visita", "proposta"}},
	{StatusVendido, []string{"fechado", "vendido", "contrato"}},
	{StatusDesqualifica, []string{"perdido", "arquivado", "desqualificado"}},
}

// canonicalStatuses resolve valores já canônicos antes da busca por
// substring. Sem isso "Desqualificado" cairia em Segmentando (contém
// "qualificado") e "Segmentando" viraria Frio.
var canonicalStatuses = map[string]LeadStatus{
	strings.ToLower(string(StatusFrio)):         StatusFrio,
	strings.ToLower(string(StatusSegmentado)):   StatusSegmentado,
	strings.ToLower(string(StatusQuente)):       StatusQuente,
	strings.ToLower(string(StatusVendido)):      StatusVendido,
	strings.ToLower(string(StatusDesqualifica)): StatusDesqualifica,
}

// ClassifyStatus mapeia texto livre para o funil fixo. Vazio ou
// irreconhecível vira Frio, nunca erro: planilha suja não pode travar import.
func ClassifyStatus(raw string) LeadStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StatusFrio
	}
	if status, ok := canonicalStatuses[s]; ok {
		return status
	}
	for _, entry := range statusSynonyms {
		for _, term := range entry.terms {
			if strings.Contains(s, term) {
				return entry.status
			}
		}
	}
	return StatusFrio
}

// CleanPhone normaliza telefone para apenas dígitos antes de persistir.
func CleanPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SafeNumber garante campo numérico não-negativo (valores ausentes ou
// inválidos já chegam aqui como zero).
func SafeNumber(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	return v
}

// IsImported identifica ids sintetizados pelo parser de planilha.
func IsImported(id string) bool {
	return strings.HasPrefix(id, "imported-")
}

// IsTemporary identifica ids gerados no cliente antes do primeiro save.
func IsTemporary(id string) bool {
	return strings.HasPrefix(id, "temp-new-")
}
