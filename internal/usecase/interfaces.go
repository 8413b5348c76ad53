package usecase

import (
	"context"

	"github.com/triggerlab/trigger-crm/internal/entity"
)

// SheetFetcher obtém o texto bruto da planilha. A busca é cancelável e pode
// falhar; o parse em si é puro e síncrono.
type SheetFetcher interface {
	FetchCSV(ctx context.Context, shareURL string) (string, error)
}

// SheetParser converte o texto bruto em leads.
type SheetParser interface {
	Parse(text string) ([]entity.Lead, error)
}

// CreateLeadInput é o formulário de lead manual.
type CreateLeadInput struct {
	Name                    string            `json:"name"`
	Status                  entity.LeadStatus `json:"status"`
	Phone                   string            `json:"phone"`
	Email                   string            `json:"email"`
	InterestLocation        string            `json:"interest_location"`
	GrossIncome             float64           `json:"gross_income"`
	DownPayment             float64           `json:"down_payment"`
	ExpectedSaleValue       float64           `json:"expected_sale_value"`
	ExpectedCommissionValue float64           `json:"expected_commission_value"`
	Summary                 string            `json:"summary"`
	PotentialNotes          string            `json:"potential_notes"`
	IsHighPotential         bool              `json:"is_high_potential"`
}

// DispatchRecipient do lado da API, antes de virar payload de fila.
type DispatchRecipientInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type StartDispatchInput struct {
	Recipients []DispatchRecipientInput `json:"recipients"`
	Message    string                   `json:"message"`
	DelayMin   int                      `json:"delay_min"`
	DelayMax   int                      `json:"delay_max"`
	UseAI      bool                     `json:"use_ai"`
	// ReportEmail opcional recebe o resumo da run.
	ReportEmail string `json:"report_email"`
}

type StartDispatchOutput struct {
	RunID      string `json:"run_id"`
	Recipients int    `json:"recipients"`
	Skipped    int    `json:"skipped"`
}
