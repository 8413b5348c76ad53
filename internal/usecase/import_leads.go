package usecase

import (
	"context"
	"strings"

	"github.com/triggerlab/trigger-crm/internal/entity"
)

// ImportLeadsUseCase é a sequência fetch → parse → merge do import de
// planilha. O fetch é cancelável; o parse é puro; o lote entra no
// repositório como uma única operação atômica, nunca linha a linha.
type ImportLeadsUseCase struct {
	Fetcher SheetFetcher
	Parser  SheetParser
	Repo    entity.LeadRepositoryInterface
}

func NewImportLeadsUseCase(fetcher SheetFetcher, parser SheetParser, repo entity.LeadRepositoryInterface) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{Fetcher: fetcher, Parser: parser, Repo: repo}
}

type ImportLeadsInput struct {
	// SheetURL e Text são alternativas: link para buscar, ou texto já
	// colado pelo usuário.
	SheetURL string `json:"sheet_url"`
	Text     string `json:"text"`
}

type ImportLeadsOutput struct {
	Imported int           `json:"imported"`
	Leads    []entity.Lead `json:"leads"`
}

func (uc *ImportLeadsUseCase) Execute(ctx context.Context, userID string, input ImportLeadsInput) (*ImportLeadsOutput, error) {
	text := input.Text
	if strings.TrimSpace(text) == "" {
		if strings.TrimSpace(input.SheetURL) == "" {
			return nil, &DomainError{Code: "EMPTY_INPUT", Message: "informe o link da planilha ou o texto colado"}
		}
		fetched, err := uc.Fetcher.FetchCSV(ctx, input.SheetURL)
		if err != nil {
			return nil, err
		}
		text = fetched
	}

	leads, err := uc.Parser.Parse(text)
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return &ImportLeadsOutput{Imported: 0, Leads: []entity.Lead{}}, nil
	}

	// Normaliza antes de persistir: a resposta devolve o mesmo lote que
	// foi gravado, sem divergir dos valores clampados pelo repositório.
	for i := range leads {
		leads[i].Phone = entity.CleanPhone(leads[i].Phone)
		leads[i].GrossIncome = entity.SafeNumber(leads[i].GrossIncome)
		leads[i].DownPayment = entity.SafeNumber(leads[i].DownPayment)
		leads[i].ExpectedSaleValue = entity.SafeNumber(leads[i].ExpectedSaleValue)
		leads[i].ExpectedCommissionValue = entity.SafeNumber(leads[i].ExpectedCommissionValue)
	}

	if err := uc.Repo.CreateBatch(ctx, userID, leads); err != nil {
		return nil, &TechnicalError{Code: "BATCH_INSERT_FAILED", Message: err.Error()}
	}

	return &ImportLeadsOutput{Imported: len(leads), Leads: leads}, nil
}
