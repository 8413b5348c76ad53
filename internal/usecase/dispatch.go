package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/triggerlab/trigger-crm/internal/entity"
	"github.com/triggerlab/trigger-crm/internal/infra/queue"
)

// StartDispatchUseCase monta e publica uma run de disparo em massa. A conta
// precisa de instância configurada (plano Pro); números da lista negra são
// removidos antes do envio.
type StartDispatchUseCase struct {
	ProfileRepo entity.ProfileRepositoryInterface
	AIRepo      entity.AISettingsRepositoryInterface
	Producer    queue.DispatchProducerInterface
}

func NewStartDispatchUseCase(
	profileRepo entity.ProfileRepositoryInterface,
	aiRepo entity.AISettingsRepositoryInterface,
	producer queue.DispatchProducerInterface,
) *StartDispatchUseCase {
	return &StartDispatchUseCase{
		ProfileRepo: profileRepo,
		AIRepo:      aiRepo,
		Producer:    producer,
	}
}

func (uc *StartDispatchUseCase) Execute(ctx context.Context, userID string, input StartDispatchInput) (*StartDispatchOutput, error) {
	if errs := ValidateDispatchInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: "INVALID_DISPATCH", Message: errs[0].Error()}
	}

	profile, err := uc.ProfileRepo.Get(ctx, userID)
	if err != nil {
		return nil, &TechnicalError{Code: "PROFILE_LOAD_FAILED", Message: err.Error()}
	}
	if !profile.HasInstance() || !profile.HasWebhook() {
		return nil, &DomainError{Code: "NO_INSTANCE", Message: "conta sem instância de disparo configurada"}
	}

	denylist := make(map[string]bool)
	if settings, err := uc.AIRepo.Get(ctx, userID); err == nil && settings != nil {
		for _, n := range settings.Denylist() {
			denylist[n] = true
		}
	}

	recipients := make([]queue.DispatchRecipient, 0, len(input.Recipients))
	skipped := 0
	for _, r := range input.Recipients {
		phone := entity.CleanPhone(r.Phone)
		if denylist[phone] {
			skipped++
			continue
		}
		recipients = append(recipients, queue.DispatchRecipient{Nome: r.Name, Numero: phone})
	}
	if len(recipients) == 0 {
		return nil, &DomainError{Code: "EMPTY_RUN", Message: "nenhum destinatário restante após filtros"}
	}

	payload := queue.DispatchPayload{
		RunID:       fmt.Sprintf("run-%s", uuid.New().String()),
		UserID:      userID,
		WebhookURL:  profile.WhatsAppWebhookURL,
		Instance:    profile.WhatsAppInstance,
		Message:     input.Message,
		DelayMin:    input.DelayMin,
		DelayMax:    input.DelayMax,
		UseAI:       input.UseAI,
		ReportEmail: input.ReportEmail,
		Recipients:  recipients,
	}

	if err := uc.Producer.PublishDispatch(ctx, payload); err != nil {
		return nil, &TechnicalError{Code: "PUBLISH_FAILED", Message: err.Error()}
	}

	return &StartDispatchOutput{
		RunID:      payload.RunID,
		Recipients: len(recipients),
		Skipped:    skipped,
	}, nil
}
