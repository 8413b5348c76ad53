package entity

import "context"

// Profile é o registro único de conta do corretor. O webhook e a instância
// apontam para a automação de WhatsApp contratada; quando vazios, a conta
// não tem o plano Pro.
type Profile struct {
	UserID             string `json:"user_id"`
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	WhatsAppWebhookURL string `json:"whatsapp_webhook_url"`
	WhatsAppInstance   string `json:"whatsapp_instance"`
	SheetLink          string `json:"imoveis_sheet_link"`
	ExcludedNumbers    string `json:"excluded_numbers"`
}

// HasInstance indica se a conta possui instância de disparo configurada.
func (p *Profile) HasInstance() bool {
	return p.WhatsAppInstance != ""
}

// HasWebhook indica se a conta possui automação de WhatsApp ativa.
func (p *Profile) HasWebhook() bool {
	return p.WhatsAppWebhookURL != "" && p.WhatsAppWebhookURL != "null"
}

type ProfilePatch struct {
	Name               *string `json:"name,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	WhatsAppWebhookURL *string `json:"whatsapp_webhook_url,omitempty"`
	WhatsAppInstance   *string `json:"whatsapp_instance,omitempty"`
	SheetLink          *string `json:"imoveis_sheet_link,omitempty"`
	ExcludedNumbers    *string `json:"excluded_numbers,omitempty"`
}

type ProfileRepositoryInterface interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, patch ProfilePatch) (*Profile, error)
}
