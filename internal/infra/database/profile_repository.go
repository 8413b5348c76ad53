package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/triggerlab/trigger-crm/internal/entity"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Get(ctx context.Context, userID string) (*entity.Profile, error) {
	query := `
		SELECT user_id, name, phone, whatsapp_webhook_url, whatsapp_instance,
			imoveis_sheet_link, excluded_numbers
		FROM profiles
		WHERE user_id = $1
	`

	var p entity.Profile
	var name, phone, webhook, instance, sheet, excluded sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &name, &phone, &webhook, &instance, &sheet, &excluded,
	)
	if err != nil {
		return nil, err
	}

	p.Name = name.String
	p.Phone = phone.String
	p.WhatsAppWebhookURL = webhook.String
	p.WhatsAppInstance = instance.String
	p.SheetLink = sheet.String
	p.ExcludedNumbers = excluded.String
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, userID string, patch entity.ProfilePatch) (*entity.Profile, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.WhatsAppWebhookURL != nil {
		add("whatsapp_webhook_url", *patch.WhatsAppWebhookURL)
	}
	if patch.WhatsAppInstance != nil {
		add("whatsapp_instance", *patch.WhatsAppInstance)
	}
	if patch.SheetLink != nil {
		add("imoveis_sheet_link", *patch.SheetLink)
	}
	if patch.ExcludedNumbers != nil {
		add("excluded_numbers", *patch.ExcludedNumbers)
	}

	if len(sets) == 0 {
		return r.Get(ctx, userID)
	}

	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE user_id = $%d`,
		strings.Join(sets, ", "), len(args))

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.Get(ctx, userID)
}
