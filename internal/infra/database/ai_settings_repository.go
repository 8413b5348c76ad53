package database

import (
	"context"
	"database/sql"

	"github.com/triggerlab/trigger-crm/internal/entity"
)

type AISettingsRepository struct {
	DB *sql.DB
}

func NewAISettingsRepository(db *sql.DB) *AISettingsRepository {
	return &AISettingsRepository{DB: db}
}

func (r *AISettingsRepository) Get(ctx context.Context, userID string) (*entity.AISettings, error) {
	query := `
		SELECT user_id, personality, instruction, rules, context, limitations,
			examples, excluded_numbers, imoveis_sheet_link
		FROM ai_settings
		WHERE user_id = $1
	`

	var s entity.AISettings
	var fields [8]sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&s.UserID,
		&fields[0], &fields[1], &fields[2], &fields[3],
		&fields[4], &fields[5], &fields[6], &fields[7],
	)
	if err != nil {
		return nil, err
	}

	s.Personality = fields[0].String
	s.Instruction = fields[1].String
	s.Rules = fields[2].String
	s.Context = fields[3].String
	s.Limitations = fields[4].String
	s.Examples = fields[5].String
	s.ExcludedNumbers = fields[6].String
	s.SheetLink = fields[7].String
	return &s, nil
}

// Upsert grava as configurações inteiras; a conta tem no máximo um registro.
func (r *AISettingsRepository) Upsert(ctx context.Context, settings *entity.AISettings) error {
	query := `
		INSERT INTO ai_settings (user_id, personality, instruction, rules, context,
			limitations, examples, excluded_numbers, imoveis_sheet_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			personality = EXCLUDED.personality,
			instruction = EXCLUDED.instruction,
			rules = EXCLUDED.rules,
			context = EXCLUDED.context,
			limitations = EXCLUDED.limitations,
			examples = EXCLUDED.examples,
			excluded_numbers = EXCLUDED.excluded_numbers,
			imoveis_sheet_link = EXCLUDED.imoveis_sheet_link
	`

	_, err := r.DB.ExecContext(ctx, query,
		settings.UserID,
		settings.Personality,
		settings.Instruction,
		settings.Rules,
		settings.Context,
		settings.Limitations,
		settings.Examples,
		settings.ExcludedNumbers,
		settings.SheetLink,
	)
	return err
}
