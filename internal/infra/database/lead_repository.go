package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/triggerlab/trigger-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, name, status, phone, email, interest_location,
	gross_income, down_payment, expected_sale_value, expected_commission_value,
	summary, potential_notes, is_high_potential, created_at`

// ListByUser devolve todos os leads da conta, mais recente primeiro.
func (r *LeadRepository) ListByUser(ctx context.Context, userID string) ([]entity.Lead, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM leads
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, leadColumns)

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// Create insere um lead e devolve id e created_at atribuídos pelo banco.
func (r *LeadRepository) Create(ctx context.Context, userID string, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (user_id, name, status, phone, email, interest_location,
			gross_income, down_payment, expected_sale_value, expected_commission_value,
			summary, potential_notes, is_high_potential)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(ctx, query,
		userID,
		lead.Name,
		string(entity.ClassifyStatus(string(lead.Status))),
		entity.CleanPhone(lead.Phone),
		lead.Email,
		lead.InterestLocation,
		entity.SafeNumber(lead.GrossIncome),
		entity.SafeNumber(lead.DownPayment),
		entity.SafeNumber(lead.ExpectedSaleValue),
		entity.SafeNumber(lead.ExpectedCommissionValue),
		lead.Summary,
		lead.PotentialNotes,
		lead.IsHighPotential,
	).Scan(&lead.ID, &lead.CreatedAt)
}

// CreateBatch grava o lote importado em uma única transação: ou entra tudo,
// ou nada. Ids sintetizados do parser são descartados em favor dos do banco.
func (r *LeadRepository) CreateBatch(ctx context.Context, userID string, leads []entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leads (user_id, name, status, phone, email, interest_location,
			gross_income, down_payment, expected_sale_value, expected_commission_value,
			summary, potential_notes, is_high_potential, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range leads {
		lead := &leads[i]
		err := stmt.QueryRowContext(ctx,
			userID,
			lead.Name,
			string(lead.Status),
			entity.CleanPhone(lead.Phone),
			lead.Email,
			lead.InterestLocation,
			entity.SafeNumber(lead.GrossIncome),
			entity.SafeNumber(lead.DownPayment),
			entity.SafeNumber(lead.ExpectedSaleValue),
			entity.SafeNumber(lead.ExpectedCommissionValue),
			lead.Summary,
			lead.PotentialNotes,
			lead.IsHighPotential,
			lead.CreatedAt,
		).Scan(&lead.ID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Update aplica um patch parcial. Só campos presentes entram no SET; o
// WHERE inclui user_id para a conta não alterar lead alheio.
func (r *LeadRepository) Update(ctx context.Context, userID, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Status != nil {
		add("status", string(entity.ClassifyStatus(string(*patch.Status))))
	}
	if patch.Phone != nil {
		add("phone", entity.CleanPhone(*patch.Phone))
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.InterestLocation != nil {
		add("interest_location", *patch.InterestLocation)
	}
	if patch.GrossIncome != nil {
		add("gross_income", entity.SafeNumber(*patch.GrossIncome))
	}
	if patch.DownPayment != nil {
		add("down_payment", entity.SafeNumber(*patch.DownPayment))
	}
	if patch.ExpectedSaleValue != nil {
		add("expected_sale_value", entity.SafeNumber(*patch.ExpectedSaleValue))
	}
	if patch.ExpectedCommissionValue != nil {
		add("expected_commission_value", entity.SafeNumber(*patch.ExpectedCommissionValue))
	}
	if patch.Summary != nil {
		add("summary", *patch.Summary)
	}
	if patch.PotentialNotes != nil {
		add("potential_notes", *patch.PotentialNotes)
	}
	if patch.IsHighPotential != nil {
		add("is_high_potential", *patch.IsHighPotential)
	}

	if len(sets) == 0 {
		return r.findByID(ctx, userID, id)
	}

	args = append(args, id)
	args = append(args, userID)
	query := fmt.Sprintf(`
		UPDATE leads SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(args)-1, len(args), leadColumns)

	return scanLead(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *LeadRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *LeadRepository) findByID(ctx context.Context, userID, id string) (*entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1 AND user_id = $2`, leadColumns)
	return scanLead(r.DB.QueryRowContext(ctx, query, id, userID))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var status, phone, email, location, summary, notes sql.NullString

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&status,
		&phone,
		&email,
		&location,
		&lead.GrossIncome,
		&lead.DownPayment,
		&lead.ExpectedSaleValue,
		&lead.ExpectedCommissionValue,
		&summary,
		&notes,
		&lead.IsHighPotential,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Dados legados podem trazer status em texto livre; normaliza na leitura.
	lead.Status = entity.ClassifyStatus(status.String)
	lead.Phone = phone.String
	lead.Email = email.String
	lead.InterestLocation = location.String
	lead.Summary = summary.String
	lead.PotentialNotes = notes.String
	return &lead, nil
}
