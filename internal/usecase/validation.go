package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/triggerlab/trigger-crm/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateLeadInput confere o formulário de lead antes de qualquer chamada
// remota. Só nome é obrigatório; o resto é saneado, não rejeitado.
func ValidateLeadInput(input CreateLeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errs = append(errs, ValidationError{"name", "must not exceed 200 characters"})
	}

	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errs = append(errs, ValidationError{"email", "is invalid"})
		}
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errs = append(errs, ValidationError{"phone", "must be a valid phone number"})
	}

	if input.GrossIncome < 0 {
		errs = append(errs, ValidationError{"gross_income", "must not be negative"})
	}
	if input.DownPayment < 0 {
		errs = append(errs, ValidationError{"down_payment", "must not be negative"})
	}

	return errs
}

// ValidateDispatchInput confere a run de disparo antes de publicá-la.
func ValidateDispatchInput(input StartDispatchInput) []ValidationError {
	var errs []ValidationError

	if len(input.Recipients) == 0 {
		errs = append(errs, ValidationError{"recipients", "at least one recipient is required"})
	}
	for i, r := range input.Recipients {
		if strings.TrimSpace(r.Phone) == "" && strings.TrimSpace(r.Name) == "" {
			errs = append(errs, ValidationError{fmt.Sprintf("recipients[%d]", i), "name or phone is required"})
		}
	}

	if strings.TrimSpace(input.Message) == "" {
		errs = append(errs, ValidationError{"message", "is required"})
	}

	if input.DelayMin < 0 {
		errs = append(errs, ValidationError{"delay_min", "must not be negative"})
	}
	if input.DelayMax < input.DelayMin {
		errs = append(errs, ValidationError{"delay_max", "must not be lower than delay_min"})
	}

	return errs
}

func isValidPhoneNumber(phone string) bool {
	cleaned := entity.CleanPhone(phone)
	return len(cleaned) >= 10 && len(cleaned) <= 13
}
