package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/triggerlab/trigger-crm/internal/usecase"
)

func TestValidateLeadInput(t *testing.T) {
	valid := usecase.CreateLeadInput{
		Name:  "João Silva",
		Email: "joao@example.com",
		Phone: "(11) 99999-9999",
	}
	assert.Empty(t, usecase.ValidateLeadInput(valid))

	noName := valid
	noName.Name = "   "
	errs := usecase.ValidateLeadInput(noName)
	assert.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)

	longName := valid
	longName.Name = strings.Repeat("a", 201)
	assert.NotEmpty(t, usecase.ValidateLeadInput(longName))

	badEmail := valid
	badEmail.Email = "não é email"
	assert.NotEmpty(t, usecase.ValidateLeadInput(badEmail))

	badPhone := valid
	badPhone.Phone = "123"
	assert.NotEmpty(t, usecase.ValidateLeadInput(badPhone))

	negative := valid
	negative.GrossIncome = -1
	assert.NotEmpty(t, usecase.ValidateLeadInput(negative))

	// Campos opcionais vazios não geram erro.
	minimal := usecase.CreateLeadInput{Name: "Maria"}
	assert.Empty(t, usecase.ValidateLeadInput(minimal))
}

func TestValidateDispatchInput(t *testing.T) {
	valid := usecase.StartDispatchInput{
		Recipients: []usecase.DispatchRecipientInput{{Name: "João", Phone: "11999999999"}},
		Message:    "Olá {nome}",
		DelayMin:   1,
		DelayMax:   3,
	}
	assert.Empty(t, usecase.ValidateDispatchInput(valid))

	empty := valid
	empty.Recipients = nil
	assert.NotEmpty(t, usecase.ValidateDispatchInput(empty))

	noMessage := valid
	noMessage.Message = "  "
	assert.NotEmpty(t, usecase.ValidateDispatchInput(noMessage))

	badDelay := valid
	badDelay.DelayMin = 5
	badDelay.DelayMax = 2
	assert.NotEmpty(t, usecase.ValidateDispatchInput(badDelay))

	blankRecipient := valid
	blankRecipient.Recipients = []usecase.DispatchRecipientInput{{}}
	assert.NotEmpty(t, usecase.ValidateDispatchInput(blankRecipient))
}
