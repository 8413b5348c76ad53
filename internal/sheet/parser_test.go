package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/triggerlab/trigger-crm/internal/entity"
)

func fixedParser() *Parser {
	p := NewParser()
	p.Now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return p
}

func TestParseTabSeparated(t *testing.T) {
	p := fixedParser()

	text := "Nome\tSituação\tTelefone\tRenda\n" +
		"João Silva\tQuente\t(11) 99999-9999\tR$ 5.000,00\n" +
		"Maria Souza\tVendido\t11988887777\t7000\n" +
		"\"Silva, Jane\"\tFrio\t11977776666\t0"

	leads, err := p.Parse(text)

	assert.NoError(t, err)
	assert.Len(t, leads, 3)

	assert.Equal(t, "João Silva", leads[0].Name)
	assert.Equal(t, entity.StatusQuente, leads[0].Status)
	assert.Equal(t, "(11) 99999-9999", leads[0].Phone)
	assert.Equal(t, 5000.0, leads[0].GrossIncome)
	assert.Equal(t, "Importado", leads[0].Summary)

	assert.Equal(t, entity.StatusVendido, leads[1].Status)
	assert.Equal(t, 7000.0, leads[1].GrossIncome)

	// Com tab presente o split é estrito em tabs: a vírgula dentro da
	// célula entre aspas não quebra a linha em colunas extras.
	assert.Equal(t, "Silva, Jane", leads[2].Name)
	assert.Equal(t, "11977776666", leads[2].Phone)
}

func TestParseCommaSeparated(t *testing.T) {
	p := fixedParser()

	text := "nome,status,telefone\n" +
		"João Silva,Quente,(11) 99999-9999\n" +
		",Frio,11988887777\n" +
		"Maria,VENDIDO,11977776666"

	leads, err := p.Parse(text)

	assert.NoError(t, err)
	// A linha sem nome é pulada, nunca emitida pela metade.
	assert.Len(t, leads, 2)
	assert.Equal(t, "João Silva", leads[0].Name)
	assert.Equal(t, entity.StatusQuente, leads[0].Status)
	assert.Equal(t, "Maria", leads[1].Name)
	assert.Equal(t, entity.StatusVendido, leads[1].Status)
}

func TestParseQuotedCellWithComma(t *testing.T) {
	p := fixedParser()

	text := "nome,local\n" +
		"\"Silva, João\",Centro\n" +
		"'Costa, Ana',Jardins"

	leads, err := p.Parse(text)

	assert.NoError(t, err)
	assert.Len(t, leads, 2)
	assert.Equal(t, "Silva, João", leads[0].Name)
	assert.Equal(t, "Centro", leads[0].InterestLocation)
	assert.Equal(t, "Costa, Ana", leads[1].Name)
}

func TestParseEscapedQuote(t *testing.T) {
	p := fixedParser()

	text := "nome\n" +
		"'D\\'Avila'"

	leads, err := p.Parse(text)

	assert.NoError(t, err)
	assert.Len(t, leads, 1)
	assert.Equal(t, "DAvila", leads[0].Name) // aspas internas caem no saneamento
}

func TestParseHeaderOrderIndependence(t *testing.T) {
	p := fixedParser()

	a, err := p.Parse("nome,telefone,status\nJoão,1199999,Quente")
	assert.NoError(t, err)
	b, err := p.Parse("status,telefone,nome\nQuente,1199999,João")
	assert.NoError(t, err)

	assert.Equal(t, a[0].Name, b[0].Name)
	assert.Equal(t, a[0].Phone, b[0].Phone)
	assert.Equal(t, a[0].Status, b[0].Status)
}

func TestParseHeaderSynonyms(t *testing.T) {
	p := fixedParser()

	text := "Cliente,Fase,Celular,Salário Bruto,Bairro de interesse\n" +
		"Ana,Proposta,11955554444,\"R$ 12.500,50\",Moema"

	leads, err := p.Parse(text)

	assert.NoError(t, err)
	assert.Len(t, leads, 1)
	assert.Equal(t, "Ana", leads[0].Name)
	assert.Equal(t, entity.StatusQuente, leads[0].Status)
	assert.Equal(t, "11955554444", leads[0].Phone)
	assert.Equal(t, 12500.50, leads[0].GrossIncome)
	assert.Equal(t, "Moema", leads[0].InterestLocation)
}

func TestParseUnknownHeaderFallsBackToFirstColumn(t *testing.T) {
	p := fixedParser()

	text := "coluna_a,coluna_b\nRoberto,algo"

	leads, err := p.Parse(text)

	assert.NoError(t, err)
	assert.Len(t, leads, 1)
	assert.Equal(t, "Roberto", leads[0].Name)
	assert.Equal(t, entity.StatusFrio, leads[0].Status)
}

func TestParseSkipsRepeatedHeaderRow(t *testing.T) {
	p := fixedParser()

	text := "nome,status\nJoão,Quente\nnome,status\nMaria,Frio"

	leads, err := p.Parse(text)

	assert.NoError(t, err)
	assert.Len(t, leads, 2)
	assert.Equal(t, "João", leads[0].Name)
	assert.Equal(t, "Maria", leads[1].Name)
}

func TestParseRejectsHTML(t *testing.T) {
	p := fixedParser()

	_, err := p.Parse("<!DOCTYPE html><html><body>login</body></html>")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = p.Parse("alguma coisa\n<html>erro</html>")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseEmptyInput(t *testing.T) {
	p := fixedParser()

	leads, err := p.Parse("")
	assert.NoError(t, err)
	assert.Empty(t, leads)

	leads, err = p.Parse("\n   \n\t\n")
	assert.NoError(t, err)
	assert.Empty(t, leads)
}

func TestParseIDsAreDeterministic(t *testing.T) {
	p := fixedParser()
	expectedMilli := p.Now().UnixMilli()

	leads, err := p.Parse("nome\nJoão\nMaria")

	assert.NoError(t, err)
	assert.Len(t, leads, 2)
	assert.Equal(t, "imported-1748779200000-1", leads[0].ID)
	assert.Equal(t, "imported-1748779200000-2", leads[1].ID)
	assert.Equal(t, expectedMilli, leads[0].CreatedAt.UnixMilli())
	assert.True(t, entity.IsImported(leads[0].ID))
}

func TestParseStatusCaseInsensitive(t *testing.T) {
	p := fixedParser()

	text := "nome,status\nA,QUENTE\nB,quente\nC,Em Visita\nD,desconhecido"

	leads, err := p.Parse(text)

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusQuente, leads[0].Status)
	assert.Equal(t, entity.StatusQuente, leads[1].Status)
	assert.Equal(t, entity.StatusQuente, leads[2].Status)
	assert.Equal(t, entity.StatusFrio, leads[3].Status)
}

func TestParseShortRowSkipped(t *testing.T) {
	p := fixedParser()

	// Nome na terceira coluna; linha com menos colunas não tem fonte de nome.
	text := "status,telefone,nome\nQuente,1199999\nFrio,1188888,Maria"

	leads, err := p.Parse(text)

	assert.NoError(t, err)
	assert.Len(t, leads, 1)
	assert.Equal(t, "Maria", leads[0].Name)
}

func TestParseMiddleEmptyCellPreserved(t *testing.T) {
	p := fixedParser()

	text := "nome,telefone,status\nJoão,,Quente"

	leads, err := p.Parse(text)

	assert.NoError(t, err)
	assert.Len(t, leads, 1)
	assert.Equal(t, "", leads[0].Phone)
	assert.Equal(t, entity.StatusQuente, leads[0].Status)
}

func TestParseLenientFloat(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"R$ 5.000,00", 5000.00},
		{"1.234,56", 1234.56},
		{"5000", 5000},
		{"3.5", 3.5},
		{"R$ 950", 950},
		{"", 0},
		{"abc", 0},
		{"sem renda", 0},
		{"-100", -100},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ParseLenientFloat(c.raw), "raw=%q", c.raw)
	}
}
