// Package sheet converte texto tabular exportado de planilhas (CSV ou
// colado com tabs) em leads normalizados. Função pura: nenhum I/O aqui,
// quem busca o texto é a integração de sheets.
package sheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/triggerlab/trigger-crm/internal/entity"
)

// ErrInvalidFormat indica que o texto recebido é uma página HTML, não dados.
// Acontece quando o fetch upstream devolve página de erro no lugar do CSV.
var ErrInvalidFormat = &FormatError{Message: "conteúdo inválido (HTML detectado)"}

type FormatError struct {
	Message string
}

func (e *FormatError) Error() string { return e.Message }

// FieldSynonyms define as substrings reconhecidas no cabeçalho para cada
// campo lógico. A tabela padrão é português imobiliário; outras locales
// entram substituindo a tabela, não mexendo no parser.
type FieldSynonyms struct {
	Name     []string
	Status   []string
	Phone    []string
	Email    []string
	Income   []string
	Location []string
}

var DefaultSynonyms = FieldSynonyms{
	Name:     []string{"nome", "lead", "cliente"},
	Status:   []string{"situação", "status", "fase"},
	Phone:    []string{"telefone", "celular", "whatsapp", "fone"},
	Email:    []string{"email", "e-mail"},
	Income:   []string{"renda", "salário"},
	Location: []string{"local", "bairro", "interesse"},
}

type Parser struct {
	Synonyms FieldSynonyms
	// Now alimenta createdAt e os ids sintetizados; injetável para testes.
	Now func() time.Time
}

func NewParser() *Parser {
	return &Parser{Synonyms: DefaultSynonyms, Now: time.Now}
}

// columnIndexes é o resultado da interpretação do cabeçalho: índice da
// primeira célula que contém algum sinônimo do campo, ou -1.
type columnIndexes struct {
	name, status, phone, email, income, location int
}

// Parse converte o blob de texto em leads. Linha a linha: a primeira linha
// não-vazia é cabeçalho, o resto são dados. Linha inválida é pulada, nunca
// emitida pela metade; o único erro de entrada inteira é HTML no lugar de
// dados.
func (p *Parser) Parse(text string) ([]entity.Lead, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.Contains(text, "<html") {
		return nil, ErrInvalidFormat
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return []entity.Lead{}, nil
	}

	headers := parseLine(lines[0])
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	idx := p.resolveColumns(headers)

	// Toda linha precisa de uma fonte de nome: sem cabeçalho reconhecido,
	// cai na coluna 0.
	nameIdx := idx.name
	if nameIdx == -1 {
		nameIdx = 0
	}

	now := p.Now()
	leads := make([]entity.Lead, 0, len(lines)-1)

	for i := 1; i < len(lines); i++ {
		columns := parseLine(lines[i])
		if len(columns) <= nameIdx {
			continue
		}

		name := columns[nameIdx]
		if name == "" || strings.ToLower(name) == "nome" {
			// Cabeçalho duplicado no meio dos dados.
			continue
		}

		rawIncome := "0"
		if idx.income != -1 && idx.income < len(columns) {
			rawIncome = columns[idx.income]
		}

		leads = append(leads, entity.Lead{
			ID:               fmt.Sprintf("imported-%d-%d", now.UnixMilli(), i),
			Name:             stripQuotes(name),
			Status:           entity.ClassifyStatus(cell(columns, idx.status)),
			Phone:            stripQuotes(cell(columns, idx.phone)),
			Email:            stripQuotes(cell(columns, idx.email)),
			InterestLocation: stripQuotes(cell(columns, idx.location)),
			GrossIncome:      ParseLenientFloat(rawIncome),
			DownPayment:      0,
			Summary:          "Importado",
			CreatedAt:        now,
		})
	}
	return leads, nil
}

func (p *Parser) resolveColumns(headers []string) columnIndexes {
	return columnIndexes{
		name:     findColumn(headers, p.Synonyms.Name),
		status:   findColumn(headers, p.Synonyms.Status),
		phone:    findColumn(headers, p.Synonyms.Phone),
		email:    findColumn(headers, p.Synonyms.Email),
		income:   findColumn(headers, p.Synonyms.Income),
		location: findColumn(headers, p.Synonyms.Location),
	}
}

func findColumn(headers, synonyms []string) int {
	for i, h := range headers {
		for _, s := range synonyms {
			if strings.Contains(h, s) {
				return i
			}
		}
	}
	return -1
}

func cell(columns []string, idx int) string {
	if idx < 0 || idx >= len(columns) {
		return ""
	}
	return columns[idx]
}

func stripQuotes(s string) string {
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}

// parseLine tokeniza uma linha nos dois modos: presença de tab indica
// colagem direta de planilha e o split é estrito em tabs; caso contrário a
// linha é CSV com aspas opcionais. O mesmo tokenizador vale para cabeçalho
// e dados, senão os índices de coluna desalinham.
func parseLine(line string) []string {
	if strings.Contains(line, "\t") {
		cells := strings.Split(line, "\t")
		for i, c := range cells {
			cells[i] = strings.TrimSpace(c)
		}
		return cells
	}
	return splitCommaLine(line)
}

// splitCommaLine percorre a linha da esquerda para a direita: cada célula é
// um trecho entre aspas simples ou duplas (com escape \' e \") ou uma
// sequência solta até a vírgula. Célula vazia no meio é preservada; resto
// de linha só com espaços não vira célula.
func splitCommaLine(line string) []string {
	var cells []string
	i, n := 0, len(line)

	for i <= n {
		for i < n && (line[i] == ' ' || line[i] == '\t' || line[i] == '\r') {
			i++
		}
		if strings.TrimSpace(line[i:]) == "" && len(cells) > 0 {
			break
		}
		if i >= n && len(cells) == 0 {
			break
		}

		var value string
		if i < n && (line[i] == '\'' || line[i] == '"') {
			quote := line[i]
			i++
			var b strings.Builder
			for i < n {
				c := line[i]
				if c == '\\' && i+1 < n {
					next := line[i+1]
					if next == quote {
						b.WriteByte(quote)
					} else {
						b.WriteByte(c)
						b.WriteByte(next)
					}
					i += 2
					continue
				}
				if c == quote {
					i++
					break
				}
				b.WriteByte(c)
				i++
			}
			value = b.String()
		} else {
			start := i
			for i < n && line[i] != ',' {
				i++
			}
			value = strings.TrimSpace(line[start:i])
		}

		for i < n && (line[i] == ' ' || line[i] == '\t' || line[i] == '\r') {
			i++
		}
		cells = append(cells, value)
		if i < n && line[i] == ',' {
			i++
			continue
		}
		break
	}
	return cells
}

// ParseLenientFloat é a coerção numérica tolerante do import: remove tudo
// que não é dígito, vírgula, ponto ou sinal; vírgula presente é tratada
// como separador decimal (pontos de milhar caem fora). Qualquer coisa que
// ainda não parseia vira zero: import resiliente vale mais que validação
// estrita aqui.
func ParseLenientFloat(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
		s = strings.ReplaceAll(s, ",", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v {
		return 0
	}
	return v
}
