package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want LeadStatus
	}{
		{"Quente", StatusQuente},
		{"QUENTE", StatusQuente},
		{"em visita", StatusQuente},
		{"Proposta enviada", StatusQuente},
		{"vendido", StatusVendido},
		{"Contrato assinado", StatusVendido},
		{"fechado", StatusVendido},
		{"qualificado", StatusSegmentado},
		{"morno", StatusSegmentado},
		{"perdido", StatusDesqualifica},
		{"arquivado", StatusDesqualifica},
		{"novo", StatusFrio},
		{"", StatusFrio},
		{"qualquer coisa", StatusFrio},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyStatus(c.raw), "raw=%q", c.raw)
	}
}

func TestClassifyStatusCanonicalRoundTrip(t *testing.T) {
	// Valores canônicos precisam sobreviver à reclassificação: o
	// classificador roda em todo create, patch e leitura do banco.
	all := []LeadStatus{StatusFrio, StatusSegmentado, StatusQuente, StatusVendido, StatusDesqualifica}

	for _, s := range all {
		assert.Equal(t, s, ClassifyStatus(string(s)), "status=%q", s)
	}
}

func TestCleanPhone(t *testing.T) {
	assert.Equal(t, "11999998888", CleanPhone("(11) 99999-8888"))
	assert.Equal(t, "5511988887777", CleanPhone("+55 11 98888-7777"))
	assert.Equal(t, "", CleanPhone("sem número"))
}

func TestSafeNumber(t *testing.T) {
	assert.Equal(t, 10.5, SafeNumber(10.5))
	assert.Equal(t, 0.0, SafeNumber(-3))
}

func TestIDPrefixes(t *testing.T) {
	assert.True(t, IsImported("imported-1748779200000-1"))
	assert.False(t, IsImported("abc-123"))
	assert.True(t, IsTemporary("temp-new-5"))
	assert.False(t, IsTemporary("imported-1-1"))
}

func TestDenylistNormalization(t *testing.T) {
	s := &AISettings{ExcludedNumbers: "(11) 98888-7777, 11988887777, 123, , (11) 98888-7777"}

	list := s.Denylist()

	// Curtos demais caem fora; duplicatas normalizadas contam uma vez.
	assert.Equal(t, []string{"11988887777"}, list)

	s.SetDenylist(list)
	assert.Equal(t, "11988887777", s.ExcludedNumbers)
}

func TestProfileHasWebhook(t *testing.T) {
	p := &Profile{}
	assert.False(t, p.HasWebhook())

	p.WhatsAppWebhookURL = "null"
	assert.False(t, p.HasWebhook())

	p.WhatsAppWebhookURL = "https://hook.example.com/send"
	assert.True(t, p.HasWebhook())
}
