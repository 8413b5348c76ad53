package usecase

import (
	"time"

	"github.com/triggerlab/trigger-crm/internal/entity"
)

// TimeFilter recorta os leads por período de criação.
type TimeFilter struct {
	// Mode: "all", "year" ou "month".
	Mode  string
	Year  int
	Month time.Month
}

func (f TimeFilter) matches(t time.Time) bool {
	switch f.Mode {
	case "year":
		return t.Year() == f.Year
	case "month":
		return t.Year() == f.Year && t.Month() == f.Month
	default:
		return true
	}
}

// FunnelStats é o resumo do dashboard: contagens do funil, taxa de
// conversão e os agregados financeiros (VGV e comissão realizados nos
// vendidos; projeções somadas sobre o radar de alto potencial).
type FunnelStats struct {
	Total     int `json:"total"`
	Won       int `json:"won"`
	Lost      int `json:"lost"`
	Servicing int `json:"servicing"`
	Hot       int `json:"hot"`

	ConversionRate float64 `json:"conversion_rate"`

	VGVTotal        float64 `json:"vgv_total"`
	CommissionTotal float64 `json:"commission_total"`

	ExpectedSale       float64 `json:"expected_sale"`
	ExpectedCommission float64 `json:"expected_commission"`
	RadarCount         int     `json:"radar_count"`
}

// ComputeFunnelStats agrega a lista em memória. O filtro de tempo vale para
// o funil e o realizado; o radar projeta sobre todos os leads marcados,
// independente do período.
func ComputeFunnelStats(leads []entity.Lead, filter TimeFilter) FunnelStats {
	var stats FunnelStats

	for _, lead := range leads {
		if lead.IsHighPotential {
			stats.RadarCount++
			stats.ExpectedSale += lead.ExpectedSaleValue
			stats.ExpectedCommission += lead.ExpectedCommissionValue
		}

		if !filter.matches(lead.CreatedAt) {
			continue
		}
		stats.Total++

		switch lead.Status {
		case entity.StatusVendido:
			stats.Won++
			stats.VGVTotal += lead.ExpectedSaleValue
			stats.CommissionTotal += lead.ExpectedCommissionValue
		case entity.StatusDesqualifica:
			stats.Lost++
		case entity.StatusSegmentado:
			stats.Servicing++
		case entity.StatusQuente:
			stats.Hot++
		}
	}

	if stats.Total > 0 {
		stats.ConversionRate = float64(stats.Won) / float64(stats.Total) * 100
	}
	return stats
}
