package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/triggerlab/trigger-crm/internal/entity"
	"github.com/triggerlab/trigger-crm/internal/usecase"
)

func leadAt(status entity.LeadStatus, year int, month time.Month) entity.Lead {
	return entity.Lead{
		Status:    status,
		CreatedAt: time.Date(year, month, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestComputeFunnelStatsAll(t *testing.T) {
	leads := []entity.Lead{
		leadAt(entity.StatusFrio, 2025, time.January),
		leadAt(entity.StatusQuente, 2025, time.February),
		leadAt(entity.StatusSegmentado, 2025, time.March),
		leadAt(entity.StatusDesqualifica, 2025, time.March),
		{
			Status:                  entity.StatusVendido,
			ExpectedSaleValue:       500000,
			ExpectedCommissionValue: 25000,
			CreatedAt:               time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	stats := usecase.ComputeFunnelStats(leads, usecase.TimeFilter{Mode: "all"})

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Won)
	assert.Equal(t, 1, stats.Lost)
	assert.Equal(t, 1, stats.Servicing)
	assert.Equal(t, 1, stats.Hot)
	assert.Equal(t, 20.0, stats.ConversionRate)
	assert.Equal(t, 500000.0, stats.VGVTotal)
	assert.Equal(t, 25000.0, stats.CommissionTotal)
}

func TestComputeFunnelStatsYearFilter(t *testing.T) {
	leads := []entity.Lead{
		leadAt(entity.StatusQuente, 2024, time.December),
		leadAt(entity.StatusQuente, 2025, time.January),
	}

	stats := usecase.ComputeFunnelStats(leads, usecase.TimeFilter{Mode: "year", Year: 2025})

	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Hot)
}

func TestComputeFunnelStatsMonthFilter(t *testing.T) {
	leads := []entity.Lead{
		leadAt(entity.StatusVendido, 2025, time.May),
		leadAt(entity.StatusVendido, 2025, time.June),
	}

	stats := usecase.ComputeFunnelStats(leads, usecase.TimeFilter{
		Mode: "month", Year: 2025, Month: time.June,
	})

	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Won)
	assert.Equal(t, 100.0, stats.ConversionRate)
}

// O radar de alto potencial ignora o filtro de tempo: é carteira, não período.
func TestComputeFunnelStatsRadarIgnoresFilter(t *testing.T) {
	leads := []entity.Lead{
		{
			Status:                  entity.StatusQuente,
			IsHighPotential:         true,
			ExpectedSaleValue:       300000,
			ExpectedCommissionValue: 15000,
			CreatedAt:               time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	stats := usecase.ComputeFunnelStats(leads, usecase.TimeFilter{Mode: "year", Year: 2025})

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 1, stats.RadarCount)
	assert.Equal(t, 300000.0, stats.ExpectedSale)
	assert.Equal(t, 15000.0, stats.ExpectedCommission)
}

func TestComputeFunnelStatsEmpty(t *testing.T) {
	stats := usecase.ComputeFunnelStats(nil, usecase.TimeFilter{Mode: "all"})

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.ConversionRate)
}
