package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/triggerlab/trigger-crm/internal/entity"
	"github.com/triggerlab/trigger-crm/internal/infra/http/middleware"
	"github.com/triggerlab/trigger-crm/internal/usecase"
)

type DashboardHandler struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewDashboardHandler(leadRepo entity.LeadRepositoryInterface) *DashboardHandler {
	return &DashboardHandler{LeadRepo: leadRepo}
}

// HandleStats devolve o funil agregado. Query params: mode=all|year|month,
// year e month numéricos quando o modo pede.
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	leads, err := h.LeadRepo.ListByUser(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	filter := parseTimeFilter(r)
	stats := usecase.ComputeFunnelStats(leads, filter)
	writeJSON(w, http.StatusOK, stats)
}

func parseTimeFilter(r *http.Request) usecase.TimeFilter {
	now := time.Now()
	filter := usecase.TimeFilter{Mode: "all", Year: now.Year(), Month: now.Month()}

	switch r.URL.Query().Get("mode") {
	case "year":
		filter.Mode = "year"
	case "month":
		filter.Mode = "month"
	default:
		return filter
	}

	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		filter.Year = y
	}
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		filter.Month = time.Month(m)
	}
	return filter
}
