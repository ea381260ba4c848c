package handler

import (
	"net/http"

	"github.com/catalyst/backend/internal/service"
)

// DashboardHandler serves the staff landing page data.
type DashboardHandler struct {
	stats service.StatsService
}

func NewDashboardHandler(stats service.StatsService) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// Show handles GET /admin/dashboard.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Dashboard(r.Context()))
}
