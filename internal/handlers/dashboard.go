package handlers

import (
	"context"
	"net/http"

	"github.com/bobmcallan/briefing-portal/internal/common"
	"github.com/bobmcallan/briefing-portal/internal/config"
	"github.com/bobmcallan/briefing-portal/internal/dashboard"
	"github.com/bobmcallan/briefing-portal/internal/models"
)

// Dashboard is the controller surface the HTTP layer drives.
type Dashboard interface {
	Snapshot() dashboard.Snapshot
	Add(symbol string) (models.WatchlistItem, bool)
	Remove(id string) bool
	Refresh(ctx context.Context) *dashboard.Refresh
	RefreshEvents(ctx context.Context) *dashboard.Refresh
}

// DashboardHandler serves the dashboard page.
type DashboardHandler struct {
	logger *common.Logger
	pages  *PageHandler
	dash   Dashboard
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(logger *common.Logger, pages *PageHandler, dash Dashboard) *DashboardHandler {
	return &DashboardHandler{logger: logger, pages: pages, dash: dash}
}

// ServeHTTP renders the dashboard at "/". Other paths are 404.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, "GET") {
		return
	}

	h.pages.Render(w, "dashboard.html", map[string]interface{}{
		"Page":     "dashboard",
		"Version":  config.GetVersion(),
		"Snapshot": h.dash.Snapshot(),
	})
}
