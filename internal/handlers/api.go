package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/bobmcallan/briefing-portal/internal/common"
	"github.com/bobmcallan/briefing-portal/internal/dashboard"
	"github.com/bobmcallan/briefing-portal/internal/market"
	"github.com/bobmcallan/briefing-portal/internal/models"
	"github.com/bobmcallan/briefing-portal/internal/watchlist"
)

// DashboardAPIHandler serves the JSON API behind the dashboard page.
type DashboardAPIHandler struct {
	logger *common.Logger
	dash   Dashboard
}

// NewDashboardAPIHandler creates a new dashboard API handler.
func NewDashboardAPIHandler(logger *common.Logger, dash Dashboard) *DashboardAPIHandler {
	return &DashboardAPIHandler{logger: logger, dash: dash}
}

type addSymbolRequest struct {
	Symbol string `json:"symbol" validate:"required"`
}

type watchlistResponse struct {
	Added     bool                 `json:"added"`
	Item      models.WatchlistItem `json:"item"`
	Dashboard dashboard.Snapshot   `json:"dashboard"`
}

type sessionResponse struct {
	NextSession market.Session   `json:"nextSession"`
	Sessions    []market.Session `json:"sessions"`
	Quote       string           `json:"quote"`
	Today       string           `json:"today"`
}

// HandleSnapshot handles GET /api/dashboard.
func (h *DashboardAPIHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	WriteJSON(w, http.StatusOK, h.dash.Snapshot())
}

// HandleAddSymbol handles POST /api/watchlist. A duplicate symbol is not an
// error: the existing item is returned with added=false.
func (h *DashboardAPIHandler) HandleAddSymbol(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req addSymbolRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if watchlist.Normalize(req.Symbol) == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	item, added := h.dash.Add(req.Symbol)
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	WriteJSON(w, status, watchlistResponse{Added: added, Item: item, Dashboard: h.dash.Snapshot()})
}

// HandleRemoveSymbol handles DELETE /api/watchlist/{id}.
func (h *DashboardAPIHandler) HandleRemoveSymbol(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "DELETE") {
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/watchlist/"), "/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "watchlist item id is required")
		return
	}

	if !h.dash.Remove(id) {
		WriteError(w, http.StatusNotFound, "watchlist item not found")
		return
	}
	WriteJSON(w, http.StatusOK, h.dash.Snapshot())
}

// HandleRefresh handles POST /api/refresh. With ?wait=true the response
// is sent after both requests resolve; otherwise it returns 202 at once.
func (h *DashboardAPIHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	h.refresh(w, r, h.dash.Refresh)
}

// HandleRefreshEvents handles POST /api/events/refresh.
func (h *DashboardAPIHandler) HandleRefreshEvents(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	h.refresh(w, r, h.dash.RefreshEvents)
}

func (h *DashboardAPIHandler) refresh(w http.ResponseWriter, r *http.Request, start func(ctx context.Context) *dashboard.Refresh) {
	if !h.dash.Snapshot().HasWatchlist() {
		WriteJSON(w, http.StatusOK, h.dash.Snapshot())
		return
	}

	pending := start(r.Context())
	if r.URL.Query().Get("wait") == "true" {
		pending.Wait()
		WriteJSON(w, http.StatusOK, h.dash.Snapshot())
		return
	}
	WriteJSON(w, http.StatusAccepted, h.dash.Snapshot())
}

// HandleSession handles GET /api/session.
func (h *DashboardAPIHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	snap := h.dash.Snapshot()
	WriteJSON(w, http.StatusOK, sessionResponse{
		NextSession: snap.NextSession,
		Sessions:    market.Sessions(),
		Quote:       snap.Quote,
		Today:       snap.Today,
	})
}
