package server

import (
	"net/http"

	"github.com/bobmcallan/briefing-portal/internal/handlers"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	api := s.app.APIHandler

	// Dashboard page; other non-API paths are 404
	mux.Handle("/", s.app.DashboardHandler)

	// Static files (CSS, JS)
	mux.HandleFunc("/static/", s.app.PageHandler.StaticFileHandler)

	// MCP endpoint (streamable HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// API routes
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)
	mux.HandleFunc("/api/dashboard", api.HandleSnapshot)
	mux.HandleFunc("/api/session", api.HandleSession)
	mux.HandleFunc("/api/refresh", api.HandleRefresh)
	mux.HandleFunc("/api/events/refresh", api.HandleRefreshEvents)
	mux.HandleFunc("/api/watchlist", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, api.HandleSnapshot, api.HandleAddSymbol)
	})
	mux.HandleFunc("/api/watchlist/", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceItem(w, r, nil, nil, api.HandleRemoveSymbol)
	})

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusNotFound, map[string]string{
		"error":   "Not Found",
		"message": "The requested endpoint does not exist",
	})
}
