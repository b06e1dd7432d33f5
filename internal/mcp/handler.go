// Package mcp exposes the dashboard as Model Context Protocol tools.
package mcp

import (
	"context"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/briefing-portal/internal/common"
	"github.com/bobmcallan/briefing-portal/internal/config"
	"github.com/bobmcallan/briefing-portal/internal/dashboard"
	"github.com/bobmcallan/briefing-portal/internal/models"
)

// ServerName is the name announced to MCP clients.
const ServerName = "briefing-portal"

// Dashboard is the controller surface the tools drive.
type Dashboard interface {
	Snapshot() dashboard.Snapshot
	Add(symbol string) (models.WatchlistItem, bool)
	Remove(id string) bool
	Refresh(ctx context.Context) *dashboard.Refresh
	RefreshEvents(ctx context.Context) *dashboard.Refresh
}

// NewServer creates an MCP server with every dashboard tool registered.
func NewServer(dash Dashboard, logger *common.Logger) *mcpserver.MCPServer {
	mcpSrv := mcpserver.NewMCPServer(
		ServerName,
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)
	count := RegisterTools(mcpSrv, dash, logger)

	if logger != nil {
		logger.Info().Int("tools", count).Msg("MCP tools registered")
	}
	return mcpSrv
}

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates a stateless streamable HTTP handler for the dashboard tools.
func NewHandler(dash Dashboard, logger *common.Logger) *Handler {
	streamable := mcpserver.NewStreamableHTTPServer(NewServer(dash, logger),
		mcpserver.WithStateLess(true),
	)
	return &Handler{streamable: streamable, logger: logger}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
