package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/briefing-portal/internal/common"
	"github.com/bobmcallan/briefing-portal/internal/config"
	"github.com/bobmcallan/briefing-portal/internal/market"
	"github.com/bobmcallan/briefing-portal/internal/watchlist"
)

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("failed to marshal result")
	}
	return textResult(string(out))
}

// RegisterTools adds the dashboard tools to s and returns how many were added.
func RegisterTools(s *server.MCPServer, dash Dashboard, logger *common.Logger) int {
	tools := []server.ServerTool{
		{Tool: GetDashboardTool(), Handler: GetDashboardHandler(dash)},
		{Tool: AddSymbolTool(), Handler: AddSymbolHandler(dash)},
		{Tool: RemoveSymbolTool(), Handler: RemoveSymbolHandler(dash)},
		{Tool: RefreshBriefingTool(), Handler: RefreshBriefingHandler(dash, logger)},
		{Tool: RefreshEventsTool(), Handler: RefreshEventsHandler(dash, logger)},
		{Tool: NextSessionTool(), Handler: NextSessionHandler(dash)},
		{Tool: VersionTool(), Handler: VersionToolHandler()},
	}
	s.AddTools(tools...)
	return len(tools)
}

func formatArg() mcp.ToolOption {
	return mcp.WithString("format",
		mcp.Description("Output format: markdown (default) or json"),
		mcp.Enum("markdown", "json"),
	)
}

func waitArg(what string) mcp.ToolOption {
	return mcp.WithBoolean("wait",
		mcp.Description(fmt.Sprintf("Wait for the %s to finish before returning (default true)", what)),
	)
}

// renderSnapshot writes the current dashboard as markdown or JSON.
func renderSnapshot(dash Dashboard, r mcp.CallToolRequest) *mcp.CallToolResult {
	snap := dash.Snapshot()
	if strings.EqualFold(r.GetString("format", "markdown"), "json") {
		return jsonResult(snap)
	}
	return textResult(FormatSnapshot(snap))
}

// GetDashboardTool returns the get_dashboard tool definition.
func GetDashboardTool() mcp.Tool {
	return mcp.NewTool("get_dashboard",
		mcp.WithDescription("Show the trader dashboard: watchlist, latest daily briefing, this week's economic events and the next session update."),
		formatArg(),
	)
}

// GetDashboardHandler returns the get_dashboard handler.
func GetDashboardHandler(dash Dashboard) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return renderSnapshot(dash, r), nil
	}
}

// AddSymbolTool returns the add_symbol tool definition.
func AddSymbolTool() mcp.Tool {
	return mcp.NewTool("add_symbol",
		mcp.WithDescription("Add a ticker symbol to the watchlist. Symbols are uppercased; duplicates are ignored."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Ticker symbol, e.g. AAPL, BTC, XAU")),
	)
}

// AddSymbolHandler returns the add_symbol handler.
func AddSymbolHandler(dash Dashboard) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol := watchlist.Normalize(r.GetString("symbol", ""))
		if symbol == "" {
			return errorResult("symbol is required"), nil
		}

		item, added := dash.Add(symbol)
		if !added {
			return textResult(fmt.Sprintf("%s is already on the watchlist (id %s).", item.Symbol, item.ID)), nil
		}
		return textResult(fmt.Sprintf("Added %s to the watchlist (id %s).", item.Symbol, item.ID)), nil
	}
}

// RemoveSymbolTool returns the remove_symbol tool definition.
func RemoveSymbolTool() mcp.Tool {
	return mcp.NewTool("remove_symbol",
		mcp.WithDescription("Remove an item from the watchlist by id or by symbol. Removing the last item clears the briefing and events."),
		mcp.WithString("id", mcp.Description("Watchlist item id")),
		mcp.WithString("symbol", mcp.Description("Ticker symbol, used when id is not given")),
	)
}

// RemoveSymbolHandler returns the remove_symbol handler.
func RemoveSymbolHandler(dash Dashboard) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := strings.TrimSpace(r.GetString("id", ""))
		symbol := watchlist.Normalize(r.GetString("symbol", ""))
		if id == "" && symbol == "" {
			return errorResult("id or symbol is required"), nil
		}

		if id == "" {
			for _, item := range dash.Snapshot().Watchlist {
				if item.Symbol == symbol {
					id = item.ID
					break
				}
			}
			if id == "" {
				return errorResult(fmt.Sprintf("%s is not on the watchlist", symbol)), nil
			}
		}

		if !dash.Remove(id) {
			return errorResult(fmt.Sprintf("watchlist item %s not found", id)), nil
		}
		return textResult(fmt.Sprintf("Removed %s. %d item(s) remain.", id, len(dash.Snapshot().Watchlist))), nil
	}
}

// RefreshBriefingTool returns the refresh_briefing tool definition.
func RefreshBriefingTool() mcp.Tool {
	return mcp.NewTool("refresh_briefing",
		mcp.WithDescription("Generate a new daily briefing and economic calendar for the watchlist using grounded web search. Takes up to a minute."),
		waitArg("briefing"),
		formatArg(),
	)
}

// RefreshBriefingHandler returns the refresh_briefing handler.
func RefreshBriefingHandler(dash Dashboard, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if len(dash.Snapshot().Watchlist) == 0 {
			return errorResult("the watchlist is empty; add a symbol first"), nil
		}
		pending := dash.Refresh(ctx)
		if !r.GetBool("wait", true) {
			return textResult("Refresh started. Call get_dashboard to see the result."), nil
		}
		pending.Wait()
		if logger != nil {
			logger.Debug().Msg("MCP refresh_briefing complete")
		}
		return renderSnapshot(dash, r), nil
	}
}

// RefreshEventsTool returns the refresh_events tool definition.
func RefreshEventsTool() mcp.Tool {
	return mcp.NewTool("refresh_events",
		mcp.WithDescription("Re-fetch this week's economic events for the watchlist without regenerating the briefing."),
		waitArg("calendar"),
		formatArg(),
	)
}

// RefreshEventsHandler returns the refresh_events handler.
func RefreshEventsHandler(dash Dashboard, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if len(dash.Snapshot().Watchlist) == 0 {
			return errorResult("the watchlist is empty; add a symbol first"), nil
		}
		pending := dash.RefreshEvents(ctx)
		if !r.GetBool("wait", true) {
			return textResult("Calendar refresh started. Call get_dashboard to see the result."), nil
		}
		pending.Wait()
		if logger != nil {
			logger.Debug().Msg("MCP refresh_events complete")
		}
		return renderSnapshot(dash, r), nil
	}
}

// NextSessionTool returns the get_next_session tool definition.
func NextSessionTool() mcp.Tool {
	return mcp.NewTool("get_next_session",
		mcp.WithDescription("Get the next scheduled pre-market update (European, US or Asian) and the trading quote of the day."),
	)
}

// NextSessionHandler returns the get_next_session handler.
func NextSessionHandler(dash Dashboard) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap := dash.Snapshot()
		return jsonResult(map[string]interface{}{
			"next_session": snap.NextSession,
			"sessions":     market.Sessions(),
			"quote":        snap.Quote,
			"today":        snap.Today,
		}), nil
	}
}

// VersionTool returns the mcp.Tool definition for the get_version tool.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get briefing-portal version. Use this to verify connectivity."),
	)
}

// VersionToolHandler returns the get_version handler.
func VersionToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(config.GetVersionInfo()), nil
	}
}
