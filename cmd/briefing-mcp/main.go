package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/briefing-portal/internal/briefing"
	"github.com/bobmcallan/briefing-portal/internal/common"
	"github.com/bobmcallan/briefing-portal/internal/config"
	"github.com/bobmcallan/briefing-portal/internal/dashboard"
	"github.com/bobmcallan/briefing-portal/internal/gemini"
	"github.com/bobmcallan/briefing-portal/internal/mcp"
	"github.com/bobmcallan/briefing-portal/internal/watchlist"
)

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for desktop MCP clients)")
	configFile := flag.String("config", "config/briefing-portal.toml", "Path to config file")
	port := flag.Int("port", 0, "Streamable HTTP port (overrides config)")
	flag.Parse()

	var paths []string
	if _, err := os.Stat(*configFile); err == nil {
		paths = append(paths, *configFile)
	}
	cfg, err := config.LoadFromFiles(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	config.ApplyFlagOverrides(cfg, *port, "")

	if issues := cfg.Validate(); len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "config: %s\n", issue)
		}
		os.Exit(1)
	}

	// Console output goes to stderr, which keeps stdout free for the stdio transport.
	logger := common.NewLoggerFromConfig(common.LoggingConfig{
		Level:      cfg.Logging.Level,
		Outputs:    cfg.Logging.Outputs,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})

	gen, err := gemini.NewClient(context.Background(), cfg.Gemini, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create gemini client")
		os.Exit(1)
	}

	dash := dashboard.NewController(
		watchlist.NewStoreFromSeeds(cfg.Dashboard.Watchlist),
		briefing.NewClient(gen, logger, briefing.WithLocale(cfg.LocaleTag())),
		logger,
		dashboard.WithErrorMessage(cfg.Dashboard.BriefingErrorMessage),
	)

	mcpServer := mcp.NewServer(dash, logger)

	if *stdio {
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	logger.Info().Str("address", addr).Msg("starting MCP streamable HTTP")

	if err := httpServer.Start(addr); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}
