package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/briefing-portal/internal/briefing"
	"github.com/bobmcallan/briefing-portal/internal/common"
	"github.com/bobmcallan/briefing-portal/internal/config"
	"github.com/bobmcallan/briefing-portal/internal/dashboard"
	"github.com/bobmcallan/briefing-portal/internal/gemini"
	"github.com/bobmcallan/briefing-portal/internal/handlers"
	"github.com/bobmcallan/briefing-portal/internal/mcp"
	"github.com/bobmcallan/briefing-portal/internal/watchlist"
)

// App holds all application components and dependencies.
type App struct {
	Config    *config.Config
	Logger    *common.Logger
	Watchlist *watchlist.Store
	Dashboard *dashboard.Controller

	// HTTP handlers
	PageHandler      *handlers.PageHandler
	HealthHandler    *handlers.HealthHandler
	VersionHandler   *handlers.VersionHandler
	DashboardHandler *handlers.DashboardHandler
	APIHandler       *handlers.DashboardAPIHandler
	MCPHandler       *mcp.Handler
}

// New initializes the application with a Gemini-backed briefing service.
func New(ctx context.Context, cfg *config.Config, logger *common.Logger) (*App, error) {
	gen, err := gemini.NewClient(ctx, cfg.Gemini, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	svc := briefing.NewClient(gen, logger, briefing.WithLocale(cfg.LocaleTag()))
	return NewWithService(cfg, logger, svc), nil
}

// NewWithService initializes the application around an existing briefing
// service.
func NewWithService(cfg *config.Config, logger *common.Logger, svc dashboard.Service) *App {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	a.Watchlist = watchlist.NewStoreFromSeeds(cfg.Dashboard.Watchlist)
	a.Dashboard = dashboard.NewController(a.Watchlist, svc, logger,
		dashboard.WithErrorMessage(cfg.Dashboard.BriefingErrorMessage),
	)

	a.initHandlers()

	logger.Info().
		Strs("watchlist", a.Watchlist.Symbols()).
		Str("model", cfg.Gemini.Model).
		Str("locale", cfg.LocaleTag().String()).
		Msg("application initialization complete")

	return a
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.PageHandler = handlers.NewPageHandler(a.Logger, a.Config.IsDevMode())
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.DashboardHandler = handlers.NewDashboardHandler(a.Logger, a.PageHandler, a.Dashboard)
	a.APIHandler = handlers.NewDashboardAPIHandler(a.Logger, a.Dashboard)
	a.MCPHandler = mcp.NewHandler(a.Dashboard, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
