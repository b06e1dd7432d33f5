package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bobmcallan/briefing-portal/internal/app"
	"github.com/bobmcallan/briefing-portal/internal/common"
	"github.com/bobmcallan/briefing-portal/internal/config"
	"github.com/bobmcallan/briefing-portal/internal/server"
)

// configPaths is a custom flag type that allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles configPaths
	serverPort  = flag.Int("port", 0, "Server port (overrides config)")
	serverPortP = flag.Int("p", 0, "Server port (shorthand)")
	serverHost  = flag.String("host", "", "Server host (overrides config)")
	refreshNow  = flag.Bool("refresh", false, "Generate a briefing for the seed watchlist at startup")
	showVersion = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("briefing-portal %s\n", config.GetFullVersion())
		os.Exit(0)
	}

	// Merge port flags (shorthand takes precedence)
	finalPort := *serverPort
	if *serverPortP != 0 {
		finalPort = *serverPortP
	}

	if len(configFiles) == 0 {
		for _, path := range configSearchPaths() {
			if _, err := os.Stat(path); err == nil {
				configFiles = append(configFiles, path)
				break
			}
		}
	}

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI flag overrides (highest priority)
	config.ApplyFlagOverrides(cfg, finalPort, *serverHost)

	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Configuration error: mandatory fields are missing or invalid:")
		fmt.Fprintln(os.Stderr, "")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "See config/briefing-portal.toml for an example configuration.")
		fmt.Fprintln(os.Stderr, "Values can be set via TOML file, .env, BRIEFING_* / GEMINI_API_KEY environment variables, or CLI flags.")
		fmt.Fprintln(os.Stderr, "")
		os.Exit(1)
	}

	logger := setupLogger(cfg)

	logger.Info().
		Int("port", cfg.Server.Port).
		Str("host", cfg.Server.Host).
		Str("environment", cfg.Environment).
		Str("config_files", fmt.Sprintf("%v", configFiles)).
		Msg("configuration loaded")

	application, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to initialize application")
		os.Exit(1)
	}

	srv := server.New(application)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Str("error", err.Error()).Msg("server failed to start")
			os.Exit(1)
		}
	}()

	// Give goroutine a moment to start
	time.Sleep(100 * time.Millisecond)

	logger.Info().
		Str("url", cfg.BaseURL()).
		Msg("server ready")

	if *refreshNow {
		application.Dashboard.Refresh(context.Background())
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Str("error", err.Error()).Msg("server shutdown failed")
	}

	if err := application.Close(); err != nil {
		logger.Error().Str("error", err.Error()).Msg("application shutdown failed")
	}

	logger.Info().Msg("server stopped")
}

// configSearchPaths returns TOML files to auto-discover (first match wins).
// Binary-relative paths are tried before the working directory.
func configSearchPaths() []string {
	candidates := []string{
		"briefing-portal.toml",
		"config/briefing-portal.toml",
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, "briefing-portal.toml"),
		filepath.Join(binDir, "config", "briefing-portal.toml"),
	}
	paths = append(paths, candidates...)

	// Deduplicate via absolute path.
	seen := make(map[string]bool, len(paths))
	deduped := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// setupLogger creates an arbor logger based on config.
func setupLogger(cfg *config.Config) *common.Logger {
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:      cfg.Logging.Level,
		Outputs:    cfg.Logging.Outputs,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}
