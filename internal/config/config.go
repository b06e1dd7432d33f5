package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Config represents the application configuration.
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Dashboard   DashboardConfig `toml:"dashboard"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// GeminiConfig configures the generative AI backend.
type GeminiConfig struct {
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	Locale         string `toml:"locale"` // BCP 47 tag for generated text, e.g. "zh-Hans"
	TimeoutSeconds int    `toml:"timeout_seconds"`
	BaseURL        string `toml:"base_url"` // optional override of the Gemini API endpoint
}

// DashboardConfig contains dashboard behaviour settings.
type DashboardConfig struct {
	BriefingErrorMessage string          `toml:"briefing_error_message"`
	Watchlist            []WatchlistSeed `toml:"watchlist"`
}

// WatchlistSeed is one asset the watchlist starts with.
type WatchlistSeed struct {
	Symbol    string `toml:"symbol"`
	Name      string `toml:"name"`
	AssetType string `toml:"asset_type"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> .env -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// A file that lists watchlist entries replaces the seed list.
		var probe struct {
			Dashboard struct {
				Watchlist []WatchlistSeed `toml:"watchlist"`
			} `toml:"dashboard"`
		}
		if err := toml.Unmarshal(data, &probe); err == nil && probe.Dashboard.Watchlist != nil {
			config.Dashboard.Watchlist = nil
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	loadDotEnv(".env")
	applyEnvOverrides(config)

	return config, nil
}

// loadDotEnv reads KEY=value pairs from a dotenv file into the process
// environment. Variables that are already set win. A missing file is ignored.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

// applyEnvOverrides applies BRIEFING_* and Gemini key environment overrides.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("BRIEFING_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("BRIEFING_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("BRIEFING_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// First non-empty key wins. VITE_GEMINI_API_KEY keeps .env files written
	// for the browser build usable.
	for _, name := range []string{"GEMINI_API_KEY", "BRIEFING_GEMINI_API_KEY", "GOOGLE_API_KEY", "VITE_GEMINI_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			config.Gemini.APIKey = key
			break
		}
	}
	if model := os.Getenv("BRIEFING_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if locale := os.Getenv("BRIEFING_LOCALE"); locale != "" {
		config.Gemini.Locale = locale
	}
	if baseURL := os.Getenv("BRIEFING_GEMINI_BASE_URL"); baseURL != "" {
		config.Gemini.BaseURL = baseURL
	}

	if level := os.Getenv("BRIEFING_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("BRIEFING_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsDevMode reports whether the portal runs with the dev environment.
func (c *Config) IsDevMode() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "dev"
}

// BaseURL returns the externally reachable portal URL.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
}

// LocaleTag parses Gemini.Locale, falling back to Simplified Chinese.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Gemini.Locale)
	if err != nil {
		return language.SimplifiedChinese
	}
	return tag
}

// Validate returns human-readable problems with mandatory settings.
func (c *Config) Validate() []string {
	var issues []string

	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		issues = append(issues, "gemini.api_key is required (or set GEMINI_API_KEY)")
	}
	if strings.TrimSpace(c.Gemini.Model) == "" {
		issues = append(issues, "gemini.model must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if _, err := language.Parse(c.Gemini.Locale); err != nil {
		issues = append(issues, fmt.Sprintf("gemini.locale %q is not a valid language tag", c.Gemini.Locale))
	}
	for i, seed := range c.Dashboard.Watchlist {
		if strings.TrimSpace(seed.Symbol) == "" {
			issues = append(issues, fmt.Sprintf("dashboard.watchlist[%d].symbol must not be empty", i))
		}
	}

	return issues
}
