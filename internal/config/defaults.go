package config

// DefaultBriefingErrorMessage is shown when a briefing request fails.
const DefaultBriefingErrorMessage = "简报生成失败。请检查 API 密钥或重试。"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4250,
			Host: "localhost",
		},
		Gemini: GeminiConfig{
			Model:          "gemini-3-flash-preview",
			Locale:         "zh-Hans",
			TimeoutSeconds: 120,
		},
		Dashboard: DashboardConfig{
			BriefingErrorMessage: DefaultBriefingErrorMessage,
			Watchlist: []WatchlistSeed{
				{Symbol: "BTC", Name: "Bitcoin", AssetType: "crypto"},
				{Symbol: "NVDA", Name: "Nvidia", AssetType: "stock"},
				{Symbol: "XAU", Name: "Gold", AssetType: "commodity"},
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "text",
			Outputs: []string{"console"},
		},
	}
}
