package config

// Default returns the repository default configuration. Values here match
// the embedded sample config.
func Default() Config {
	return Config{
		Server: Server{
			Bind: "127.0.0.1:7787",
		},
		Jellyfin: Jellyfin{
			URL:    "",
			APIKey: "",
			DryRun: true,
		},
		Storage: Storage{
			DataDir: "~/.local/share/curator",
		},
		Suggest: Suggest{
			EnableFranchise: true,
			EnableStudio:    true,
			EnableFormat:    true,
			EnableLength:    true,
			EnableAudience:  true,
			EnableMood:      true,
			MinGroupSize:    2,
			TopStudios:      20,
		},
		Workflow: Workflow{
			ScanInterval:    360,
			ShutdownTimeout: 15,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
