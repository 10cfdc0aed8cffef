package config

const (
	defaultConfigPath     = "~/.config/heifconv/config.toml"
	defaultStateDir       = "~/.local/share/heifconv"
	defaultHistoryName    = "history.db"
	defaultHistoryEnabled = true
	defaultJPEGQuality    = 100
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Convert: Convert{
			JPEGQuality: defaultJPEGQuality,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
