package config

const (
	defaultConfigPath      = "~/.config/gfyup/config.toml"
	defaultAPIBaseURL      = "https://api.gfycat.com/v1"
	defaultAPIResource     = "gfycats"
	defaultFiledropURL     = "https://filedrop.gfycat.com"
	defaultShareURL        = "https://gfycat.com"
	defaultRequestTimeout  = 30
	defaultEncoderBinary   = "ffmpeg"
	defaultOutputPath      = "out.mp4"
	defaultPollInterval    = 5
	defaultMaxWait         = 1800
	defaultPollRetries     = 3
	defaultHistoryFallback = "~/.local/share/gfyup/history.db"
	defaultNtfyTimeout     = 10
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultAPIBaseURL,
			Resource:       defaultAPIResource,
			FiledropURL:    defaultFiledropURL,
			ShareURL:       defaultShareURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Encoder: Encoder{
			Binary: defaultEncoderBinary,
		},
		Workflow: Workflow{
			OutputPath:   defaultOutputPath,
			PollInterval: defaultPollInterval,
			MaxWait:      defaultMaxWait,
			PollRetries:  defaultPollRetries,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
