package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeAPI()
	c.normalizeEncoder()
	if err := c.normalizeWorkflow(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeNotifications()
	return c.normalizeLogging()
}

func (c *Config) normalizeAPI() {
	if value, ok := os.LookupEnv("GFYUP_API_BASE_URL"); ok && strings.TrimSpace(value) != "" {
		c.API.BaseURL = value
	}
	if value, ok := os.LookupEnv("GFYUP_FILEDROP_URL"); ok && strings.TrimSpace(value) != "" {
		c.API.FiledropURL = value
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultAPIBaseURL
	}
	c.API.Resource = strings.Trim(strings.TrimSpace(c.API.Resource), "/")
	if c.API.Resource == "" {
		c.API.Resource = defaultAPIResource
	}
	c.API.FiledropURL = strings.TrimSpace(c.API.FiledropURL)
	if c.API.FiledropURL == "" {
		c.API.FiledropURL = defaultFiledropURL
	}
	c.API.ShareURL = strings.TrimRight(strings.TrimSpace(c.API.ShareURL), "/")
	if c.API.ShareURL == "" {
		c.API.ShareURL = defaultShareURL
	}
	if c.API.RequestTimeout == 0 {
		c.API.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeEncoder() {
	if value, ok := os.LookupEnv("GFYUP_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.Encoder.Binary = value
	}
	c.Encoder.Binary = strings.TrimSpace(c.Encoder.Binary)
	if c.Encoder.Binary == "" {
		c.Encoder.Binary = defaultEncoderBinary
	}
}

func (c *Config) normalizeWorkflow() error {
	var err error
	if strings.TrimSpace(c.Workflow.OutputPath) == "" {
		c.Workflow.OutputPath = defaultOutputPath
	}
	if c.Workflow.OutputPath, err = expandPath(strings.TrimSpace(c.Workflow.OutputPath)); err != nil {
		return fmt.Errorf("workflow.output_path: %w", err)
	}
	if c.Workflow.PollInterval == 0 {
		c.Workflow.PollInterval = defaultPollInterval
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath()
	}
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	if value, ok := os.LookupEnv("GFYUP_NTFY_TOPIC"); ok && strings.TrimSpace(value) != "" {
		c.Notifications.NtfyTopic = value
	}
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		var err error
		if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
			return fmt.Errorf("logging.log_dir: %w", err)
		}
	}
	return nil
}
