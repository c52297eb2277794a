package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAPI() error {
	for key, value := range map[string]string{
		"api.base_url":     c.API.BaseURL,
		"api.filedrop_url": c.API.FiledropURL,
		"api.share_url":    c.API.ShareURL,
	} {
		if err := validateHTTPURL(key, value); err != nil {
			return err
		}
	}
	if strings.Contains(c.API.Resource, "/") {
		return fmt.Errorf("api.resource must be a single path segment, got %q", c.API.Resource)
	}
	if c.API.RequestTimeout <= 0 {
		return errors.New("api.request_timeout must be positive (seconds)")
	}
	if c.API.UploadTimeout < 0 {
		return errors.New("api.upload_timeout must be >= 0 (0 disables the limit)")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if strings.TrimSpace(c.Workflow.OutputPath) == "" {
		return errors.New("workflow.output_path must be set")
	}
	if c.Workflow.PollInterval <= 0 {
		return errors.New("workflow.poll_interval must be positive (seconds)")
	}
	if c.Workflow.MaxWait < 0 {
		return errors.New("workflow.max_wait must be >= 0 (0 disables the limit)")
	}
	if c.Workflow.PollRetries < 0 {
		return errors.New("workflow.poll_retries must be >= 0")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.NtfyTopic != "" {
		if err := validateHTTPURL("notifications.ntfy_topic", c.Notifications.NtfyTopic); err != nil {
			return err
		}
	}
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

func validateHTTPURL(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s must be set", key)
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", key, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s is missing a host: %q", key, value)
	}
	return nil
}
