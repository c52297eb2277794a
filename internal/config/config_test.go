package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"gfyup/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("GFYUP_API_BASE_URL", "")
	t.Setenv("GFYUP_FFMPEG", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantHistory := filepath.Join(tempHome, ".local", "share", "gfyup", "history.db")
	if cfg.History.Path != wantHistory {
		t.Fatalf("unexpected history path: got %q want %q", cfg.History.Path, wantHistory)
	}
	if !filepath.IsAbs(cfg.Workflow.OutputPath) || filepath.Base(cfg.Workflow.OutputPath) != "out.mp4" {
		t.Fatalf("unexpected output path: %q", cfg.Workflow.OutputPath)
	}
	if cfg.API.BaseURL != "https://api.gfycat.com/v1" {
		t.Fatalf("unexpected api base url: %q", cfg.API.BaseURL)
	}
	if cfg.API.Resource != "gfycats" {
		t.Fatalf("unexpected api resource: %q", cfg.API.Resource)
	}
	if cfg.EncoderBinary() != "ffmpeg" {
		t.Fatalf("unexpected encoder binary: %q", cfg.EncoderBinary())
	}
	if cfg.PollInterval() != 5*time.Second {
		t.Fatalf("unexpected poll interval: %s", cfg.PollInterval())
	}
	if cfg.MaxWait() != 30*time.Minute {
		t.Fatalf("unexpected max wait: %s", cfg.MaxWait())
	}
	if cfg.Workflow.PollRetries != 3 {
		t.Fatalf("unexpected poll retries: %d", cfg.Workflow.PollRetries)
	}
	if cfg.Workflow.BackgroundUpload {
		t.Fatal("expected background upload disabled by default")
	}
	if cfg.UploadTimeout() != 0 {
		t.Fatalf("expected no upload timeout by default, got %s", cfg.UploadTimeout())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(filepath.Dir(cfg.History.Path))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected history directory to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "gfyup.toml")
	t.Setenv("GFYUP_API_BASE_URL", "")
	t.Setenv("GFYUP_FFMPEG", "")

	type payload struct {
		API struct {
			BaseURL  string `toml:"base_url"`
			Resource string `toml:"resource"`
		} `toml:"api"`
		Workflow struct {
			OutputPath   string `toml:"output_path"`
			PollInterval int    `toml:"poll_interval"`
			MaxWait      int    `toml:"max_wait"`
		} `toml:"workflow"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.API.BaseURL = "https://example.com/v1/"
	custom.API.Resource = "/clips/"
	custom.Workflow.OutputPath = filepath.Join(tempDir, "work", "clip.mp4")
	custom.Workflow.PollInterval = 2
	custom.Workflow.MaxWait = 0
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.API.BaseURL != "https://example.com/v1" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Resource != "clips" {
		t.Fatalf("expected resource slashes trimmed, got %q", cfg.API.Resource)
	}
	if cfg.PollInterval() != 2*time.Second {
		t.Fatalf("expected poll interval 2s, got %s", cfg.PollInterval())
	}
	if cfg.MaxWait() != 0 {
		t.Fatalf("expected unlimited max wait, got %s", cfg.MaxWait())
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lower-cased log format, got %q", cfg.Logging.Format)
	}
	if cfg.API.FiledropURL != config.Default().API.FiledropURL {
		t.Fatalf("expected default filedrop url, got %q", cfg.API.FiledropURL)
	}
}

func TestEnvOverridesEndpointsAndEncoder(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GFYUP_API_BASE_URL", "http://127.0.0.1:9999/v1")
	t.Setenv("GFYUP_FILEDROP_URL", "http://127.0.0.1:9999/drop")
	t.Setenv("GFYUP_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:9999/v1" {
		t.Errorf("expected base url from env, got %q", cfg.API.BaseURL)
	}
	if cfg.API.FiledropURL != "http://127.0.0.1:9999/drop" {
		t.Errorf("expected filedrop url from env, got %q", cfg.API.FiledropURL)
	}
	if cfg.EncoderBinary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("expected encoder from env, got %q", cfg.EncoderBinary())
	}
}

func TestNotificationsTopic(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GFYUP_NTFY_TOPIC", " https://ntfy.example/clips ")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Notifications.NtfyTopic != "https://ntfy.example/clips" {
		t.Fatalf("expected trimmed topic from env, got %q", cfg.Notifications.NtfyTopic)
	}
	if cfg.Notifications.RequestTimeout != config.Default().Notifications.RequestTimeout {
		t.Fatalf("expected default ntfy timeout, got %d", cfg.Notifications.RequestTimeout)
	}

	bad := config.Default()
	bad.Notifications.NtfyTopic = "clips"
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "notifications.ntfy_topic") {
		t.Fatalf("expected ntfy_topic validation error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	for _, section := range []string{"[api]", "[encoder]", "[workflow]", "[history]", "[notifications]", "[logging]"} {
		if !strings.Contains(string(contents), section) {
			t.Fatalf("sample config missing %s section", section)
		}
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad scheme", func(c *config.Config) { c.API.BaseURL = "ftp://example.com" }},
		{"missing host", func(c *config.Config) { c.API.FiledropURL = "https://" }},
		{"nested resource", func(c *config.Config) { c.API.Resource = "a/b" }},
		{"zero request timeout", func(c *config.Config) { c.API.RequestTimeout = 0 }},
		{"negative upload timeout", func(c *config.Config) { c.API.UploadTimeout = -1 }},
		{"zero poll interval", func(c *config.Config) { c.Workflow.PollInterval = 0 }},
		{"negative max wait", func(c *config.Config) { c.Workflow.MaxWait = -5 }},
		{"negative retries", func(c *config.Config) { c.Workflow.PollRetries = -1 }},
		{"empty output", func(c *config.Config) { c.Workflow.OutputPath = " " }},
		{"bad level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
