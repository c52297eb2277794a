package testsupport

import (
	"path/filepath"
	"testing"

	"gfyup/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Polling is tightened so workflow tests finish quickly.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Workflow.OutputPath = filepath.Join(base, "work", "out.mp4")
	cfgVal.Workflow.PollInterval = 1
	cfgVal.History.Path = filepath.Join(base, "history", "history.db")
	cfgVal.Logging.Dir = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithRemote points the API (/v1), filedrop (/filedrop) and share (/share)
// endpoints at a fake server rooted at serverURL.
func WithRemote(serverURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.BaseURL = serverURL + "/v1"
		b.cfg.API.FiledropURL = serverURL + "/filedrop"
		b.cfg.API.ShareURL = serverURL + "/share"
	}
}

// WithEncoder overrides the encoder binary on the test config.
func WithEncoder(binary string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Encoder.Binary = binary
	}
}

// WithoutHistory disables the history database.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Workflow.OutputPath))
}
