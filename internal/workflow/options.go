package workflow

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gfyup/internal/config"
)

const (
	defaultOutputPath   = "out.mp4"
	defaultPollInterval = 5 * time.Second
)

// Options controls how a Runner drives a job.
type Options struct {
	OutputPath       string
	PollInterval     time.Duration
	MaxWait          time.Duration
	PollRetries      int
	BackgroundUpload bool
	Logger           *slog.Logger
	NewRunID         func() string
}

// OptionsFromConfig maps the workflow section of cfg onto Options.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		OutputPath:       cfg.Workflow.OutputPath,
		PollInterval:     cfg.PollInterval(),
		MaxWait:          cfg.MaxWait(),
		PollRetries:      cfg.Workflow.PollRetries,
		BackgroundUpload: cfg.Workflow.BackgroundUpload,
		Logger:           logger,
	}
}

func (o Options) withDefaults() Options {
	if o.OutputPath == "" {
		o.OutputPath = defaultOutputPath
	}
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.MaxWait < 0 {
		o.MaxWait = 0
	}
	if o.PollRetries < 0 {
		o.PollRetries = 0
	}
	if o.NewRunID == nil {
		o.NewRunID = uuid.NewString
	}
	return o
}
