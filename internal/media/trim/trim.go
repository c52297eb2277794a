package trim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"gfyup/internal/fileutil"
	"gfyup/internal/logging"
	"gfyup/internal/services"
)

const (
	stageName      = "trim"
	defaultBinary  = "ffmpeg"
	stderrTailSize = 2048
)

// Request describes a single clip operation. Empty Start or End means the
// bound is absent.
type Request struct {
	Input  string
	Output string
	Start  string
	End    string
}

// HasBounds reports whether the request asks for any clipping at all.
func (r Request) HasBounds() bool {
	return strings.TrimSpace(r.Start) != "" || strings.TrimSpace(r.End) != ""
}

// Args builds the encoder argument vector for the request.
func Args(req Request) []string {
	args := []string{"-y", "-i", req.Input}
	if start := strings.TrimSpace(req.Start); start != "" {
		args = append(args, "-ss", start)
	}
	if end := strings.TrimSpace(req.End); end != "" {
		args = append(args, "-to", end)
	}
	return append(args, "-c", "copy", req.Output)
}

// Trimmer runs the external encoder.
type Trimmer struct {
	binary string
	logger *slog.Logger
}

// New constructs a Trimmer for the given encoder binary.
func New(binary string, logger *slog.Logger) *Trimmer {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = defaultBinary
	}
	return &Trimmer{
		binary: binary,
		logger: logging.NewComponentLogger(logger, stageName),
	}
}

// Binary returns the encoder executable the trimmer invokes.
func (t *Trimmer) Binary() string {
	return t.binary
}

// Trim clips req.Input into req.Output. It returns false without starting
// a process when the request has no bounds.
func (t *Trimmer) Trim(ctx context.Context, req Request) (bool, error) {
	logger := logging.WithContext(ctx, t.logger)
	if !req.HasBounds() {
		logger.Debug("no start or end time specified, skipping encoder",
			logging.String(logging.FieldEventType, "trim_skipped"),
		)
		return false, nil
	}
	if strings.TrimSpace(req.Input) == "" || strings.TrimSpace(req.Output) == "" {
		return false, services.Wrap(services.ErrInput, stageName, "validate request", "input and output paths are required", nil)
	}

	args := Args(req)
	logger.Info("cutting clip",
		logging.String(logging.FieldEventType, "trim_started"),
		logging.String("input", req.Input),
		logging.String("output", req.Output),
	)
	logger.Debug("calling encoder",
		logging.String("binary", t.binary),
		logging.String("args", strings.Join(args, " ")),
	)

	if err := os.Remove(req.Output); err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, services.Wrap(services.ErrEnvironment, stageName, "clear output", req.Output, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.binary, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, services.Wrap(services.ErrExternalTool, stageName, "run encoder", "interrupted", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := fmt.Sprintf("%s exited with status %d", t.binary, exitErr.ExitCode())
			if tail := stderrTail(stderr.Bytes()); tail != "" {
				msg += ": " + tail
			}
			return false, services.Wrap(services.ErrExternalTool, stageName, "run encoder", msg, err)
		}
		return false, services.Wrap(services.ErrEnvironment, stageName, "start encoder",
			fmt.Sprintf("cannot run %q", t.binary), err)
	}

	info, err := fileutil.RequireNonEmptyFile(req.Output)
	if err != nil {
		return false, services.Wrap(services.ErrExternalTool, stageName, "verify output", "encoder produced no usable output", err)
	}

	logger.Info("clip ready",
		logging.String(logging.FieldEventType, "trim_completed"),
		logging.String(logging.FieldPath, req.Output),
		logging.Int64("bytes", info.Size()),
	)
	return true, nil
}

func stderrTail(data []byte) string {
	if len(data) > stderrTailSize {
		data = data[len(data)-stderrTailSize:]
	}
	return strings.TrimSpace(string(data))
}
