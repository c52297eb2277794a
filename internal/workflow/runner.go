package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"gfyup/internal/fileutil"
	"gfyup/internal/history"
	"gfyup/internal/logging"
	"gfyup/internal/media/trim"
	"gfyup/internal/services"
)

// Runner executes upload jobs.
type Runner struct {
	opts     Options
	trimmer  Trimmer
	remote   Remote
	recorder Recorder
	reporter Reporter
	logger   *slog.Logger
}

// NewRunner wires a Runner. recorder and reporter may be nil.
func NewRunner(opts Options, trimmer Trimmer, remote Remote, recorder Recorder, reporter Reporter) *Runner {
	opts = opts.withDefaults()
	if reporter == nil {
		reporter = ReporterFunc(func(Event) {})
	}
	return &Runner{
		opts:     opts,
		trimmer:  trimmer,
		remote:   remote,
		recorder: recorder,
		reporter: reporter,
		logger:   logging.NewComponentLogger(opts.Logger, "workflow"),
	}
}

// Run executes job and blocks until the remote service reports the upload
// complete, an error occurs, or ctx is canceled. The input is validated
// before any lock, file, history row or network request is created.
func (r *Runner) Run(ctx context.Context, job Job) (Result, error) {
	started := time.Now()
	job = normalizeJob(job)

	outputPath, err := r.validate(job)
	if err != nil {
		return Result{}, err
	}

	runID := r.opts.NewRunID()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	lock, err := acquireOutputLock(outputPath)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			logger.Warn("release output lock failed", logging.Error(unlockErr))
		}
	}()

	result := Result{RunID: runID, OutputPath: outputPath}
	r.recordBegin(ctx, logger, job, result, started)

	logger.Info("upload run started",
		logging.String(logging.FieldEventType, "run_started"),
		logging.String("input", job.InputPath),
		logging.String("output", outputPath),
		logging.Bool("background_upload", r.opts.BackgroundUpload),
	)

	err = r.execute(ctx, job, &result)
	result.Elapsed = time.Since(started)
	r.recordFinish(ctx, logger, result, err)

	if err != nil {
		logger.Error("upload run failed",
			logging.String(logging.FieldEventType, "run_failed"),
			logging.String(logging.FieldErrorKind, services.Kind(err)),
			logging.Error(err),
		)
		return result, err
	}
	logger.Info("upload run complete",
		logging.String(logging.FieldEventType, "run_completed"),
		logging.String(logging.FieldIdentifier, result.Identifier),
		logging.Int("polls", result.Polls),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func normalizeJob(job Job) Job {
	job.InputPath = strings.TrimSpace(job.InputPath)
	job.Start = strings.TrimSpace(job.Start)
	job.End = strings.TrimSpace(job.End)
	return job
}

func (r *Runner) validate(job Job) (string, error) {
	if job.InputPath == "" {
		return "", services.Wrap(services.ErrInput, stagePrepare, "validate input", "input file is required", nil)
	}
	inputInfo, err := fileutil.RequireRegularFile(job.InputPath)
	if err != nil {
		return "", services.Wrap(services.ErrInput, stagePrepare, "validate input", "", err)
	}
	outputPath, err := filepath.Abs(r.opts.OutputPath)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, stagePrepare, "resolve output", r.opts.OutputPath, err)
	}
	if outInfo, statErr := os.Stat(outputPath); statErr == nil && os.SameFile(inputInfo, outInfo) {
		return "", services.Wrap(services.ErrInput, stagePrepare, "validate input",
			fmt.Sprintf("input %s is the output file", job.InputPath), nil)
	}
	return outputPath, nil
}

func (r *Runner) execute(ctx context.Context, job Job, result *Result) error {
	trimmed, err := r.prepare(ctx, job, result.OutputPath)
	if err != nil {
		return err
	}
	result.Trimmed = trimmed

	ticketCtx := services.WithStage(ctx, stageTicket)
	ticket, err := r.remote.RequestTicket(ticketCtx)
	if err != nil {
		return err
	}
	result.Identifier = ticket.Name
	result.URL = r.remote.ShareURL(ticket.Name)

	logging.WithContext(ticketCtx, r.logger).Info("ticket received",
		logging.String(logging.FieldEventType, "ticket_received"),
		logging.String(logging.FieldIdentifier, ticket.Name),
	)
	r.report(ctx, Event{
		Milestone:  MilestoneUploadStarted,
		Identifier: result.Identifier,
		URL:        result.URL,
		Message:    "Starting upload to " + result.URL,
	})

	var polls int
	if r.opts.BackgroundUpload {
		polls, err = r.uploadInBackground(ctx, job, result)
	} else {
		polls, err = r.uploadThenPoll(ctx, job, result)
	}
	result.Polls = polls
	if err != nil {
		return err
	}

	r.report(ctx, Event{
		Milestone:  MilestoneEncodeFinished,
		Identifier: result.Identifier,
		URL:        result.URL,
		Message:    "Encoding finished! Finished gfycat at: " + result.URL,
	})
	return nil
}

func (r *Runner) prepare(ctx context.Context, job Job, outputPath string) (bool, error) {
	req := trim.Request{Input: job.InputPath, Output: outputPath, Start: job.Start, End: job.End}
	if req.HasBounds() {
		r.report(ctx, Event{
			Milestone: MilestonePrepared,
			Message:   fmt.Sprintf("Cutting file %s into output %s", job.InputPath, outputPath),
		})
	}

	trimmed, err := r.trimmer.Trim(services.WithStage(ctx, "trim"), req)
	if err != nil || trimmed {
		return trimmed, err
	}

	r.report(ctx, Event{
		Milestone: MilestonePrepared,
		Message:   fmt.Sprintf("Copying %s to %s", job.InputPath, outputPath),
	})
	if err := fileutil.CopyFileVerified(job.InputPath, outputPath); err != nil {
		return false, services.Wrap(services.ErrEnvironment, stagePrepare, "copy input", outputPath, err)
	}
	return false, nil
}

func (r *Runner) upload(ctx context.Context, result *Result) error {
	ctx = services.WithStage(ctx, stageUpload)
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("upload started",
		logging.String(logging.FieldEventType, "upload_started"),
		logging.String(logging.FieldIdentifier, result.Identifier),
	)
	if err := r.remote.Upload(ctx, result.Identifier, result.OutputPath); err != nil {
		return err
	}
	logger.Info("upload finished",
		logging.String(logging.FieldEventType, "upload_finished"),
		logging.String(logging.FieldIdentifier, result.Identifier),
	)
	r.report(ctx, Event{
		Milestone:  MilestoneUploadFinished,
		Identifier: result.Identifier,
		URL:        result.URL,
		Message:    "Upload finished. Waiting for encoding to finish.",
	})
	return nil
}

func (r *Runner) uploadThenPoll(ctx context.Context, job Job, result *Result) (int, error) {
	if err := r.upload(ctx, result); err != nil {
		return 0, err
	}
	return r.pollUntilComplete(ctx, result.Identifier, job.Verbose)
}

func (r *Runner) uploadInBackground(ctx context.Context, job Job, result *Result) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	var polls int

	g.Go(func() error {
		return r.upload(gctx, result)
	})
	g.Go(func() error {
		n, err := r.pollUntilComplete(gctx, result.Identifier, job.Verbose)
		polls = n
		return err
	})

	err := g.Wait()
	return polls, err
}

func (r *Runner) report(ctx context.Context, ev Event) {
	if ev.RunID == "" {
		ev.RunID, _ = services.RunIDFromContext(ctx)
	}
	r.reporter.Report(ev)
}

func (r *Runner) recordBegin(ctx context.Context, logger *slog.Logger, job Job, result Result, started time.Time) {
	if r.recorder == nil {
		return
	}
	err := r.recorder.Begin(ctx, history.Entry{
		RunID:      result.RunID,
		SourcePath: job.InputPath,
		Start:      job.Start,
		End:        job.End,
		OutputPath: result.OutputPath,
		StartedAt:  started,
	})
	if err != nil {
		logger.Warn("record run start failed", logging.Error(err))
	}
}

func (r *Runner) recordFinish(ctx context.Context, logger *slog.Logger, result Result, runErr error) {
	if r.recorder == nil {
		return
	}
	outcome := history.Outcome{
		Identifier: result.Identifier,
		ShareURL:   result.URL,
		State:      history.StateComplete,
		Polls:      result.Polls,
	}
	if runErr != nil {
		outcome.State = history.StateFailed
		if errors.Is(runErr, context.Canceled) {
			outcome.State = history.StateCanceled
		}
		outcome.ErrorKind = services.Kind(runErr)
		outcome.ErrorMessage = runErr.Error()
	}
	if err := r.recorder.Finish(context.WithoutCancel(ctx), result.RunID, outcome); err != nil {
		logger.Warn("record run outcome failed", logging.Error(err))
	}
}
