package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gfyup/internal/logging"
	"gfyup/internal/services"
)

var errMaxWait = errors.New("maximum wait exceeded")

// pollUntilComplete polls the status endpoint until the job is terminal. It
// returns the number of poll requests issued.
func (r *Runner) pollUntilComplete(ctx context.Context, identifier string, verbose bool) (int, error) {
	ctx = services.WithStage(ctx, stagePoll)
	if r.opts.MaxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, r.opts.MaxWait, errMaxWait)
		defer cancel()
	}
	logger := logging.WithContext(ctx, r.logger)

	var (
		polls    int
		failures int
		lastTask string
	)
	for {
		status, err := r.remote.PollOnce(ctx, identifier)
		polls++
		if err != nil {
			if stop := r.pollStopped(ctx); stop != nil {
				return polls, stop
			}
			if !services.Retryable(err) || failures >= r.opts.PollRetries {
				return polls, err
			}
			failures++
			logger.Warn("status poll failed; retrying",
				logging.String(logging.FieldEventType, "poll_retry"),
				logging.Int("attempt", failures),
				logging.Int("max_retries", r.opts.PollRetries),
				logging.Error(err),
			)
		} else {
			failures = 0
			if verbose {
				r.report(ctx, Event{
					Milestone:  MilestonePollResponse,
					Identifier: identifier,
					Raw:        status.Raw,
					Message:    "Upload progress response " + status.Raw,
				})
			}
			if status.Terminal() {
				logger.Info("remote encode complete",
					logging.String(logging.FieldEventType, "encode_complete"),
					logging.String(logging.FieldIdentifier, identifier),
					logging.Int("polls", polls),
				)
				return polls, nil
			}
			if status.Task != "" && status.Task != lastTask {
				lastTask = status.Task
				r.report(ctx, Event{
					Milestone:  MilestoneEncoding,
					Identifier: identifier,
					Raw:        status.Raw,
					Message:    status.Describe(),
				})
			}
		}

		logger.Debug("waiting before next poll", logging.Duration("interval", r.opts.PollInterval))
		if err := sleepContext(ctx, r.opts.PollInterval); err != nil {
			if stop := r.pollStopped(ctx); stop != nil {
				return polls, stop
			}
			return polls, err
		}
	}
}

// pollStopped maps a done context to the error the poll loop should return.
func (r *Runner) pollStopped(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}
	cause := context.Cause(ctx)
	if errors.Is(cause, errMaxWait) {
		return services.Wrap(services.ErrTimeout, stagePoll, "wait for encode",
			fmt.Sprintf("no terminal status after %s", r.opts.MaxWait), nil)
	}
	if errors.Is(cause, context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, stagePoll, "wait for encode", "deadline exceeded", cause)
	}
	return fmt.Errorf("%s: interrupted: %w", stagePoll, cause)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
