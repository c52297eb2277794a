package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gfyup/internal/config"
	"gfyup/internal/fileutil"
	"gfyup/internal/history"
	"gfyup/internal/logging"
	"gfyup/internal/media/trim"
	"gfyup/internal/notifications"
	"gfyup/internal/services"
	"gfyup/internal/services/gfycat"
	"gfyup/internal/workflow"
)

type uploadFlags struct {
	start      string
	end        string
	verbose    bool
	output     string
	background bool
}

func bindUploadFlags(cmd *cobra.Command, flags *uploadFlags) {
	cmd.Flags().StringVarP(&flags.start, "start", "s", "", "Start time of the clip (ffmpeg time syntax, e.g. 00:00:05)")
	cmd.Flags().StringVarP(&flags.end, "end", "e", "", "End time of the clip (ffmpeg time syntax)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Print every poll response and upload progress")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Override the intermediate output file path")
	cmd.Flags().BoolVar(&flags.background, "background-upload", false, "Start polling while the upload is still running")
}

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var flags uploadFlags
	cmd := &cobra.Command{
		Use:   "upload <input>",
		Short: "Trim (optionally) and upload a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, ctx, args[0], flags)
		},
	}
	bindUploadFlags(cmd, &flags)
	return cmd
}

func runUpload(cmd *cobra.Command, ctx *commandContext, input string, flags uploadFlags) error {
	input = strings.TrimSpace(input)
	if _, err := fileutil.RequireRegularFile(input); err != nil {
		return services.Wrap(services.ErrInput, "prepare", "validate input", "", err)
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	runCfg := *cfg
	if output := strings.TrimSpace(flags.output); output != "" {
		expanded, err := config.ExpandPath(output)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		runCfg.Workflow.OutputPath = expanded
	}
	if cmd.Flags().Changed("background-upload") {
		runCfg.Workflow.BackgroundUpload = flags.background
	}
	if err := runCfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := ctx.logger(flags.verbose)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := newProgressPrinter(out, flags.verbose, shouldColorize(out))

	clientOpts := []gfycat.Option{gfycat.WithLogger(logger)}
	if flags.verbose {
		clientOpts = append(clientOpts, gfycat.WithUploadProgress(workflow.UploadProgress(printer)))
	}
	client := gfycat.NewClient(gfycat.Config{
		BaseURL:        runCfg.API.BaseURL,
		Resource:       runCfg.API.Resource,
		FiledropURL:    runCfg.API.FiledropURL,
		ShareURL:       runCfg.API.ShareURL,
		RequestTimeout: runCfg.RequestTimeout(),
		UploadTimeout:  runCfg.UploadTimeout(),
	}, clientOpts...)

	var recorder workflow.Recorder
	if runCfg.History.Enabled {
		store, err := history.Open(runCfg.History.Path)
		if err != nil {
			logger.Warn("upload history unavailable; continuing without it",
				logging.String(logging.FieldPath, runCfg.History.Path),
				logging.Error(err),
			)
		} else {
			defer store.Close()
			recorder = store
		}
	}

	runner := workflow.NewRunner(
		workflow.OptionsFromConfig(&runCfg, logger),
		trim.New(runCfg.EncoderBinary(), logger),
		client,
		recorder,
		printer,
	)

	result, err := runner.Run(cmd.Context(), workflow.Job{
		InputPath: input,
		Start:     flags.start,
		End:       flags.end,
		Verbose:   flags.verbose,
	})
	notifyOutcome(cmd.Context(), notifications.NewService(&runCfg), logger, input, result, err)
	return err
}

func notifyOutcome(ctx context.Context, notifier notifications.Service, logger *slog.Logger, input string, result workflow.Result, runErr error) {
	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, services.ErrInput) {
		return
	}
	event := notifications.EventUploadCompleted
	payload := notifications.Payload{"source": filepath.Base(input)}
	if runErr != nil {
		event = notifications.EventUploadFailed
		payload["error"] = runErr
	} else {
		payload["url"] = result.URL
		payload["elapsed"] = result.Elapsed
	}
	if err := notifier.Publish(context.WithoutCancel(ctx), event, payload); err != nil {
		logging.WarnWithContext(ctx, logger, "notification failed",
			logging.String(logging.FieldEventType, string(event)),
			logging.Error(err),
		)
	}
}
