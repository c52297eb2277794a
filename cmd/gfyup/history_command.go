package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"gfyup/internal/history"
)

type historyRow struct {
	RunID      string  `json:"run_id"`
	Source     string  `json:"source"`
	Start      string  `json:"start,omitempty"`
	End        string  `json:"end,omitempty"`
	Identifier string  `json:"gfyname,omitempty"`
	URL        string  `json:"url,omitempty"`
	State      string  `json:"state"`
	ErrorKind  string  `json:"error_kind,omitempty"`
	Error      string  `json:"error,omitempty"`
	Polls      int     `json:"polls"`
	StartedAt  string  `json:"started_at"`
	Seconds    float64 `json:"duration_seconds"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent uploads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("upload history is disabled in the configuration")
			}
			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				rows := make([]historyRow, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, toHistoryRow(e))
				}
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No uploads recorded in %s\n", store.Path())
				return nil
			}
			columns := []tableColumn{
				{header: "Started"},
				{header: "State", style: historyStateKind},
				{header: "Source"},
				{header: "Trim"},
				{header: "URL"},
				{header: "Duration", align: alignRight},
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.StartedAt.Local().Format("2006-01-02 15:04:05"),
					string(e.State),
					e.SourcePath,
					formatTrim(e.Start, e.End),
					dashIfEmpty(e.ShareURL),
					formatDuration(e.Duration()),
				})
			}
			fmt.Fprintln(out, renderTable(columns, rows, shouldColorize(out)))
			fmt.Fprintf(out, "History: %s\n", store.Path())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of uploads to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func toHistoryRow(e history.Entry) historyRow {
	return historyRow{
		RunID:      e.RunID,
		Source:     e.SourcePath,
		Start:      e.Start,
		End:        e.End,
		Identifier: e.Identifier,
		URL:        e.ShareURL,
		State:      string(e.State),
		ErrorKind:  e.ErrorKind,
		Error:      e.ErrorMessage,
		Polls:      e.Polls,
		StartedAt:  e.StartedAt.UTC().Format(time.RFC3339),
		Seconds:    e.Duration().Seconds(),
	}
}

func formatTrim(start, end string) string {
	if start == "" && end == "" {
		return "-"
	}
	return dashIfEmpty(start) + " → " + dashIfEmpty(end)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Minute {
		return strconv.FormatFloat(d.Seconds(), 'f', 1, 64) + "s"
	}
	return d.Round(time.Second).String()
}

func dashIfEmpty(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
