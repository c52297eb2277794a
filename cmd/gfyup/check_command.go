package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"gfyup/internal/deps"
	"gfyup/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify binaries, directories and service reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureDirectories()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			binaries := preflight.CheckSystemDeps(cfg)
			client := &http.Client{Timeout: cfg.RequestTimeout()}
			results := preflight.RunAll(cmd.Context(), cfg, client)

			rows := make([][]string, 0, len(binaries)+len(results))
			for _, status := range binaries {
				kind := statusOK
				if !status.Available {
					kind = statusError
					if status.Optional {
						kind = statusWarn
					}
				}
				rows = append(rows, []string{
					status.Name,
					statusKindLabel(kind),
					status.Detail,
				})
			}
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				rows = append(rows, []string{
					result.Name,
					statusKindLabel(kind),
					result.Detail,
				})
			}
			columns := []tableColumn{
				{header: "Check"},
				{header: "Status", style: checkResultKind},
				{header: "Detail"},
			}
			fmt.Fprintln(out, renderTable(columns, rows, colorize))

			if len(deps.Missing(binaries)) > 0 || preflight.Failed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
