package preflight

import (
	"context"
	"net/http"
	"path/filepath"

	"gfyup/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem and network checks for the given config.
// Binary checks are reported separately by CheckSystemDeps.
func RunAll(ctx context.Context, cfg *config.Config, client *http.Client) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Output directory", outputDir(cfg.Workflow.OutputPath)))

	if cfg.History.Enabled && cfg.History.Path != "" {
		results = append(results, CheckDirectoryAccess("History directory", filepath.Dir(cfg.History.Path)))
	}

	results = append(results, CheckReachable(ctx, client, "Gfycat API", cfg.API.BaseURL))
	results = append(results, CheckReachable(ctx, client, "Filedrop", cfg.API.FiledropURL))

	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

func outputDir(outputPath string) string {
	dir := filepath.Dir(outputPath)
	if dir == "" {
		return "."
	}
	return dir
}
