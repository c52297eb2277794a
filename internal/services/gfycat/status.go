package gfycat

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gfyup/internal/services"
)

const (
	pollStage    = "poll"
	taskComplete = "complete"
)

// Status is a single snapshot of the remote transcoding job. An empty Task
// means the state is not yet known.
type Status struct {
	Task string `json:"task"`
	Name string `json:"gfyname"`
	Time *int   `json:"time"`
	Raw  string `json:"-"`
}

// Terminal reports whether the remote job has finished.
func (s Status) Terminal() bool {
	return strings.EqualFold(strings.TrimSpace(s.Task), taskComplete)
}

// Describe renders a short progress line for a non-terminal status.
func (s Status) Describe() string {
	task := strings.TrimSpace(s.Task)
	if task == "" {
		return "Waiting for the remote service to report progress"
	}
	label := cases.Title(language.English).String(strings.ReplaceAll(task, "_", " "))
	if s.Time != nil {
		return fmt.Sprintf("Remote task: %s (%ds)", label, *s.Time)
	}
	return "Remote task: " + label
}

// PollOnce fetches the current status of the job for identifier.
func (c *Client) PollOnce(ctx context.Context, identifier string) (Status, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Status{}, services.Wrap(services.ErrInput, pollStage, "validate", "identifier required", nil)
	}
	endpoint, err := c.resourceURL("fetch", "status", identifier)
	if err != nil {
		return Status{}, services.Wrap(services.ErrConfiguration, pollStage, "build url", "", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Status{}, services.Wrap(services.ErrConfiguration, pollStage, "new request", "", err)
	}
	req.Header.Set("Accept", "application/json")

	var status Status
	body, err := c.doJSON(ctx, c.httpClient, req, pollStage, &status)
	if err != nil {
		return Status{}, err
	}
	status.Raw = strings.TrimSpace(string(body))
	return status, nil
}
