package workflow

import (
	"context"
	"time"

	"gfyup/internal/history"
	"gfyup/internal/media/trim"
	"gfyup/internal/services/gfycat"
)

// Stage names used in error messages and log context.
const (
	stagePrepare = "prepare"
	stageTicket  = "ticket"
	stageUpload  = "upload"
	stagePoll    = "poll"
)

// Job is the caller's request for a single run. Empty Start or End means the
// bound is absent.
type Job struct {
	InputPath string
	Start     string
	End       string
	Verbose   bool
}

// Result summarizes a completed run.
type Result struct {
	RunID      string
	Identifier string
	URL        string
	Trimmed    bool
	OutputPath string
	Elapsed    time.Duration
	Polls      int
}

// Milestone identifies an observable step of a run.
type Milestone string

const (
	MilestonePrepared       Milestone = "prepared"
	MilestoneUploadStarted  Milestone = "upload_started"
	MilestoneUploadProgress Milestone = "upload_progress"
	MilestoneUploadFinished Milestone = "upload_finished"
	MilestoneEncoding       Milestone = "encoding"
	MilestonePollResponse   Milestone = "poll_response"
	MilestoneEncodeFinished Milestone = "encode_finished"
)

// Event is delivered to a Reporter for every milestone.
type Event struct {
	Milestone  Milestone
	RunID      string
	Identifier string
	URL        string
	Message    string
	Raw        string
	Sent       int64
	Total      int64
}

// Reporter receives milestone events. Implementations must be safe for
// concurrent use when background upload is enabled.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Event)

// Report calls f(ev).
func (f ReporterFunc) Report(ev Event) { f(ev) }

// Trimmer clips the source media.
type Trimmer interface {
	Trim(ctx context.Context, req trim.Request) (bool, error)
}

// Remote is the hosting service.
type Remote interface {
	RequestTicket(ctx context.Context) (gfycat.Ticket, error)
	Upload(ctx context.Context, identifier, path string) error
	PollOnce(ctx context.Context, identifier string) (gfycat.Status, error)
	ShareURL(identifier string) string
}

// Recorder persists run history.
type Recorder interface {
	Begin(ctx context.Context, entry history.Entry) error
	Finish(ctx context.Context, runID string, outcome history.Outcome) error
}
