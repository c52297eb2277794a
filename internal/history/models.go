package history

import "time"

// State is the lifecycle state of a recorded run.
type State string

const (
	StateRunning  State = "running"
	StateComplete State = "complete"
	StateFailed   State = "failed"
	StateCanceled State = "canceled"
)

// Entry is one upload run.
type Entry struct {
	RunID        string
	SourcePath   string
	Start        string
	End          string
	OutputPath   string
	Identifier   string
	ShareURL     string
	State        State
	ErrorKind    string
	ErrorMessage string
	Polls        int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Outcome describes how a run ended.
type Outcome struct {
	Identifier   string
	ShareURL     string
	State        State
	ErrorKind    string
	ErrorMessage string
	Polls        int
}

// Duration returns the wall-clock length of a finished run, or zero.
func (e Entry) Duration() time.Duration {
	if e.FinishedAt.IsZero() || e.StartedAt.IsZero() {
		return 0
	}
	return e.FinishedAt.Sub(e.StartedAt)
}
