package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"gfyup/internal/workflow"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "FAIL"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func colorizeText(text string, kind statusKind, colorize bool) string {
	if !colorize {
		return text
	}
	if color := statusKindColor(kind); color != "" {
		return color + text + ansiReset
	}
	return text
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// progressPrinter renders workflow milestones as terminal lines. It is safe
// for concurrent use.
type progressPrinter struct {
	mu       sync.Mutex
	out      io.Writer
	verbose  bool
	colorize bool
}

func newProgressPrinter(out io.Writer, verbose, colorize bool) *progressPrinter {
	return &progressPrinter{out: out, verbose: verbose, colorize: colorize}
}

func (p *progressPrinter) Report(ev workflow.Event) {
	kind, show := p.classify(ev.Milestone)
	if !show || ev.Message == "" {
		return
	}
	line := colorizeText(ev.Message, kind, p.colorize)

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, line)
}

func (p *progressPrinter) classify(m workflow.Milestone) (statusKind, bool) {
	switch m {
	case workflow.MilestonePollResponse, workflow.MilestoneUploadProgress:
		return statusInfo, p.verbose
	case workflow.MilestoneUploadStarted:
		return statusInfo, true
	case workflow.MilestoneEncodeFinished:
		return statusOK, true
	case workflow.MilestoneEncoding:
		return statusWarn, true
	default:
		return -1, true
	}
}
