package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// StubBehavior selects what a stub encoder does when invoked.
type StubBehavior int

const (
	// StubWritesOutput writes a small payload to the last argument and exits 0.
	StubWritesOutput StubBehavior = iota
	// StubFails prints to stderr and exits 1.
	StubFails
	// StubWritesNothing exits 0 without creating the output.
	StubWritesNothing
)

// StubPayload is the content a StubWritesOutput encoder writes.
const StubPayload = "trimmed-by-stub"

// StubEncoder writes an executable shell script that records its argv, one
// argument per line, and behaves according to behavior. It returns the
// script path and the path of the argv record.
func StubEncoder(t testing.TB, behavior StubBehavior) (string, string) {
	t.Helper()

	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	script := filepath.Join(dir, "ffmpeg")

	var action string
	switch behavior {
	case StubFails:
		action = "echo 'Invalid duration specification for ss' >&2\nexit 1\n"
	case StubWritesNothing:
		action = "exit 0\n"
	default:
		action = fmt.Sprintf("for last; do :; done\nprintf '%%s' '%s' > \"$last\"\nexit 0\n", StubPayload)
	}
	body := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > '%s'\n%s", argsFile, action)
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub encoder: %v", err)
	}
	return script, argsFile
}

// ReadArgs returns the argv recorded by a stub encoder, or nil if it never ran.
func ReadArgs(t testing.TB, argsFile string) []string {
	t.Helper()

	data, err := os.ReadFile(argsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read stub args: %v", err)
	}
	var args []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			args = append(args, string(data[start:i]))
			start = i + 1
		}
	}
	return args
}
