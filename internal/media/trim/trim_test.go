package trim_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gfyup/internal/logging"
	"gfyup/internal/media/trim"
	"gfyup/internal/services"
	"gfyup/internal/testsupport"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		req  trim.Request
		want []string
	}{
		{
			name: "both bounds",
			req:  trim.Request{Input: "clip.mp4", Output: "out.mp4", Start: "00:00:05", End: "00:00:10"},
			want: []string{"-y", "-i", "clip.mp4", "-ss", "00:00:05", "-to", "00:00:10", "-c", "copy", "out.mp4"},
		},
		{
			name: "start only",
			req:  trim.Request{Input: "clip.mp4", Output: "out.mp4", Start: "00:00:05"},
			want: []string{"-y", "-i", "clip.mp4", "-ss", "00:00:05", "-c", "copy", "out.mp4"},
		},
		{
			name: "end only",
			req:  trim.Request{Input: "clip.mp4", Output: "out.mp4", End: "12.5"},
			want: []string{"-y", "-i", "clip.mp4", "-to", "12.5", "-c", "copy", "out.mp4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trim.Args(tt.req)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrimSkipsEncoderWithoutBounds(t *testing.T) {
	binary, argsFile := testsupport.StubEncoder(t, testsupport.StubWritesOutput)
	trimmer := trim.New(binary, logging.NewNop())

	dir := t.TempDir()
	ok, err := trimmer.Trim(context.Background(), trim.Request{
		Input:  filepath.Join(dir, "clip.mp4"),
		Output: filepath.Join(dir, "out.mp4"),
	})
	if err != nil {
		t.Fatalf("Trim returned error: %v", err)
	}
	if ok {
		t.Fatal("expected Trim to report no clipping")
	}
	if args := testsupport.ReadArgs(t, argsFile); args != nil {
		t.Fatalf("encoder should not run, recorded %v", args)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.mp4")); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err=%v", err)
	}
}

func TestTrimRunsEncoder(t *testing.T) {
	binary, argsFile := testsupport.StubEncoder(t, testsupport.StubWritesOutput)
	trimmer := trim.New(binary, logging.NewNop())

	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")
	output := filepath.Join(dir, "out.mp4")
	testsupport.WriteFile(t, input, 1024)

	ok, err := trimmer.Trim(context.Background(), trim.Request{Input: input, Output: output, Start: "00:00:05", End: "00:00:10"})
	if err != nil {
		t.Fatalf("Trim returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected Trim to report clipping")
	}

	args := testsupport.ReadArgs(t, argsFile)
	want := []string{"-y", "-i", input, "-ss", "00:00:05", "-to", "00:00:10", "-c", "copy", output}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("encoder argv = %v, want %v", args, want)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != testsupport.StubPayload {
		t.Fatalf("unexpected output %q", data)
	}
}

func TestTrimMissingBinaryIsEnvironmentError(t *testing.T) {
	trimmer := trim.New(filepath.Join(t.TempDir(), "no-such-ffmpeg"), nil)
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")
	testsupport.WriteFile(t, input, 16)

	_, err := trimmer.Trim(context.Background(), trim.Request{Input: input, Output: filepath.Join(dir, "out.mp4"), Start: "1"})
	if !errors.Is(err, services.ErrEnvironment) {
		t.Fatalf("expected environment error, got %v", err)
	}
	if errors.Is(err, services.ErrInput) {
		t.Fatal("missing binary must not be reported as an input error")
	}
}

func TestTrimNonZeroExitCarriesStderr(t *testing.T) {
	binary, _ := testsupport.StubEncoder(t, testsupport.StubFails)
	trimmer := trim.New(binary, nil)
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")
	testsupport.WriteFile(t, input, 16)

	_, err := trimmer.Trim(context.Background(), trim.Request{Input: input, Output: filepath.Join(dir, "out.mp4"), Start: "bogus"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid duration") {
		t.Fatalf("expected stderr tail in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "trim") {
		t.Fatalf("expected stage name in error, got %v", err)
	}
}

func TestTrimMissingOutputIsExternalToolError(t *testing.T) {
	binary, _ := testsupport.StubEncoder(t, testsupport.StubWritesNothing)
	trimmer := trim.New(binary, nil)
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")
	output := filepath.Join(dir, "out.mp4")
	testsupport.WriteFile(t, input, 16)
	testsupport.WriteFile(t, output, 64)

	_, err := trimmer.Trim(context.Background(), trim.Request{Input: input, Output: output, End: "3"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestTrimCanceledContext(t *testing.T) {
	binary, _ := testsupport.StubEncoder(t, testsupport.StubWritesOutput)
	trimmer := trim.New(binary, nil)
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")
	testsupport.WriteFile(t, input, 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := trimmer.Trim(ctx, trim.Request{Input: input, Output: filepath.Join(dir, "out.mp4"), Start: "1"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}
