package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gfyup/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "trim", "ffmpeg", "exit status 1", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"trim", "ffmpeg", "exit status 1"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrInput, "prepare", "stat", "missing", nil), "input"},
		{services.Wrap(services.ErrEnvironment, "trim", "start", "", nil), "environment"},
		{services.Wrap(services.ErrRejected, "ticket", "", "quota", nil), "rejected"},
		{services.Wrap(services.ErrTimeout, "poll", "", "", nil), "timeout"},
		{services.Wrap(services.ErrTransport, "upload", "send", "", context.Canceled), "canceled"},
		{fmt.Errorf("other: %w", services.ErrDecode), "decode"},
		{errors.New("plain"), "unknown"},
	}
	for _, tc := range cases {
		if got := services.Kind(tc.err); got != tc.want {
			t.Fatalf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestRetryable(t *testing.T) {
	if !services.Retryable(services.Wrap(services.ErrTransport, "poll", "", "http 502", nil)) {
		t.Fatal("expected transport error to be retryable")
	}
	if !services.Retryable(services.Wrap(services.ErrDecode, "poll", "", "", nil)) {
		t.Fatal("expected decode error to be retryable")
	}
	if services.Retryable(services.Wrap(services.ErrRejected, "ticket", "", "", nil)) {
		t.Fatal("rejection must not be retryable")
	}
	if services.Retryable(services.Wrap(services.ErrTransport, "poll", "", "", context.Canceled)) {
		t.Fatal("cancellation must not be retryable")
	}
	if services.Retryable(nil) {
		t.Fatal("nil is not retryable")
	}
}
