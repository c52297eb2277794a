package main

import (
	"strings"
	"testing"
)

func TestRenderTableColoursStateColumn(t *testing.T) {
	columns := []tableColumn{
		{header: "Source"},
		{header: "State", style: historyStateKind},
	}
	rows := [][]string{{"complete.mp4", "complete"}, {"b.mp4", "failed"}}

	plain := renderTable(columns, rows, false)
	if strings.Contains(plain, "\x1b[") {
		t.Fatalf("expected no ANSI codes without colour:\n%s", plain)
	}

	coloured := renderTable(columns, rows, true)
	requireContains(t, coloured, ansiGreen+"complete"+ansiReset)
	requireContains(t, coloured, ansiRed+"failed"+ansiReset)
	if strings.Contains(coloured, ansiGreen+"complete.mp4") {
		t.Fatalf("unstyled column should not be coloured:\n%s", coloured)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	columns := []tableColumn{{header: "Check"}, {header: "Detail", align: alignRight}}
	out := renderTable(columns, [][]string{{"FFmpeg"}}, false)
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "DETAIL")
	if renderTable(nil, nil, false) != "" {
		t.Fatal("expected empty output without columns")
	}
}

func TestCheckResultKind(t *testing.T) {
	cases := map[string]statusKind{"OK": statusOK, "WARN": statusWarn, "FAIL": statusError, "?": statusInfo}
	for label, want := range cases {
		if got := checkResultKind(label); got != want {
			t.Fatalf("checkResultKind(%q) = %v, want %v", label, got, want)
		}
	}
}
