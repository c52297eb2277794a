package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableColumn describes one column. style, when set, maps a cell value to the
// status colour it should be drawn in.
type tableColumn struct {
	header string
	align  columnAlignment
	style  func(value string) statusKind
}

func renderTable(columns []tableColumn, rows [][]string, colorize bool) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col.header
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		}
		if col.align == alignRight {
			cfg.Align = text.AlignRight
		}
		if col.style != nil && colorize {
			cfg.Transformer = statusTransformer(col.style)
		}
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func statusTransformer(style func(string) statusKind) text.Transformer {
	return func(val interface{}) string {
		s, _ := val.(string)
		return colorizeText(s, style(s), true)
	}
}

// historyStateKind colours the state column of `gfyup history`.
func historyStateKind(state string) statusKind {
	switch state {
	case "complete":
		return statusOK
	case "failed":
		return statusError
	case "canceled", "running":
		return statusWarn
	default:
		return statusInfo
	}
}

// checkResultKind colours the status column of `gfyup check`.
func checkResultKind(label string) statusKind {
	switch label {
	case statusKindLabel(statusOK):
		return statusOK
	case statusKindLabel(statusWarn):
		return statusWarn
	case statusKindLabel(statusError):
		return statusError
	default:
		return statusInfo
	}
}
