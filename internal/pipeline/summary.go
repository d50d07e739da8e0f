// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/scholarqa/pkg/types"
)

// maxCellWidth bounds a summary cell; longer text is truncated.
const maxCellWidth = 60

// WriteSummary prints the run counts and any failed records as aligned
// tables. Widths are display widths so non-Latin ids line up.
func (o Output) WriteSummary(w io.Writer) {
	rows := [][]string{
		{"outcome", "records"},
		{"graph", fmt.Sprint(o.Sources[types.SourceGraph])},
		{"compare", fmt.Sprint(o.Sources[types.SourceCompare])},
		{"model", fmt.Sprint(o.Sources[types.SourceModel])},
		{"no answer", fmt.Sprint(o.NullAnswers)},
		{"failed", fmt.Sprint(len(o.Failed))},
		{"total", fmt.Sprint(o.Total())},
	}
	fmt.Fprintln(w)
	writeTable(w, rows)

	if len(o.Failed) == 0 {
		return
	}
	failed := [][]string{{"record", "error"}}
	for _, f := range o.Failed {
		failed = append(failed, []string{f.ID, fmt.Sprint(f.Err)})
	}
	fmt.Fprintln(w)
	writeTable(w, failed)
}

// writeTable renders rows with the first row as a header.
func writeTable(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	cols := len(rows[0])
	widths := make([]int, cols)
	for i, row := range rows {
		for j := 0; j < cols && j < len(row); j++ {
			cell := runewidth.Truncate(row[j], maxCellWidth, "...")
			rows[i][j] = cell
			if cw := runewidth.StringWidth(cell); cw > widths[j] {
				widths[j] = cw
			}
		}
	}

	for i, row := range rows {
		var sb strings.Builder
		for j := 0; j < cols; j++ {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			if j > 0 {
				sb.WriteString("  ")
			}
			if j == cols-1 {
				sb.WriteString(cell)
			} else {
				sb.WriteString(runewidth.FillRight(cell, widths[j]))
			}
		}
		fmt.Fprintln(w, sb.String())
		if i == 0 {
			var rule []string
			for _, wd := range widths {
				rule = append(rule, strings.Repeat("-", wd))
			}
			fmt.Fprintln(w, strings.Join(rule, "  "))
		}
	}
}
