package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-scout-elt/internal/validate"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func anyRow(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// PrintFrame renders f as a console table. Missing values show as "—".
func PrintFrame(w io.Writer, f Frame) {
	table := newTable(w)
	table.Header(anyRow(f.Header)...)
	for _, row := range f.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			if c == "" {
				c = "—"
			}
			cells[i] = c
		}
		table.Append(anyRow(cells)...)
	}
	table.Render()
}

// PrintColumns renders only the named columns of f, in the given order.
// Unknown names are skipped.
func PrintColumns(w io.Writer, f Frame, cols ...string) {
	idx := make(map[string]int, len(f.Header))
	for i, h := range f.Header {
		idx[h] = i
	}
	out := Frame{Name: f.Name}
	var keep []int
	for _, c := range cols {
		if i, ok := idx[c]; ok {
			keep = append(keep, i)
			out.Header = append(out.Header, c)
		}
	}
	for _, row := range f.Rows {
		r := make([]string, len(keep))
		for j, i := range keep {
			r[j] = row[i]
		}
		out.Rows = append(out.Rows, r)
	}
	PrintFrame(w, out)
}

// PrintValidationSummary prints one line per entity report.
func PrintValidationSummary(w io.Writer, reports []validate.Report) {
	table := newTable(w)
	table.Header("ENTITY", "ROWS", "VALID", "INVALID", "VALID%", "WARNINGS")
	for _, r := range reports {
		table.Append(
			r.Entity,
			itoa(r.TotalRows),
			itoa(r.ValidRows),
			itoa(r.InvalidRows),
			fmt.Sprintf("%.1f%%", r.ValidPercentage()),
			itoa(len(r.Warnings)),
		)
	}
	table.Render()
}
