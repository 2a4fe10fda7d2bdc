package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pable/go-scout-elt/internal/validate"
)

var rule = strings.Repeat("=", 80)

// numbers formats counts with thousands separators.
var numbers = message.NewPrinter(language.English)

// WriteValidationReport writes the fixed-width validation report: a section
// per entity with counts, then warnings, errors and null analysis bullets.
// Only the first violation of each invalid row is listed.
func WriteValidationReport(w io.Writer, reports []validate.Report) error {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("DATA VALIDATION REPORT\n")
	b.WriteString(rule + "\n\n")

	for _, r := range reports {
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(r.Entity))
		b.WriteString(numbers.Sprintf("  Rows: %d | Valid: %d (%.1f%%)\n", r.TotalRows, r.ValidRows, r.ValidPercentage()))

		if len(r.Warnings) > 0 {
			fmt.Fprintf(&b, "  Warnings: %d\n", len(r.Warnings))
			for _, warn := range r.Warnings {
				fmt.Fprintf(&b, "    - %s\n", warn)
			}
		}
		if len(r.Errors) > 0 {
			fmt.Fprintf(&b, "  Errors: %d\n", len(r.Errors))
			for _, e := range r.Errors {
				v := e.Violations[0]
				if v.Field == "" {
					fmt.Fprintf(&b, "    - %d: %s\n", e.Row, v.Message)
					continue
				}
				fmt.Fprintf(&b, "    - %d: %s %s\n", e.Row, v.Field, v.Message)
			}
		}
		if cols := r.NullColumns(); len(cols) > 0 {
			b.WriteString("  Null analysis:\n")
			for _, col := range cols {
				nc := r.NullCounts[col]
				fmt.Fprintf(&b, "    - %s: %d (%.1f%%)\n", col, nc.Count, nc.Percentage)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveValidationReport writes validation_report_<timestamp>.txt under dir
// and returns its path.
func SaveValidationReport(dir string, reports []validate.Report, ts time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, FileName("validation_report", ts, ".txt"))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create validation report: %w", err)
	}
	defer f.Close()
	if err := WriteValidationReport(f, reports); err != nil {
		return "", fmt.Errorf("write validation report: %w", err)
	}
	return path, f.Close()
}
