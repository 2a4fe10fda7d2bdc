package ingest

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/pable/go-scout-elt/internal/landing"
)

type columnKind int

const (
	kindNull columnKind = iota
	kindInt
	kindFloat
	kindString
)

// inferKind widens k so that it can hold s.
func inferKind(k columnKind, s string) columnKind {
	if s == "" || k == kindString {
		return k
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		if k == kindNull {
			return kindInt
		}
		return k
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return kindFloat
	}
	return kindString
}

func convert(k columnKind, s string) any {
	if s == "" {
		return nil
	}
	switch k {
	case kindInt:
		n, _ := strconv.ParseInt(s, 10, 64)
		return n
	case kindFloat:
		f, _ := strconv.ParseFloat(s, 64)
		return f
	}
	return s
}

// csvLines parses a CSV file with a header row into JSON records. Every column
// gets the narrowest of int, float or string that fits all its non-empty cells;
// empty cells become null.
func csvLines(data []byte) ([][]byte, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, crerr.Wrap(err, "parse CSV")
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	body := rows[1:]

	kinds := make([]columnKind, len(header))
	for _, row := range body {
		for i := range header {
			if i < len(row) {
				kinds[i] = inferKind(kinds[i], strings.TrimSpace(row[i]))
			}
		}
	}

	lines := make([][]byte, 0, len(body))
	for n, row := range body {
		rec := make(landing.Record, len(header))
		for i, col := range header {
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			rec[col] = convert(kinds[i], cell)
		}
		b, err := landing.JSON.Marshal(rec)
		if err != nil {
			return nil, crerr.Wrapf(err, "encode CSV row %d", n+2)
		}
		lines = append(lines, b)
	}
	return lines, nil
}
