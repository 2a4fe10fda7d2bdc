package validate

import "sort"

// Violation is one failed check on one field of a row.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// RowError collects every violation found on a landing row.
type RowError struct {
	Row        int         `json:"row"`
	Key        string      `json:"key"`
	Violations []Violation `json:"violations"`
}

// NullCount is the null rate of one nullable column.
type NullCount struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Report is the diagnostic result for one entity. Errors are per-row rule
// violations; warnings are dataset-level findings that do not make rows invalid.
type Report struct {
	Entity      string               `json:"entity"`
	TotalRows   int                  `json:"total_rows"`
	ValidRows   int                  `json:"valid_rows"`
	InvalidRows int                  `json:"invalid_rows"`
	Errors      []RowError           `json:"errors"`
	Warnings    []string             `json:"warnings"`
	NullCounts  map[string]NullCount `json:"null_counts"`
}

// ValidPercentage returns the share of valid rows, 0 for an empty dataset.
func (r Report) ValidPercentage() float64 {
	if r.TotalRows == 0 {
		return 0
	}
	return float64(r.ValidRows) / float64(r.TotalRows) * 100
}

// NullColumns returns the columns of NullCounts in name order.
func (r Report) NullColumns() []string {
	cols := make([]string, 0, len(r.NullCounts))
	for c := range r.NullCounts {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// HasInvalidRows reports whether any report holds invalid rows.
func HasInvalidRows(reports []Report) bool {
	for _, r := range reports {
		if r.InvalidRows > 0 {
			return true
		}
	}
	return false
}
