package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/pable/go-scout-elt/internal/landing"
	"github.com/pable/go-scout-elt/internal/model"
)

var entityTitles = map[string]string{
	model.EntityTeams:            "Teams",
	model.EntityPlayers:          "Players",
	model.EntityMatches:          "Matches",
	model.EntityPlayerMatchStats: "Player match stats",
	model.EntityMatchEvents:      "Match events",
}

var canonicalPositions = model.NewKeySet(
	model.PositionGoalkeeper,
	model.PositionDefender,
	model.PositionMidfielder,
	model.PositionForward,
)

func rowsOf(t *landing.Table) []landing.Record {
	if t == nil {
		return nil
	}
	return t.Rows
}

func keyColumn(col string) func(landing.Record) string {
	return func(r landing.Record) string {
		s, _ := landing.String(r[col])
		return s
	}
}

func compositeKey(cols ...string) func(landing.Record) string {
	return func(r landing.Record) string {
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i], _ = landing.String(r[c])
		}
		return strings.Join(parts, "/")
	}
}

// KeysOf collects the non-null values of col.
func KeysOf(t *landing.Table, col string) model.KeySet {
	ks := model.KeySet{}
	for _, r := range rowsOf(t) {
		if s, ok := landing.String(r[col]); ok {
			ks[s] = struct{}{}
		}
	}
	return ks
}

func finish(rep *Report, entity string, t *landing.Table) {
	rep.Entity = entity
	if t.Len() == 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s dataset is empty", entityTitles[entity]))
	}
}

// duplicateWarning flags key values seen more than once. Rows missing any
// key column are left to the row checks.
func duplicateWarning(rep *Report, t *landing.Table, what string, cols ...string) {
	keyOf := compositeKey(cols...)
	counts := map[string]int{}
rows:
	for _, r := range rowsOf(t) {
		for _, c := range cols {
			if _, ok := landing.String(r[c]); !ok {
				continue rows
			}
		}
		counts[keyOf(r)]++
	}
	dups := model.KeySet{}
	for k, n := range counts {
		if n > 1 {
			dups[k] = struct{}{}
		}
	}
	if len(dups) > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("duplicate %s: %v", what, dups.Sorted()))
	}
}

func orphanWarning(rep *Report, t *landing.Table, col, what string, parents model.KeySet) {
	if parents == nil {
		return
	}
	orphans := model.KeySet{}
	for _, r := range rowsOf(t) {
		if s, ok := landing.String(r[col]); ok && !parents.Has(s) {
			orphans[s] = struct{}{}
		}
	}
	if len(orphans) > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("orphaned %s in %s: %v", what, rep.Entity, orphans.Sorted()))
	}
}

// positionWarning flags raw position labels that are not already one of the
// position categories.
func positionWarning(rep *Report, t *landing.Table) {
	labels := KeysOf(t, "position")
	for l := range labels {
		if !canonicalPositions.Has(l) {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("found %d different position labels: %v", len(labels), labels.Sorted()))
			return
		}
	}
}

func nullCounts(rep *Report, t *landing.Table, cols ...string) {
	total := t.Len()
	if total == 0 {
		return
	}
	for _, col := range cols {
		if !t.HasColumn(col) {
			continue
		}
		n := 0
		for _, r := range rowsOf(t) {
			if landing.IsNull(r[col]) {
				n++
			}
		}
		pct := math.Round(float64(n)/float64(total)*10000) / 100
		rep.NullCounts[col] = NullCount{Count: n, Percentage: pct}
	}
}
