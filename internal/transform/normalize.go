// Package transform cleans landing data into the entities persisted by the
// store: field normalization, orphan filtering, keep-last deduplication and
// derived metrics, applied per entity in dependency order.
package transform

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	xtransform "golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pable/go-scout-elt/internal/logging"
	"github.com/pable/go-scout-elt/internal/model"
)

// ISODate is the layout of every normalized date.
const ISODate = "2006-01-02"

var positionSynonyms = map[string]string{
	"gk":                 model.PositionGoalkeeper,
	"goalkeeper":         model.PositionGoalkeeper,
	"defender":           model.PositionDefender,
	"cb":                 model.PositionDefender,
	"centre-back":        model.PositionDefender,
	"midfielder":         model.PositionMidfielder,
	"cm":                 model.PositionMidfielder,
	"central midfielder": model.PositionMidfielder,
	"forward":            model.PositionForward,
	"striker":            model.PositionForward,
	"st":                 model.PositionForward,
}

// dateLayouts are tried in order: year first, then day/month/year.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
}

// Normalizer runs the per-entity cleaning pipelines.
type Normalizer struct {
	log *logging.Logger
	now func() time.Time
}

// NewNormalizer returns a Normalizer. now supplies the processing date used
// for ages; nil means time.Now.
func NewNormalizer(log *logging.Logger, now func() time.Time) *Normalizer {
	if log == nil {
		log = logging.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Normalizer{log: log, now: now}
}

func foldAccents(s string) string {
	t := xtransform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := xtransform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizePosition maps a raw position label to one of the four position
// categories, or Unknown.
func (n *Normalizer) NormalizePosition(raw string) string {
	if raw == "" {
		return model.PositionUnknown
	}
	key := strings.ToLower(strings.TrimSpace(foldAccents(raw)))
	if pos, ok := positionSynonyms[key]; ok {
		return pos
	}
	n.log.Warn("unmapped position", "value", raw)
	return model.PositionUnknown
}

// ParseDate tries every accepted layout in order.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate returns raw as an ISO date, or nil when it is empty or
// matches no accepted layout.
func (n *Normalizer) NormalizeDate(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	t, ok := ParseDate(raw)
	if !ok {
		n.log.Warn("unparseable date", "value", raw)
		return nil
	}
	s := t.Format(ISODate)
	return &s
}

// AgeAt returns the age in whole years on the given day.
func AgeAt(dob, on time.Time) int {
	age := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		age--
	}
	return age
}

// DeriveAge computes the age at the processing date, or nil when the date of
// birth is missing or unparseable.
func (n *Normalizer) DeriveAge(dob *string) *int {
	if dob == nil {
		return nil
	}
	t, ok := ParseDate(*dob)
	if !ok {
		return nil
	}
	age := AgeAt(t, n.now())
	return &age
}

// DedupeByKey keeps the last row seen for each key. Survivors keep their
// relative input order.
func DedupeByKey[T any, K comparable](rows []T, key func(T) K) []T {
	last := make(map[K]int, len(rows))
	for i, r := range rows {
		last[key(r)] = i
	}
	out := make([]T, 0, len(last))
	for i, r := range rows {
		if last[key(r)] == i {
			out = append(out, r)
		}
	}
	return out
}
