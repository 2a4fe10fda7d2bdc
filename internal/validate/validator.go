// Package validate checks landing data against entity schemas and business
// rules and produces a structured diagnostic report per entity. It never
// modifies the data it inspects.
package validate

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pable/go-scout-elt/internal/landing"
	"github.com/pable/go-scout-elt/internal/model"
	"github.com/pable/go-scout-elt/internal/rules"
)

// Limits holds league-specific bounds.
type Limits struct {
	MaxYellowCards int
	MaxRedCards    int
}

// DefaultLimits are the usual per-match card limits.
var DefaultLimits = Limits{MaxYellowCards: 2, MaxRedCards: 1}

// accepted layouts for landing date fields
var landingDateLayouts = []string{"2006-01-02", "02/01/2006"}

// Validator validates landing tables.
type Validator struct {
	v      *validator.Validate
	limits Limits
}

// New builds a Validator enforcing the given limits.
func New(limits Limits) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	v.RegisterValidation("dateformat", isLandingDate)
	v.RegisterValidation("pitch", func(fl validator.FieldLevel) bool {
		return rules.OnPitch(fl.Field().Float())
	})
	v.RegisterValidation("second", func(fl validator.FieldLevel) bool {
		return rules.SecondInMinute(int(fl.Field().Int()))
	})
	v.RegisterValidation("yellowcap", func(fl validator.FieldLevel) bool {
		return int(fl.Field().Int()) <= limits.MaxYellowCards
	})
	v.RegisterValidation("redcap", func(fl validator.FieldLevel) bool {
		return int(fl.Field().Int()) <= limits.MaxRedCards
	})
	return &Validator{v: v, limits: limits}
}

func isLandingDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, layout := range landingDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func (v *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "dateformat":
		return "invalid date format, expected YYYY-MM-DD or DD/MM/YYYY"
	case "pitch":
		return fmt.Sprintf("must be between %.0f and %.0f", rules.MinCoordinate, rules.MaxCoordinate)
	case "second":
		return "must be between 0 and 59"
	case "yellowcap":
		return fmt.Sprintf("cannot exceed %d yellow cards", v.limits.MaxYellowCards)
	case "redcap":
		return fmt.Sprintf("cannot exceed %d red cards", v.limits.MaxRedCards)
	}
	return fmt.Sprintf("failed %s check", fe.Tag())
}

// fieldViolations runs the struct tags on row, skipping fields that already
// failed decoding.
func (v *Validator) fieldViolations(row any, typeErrs []Violation) []Violation {
	out := append([]Violation(nil), typeErrs...)
	err := v.v.Struct(row)
	if err == nil {
		return out
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return append(out, Violation{Rule: "schema", Message: err.Error()})
	}
	failed := make(map[string]bool, len(typeErrs))
	for _, te := range typeErrs {
		failed[te.Field] = true
	}
	for _, fe := range errs {
		if failed[fe.Field()] {
			continue
		}
		out = append(out, Violation{Field: fe.Field(), Rule: fe.Tag(), Message: v.message(fe)})
	}
	return out
}

// checkRows validates every row of t as a T. Cross-field rules run only on
// rows whose fields all passed.
func checkRows[T any](v *Validator, t *landing.Table, keyOf func(landing.Record) string, table []Rule[T]) Report {
	rep := Report{TotalRows: t.Len(), NullCounts: map[string]NullCount{}}
	if t != nil {
		rep.Entity = t.Entity
	}
	for i, rec := range rowsOf(t) {
		var row T
		violations := v.fieldViolations(&row, decodeRow(rec, &row))
		if len(violations) == 0 {
			violations = evalRules(row, table)
		}
		if len(violations) > 0 {
			rep.InvalidRows++
			rep.Errors = append(rep.Errors, RowError{Row: i, Key: keyOf(rec), Violations: violations})
		}
	}
	rep.ValidRows = rep.TotalRows - rep.InvalidRows
	return rep
}

// Teams validates team rows.
func (v *Validator) Teams(t *landing.Table) Report {
	rep := checkRows[teamRow](v, t, keyColumn("team_id"), nil)
	finish(&rep, model.EntityTeams, t)
	duplicateWarning(&rep, t, "team ids", "team_id")
	return rep
}

// Players validates player rows. teams may be nil to skip the orphan check.
func (v *Validator) Players(t *landing.Table, teams model.KeySet) Report {
	rep := checkRows[playerRow](v, t, keyColumn("player_id"), nil)
	finish(&rep, model.EntityPlayers, t)
	duplicateWarning(&rep, t, "player ids", "player_id")
	orphanWarning(&rep, t, "team_id", "team ids", teams)
	positionWarning(&rep, t)
	nullCounts(&rep, t, "market_value", "contract_until")
	return rep
}

// Matches validates match rows. teams may be nil to skip the orphan check.
func (v *Validator) Matches(t *landing.Table, teams model.KeySet) Report {
	rep := checkRows[matchRow](v, t, keyColumn("match_id"), nil)
	finish(&rep, model.EntityMatches, t)
	duplicateWarning(&rep, t, "match ids", "match_id")
	orphanWarning(&rep, t, "home_team_id", "home team ids", teams)
	orphanWarning(&rep, t, "away_team_id", "away team ids", teams)
	nullCounts(&rep, t, "attendance", "referee")
	return rep
}

// PlayerMatchStats validates per-match statistics.
func (v *Validator) PlayerMatchStats(t *landing.Table, players, matches model.KeySet) Report {
	key := compositeKey("player_id", "match_id")
	rep := checkRows(v, t, key, statRules)
	finish(&rep, model.EntityPlayerMatchStats, t)
	duplicateWarning(&rep, t, "player match stat keys", "player_id", "match_id")
	orphanWarning(&rep, t, "player_id", "player ids", players)
	orphanWarning(&rep, t, "match_id", "match ids", matches)
	nullCounts(&rep, t, "xg", "xa")
	return rep
}

// MatchEvents validates match events.
func (v *Validator) MatchEvents(t *landing.Table, matches, teams, players model.KeySet) Report {
	rep := checkRows(v, t, keyColumn("event_id"), eventRules)
	finish(&rep, model.EntityMatchEvents, t)
	duplicateWarning(&rep, t, "event ids", "event_id")
	orphanWarning(&rep, t, "match_id", "match ids", matches)
	orphanWarning(&rep, t, "team_id", "team ids", teams)
	orphanWarning(&rep, t, "player_id", "player ids", players)
	nullCounts(&rep, t, "x_end", "y_end", "body_part", "pass_type", "recipient_id")
	return rep
}

// ValidateAll validates every entity, using the landing keys of parent
// entities for orphan checks. Reports come back in dependency order.
func (v *Validator) ValidateAll(tables map[string]*landing.Table) []Report {
	parents := func(entity, col string) model.KeySet {
		t := tables[entity]
		if t.Empty() {
			return nil
		}
		return KeysOf(t, col)
	}
	teams := parents(model.EntityTeams, "team_id")
	players := parents(model.EntityPlayers, "player_id")
	matches := parents(model.EntityMatches, "match_id")

	return []Report{
		v.Teams(tables[model.EntityTeams]),
		v.Players(tables[model.EntityPlayers], teams),
		v.Matches(tables[model.EntityMatches], teams),
		v.PlayerMatchStats(tables[model.EntityPlayerMatchStats], players, matches),
		v.MatchEvents(tables[model.EntityMatchEvents], matches, teams, players),
	}
}
