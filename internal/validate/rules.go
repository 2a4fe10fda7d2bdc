package validate

import (
	"fmt"

	"github.com/pable/go-scout-elt/internal/rules"
)

// Rule is a cross-field business rule: a predicate over a fully typed row
// and the message rendered when it fails.
type Rule[T any] struct {
	Name     string
	Field    string
	Check    func(T) bool
	Template string
	Args     func(T) []any
}

// Eval returns the violation for row, if any.
func (r Rule[T]) Eval(row T) (Violation, bool) {
	if r.Check(row) {
		return Violation{}, false
	}
	msg := r.Template
	if r.Args != nil {
		msg = fmt.Sprintf(r.Template, r.Args(row)...)
	}
	return Violation{Field: r.Field, Rule: r.Name, Message: msg}, true
}

func evalRules[T any](row T, table []Rule[T]) []Violation {
	var out []Violation
	for _, r := range table {
		if v, failed := r.Eval(row); failed {
			out = append(out, v)
		}
	}
	return out
}

var statRules = []Rule[statRow]{
	{
		Name:     "shots_on_target_within_shots",
		Field:    "shots_on_target",
		Check:    func(r statRow) bool { return rules.ShotsOnTargetWithinShots(*r.ShotsOnTarget, *r.Shots) },
		Template: "shots_on_target (%d) cannot exceed shots (%d)",
		Args:     func(r statRow) []any { return []any{*r.ShotsOnTarget, *r.Shots} },
	},
	{
		Name:     "passes_completed_within_attempted",
		Field:    "passes_completed",
		Check:    func(r statRow) bool { return rules.PassesCompletedWithinAttempted(*r.PassesCompleted, *r.PassesAttempted) },
		Template: "passes_completed (%d) cannot exceed passes_attempted (%d)",
		Args:     func(r statRow) []any { return []any{*r.PassesCompleted, *r.PassesAttempted} },
	},
	{
		Name:     "xg_within_shots",
		Field:    "xg",
		Check:    func(r statRow) bool { return rules.XGWithinShots(*r.XG, *r.Shots) },
		Template: "xg (%.2f) cannot exceed shots (%d)",
		Args:     func(r statRow) []any { return []any{*r.XG, *r.Shots} },
	},
}

var eventRules = []Rule[eventRow]{
	{
		Name:  "pass_destination_required",
		Field: "x_end",
		Check: func(r eventRow) bool {
			return !rules.RequiresDestination(*r.EventType) || (r.XEnd != nil && r.YEnd != nil)
		},
		Template: "pass event does not have a destination (x_end, y_end)",
	},
	{
		Name:     "pass_type_required",
		Field:    "pass_type",
		Check:    func(r eventRow) bool { return !rules.RequiresDestination(*r.EventType) || r.PassType != nil },
		Template: "pass event requires pass_type",
	},
	{
		Name:     "pass_recipient_required",
		Field:    "recipient_id",
		Check:    func(r eventRow) bool { return !rules.RequiresDestination(*r.EventType) || r.RecipientID != nil },
		Template: "pass event requires recipient_id",
	},
	{
		Name:     "body_part_required",
		Field:    "body_part",
		Check:    func(r eventRow) bool { return !rules.RequiresBodyPart(*r.EventType) || r.BodyPart != nil },
		Template: "%s event requires body_part",
		Args:     func(r eventRow) []any { return []any{*r.EventType} },
	},
}
