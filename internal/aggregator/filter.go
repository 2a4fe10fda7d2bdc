package aggregator

import (
	"fmt"
	"sort"

	"github.com/pable/go-scout-elt/internal/model"
)

// metrics maps a column name of the player aggregate to its value. Nil means
// the value is unknown.
var metrics = map[string]func(a model.PlayerAggregate) *float64{
	"age":                  func(a model.PlayerAggregate) *float64 { return intp(a.Age) },
	"matches":              func(a model.PlayerAggregate) *float64 { return num(a.Matches) },
	"minutes_played":       func(a model.PlayerAggregate) *float64 { return num(a.MinutesPlayed) },
	"goals":                func(a model.PlayerAggregate) *float64 { return num(a.Goals) },
	"assists":              func(a model.PlayerAggregate) *float64 { return num(a.Assists) },
	"shots":                func(a model.PlayerAggregate) *float64 { return num(a.Shots) },
	"shots_on_target":      func(a model.PlayerAggregate) *float64 { return num(a.ShotsOnTarget) },
	"passes_attempted":     func(a model.PlayerAggregate) *float64 { return num(a.PassesAttempted) },
	"passes_completed":     func(a model.PlayerAggregate) *float64 { return num(a.PassesCompleted) },
	"key_passes":           func(a model.PlayerAggregate) *float64 { return num(a.KeyPasses) },
	"tackles":              func(a model.PlayerAggregate) *float64 { return num(a.Tackles) },
	"interceptions":        func(a model.PlayerAggregate) *float64 { return num(a.Interceptions) },
	"duels_won":            func(a model.PlayerAggregate) *float64 { return num(a.DuelsWon) },
	"duels_lost":           func(a model.PlayerAggregate) *float64 { return num(a.DuelsLost) },
	"fouls_committed":      func(a model.PlayerAggregate) *float64 { return num(a.FoulsCommitted) },
	"yellow_cards":         func(a model.PlayerAggregate) *float64 { return num(a.YellowCards) },
	"red_cards":            func(a model.PlayerAggregate) *float64 { return num(a.RedCards) },
	"xg":                   func(a model.PlayerAggregate) *float64 { return &a.XG },
	"xa":                   func(a model.PlayerAggregate) *float64 { return &a.XA },
	"goal_contribution":    func(a model.PlayerAggregate) *float64 { return num(a.GoalContribution) },
	"g_xg":                 func(a model.PlayerAggregate) *float64 { return &a.GXG },
	"goals_90":             func(a model.PlayerAggregate) *float64 { return a.Goals90 },
	"assists_90":           func(a model.PlayerAggregate) *float64 { return a.Assists90 },
	"shot_accuracy":        func(a model.PlayerAggregate) *float64 { return a.ShotAccuracy },
	"passes_attempted_90":  func(a model.PlayerAggregate) *float64 { return a.PassesAttempted90 },
	"passes_completed_90":  func(a model.PlayerAggregate) *float64 { return a.PassesCompleted90 },
	"key_passes_90":        func(a model.PlayerAggregate) *float64 { return a.KeyPasses90 },
	"pass_accuracy":        func(a model.PlayerAggregate) *float64 { return a.PassAccuracy },
	"tackles_90":           func(a model.PlayerAggregate) *float64 { return a.Tackles90 },
	"interceptions_90":     func(a model.PlayerAggregate) *float64 { return a.Interceptions90 },
	"duel_win_rate":        func(a model.PlayerAggregate) *float64 { return a.DuelWinRate },
	"fouls_90":             func(a model.PlayerAggregate) *float64 { return a.Fouls90 },
	"yellow_cards_90":      func(a model.PlayerAggregate) *float64 { return a.YellowCards90 },
	"red_cards_90":         func(a model.PlayerAggregate) *float64 { return a.RedCards90 },
	"xg_90":                func(a model.PlayerAggregate) *float64 { return a.XG90 },
	"xa_90":                func(a model.PlayerAggregate) *float64 { return a.XA90 },
	"goal_contribution_90": func(a model.PlayerAggregate) *float64 { return a.GoalContribution90 },
	"g_xg_90":              func(a model.PlayerAggregate) *float64 { return a.GXG90 },
}

func num(n int) *float64 {
	v := float64(n)
	return &v
}

func intp(n *int) *float64 {
	if n == nil {
		return nil
	}
	return num(*n)
}

// Metric returns the named metric of a, and false when it is unknown or nil.
func Metric(a model.PlayerAggregate, name string) (float64, bool) {
	get, ok := metrics[name]
	if !ok {
		return 0, false
	}
	v := get(a)
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Metrics returns the names of every filterable metric, sorted.
func Metrics() []string {
	out := make([]string, 0, len(metrics))
	for name := range metrics {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Range bounds a metric. Nil bounds are open.
type Range struct {
	Min *float64
	Max *float64
}

// AtLeast is a Range with only a lower bound.
func AtLeast(v float64) Range { return Range{Min: &v} }

func (r Range) contains(v float64) bool {
	return (r.Min == nil || v >= *r.Min) && (r.Max == nil || v <= *r.Max)
}

// Filter selects players by position and metric ranges. A player whose
// metric is nil never matches a range on that metric.
type Filter struct {
	Position string
	Ranges   map[string]Range
}

// Validate reports unknown metric names.
func (f Filter) Validate() error {
	for name := range f.Ranges {
		if _, ok := metrics[name]; !ok {
			return fmt.Errorf("unknown metric %q", name)
		}
	}
	return nil
}

// Match reports whether a passes every condition of f.
func (f Filter) Match(a model.PlayerAggregate) bool {
	if f.Position != "" && a.Position != f.Position {
		return false
	}
	for name, r := range f.Ranges {
		v, ok := Metric(a, name)
		if !ok || !r.contains(v) {
			return false
		}
	}
	return true
}

// FilterPlayers returns the aggregates matching f, in player_id order.
func FilterPlayers(aggs []model.PlayerAggregate, f Filter) ([]model.PlayerAggregate, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var out []model.PlayerAggregate
	for _, a := range aggs {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

// ---- Scouting reports ----

// ScoutingReport is a named player filter and the columns it reports.
type ScoutingReport struct {
	Name    string
	Filter  Filter
	Columns []string
}

// ScoutingReports are the canned player reports written by analyze.
var ScoutingReports = []ScoutingReport{
	{
		Name: "effective_scorers",
		Filter: Filter{Ranges: map[string]Range{
			"goals": AtLeast(5),
			"g_xg":  AtLeast(2),
		}},
		Columns: []string{"name", "team_name", "age", "position", "minutes_played", "goals", "g_xg"},
	},
	{
		Name: "defensive_midfielders",
		Filter: Filter{Position: model.PositionMidfielder, Ranges: map[string]Range{
			"pass_accuracy":    AtLeast(0.75),
			"interceptions_90": AtLeast(3),
			"duel_win_rate":    AtLeast(0.5),
		}},
		Columns: []string{"name", "team_name", "age", "minutes_played", "pass_accuracy", "interceptions_90", "duel_win_rate"},
	},
	{
		Name: "creative_attackers",
		Filter: Filter{Ranges: map[string]Range{
			"key_passes_90":        AtLeast(2),
			"goal_contribution_90": AtLeast(0.5),
		}},
		Columns: []string{"name", "team_name", "age", "minutes_played", "key_passes_90", "goal_contribution_90"},
	},
}
