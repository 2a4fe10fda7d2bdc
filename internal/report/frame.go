// Package report renders aggregates and validation results as console
// tables, CSV files, spreadsheets and the plain-text validation report.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pable/go-scout-elt/internal/aggregator"
	"github.com/pable/go-scout-elt/internal/model"
)

// TimestampLayout is used in every generated file name.
const TimestampLayout = "20060102_150405"

// Frame is a rendered table: a name, a header and text cells. Missing
// values are empty strings.
type Frame struct {
	Name   string
	Header []string
	Rows   [][]string
}

// FileName returns "<name>_<timestamp><ext>".
func FileName(name string, ts time.Time, ext string) string {
	return fmt.Sprintf("%s_%s%s", name, ts.Format(TimestampLayout), ext)
}

// TeamScope is the file-name scope of a team-filtered report.
func TeamScope(teamID string) string {
	if teamID == "" {
		return "all"
	}
	return teamID
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return ftoa(*v)
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return itoa(*v)
}

// ---- Player aggregate ----

var playerColumns = []string{
	"player_id", "name", "team_id", "team_name", "position", "age", "matches",
	"minutes_played", "goals", "assists", "shots", "shots_on_target",
	"passes_attempted", "passes_completed", "key_passes", "tackles", "interceptions",
	"duels_won", "duels_lost", "fouls_committed", "yellow_cards", "red_cards",
	"xg", "xa", "goal_contribution", "g_xg",
	"goals_90", "assists_90", "shot_accuracy", "passes_attempted_90", "passes_completed_90",
	"key_passes_90", "pass_accuracy", "tackles_90", "interceptions_90", "duel_win_rate",
	"fouls_90", "yellow_cards_90", "red_cards_90", "xg_90", "xa_90",
	"goal_contribution_90", "g_xg_90",
}

// playerCell renders one named column of a player aggregate.
func playerCell(a model.PlayerAggregate, col string) string {
	switch col {
	case "player_id":
		return a.PlayerID
	case "name":
		return a.Name
	case "team_id":
		return a.TeamID
	case "team_name":
		return a.TeamName
	case "position":
		return a.Position
	case "age":
		return optInt(a.Age)
	}
	v, ok := aggregator.Metric(a, col)
	if !ok {
		return ""
	}
	return ftoa(v)
}

func projectPlayers(name string, aggs []model.PlayerAggregate, cols []string) Frame {
	f := Frame{Name: name, Header: cols}
	for _, a := range aggs {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = playerCell(a, c)
		}
		f.Rows = append(f.Rows, row)
	}
	return f
}

// PlayerStatsFrame renders the full player aggregate.
func PlayerStatsFrame(aggs []model.PlayerAggregate) Frame {
	return projectPlayers("player_stats", aggs, playerColumns)
}

// ScoutingFrame renders the players of a scouting report with its columns.
func ScoutingFrame(r aggregator.ScoutingReport, aggs []model.PlayerAggregate) Frame {
	return projectPlayers(r.Name, aggs, r.Columns)
}

// ---- Team summary ----

var teamSummaryColumns = []string{
	"league", "team_name", "avg_age",
	"total_goals", "total_assists", "total_minutes_played",
	"total_shots", "total_shots_on_target", "avg_shot_accuracy",
	"total_passes_attempted", "total_passes_completed", "avg_pass_accuracy",
	"total_key_passes", "total_tackles", "total_interceptions",
	"total_duels_won", "total_duels_lost", "avg_duel_win_rate",
	"total_fouls_committed", "total_yellow_cards", "total_red_cards",
	"total_xg", "total_xa", "total_g_xg", "total_goal_contribution",
	"avg_goals_90", "avg_assists_90", "avg_xg_90", "avg_xa_90", "avg_goal_contribution_90",
}

// TeamSummaryFrame renders team summaries.
func TeamSummaryFrame(sums []model.TeamSummary) Frame {
	f := Frame{Name: "team_summary", Header: teamSummaryColumns}
	for _, s := range sums {
		f.Rows = append(f.Rows, []string{
			s.League, s.TeamName, optFloat(s.AvgAge),
			itoa(s.Goals), itoa(s.Assists), itoa(s.MinutesPlayed),
			itoa(s.Shots), itoa(s.ShotsOnTarget), optFloat(s.AvgShotAccuracy),
			itoa(s.PassesAttempted), itoa(s.PassesCompleted), optFloat(s.AvgPassAccuracy),
			itoa(s.KeyPasses), itoa(s.Tackles), itoa(s.Interceptions),
			itoa(s.DuelsWon), itoa(s.DuelsLost), optFloat(s.AvgDuelWinRate),
			itoa(s.FoulsCommitted), itoa(s.YellowCards), itoa(s.RedCards),
			ftoa(s.XG), ftoa(s.XA), ftoa(s.GXG), itoa(s.GoalContribution),
			optFloat(s.AvgGoals90), optFloat(s.AvgAssists90), optFloat(s.AvgXG90),
			optFloat(s.AvgXA90), optFloat(s.AvgGoalContribution90),
		})
	}
	return f
}

// ---- Top players ----

var topColumns = []string{
	"league", "team_name", "ranking", "player_name", "position", "age",
	"minutes_played", "goals", "assists", "goal_contribution",
}

// TopPlayersFrame renders the ranked per-team view.
func TopPlayersFrame(top []model.TopPlayer) Frame {
	f := Frame{Name: "team_top3", Header: topColumns}
	for _, p := range top {
		f.Rows = append(f.Rows, []string{
			p.League, p.TeamName, itoa(p.Ranking), p.PlayerName, p.Position, optInt(p.Age),
			itoa(p.MinutesPlayed), itoa(p.Goals), itoa(p.Assists), itoa(p.GoalContribution),
		})
	}
	return f
}
