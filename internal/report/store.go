package report

import (
	"math"

	"github.com/pable/go-scout-elt/internal/storage"
)

// ---- Store overview ----

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// CompetitionFrame lists matches and goals per competition season.
func CompetitionFrame(counts []storage.CompetitionCount) Frame {
	f := Frame{Name: "competitions", Header: []string{"competition", "season", "matches", "goals", "goals_per_match"}}
	for _, c := range counts {
		perMatch := ""
		if c.Matches > 0 {
			perMatch = ftoa(round2(float64(c.Goals) / float64(c.Matches)))
		}
		f.Rows = append(f.Rows, []string{c.Competition, c.Season, itoa(c.Matches), itoa(c.Goals), perMatch})
	}
	return f
}

// ActivePlayersFrame lists players by appearances.
func ActivePlayersFrame(players []storage.ActivePlayer) Frame {
	f := Frame{Name: "active_players", Header: []string{"player_id", "name", "team_name", "matches", "minutes", "goals"}}
	for _, p := range players {
		f.Rows = append(f.Rows, []string{p.PlayerID, p.Name, p.TeamName, itoa(p.Matches), itoa(p.Minutes), itoa(p.Goals)})
	}
	return f
}

// MatchLogFrame renders a player's chronological match log.
func MatchLogFrame(entries []storage.MatchLogEntry) Frame {
	f := Frame{Name: "match_log", Header: []string{
		"match_date", "competition", "side", "opponent", "minutes_played",
		"goals", "assists", "shots", "key_passes", "xg", "g_xg", "goal_contribution",
	}}
	for _, e := range entries {
		f.Rows = append(f.Rows, []string{
			optString(e.MatchDate), e.Competition, e.Side, e.Opponent, itoa(e.MinutesPlayed),
			itoa(e.Goals), itoa(e.Assists), itoa(e.Shots), itoa(e.KeyPasses),
			optFloat(e.XG), optFloat(e.GXG), itoa(e.GoalContribution),
		})
	}
	return f
}
