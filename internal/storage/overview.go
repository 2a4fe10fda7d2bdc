package storage

import (
	"context"
	"fmt"
)

// Overview is a high-level snapshot of the store contents.
type Overview struct {
	Teams         int     `db:"teams"`
	Players       int     `db:"players"`
	Matches       int     `db:"matches"`
	Events        int     `db:"events"`
	EarliestMatch *string `db:"earliest"`
	LatestMatch   *string `db:"latest"`
}

// Overview returns entity counts and the match date range.
func (db *DB) Overview(ctx context.Context) (Overview, error) {
	var ov Overview
	err := db.conn.GetContext(ctx, &ov, `
		SELECT
			(SELECT COUNT(1) FROM dim_teams)         AS teams,
			(SELECT COUNT(1) FROM dim_players)       AS players,
			(SELECT COUNT(1) FROM dim_matches)       AS matches,
			(SELECT COUNT(1) FROM fact_match_events) AS events,
			(SELECT MIN(match_date) FROM dim_matches) AS earliest,
			(SELECT MAX(match_date) FROM dim_matches) AS latest`)
	if err != nil {
		return ov, fmt.Errorf("select overview: %w", err)
	}
	return ov, nil
}

// CompetitionCount is the number of matches and goals of one competition season.
type CompetitionCount struct {
	Competition string `db:"competition"`
	Season      string `db:"season"`
	Matches     int    `db:"matches"`
	Goals       int    `db:"goals"`
}

// CompetitionCounts groups stored matches by competition and season.
func (db *DB) CompetitionCounts(ctx context.Context) ([]CompetitionCount, error) {
	var out []CompetitionCount
	err := db.conn.SelectContext(ctx, &out, `
		SELECT competition, season, COUNT(1) AS matches, SUM(home_score + away_score) AS goals
		FROM dim_matches
		GROUP BY competition, season
		ORDER BY competition, season`)
	if err != nil {
		return nil, fmt.Errorf("select competition counts: %w", err)
	}
	return out, nil
}

// ActivePlayer is a player ranked by appearances.
type ActivePlayer struct {
	PlayerID string `db:"player_id"`
	Name     string `db:"name"`
	TeamName string `db:"team_name"`
	Matches  int    `db:"matches"`
	Minutes  int    `db:"minutes"`
	Goals    int    `db:"goals"`
}

// MostActivePlayers returns up to limit players ordered by matches played,
// then minutes.
func (db *DB) MostActivePlayers(ctx context.Context, limit int) ([]ActivePlayer, error) {
	var out []ActivePlayer
	err := db.conn.SelectContext(ctx, &out, `
		SELECT s.player_id,
		       COALESCE(p.name, '')      AS name,
		       COALESCE(t.name, '')      AS team_name,
		       COUNT(1)                  AS matches,
		       SUM(s.minutes_played)     AS minutes,
		       SUM(s.goals)              AS goals
		FROM fact_player_match_stats s
		LEFT JOIN dim_players p ON p.player_id = s.player_id
		LEFT JOIN dim_teams t   ON t.team_id = p.team_id
		GROUP BY s.player_id
		ORDER BY matches DESC, minutes DESC, s.player_id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("select active players: %w", err)
	}
	return out, nil
}

// MatchLogEntry is one match of a player's chronological log.
type MatchLogEntry struct {
	MatchID          string   `db:"match_id"`
	MatchDate        *string  `db:"match_date"`
	Competition      string   `db:"competition"`
	Side             string   `db:"side"` // H, A or empty when the team is not in the match
	Opponent         string   `db:"opponent"`
	MinutesPlayed    int      `db:"minutes_played"`
	Goals            int      `db:"goals"`
	Assists          int      `db:"assists"`
	Shots            int      `db:"shots"`
	KeyPasses        int      `db:"key_passes"`
	XG               *float64 `db:"xg"`
	GXG              *float64 `db:"g_xg"`
	GoalContribution int      `db:"goal_contribution"`
}

// PlayerMatchLog returns every stored match of a player ordered by date.
func (db *DB) PlayerMatchLog(ctx context.Context, playerID string) ([]MatchLogEntry, error) {
	var out []MatchLogEntry
	err := db.conn.SelectContext(ctx, &out, `
		SELECT s.match_id,
		       m.match_date,
		       COALESCE(m.competition, '') AS competition,
		       CASE WHEN m.home_team_id = p.team_id THEN 'H'
		            WHEN m.away_team_id = p.team_id THEN 'A'
		            ELSE '' END AS side,
		       COALESCE(o.name, '') AS opponent,
		       s.minutes_played, s.goals, s.assists, s.shots, s.key_passes,
		       s.xg, s.g_xg, s.goal_contribution
		FROM fact_player_match_stats s
		JOIN dim_players p      ON p.player_id = s.player_id
		LEFT JOIN dim_matches m ON m.match_id = s.match_id
		LEFT JOIN dim_teams o   ON o.team_id = CASE WHEN m.home_team_id = p.team_id
		                                            THEN m.away_team_id ELSE m.home_team_id END
		WHERE s.player_id = ?
		ORDER BY m.match_date, s.match_id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("select match log for %s: %w", playerID, err)
	}
	return out, nil
}
