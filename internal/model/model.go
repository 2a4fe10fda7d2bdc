package model

import "sort"

// Position categories produced by position normalization.
const (
	PositionGoalkeeper = "Goalkeeper"
	PositionDefender   = "Defender"
	PositionMidfielder = "Midfielder"
	PositionForward    = "Forward"
	PositionUnknown    = "Unknown"
)

// Entity names, shared by landing snapshots, validation reports and store tables.
const (
	EntityTeams            = "teams"
	EntityPlayers          = "players"
	EntityMatches          = "matches"
	EntityPlayerMatchStats = "player_match_stats"
	EntityMatchEvents      = "match_events"
)

// Entities lists every entity in dependency order.
var Entities = []string{
	EntityTeams,
	EntityPlayers,
	EntityMatches,
	EntityPlayerMatchStats,
	EntityMatchEvents,
}

// ---- Cleaned entities ----

type Team struct {
	TeamID  string `db:"team_id"`
	Name    string `db:"name"`
	League  string `db:"league"`
	Stadium string `db:"stadium"`
	City    string `db:"city"`
}

type Player struct {
	PlayerID      string   `db:"player_id"`
	Name          string   `db:"name"`
	TeamID        string   `db:"team_id"`
	Position      string   `db:"position"`
	DateOfBirth   *string  `db:"date_of_birth"`
	Nationality   string   `db:"nationality"`
	MarketValue   *float64 `db:"market_value"`
	ContractUntil *string  `db:"contract_until"`
	Age           *int     `db:"age"`
}

type Match struct {
	MatchID     string  `db:"match_id"`
	Competition string  `db:"competition"`
	Season      string  `db:"season"`
	MatchDate   *string `db:"match_date"`
	HomeTeamID  string  `db:"home_team_id"`
	AwayTeamID  string  `db:"away_team_id"`
	HomeScore   int     `db:"home_score"`
	AwayScore   int     `db:"away_score"`
	Venue       string  `db:"venue"`
	Attendance  int     `db:"attendance"`
	Referee     string  `db:"referee"`
}

// StatKey is the natural key of a PlayerMatchStat.
type StatKey struct {
	PlayerID string
	MatchID  string
}

type PlayerMatchStat struct {
	PlayerID         string   `db:"player_id"`
	MatchID          string   `db:"match_id"`
	MinutesPlayed    int      `db:"minutes_played"`
	Goals            int      `db:"goals"`
	Assists          int      `db:"assists"`
	Shots            int      `db:"shots"`
	ShotsOnTarget    int      `db:"shots_on_target"`
	PassesAttempted  int      `db:"passes_attempted"`
	PassesCompleted  int      `db:"passes_completed"`
	KeyPasses        int      `db:"key_passes"`
	Tackles          int      `db:"tackles"`
	Interceptions    int      `db:"interceptions"`
	DuelsWon         int      `db:"duels_won"`
	DuelsLost        int      `db:"duels_lost"`
	FoulsCommitted   int      `db:"fouls_committed"`
	YellowCards      int      `db:"yellow_cards"`
	RedCards         int      `db:"red_cards"`
	XG               *float64 `db:"xg"`
	XA               *float64 `db:"xa"`
	GoalContribution int      `db:"goal_contribution"`
	GXG              *float64 `db:"g_xg"`
}

// Key returns the (player_id, match_id) natural key.
func (s PlayerMatchStat) Key() StatKey {
	return StatKey{PlayerID: s.PlayerID, MatchID: s.MatchID}
}

type MatchEvent struct {
	EventID     string   `db:"event_id"`
	MatchID     string   `db:"match_id"`
	Minute      int      `db:"minute"`
	Second      int      `db:"second"`
	EventType   string   `db:"event_type"`
	PlayerID    string   `db:"player_id"`
	TeamID      string   `db:"team_id"`
	XStart      *float64 `db:"x_start"`
	YStart      *float64 `db:"y_start"`
	XEnd        *float64 `db:"x_end"`
	YEnd        *float64 `db:"y_end"`
	Outcome     string   `db:"outcome"`
	BodyPart    *string  `db:"body_part"`
	PassType    *string  `db:"pass_type"`
	RecipientID *string  `db:"recipient_id"`
}

// Dataset holds the cleaned output of one transform run. A nil slice means the
// entity was skipped.
type Dataset struct {
	Teams            []Team
	Players          []Player
	Matches          []Match
	PlayerMatchStats []PlayerMatchStat
	MatchEvents      []MatchEvent
}

// ---- Key sets ----

// KeySet is a set of natural-key values used for referential checks.
type KeySet map[string]struct{}

// NewKeySet builds a KeySet from the given keys.
func NewKeySet(keys ...string) KeySet {
	ks := make(KeySet, len(keys))
	for _, k := range keys {
		ks[k] = struct{}{}
	}
	return ks
}

// Has reports whether k is in the set.
func (ks KeySet) Has(k string) bool {
	_, ok := ks[k]
	return ok
}

// Sorted returns the keys in ascending order.
func (ks KeySet) Sorted() []string {
	out := make([]string, 0, len(ks))
	for k := range ks {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ---- Aggregates ----

// PlayerAggregate is one player's statistics summed across all matches, with
// per-90 rates and accuracy ratios. Rates are nil when their denominator is zero.
type PlayerAggregate struct {
	PlayerID string `db:"player_id"`
	Name     string `db:"name"`
	TeamID   string `db:"team_id"`
	TeamName string `db:"team_name"`
	Position string `db:"position"`
	Age      *int   `db:"age"`
	Matches  int    `db:"matches"`

	MinutesPlayed    int     `db:"minutes_played"`
	Goals            int     `db:"goals"`
	Assists          int     `db:"assists"`
	Shots            int     `db:"shots"`
	ShotsOnTarget    int     `db:"shots_on_target"`
	PassesAttempted  int     `db:"passes_attempted"`
	PassesCompleted  int     `db:"passes_completed"`
	KeyPasses        int     `db:"key_passes"`
	Tackles          int     `db:"tackles"`
	Interceptions    int     `db:"interceptions"`
	DuelsWon         int     `db:"duels_won"`
	DuelsLost        int     `db:"duels_lost"`
	FoulsCommitted   int     `db:"fouls_committed"`
	YellowCards      int     `db:"yellow_cards"`
	RedCards         int     `db:"red_cards"`
	XG               float64 `db:"xg"`
	XA               float64 `db:"xa"`
	GoalContribution int     `db:"goal_contribution"`
	GXG              float64 `db:"g_xg"`

	Goals90            *float64 `db:"goals_90"`
	Assists90          *float64 `db:"assists_90"`
	ShotAccuracy       *float64 `db:"shot_accuracy"`
	PassesAttempted90  *float64 `db:"passes_attempted_90"`
	PassesCompleted90  *float64 `db:"passes_completed_90"`
	KeyPasses90        *float64 `db:"key_passes_90"`
	PassAccuracy       *float64 `db:"pass_accuracy"`
	Tackles90          *float64 `db:"tackles_90"`
	Interceptions90    *float64 `db:"interceptions_90"`
	DuelWinRate        *float64 `db:"duel_win_rate"`
	Fouls90            *float64 `db:"fouls_90"`
	YellowCards90      *float64 `db:"yellow_cards_90"`
	RedCards90         *float64 `db:"red_cards_90"`
	XG90               *float64 `db:"xg_90"`
	XA90               *float64 `db:"xa_90"`
	GoalContribution90 *float64 `db:"goal_contribution_90"`
	GXG90              *float64 `db:"g_xg_90"`
}

// TeamSummary rolls player aggregates up to their team. Rate columns are the
// mean of the per-player rates that are not nil.
type TeamSummary struct {
	TeamID   string
	League   string
	TeamName string
	AvgAge   *float64

	Goals            int
	Assists          int
	MinutesPlayed    int
	Shots            int
	ShotsOnTarget    int
	PassesAttempted  int
	PassesCompleted  int
	KeyPasses        int
	Tackles          int
	Interceptions    int
	DuelsWon         int
	DuelsLost        int
	FoulsCommitted   int
	YellowCards      int
	RedCards         int
	XG               float64
	XA               float64
	GoalContribution int
	GXG              float64

	AvgShotAccuracy       *float64
	AvgPassAccuracy       *float64
	AvgDuelWinRate        *float64
	AvgGoals90            *float64
	AvgAssists90          *float64
	AvgXG90               *float64
	AvgXA90               *float64
	AvgGoalContribution90 *float64
}

// TopPlayer is one row of the ranked per-team view.
type TopPlayer struct {
	League           string
	TeamID           string
	TeamName         string
	Ranking          int
	PlayerID         string
	PlayerName       string
	Position         string
	Age              *int
	MinutesPlayed    int
	Goals            int
	Assists          int
	GoalContribution int
}
