package transform

import (
	"github.com/pable/go-scout-elt/internal/landing"
	"github.com/pable/go-scout-elt/internal/model"
)

// Lenient record readers: a value of the wrong type reads as the zero value
// (or nil for optional fields). Strict type checks belong to the validator.

func str(r landing.Record, col string) string {
	s, _ := landing.String(r[col])
	return s
}

func optStr(r landing.Record, col string) *string {
	s, ok := landing.String(r[col])
	if !ok {
		return nil
	}
	return &s
}

func num(r landing.Record, col string) int {
	if n, ok := landing.Int(r[col]); ok {
		return n
	}
	f, _ := landing.Float(r[col])
	return int(f)
}

func optFloat(r landing.Record, col string) *float64 {
	f, ok := landing.Float(r[col])
	if !ok {
		return nil
	}
	return &f
}

func decodeTeam(r landing.Record) model.Team {
	return model.Team{
		TeamID:  str(r, "team_id"),
		Name:    str(r, "name"),
		League:  str(r, "league"),
		Stadium: str(r, "stadium"),
		City:    str(r, "city"),
	}
}

func decodePlayer(r landing.Record) model.Player {
	return model.Player{
		PlayerID:      str(r, "player_id"),
		Name:          str(r, "name"),
		TeamID:        str(r, "team_id"),
		Position:      str(r, "position"),
		DateOfBirth:   optStr(r, "date_of_birth"),
		Nationality:   str(r, "nationality"),
		MarketValue:   optFloat(r, "market_value"),
		ContractUntil: optStr(r, "contract_until"),
	}
}

func decodeMatch(r landing.Record) model.Match {
	return model.Match{
		MatchID:     str(r, "match_id"),
		Competition: str(r, "competition"),
		Season:      str(r, "season"),
		MatchDate:   optStr(r, "match_date"),
		HomeTeamID:  str(r, "home_team_id"),
		AwayTeamID:  str(r, "away_team_id"),
		HomeScore:   num(r, "home_score"),
		AwayScore:   num(r, "away_score"),
		Venue:       str(r, "venue"),
		Attendance:  num(r, "attendance"),
		Referee:     str(r, "referee"),
	}
}

func decodeStat(r landing.Record) model.PlayerMatchStat {
	return model.PlayerMatchStat{
		PlayerID:        str(r, "player_id"),
		MatchID:         str(r, "match_id"),
		MinutesPlayed:   num(r, "minutes_played"),
		Goals:           num(r, "goals"),
		Assists:         num(r, "assists"),
		Shots:           num(r, "shots"),
		ShotsOnTarget:   num(r, "shots_on_target"),
		PassesAttempted: num(r, "passes_attempted"),
		PassesCompleted: num(r, "passes_completed"),
		KeyPasses:       num(r, "key_passes"),
		Tackles:         num(r, "tackles"),
		Interceptions:   num(r, "interceptions"),
		DuelsWon:        num(r, "duels_won"),
		DuelsLost:       num(r, "duels_lost"),
		FoulsCommitted:  num(r, "fouls_committed"),
		YellowCards:     num(r, "yellow_cards"),
		RedCards:        num(r, "red_cards"),
		XG:              optFloat(r, "xg"),
		XA:              optFloat(r, "xa"),
	}
}

func decodeEvent(r landing.Record) model.MatchEvent {
	return model.MatchEvent{
		EventID:     str(r, "event_id"),
		MatchID:     str(r, "match_id"),
		Minute:      num(r, "minute"),
		Second:      num(r, "second"),
		EventType:   str(r, "event_type"),
		PlayerID:    str(r, "player_id"),
		TeamID:      str(r, "team_id"),
		XStart:      optFloat(r, "x_start"),
		YStart:      optFloat(r, "y_start"),
		XEnd:        optFloat(r, "x_end"),
		YEnd:        optFloat(r, "y_end"),
		Outcome:     str(r, "outcome"),
		BodyPart:    optStr(r, "body_part"),
		PassType:    optStr(r, "pass_type"),
		RecipientID: optStr(r, "recipient_id"),
	}
}

func decodeAll[T any](t *landing.Table, decode func(landing.Record) T) []T {
	out := make([]T, 0, t.Len())
	for _, r := range t.Rows {
		out = append(out, decode(r))
	}
	return out
}
