package validate

import (
	"reflect"
	"strings"

	"github.com/pable/go-scout-elt/internal/landing"
)

// Landing row schemas. Pointer fields distinguish a missing value from a
// zero value; `validate` tags carry the per-field checks.

type teamRow struct {
	TeamID  *string `json:"team_id" validate:"required"`
	Name    *string `json:"name" validate:"required"`
	League  *string `json:"league" validate:"required"`
	Stadium *string `json:"stadium" validate:"required"`
	City    *string `json:"city" validate:"required"`
}

type playerRow struct {
	PlayerID      *string  `json:"player_id" validate:"required"`
	Name          *string  `json:"name" validate:"required"`
	TeamID        *string  `json:"team_id" validate:"required"`
	Position      *string  `json:"position" validate:"required"`
	DateOfBirth   *string  `json:"date_of_birth" validate:"required,dateformat"`
	Nationality   *string  `json:"nationality" validate:"omitempty"`
	MarketValue   *float64 `json:"market_value" validate:"omitempty,gte=0"`
	ContractUntil *string  `json:"contract_until" validate:"omitempty,dateformat"`
}

type matchRow struct {
	MatchID     *string `json:"match_id" validate:"required"`
	Competition *string `json:"competition" validate:"required"`
	Season      *string `json:"season" validate:"required"`
	MatchDate   *string `json:"match_date" validate:"required,dateformat"`
	HomeTeamID  *string `json:"home_team_id" validate:"required"`
	AwayTeamID  *string `json:"away_team_id" validate:"required"`
	HomeScore   *int    `json:"home_score" validate:"required,gte=0"`
	AwayScore   *int    `json:"away_score" validate:"required,gte=0"`
	Venue       *string `json:"venue" validate:"required"`
	Attendance  *int    `json:"attendance" validate:"required,gte=0"`
	Referee     *string `json:"referee" validate:"required"`
}

type statRow struct {
	PlayerID        *string  `json:"player_id" validate:"required"`
	MatchID         *string  `json:"match_id" validate:"required"`
	MinutesPlayed   *int     `json:"minutes_played" validate:"required,gte=0"`
	Goals           *int     `json:"goals" validate:"required,gte=0"`
	Assists         *int     `json:"assists" validate:"required,gte=0"`
	Shots           *int     `json:"shots" validate:"required,gte=0"`
	ShotsOnTarget   *int     `json:"shots_on_target" validate:"required,gte=0"`
	PassesAttempted *int     `json:"passes_attempted" validate:"required,gte=0"`
	PassesCompleted *int     `json:"passes_completed" validate:"required,gte=0"`
	KeyPasses       *int     `json:"key_passes" validate:"required,gte=0"`
	Tackles         *int     `json:"tackles" validate:"required,gte=0"`
	Interceptions   *int     `json:"interceptions" validate:"required,gte=0"`
	DuelsWon        *int     `json:"duels_won" validate:"required,gte=0"`
	DuelsLost       *int     `json:"duels_lost" validate:"required,gte=0"`
	FoulsCommitted  *int     `json:"fouls_committed" validate:"required,gte=0"`
	YellowCards     *int     `json:"yellow_cards" validate:"required,gte=0,yellowcap"`
	RedCards        *int     `json:"red_cards" validate:"required,gte=0,redcap"`
	XG              *float64 `json:"xg" validate:"required,gte=0"`
	XA              *float64 `json:"xa" validate:"required,gte=0"`
}

type eventRow struct {
	EventID     *string  `json:"event_id" validate:"required"`
	MatchID     *string  `json:"match_id" validate:"required"`
	Minute      *int     `json:"minute" validate:"required,gte=0"`
	Second      *int     `json:"second" validate:"required,second"`
	EventType   *string  `json:"event_type" validate:"required"`
	PlayerID    *string  `json:"player_id" validate:"required"`
	TeamID      *string  `json:"team_id" validate:"required"`
	XStart      *float64 `json:"x_start" validate:"required,pitch"`
	YStart      *float64 `json:"y_start" validate:"required,pitch"`
	XEnd        *float64 `json:"x_end" validate:"omitempty,pitch"`
	YEnd        *float64 `json:"y_end" validate:"omitempty,pitch"`
	Outcome     *string  `json:"outcome" validate:"required"`
	BodyPart    *string  `json:"body_part"`
	PassType    *string  `json:"pass_type"`
	RecipientID *string  `json:"recipient_id"`
}

var (
	stringPtr = reflect.TypeOf((*string)(nil))
	intPtr    = reflect.TypeOf((*int)(nil))
	floatPtr  = reflect.TypeOf((*float64)(nil))
)

func jsonName(f reflect.StructField) string {
	return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
}

// decodeRow fills the pointer fields of dst from rec by json name. Values of
// the wrong type are left nil and reported as type violations.
func decodeRow(rec landing.Record, dst any) []Violation {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	var out []Violation
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonName(f)
		raw, ok := rec[name]
		if !ok || landing.IsNull(raw) {
			continue
		}
		switch f.Type {
		case stringPtr:
			if s, ok := raw.(string); ok {
				v.Field(i).Set(reflect.ValueOf(&s))
				continue
			}
			out = append(out, Violation{Field: name, Rule: "type", Message: "Input should be a valid string"})
		case intPtr:
			if n, ok := landing.Int(raw); ok {
				v.Field(i).Set(reflect.ValueOf(&n))
				continue
			}
			out = append(out, Violation{Field: name, Rule: "type", Message: "Input should be a valid integer"})
		case floatPtr:
			if x, ok := landing.Float(raw); ok {
				v.Field(i).Set(reflect.ValueOf(&x))
				continue
			}
			out = append(out, Violation{Field: name, Rule: "type", Message: "Input should be a valid number"})
		}
	}
	return out
}
