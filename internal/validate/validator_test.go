package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-scout-elt/internal/fixtures"
	"github.com/pable/go-scout-elt/internal/landing"
	"github.com/pable/go-scout-elt/internal/model"
)

var (
	teamKeys   = model.NewKeySet("T001", "T002", "T003")
	playerKeys = model.NewKeySet("P001", "P002", "P003")
	matchKeys  = model.NewKeySet("M001", "M002", "M003")
)

func countWarnings(rep Report, substr string) int {
	n := 0
	for _, w := range rep.Warnings {
		if strings.Contains(w, substr) {
			n++
		}
	}
	return n
}

func ruleNames(err RowError) []string {
	var out []string
	for _, v := range err.Violations {
		out = append(out, v.Rule)
	}
	return out
}

func TestTeamsClean(t *testing.T) {
	rep := New(DefaultLimits).Teams(fixtures.Teams())

	assert.Equal(t, model.EntityTeams, rep.Entity)
	assert.Equal(t, 3, rep.TotalRows)
	assert.Equal(t, 3, rep.ValidRows)
	assert.Zero(t, rep.InvalidRows)
	assert.Empty(t, rep.Warnings)
}

func TestTeamsDuplicatesAreWarningsOnly(t *testing.T) {
	rep := New(DefaultLimits).Teams(fixtures.TeamsWithDuplicates())

	assert.Equal(t, 2, rep.ValidRows)
	assert.Equal(t, 1, countWarnings(rep, "duplicate team ids"))
	assert.Contains(t, rep.Warnings[0], "T001")
}

func TestEmptyDataset(t *testing.T) {
	rep := New(DefaultLimits).Teams(landing.NewTable(model.EntityTeams))

	assert.Zero(t, rep.TotalRows)
	assert.Equal(t, []string{"Teams dataset is empty"}, rep.Warnings)
	assert.Zero(t, rep.ValidPercentage())

	rep = New(DefaultLimits).MatchEvents(nil, nil, nil, nil)
	assert.Equal(t, []string{"Match events dataset is empty"}, rep.Warnings)
}

func TestPlayersOrphansAgainstPartialTeams(t *testing.T) {
	rep := New(DefaultLimits).Players(fixtures.Players(), model.NewKeySet("T001", "T002"))

	assert.Equal(t, 4, rep.ValidRows)
	assert.Equal(t, 1, countWarnings(rep, "orphaned"))
	assert.Equal(t, 1, countWarnings(rep, "orphaned team ids in players: [T003]"))
	assert.Equal(t, 1, countWarnings(rep, "position labels"))
	assert.Equal(t, NullCount{Count: 0, Percentage: 0}, rep.NullCounts["market_value"])
}

func TestPlayersWithIssues(t *testing.T) {
	tbl := fixtures.PlayersWithIssues()
	tbl.Rows[0]["nationality"] = nil
	rep := New(DefaultLimits).Players(tbl, teamKeys)

	assert.Equal(t, 4, rep.TotalRows)
	assert.Equal(t, 1, rep.InvalidRows)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, 3, rep.Errors[0].Row)
	assert.Equal(t, "P002", rep.Errors[0].Key)
	assert.Equal(t, []string{"dateformat"}, ruleNames(rep.Errors[0]))
	assert.Equal(t, "date_of_birth", rep.Errors[0].Violations[0].Field)

	assert.Equal(t, 1, countWarnings(rep, "duplicate player ids: [P002]"))
	assert.Equal(t, 1, countWarnings(rep, "orphaned team ids in players: [T999]"))
}

func TestPlayersNullCounts(t *testing.T) {
	tbl := fixtures.Columnar(model.EntityPlayers, map[string][]any{
		"player_id":      {"P001", "P002", "P003", "P004"},
		"name":           {"A", "B", "C", "D"},
		"team_id":        {"T001", "T001", "T001", "T001"},
		"position":       {"Forward", "Forward", "Defender", "Goalkeeper"},
		"date_of_birth":  {"1990-01-01", "1990-01-01", "1990-01-01", "1990-01-01"},
		"nationality":    {"Spain", "Spain", "Spain", "Spain"},
		"market_value":   {nil, 1000, -5, nil},
		"contract_until": {"2025-06-30", nil, nil, nil},
	})
	rep := New(DefaultLimits).Players(tbl, nil)

	assert.Equal(t, NullCount{Count: 2, Percentage: 50}, rep.NullCounts["market_value"])
	assert.Equal(t, NullCount{Count: 3, Percentage: 75}, rep.NullCounts["contract_until"])
	assert.Equal(t, []string{"contract_until", "market_value"}, rep.NullColumns())
	// negative market value is a row error; canonical labels raise no position warning
	assert.Equal(t, 1, rep.InvalidRows)
	assert.Zero(t, countWarnings(rep, "position labels"))
}

func TestMatchesInvalidScores(t *testing.T) {
	tbl := fixtures.Matches()
	tbl.Rows[0]["home_score"] = -1
	tbl.Rows[2]["away_score"] = -2
	rep := New(DefaultLimits).Matches(tbl, teamKeys)

	assert.Equal(t, 2, rep.InvalidRows)
	assert.Equal(t, 1, rep.ValidRows)
	assert.Equal(t, "M001", rep.Errors[0].Key)
	assert.Equal(t, []string{"gte"}, ruleNames(rep.Errors[0]))
}

func TestMatchesDuplicatesAndOrphanTeams(t *testing.T) {
	rep := New(DefaultLimits).Matches(fixtures.MatchesWithDuplicates(), model.NewKeySet("T001"))

	assert.Equal(t, 1, countWarnings(rep, "duplicate match ids"))
	assert.Equal(t, 1, countWarnings(rep, "orphaned away team ids in matches: [T002]"))
	assert.Zero(t, countWarnings(rep, "orphaned home team ids"))
}

func TestPlayerMatchStatsWithIssues(t *testing.T) {
	rep := New(DefaultLimits).PlayerMatchStats(fixtures.PlayerMatchStatsWithIssues(), playerKeys, matchKeys)

	assert.Equal(t, 2, rep.InvalidRows)
	assert.Equal(t, 2, rep.ValidRows)
	require.Len(t, rep.Errors, 2)

	first := rep.Errors[0]
	assert.Equal(t, "P001/M001", first.Key)
	assert.Equal(t, []string{"shots_on_target_within_shots", "passes_completed_within_attempted"}, ruleNames(first))
	assert.Equal(t, "shots_on_target (6) cannot exceed shots (5)", first.Violations[0].Message)

	// field failures suppress cross-field rules
	second := rep.Errors[1]
	assert.Equal(t, "P001/M999", second.Key)
	assert.ElementsMatch(t, []string{"yellowcap", "gte"}, ruleNames(second))

	assert.Equal(t, 1, countWarnings(rep, "orphaned player ids in player_match_stats: [P999]"))
	assert.Equal(t, 1, countWarnings(rep, "orphaned match ids in player_match_stats: [M999]"))
}

func TestPlayerMatchStatsXGAboveShots(t *testing.T) {
	tbl := fixtures.PlayerMatchStats()
	tbl.Rows[3]["xg"] = 0.4 // zero shots
	rep := New(DefaultLimits).PlayerMatchStats(tbl, playerKeys, matchKeys)

	require.Len(t, rep.Errors, 1)
	assert.Equal(t, []string{"xg_within_shots"}, ruleNames(rep.Errors[0]))
}

func TestCardLimitsAreConfigurable(t *testing.T) {
	tbl := fixtures.PlayerMatchStats()
	tbl.Rows[1]["yellow_cards"] = 3

	assert.Equal(t, 1, New(DefaultLimits).PlayerMatchStats(tbl, nil, nil).InvalidRows)
	assert.Zero(t, New(Limits{MaxYellowCards: 3, MaxRedCards: 1}).PlayerMatchStats(tbl, nil, nil).InvalidRows)
}

func TestTypeErrorsReportedOnce(t *testing.T) {
	tbl := fixtures.PlayerMatchStats()
	tbl.Rows[0]["goals"] = "abc"
	delete(tbl.Rows[1], "assists")
	rep := New(DefaultLimits).PlayerMatchStats(tbl, nil, nil)

	require.Len(t, rep.Errors, 2)
	assert.Equal(t, []Violation{{Field: "goals", Rule: "type", Message: "Input should be a valid integer"}}, rep.Errors[0].Violations)
	assert.Equal(t, []Violation{{Field: "assists", Rule: "required", Message: "field required"}}, rep.Errors[1].Violations)
}

func TestMatchEventsClean(t *testing.T) {
	rep := New(DefaultLimits).MatchEvents(fixtures.MatchEvents(), matchKeys, teamKeys, playerKeys)

	assert.Equal(t, 4, rep.ValidRows)
	assert.Empty(t, rep.Warnings)
	assert.Equal(t, NullCount{Count: 1, Percentage: 25}, rep.NullCounts["x_end"])
	assert.Equal(t, NullCount{Count: 2, Percentage: 50}, rep.NullCounts["pass_type"])
}

func TestMatchEventsWithIssues(t *testing.T) {
	rep := New(DefaultLimits).MatchEvents(fixtures.MatchEventsWithIssues(), matchKeys, teamKeys, playerKeys)

	assert.Equal(t, 3, rep.InvalidRows)
	assert.Equal(t, 1, rep.ValidRows)

	e002 := rep.Errors[0]
	assert.Equal(t, "E002", e002.Key)
	assert.ElementsMatch(t, []string{"gte", "second", "pitch"}, ruleNames(e002))

	e003 := rep.Errors[1]
	assert.Equal(t, []string{
		"pass_destination_required", "pass_type_required", "pass_recipient_required", "body_part_required",
	}, ruleNames(e003))
	assert.Equal(t, "pass event does not have a destination (x_end, y_end)", e003.Violations[0].Message)
	assert.Equal(t, "pass event requires body_part", e003.Violations[3].Message)

	assert.Equal(t, 1, countWarnings(rep, "duplicate event ids: [E003]"))
	assert.Equal(t, 1, countWarnings(rep, "orphaned match ids"))
	assert.Equal(t, 1, countWarnings(rep, "orphaned team ids"))
	assert.Equal(t, 1, countWarnings(rep, "orphaned player ids"))
}

func TestMatchEventsNullStartIsInvalid(t *testing.T) {
	tbl := fixtures.MatchEvents()
	tbl.Rows[3]["x_start"] = nil
	tbl.Rows[3]["y_start"] = nil
	rep := New(DefaultLimits).MatchEvents(tbl, matchKeys, teamKeys, playerKeys)

	assert.Equal(t, 3, rep.ValidRows)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, "E004", rep.Errors[0].Key)
	assert.Equal(t, []Violation{
		{Field: "x_start", Rule: "required", Message: "field required"},
		{Field: "y_start", Rule: "required", Message: "field required"},
	}, rep.Errors[0].Violations)
}

func TestDuplicatesIgnoreMissingKeys(t *testing.T) {
	tbl := fixtures.Teams()
	tbl.Rows[0]["team_id"] = nil
	tbl.Rows[1]["team_id"] = nil
	rep := New(DefaultLimits).Teams(tbl)

	assert.Equal(t, 2, rep.InvalidRows)
	assert.Zero(t, countWarnings(rep, "duplicate"))
}

func TestNullCountsSkipMissingColumns(t *testing.T) {
	rows := fixtures.Matches().Rows
	for _, r := range rows {
		delete(r, "referee")
	}
	rep := New(DefaultLimits).Matches(landing.NewTable(model.EntityMatches, rows...), teamKeys)

	assert.Equal(t, 3, rep.InvalidRows)
	assert.Contains(t, rep.NullCounts, "attendance")
	assert.NotContains(t, rep.NullCounts, "referee")
}

func TestValidateAll(t *testing.T) {
	tables := map[string]*landing.Table{
		model.EntityTeams:            fixtures.Teams(),
		model.EntityPlayers:          fixtures.PlayersWithIssues(),
		model.EntityMatches:          fixtures.Matches(),
		model.EntityPlayerMatchStats: fixtures.PlayerMatchStats(),
	}
	reports := New(DefaultLimits).ValidateAll(tables)

	require.Len(t, reports, 5)
	for i, entity := range model.Entities {
		assert.Equal(t, entity, reports[i].Entity)
	}
	assert.True(t, HasInvalidRows(reports))
	assert.Equal(t, 1, countWarnings(reports[1], "orphaned team ids in players: [T999]"))
	// the landing player keys include P003, so stats have no orphans
	assert.Zero(t, countWarnings(reports[3], "orphaned"))
	assert.Equal(t, []string{"Match events dataset is empty"}, reports[4].Warnings)
}

func TestRuleEvalDoesNotMutate(t *testing.T) {
	shots, sot := 1, 2
	row := statRow{Shots: &shots, ShotsOnTarget: &sot}
	v, failed := statRules[0].Eval(row)

	assert.True(t, failed)
	assert.Equal(t, "shots_on_target", v.Field)
	assert.Equal(t, 1, *row.Shots)
}
