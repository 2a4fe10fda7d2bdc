package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pable/go-scout-elt/internal/aggregator"
	"github.com/pable/go-scout-elt/internal/model"
	"github.com/pable/go-scout-elt/internal/storage"
	"github.com/pable/go-scout-elt/internal/validate"
)

func ptr[T any](v T) *T { return &v }

var sampleAggs = []model.PlayerAggregate{
	{PlayerID: "P001", Name: "Marcus Silva", TeamID: "T001", TeamName: "Manchester United",
		Position: model.PositionForward, Age: ptr(29), MinutesPlayed: 900, Goals: 7, GXG: 2.5,
		Goals90: ptr(0.7)},
	{PlayerID: "P002", Name: "Bruno Jackson", TeamID: "T001", TeamName: "Manchester United",
		Position: model.PositionGoalkeeper},
}

var sampleReports = []validate.Report{
	{
		Entity: model.EntityPlayers, TotalRows: 1500, ValidRows: 1000, InvalidRows: 500,
		Errors: []validate.RowError{
			{Row: 3, Key: "P002", Violations: []validate.Violation{
				{Field: "date_of_birth", Rule: "dateformat", Message: "invalid date format, expected YYYY-MM-DD or DD/MM/YYYY"},
				{Field: "name", Rule: "required", Message: "field required"},
			}},
			{Row: 7, Key: "P009", Violations: []validate.Violation{
				{Field: "", Rule: "custom", Message: "something odd"},
			}},
		},
		Warnings:   []string{"duplicate player ids: [P002]"},
		NullCounts: map[string]validate.NullCount{"market_value": {Count: 3, Percentage: 0.2}},
	},
	{Entity: model.EntityMatchEvents, Warnings: []string{"Match events dataset is empty"}, NullCounts: map[string]validate.NullCount{}},
}

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 1, 15, 9, 5, 3, 0, time.UTC)
	assert.Equal(t, "team_summary_all_20240115_090503.csv", FileName("team_summary_"+TeamScope(""), ts, ".csv"))
	assert.Equal(t, "team_top3_T001_20240115_090503.csv", FileName("team_top3_"+TeamScope("T001"), ts, ".csv"))
}

func TestScoutingFrameProjectsColumns(t *testing.T) {
	f := ScoutingFrame(aggregator.ScoutingReports[0], sampleAggs)

	assert.Equal(t, "effective_scorers", f.Name)
	assert.Equal(t, []string{"name", "team_name", "age", "position", "minutes_played", "goals", "g_xg"}, f.Header)
	assert.Equal(t, []string{"Marcus Silva", "Manchester United", "29", "Forward", "900", "7", "2.5"}, f.Rows[0])
	assert.Equal(t, "", f.Rows[1][2], "nil age renders empty")
}

func TestPlayerStatsFrameNilRates(t *testing.T) {
	f := PlayerStatsFrame(sampleAggs)
	col := -1
	for i, h := range f.Header {
		if h == "goals_90" {
			col = i
		}
	}
	require.NotEqual(t, -1, col)
	assert.Equal(t, "0.7", f.Rows[0][col])
	assert.Equal(t, "", f.Rows[1][col])
}

func TestTeamFrames(t *testing.T) {
	sums := []model.TeamSummary{{League: "Premier League", TeamName: "Arsenal", Goals: 3, XG: 1.25, AvgPassAccuracy: ptr(0.7)}}
	f := TeamSummaryFrame(sums)
	require.Len(t, f.Rows, 1)
	assert.Equal(t, len(f.Header), len(f.Rows[0]))
	assert.Equal(t, "Arsenal", f.Rows[0][1])
	assert.Equal(t, "", f.Rows[0][2], "avg_age")

	top := TopPlayersFrame([]model.TopPlayer{{League: "Premier League", TeamName: "Arsenal", Ranking: 1, PlayerName: "A", GoalContribution: 9}})
	assert.Equal(t, []string{"Premier League", "Arsenal", "1", "A", "", "", "0", "0", "0", "9"}, top.Rows[0])
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	f := Frame{Header: []string{"a", "b"}, Rows: [][]string{{"1", ""}, {"x,y", "2"}}}
	require.NoError(t, WriteCSV(path, f))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", ""}, {"x,y", "2"}}, records)
}

func TestWriteValidationReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteValidationReport(&buf, sampleReports))
	out := buf.String()

	lines := strings.Split(out, "\n")
	assert.Equal(t, strings.Repeat("=", 80), lines[0])
	assert.Equal(t, "DATA VALIDATION REPORT", lines[1])

	assert.Contains(t, out, "PLAYERS:\n  Rows: 1,500 | Valid: 1,000 (66.7%)\n")
	assert.Contains(t, out, "  Warnings: 1\n    - duplicate player ids: [P002]\n")
	assert.Contains(t, out, "  Errors: 2\n    - 3: date_of_birth invalid date format")
	assert.NotContains(t, out, "field required", "only the first violation is listed")
	assert.Contains(t, out, "    - 7: something odd\n")
	assert.Contains(t, out, "  Null analysis:\n    - market_value: 3 (0.2%)\n")
	assert.Contains(t, out, "MATCH_EVENTS:\n  Rows: 0 | Valid: 0 (0.0%)\n  Warnings: 1\n")
}

func TestSaveValidationReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	ts := time.Date(2024, 1, 15, 9, 5, 3, 0, time.UTC)

	path, err := SaveValidationReport(dir, sampleReports, ts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "validation_report_20240115_090503.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DATA VALIDATION REPORT")
}

func TestPrintValidationSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintValidationSummary(&buf, sampleReports)
	out := buf.String()
	assert.Contains(t, out, "players")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "match_events")
}

func TestPrintColumns(t *testing.T) {
	var buf bytes.Buffer
	PrintColumns(&buf, PlayerStatsFrame(sampleAggs), "name", "goals_90", "nope")
	out := buf.String()
	assert.Contains(t, out, "Marcus Silva")
	assert.Contains(t, out, "—")
	assert.NotContains(t, out, "P001")
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.xlsx")
	frames := []Frame{
		PlayerStatsFrame(sampleAggs),
		{Name: "team_summary", Header: []string{"team_name", "total_goals"}, Rows: [][]string{{"Arsenal", "3"}}},
	}
	require.NoError(t, WriteWorkbook(path, frames...))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"player_stats", "team_summary"}, f.GetSheetList())
	rows, err := f.GetRows("team_summary")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"team_name", "total_goals"}, {"Arsenal", "3"}}, rows)

	v, err := f.GetCellValue("player_stats", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Marcus Silva", v)
}

func TestStoreFrames(t *testing.T) {
	comp := CompetitionFrame([]storage.CompetitionCount{{Competition: "Premier League", Season: "2023/24", Matches: 3, Goals: 8}})
	assert.Equal(t, []string{"Premier League", "2023/24", "3", "8", "2.67"}, comp.Rows[0])

	log := MatchLogFrame([]storage.MatchLogEntry{
		{MatchDate: ptr("2024-01-13"), Competition: "Premier League", Side: "H", Opponent: "Arsenal",
			MinutesPlayed: 90, Goals: 2, XG: ptr(1.2), GoalContribution: 3},
		{Competition: "FA Cup", Side: "A", MinutesPlayed: 45},
	})
	require.Len(t, log.Rows, 2)
	assert.Equal(t, len(log.Header), len(log.Rows[0]))
	assert.Equal(t, "2024-01-13", log.Rows[0][0])
	assert.Equal(t, "1.2", log.Rows[0][9])
	assert.Equal(t, "", log.Rows[1][0])
	assert.Equal(t, "", log.Rows[1][9])

	active := ActivePlayersFrame([]storage.ActivePlayer{{PlayerID: "P001", Name: "Marcus Silva", Matches: 4, Minutes: 360}})
	assert.Equal(t, []string{"P001", "Marcus Silva", "", "4", "360", "0"}, active.Rows[0])
}
