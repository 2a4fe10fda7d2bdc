package storage

import (
	"context"
	"reflect"
	"testing"

	"github.com/pable/go-scout-elt/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }

func sampleDataset() model.Dataset {
	return model.Dataset{
		Teams: []model.Team{
			{TeamID: "T001", Name: "Manchester United", League: "Premier League", Stadium: "Old Trafford", City: "Manchester"},
			{TeamID: "T002", Name: "Tottenham Hotspur", League: "Premier League", Stadium: "Tottenham Hotspur Stadium", City: "London"},
		},
		Players: []model.Player{
			{PlayerID: "P001", Name: "Marcus Silva", TeamID: "T001", Position: model.PositionForward,
				DateOfBirth: ptr("1987-06-24"), Nationality: "Spain", MarketValue: ptr(50000000.0),
				ContractUntil: ptr("2025-06-30"), Age: ptr(37)},
			{PlayerID: "P002", Name: "Diego Silva", TeamID: "T002", Position: model.PositionForward,
				Nationality: "France"},
		},
		Matches: []model.Match{
			{MatchID: "M001", Competition: "Premier League", Season: "2023-2024", MatchDate: ptr("2024-01-15"),
				HomeTeamID: "T001", AwayTeamID: "T002", HomeScore: 2, AwayScore: 1,
				Venue: "Old Trafford", Attendance: 95000, Referee: "Michael Oliver"},
		},
		PlayerMatchStats: []model.PlayerMatchStat{
			{PlayerID: "P001", MatchID: "M001", MinutesPlayed: 90, Goals: 1, Assists: 1, Shots: 5, ShotsOnTarget: 3,
				PassesAttempted: 80, PassesCompleted: 75, XG: ptr(0.8), XA: ptr(0.5), GoalContribution: 2, GXG: ptr(0.2)},
			{PlayerID: "P002", MatchID: "M001", MinutesPlayed: 90, Goals: 1, Shots: 4, ShotsOnTarget: 2,
				GoalContribution: 1},
		},
		MatchEvents: []model.MatchEvent{
			{EventID: "E001", MatchID: "M001", Minute: 10, Second: 30, EventType: "pass", PlayerID: "P001", TeamID: "T001",
				XStart: ptr(50.0), YStart: ptr(30.0), XEnd: ptr(80.0), YEnd: ptr(50.0), Outcome: "successful",
				BodyPart: ptr("right_foot"), PassType: ptr("through_ball"), RecipientID: ptr("P002")},
		},
	}
}

func TestTableName(t *testing.T) {
	cases := map[string]string{
		model.EntityTeams:            "dim_teams",
		model.EntityPlayers:          "dim_players",
		model.EntityMatches:          "dim_matches",
		model.EntityPlayerMatchStats: "fact_player_match_stats",
		model.EntityMatchEvents:      "fact_match_events",
	}
	for entity, want := range cases {
		if got := TableName(entity); got != want {
			t.Errorf("TableName(%q) = %q, want %q", entity, got, want)
		}
	}
}

func TestSaveDatasetRoundTrip(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()
	ds := sampleDataset()

	sum, err := db.SaveDataset(ctx, ds)
	if err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}
	if len(sum.Skipped) != 0 {
		t.Errorf("expected nothing skipped, got %v", sum.Skipped)
	}
	if sum.Saved[model.EntityPlayerMatchStats] != 2 {
		t.Errorf("expected 2 stats saved, got %d", sum.Saved[model.EntityPlayerMatchStats])
	}

	players, err := db.LoadPlayers(ctx)
	if err != nil {
		t.Fatalf("LoadPlayers: %v", err)
	}
	if !reflect.DeepEqual(players, ds.Players) {
		t.Errorf("players round trip mismatch:\n got %+v\nwant %+v", players, ds.Players)
	}
	// Nullable columns come back as nil, not zero.
	if players[1].DateOfBirth != nil || players[1].Age != nil || players[1].MarketValue != nil {
		t.Errorf("expected nil nullable fields for P002, got %+v", players[1])
	}

	stats, err := db.LoadPlayerMatchStats(ctx)
	if err != nil {
		t.Fatalf("LoadPlayerMatchStats: %v", err)
	}
	if !reflect.DeepEqual(stats, ds.PlayerMatchStats) {
		t.Errorf("stats round trip mismatch:\n got %+v\nwant %+v", stats, ds.PlayerMatchStats)
	}

	events, err := db.LoadMatchEvents(ctx)
	if err != nil {
		t.Fatalf("LoadMatchEvents: %v", err)
	}
	if !reflect.DeepEqual(events, ds.MatchEvents) {
		t.Errorf("events round trip mismatch:\n got %+v\nwant %+v", events, ds.MatchEvents)
	}
}

func TestSaveDatasetIsIdempotent(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := db.SaveDataset(ctx, sampleDataset()); err != nil {
			t.Fatalf("SaveDataset run %d: %v", i+1, err)
		}
	}

	counts, err := db.TableCounts(ctx)
	if err != nil {
		t.Fatalf("TableCounts: %v", err)
	}
	want := map[string]int{
		"dim_teams": 2, "dim_players": 2, "dim_matches": 1,
		"fact_player_match_stats": 2, "fact_match_events": 1, "agg_player_stats": 0,
	}
	if len(counts) != len(want) {
		t.Fatalf("expected %d tables, got %d", len(want), len(counts))
	}
	for _, c := range counts {
		if c.Rows != want[c.Table] {
			t.Errorf("%s: expected %d rows, got %d", c.Table, want[c.Table], c.Rows)
		}
	}
}

func TestSaveDatasetUpsertReplacesByKey(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	if _, err := db.SaveDataset(ctx, sampleDataset()); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}
	update := model.Dataset{Teams: []model.Team{
		{TeamID: "T001", Name: "Manchester United FC", League: "Premier League", Stadium: "Old Trafford", City: "Manchester"},
	}}
	if _, err := db.SaveDataset(ctx, update); err != nil {
		t.Fatalf("SaveDataset update: %v", err)
	}

	teams, err := db.LoadTeams(ctx)
	if err != nil {
		t.Fatalf("LoadTeams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	if teams[0].Name != "Manchester United FC" {
		t.Errorf("expected updated name, got %q", teams[0].Name)
	}
}

func TestSaveDatasetSkipsEmptyEntities(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	ds := sampleDataset()
	ds.MatchEvents = nil
	ds.Matches = []model.Match{}
	sum, err := db.SaveDataset(ctx, ds)
	if err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}
	want := []string{model.EntityMatches, model.EntityMatchEvents}
	if !reflect.DeepEqual(sum.Skipped, want) {
		t.Errorf("expected skipped %v, got %v", want, sum.Skipped)
	}
	if _, ok := sum.Saved[model.EntityMatches]; ok {
		t.Error("expected matches to be absent from Saved")
	}
}

func TestReplacePlayerAggregates(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	first := []model.PlayerAggregate{
		{PlayerID: "P001", Name: "Marcus Silva", TeamID: "T001", TeamName: "Manchester United",
			Position: model.PositionForward, Matches: 1, MinutesPlayed: 90, Goals: 1, GoalContribution: 2,
			Goals90: ptr(1.0)},
		{PlayerID: "P002", Name: "Diego Silva", TeamID: "T002", TeamName: "Tottenham Hotspur",
			Position: model.PositionForward, GoalContribution: 1},
		{PlayerID: "P003", Name: "Bruno Jackson", TeamID: "T001", TeamName: "Manchester United",
			Position: model.PositionGoalkeeper, GoalContribution: 4},
	}
	if err := db.ReplacePlayerAggregates(ctx, first); err != nil {
		t.Fatalf("ReplacePlayerAggregates: %v", err)
	}

	all, err := db.PlayerAggregates(ctx, "")
	if err != nil {
		t.Fatalf("PlayerAggregates: %v", err)
	}
	gotIDs := []string{}
	for _, a := range all {
		gotIDs = append(gotIDs, a.PlayerID)
	}
	if want := []string{"P003", "P001", "P002"}; !reflect.DeepEqual(gotIDs, want) {
		t.Errorf("expected order %v, got %v", want, gotIDs)
	}
	if all[1].Goals90 == nil || *all[1].Goals90 != 1.0 {
		t.Errorf("expected goals_90 1.0 for P001, got %v", all[1].Goals90)
	}
	if all[0].Goals90 != nil {
		t.Errorf("expected nil goals_90 for P003, got %v", *all[0].Goals90)
	}

	team, err := db.PlayerAggregates(ctx, "T002")
	if err != nil {
		t.Fatalf("PlayerAggregates(T002): %v", err)
	}
	if len(team) != 1 || team[0].PlayerID != "P002" {
		t.Errorf("expected only P002 for T002, got %+v", team)
	}

	// A second run replaces rather than merges.
	if err := db.ReplacePlayerAggregates(ctx, first[:1]); err != nil {
		t.Fatalf("ReplacePlayerAggregates again: %v", err)
	}
	all, _ = db.PlayerAggregates(ctx, "")
	if len(all) != 1 {
		t.Errorf("expected 1 aggregate after replace, got %d", len(all))
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	if _, err := db.SaveDataset(context.Background(), sampleDataset()); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}

	cols, rows, err := db.QueryRaw("SELECT player_id, date_of_birth FROM dim_players ORDER BY player_id")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if want := []string{"player_id", "date_of_birth"}; !reflect.DeepEqual(cols, want) {
		t.Errorf("expected cols %v, got %v", want, cols)
	}
	want := [][]string{{"P001", "1987-06-24"}, {"P002", "NULL"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected rows %v, got %v", want, rows)
	}

	if _, _, err := db.QueryRaw("SELECT * FROM no_such_table"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestOverview(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	ov, err := db.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview on empty store: %v", err)
	}
	if ov.Matches != 0 || ov.EarliestMatch != nil {
		t.Errorf("empty store overview = %+v", ov)
	}

	if _, err := db.SaveDataset(ctx, sampleDataset()); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}
	ov, err = db.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Teams != 2 || ov.Players != 2 || ov.Matches != 1 || ov.Events != 1 {
		t.Errorf("counts = %+v", ov)
	}
	if ov.EarliestMatch == nil || *ov.EarliestMatch != "2024-01-15" || *ov.LatestMatch != "2024-01-15" {
		t.Errorf("date range = %v..%v", ov.EarliestMatch, ov.LatestMatch)
	}

	comps, err := db.CompetitionCounts(ctx)
	if err != nil {
		t.Fatalf("CompetitionCounts: %v", err)
	}
	want := []CompetitionCount{{Competition: "Premier League", Season: "2023-2024", Matches: 1, Goals: 3}}
	if !reflect.DeepEqual(comps, want) {
		t.Errorf("competitions = %+v, want %+v", comps, want)
	}
}

func TestMostActivePlayers(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()
	if _, err := db.SaveDataset(ctx, sampleDataset()); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}

	got, err := db.MostActivePlayers(ctx, 1)
	if err != nil {
		t.Fatalf("MostActivePlayers: %v", err)
	}
	want := []ActivePlayer{{PlayerID: "P001", Name: "Marcus Silva", TeamName: "Manchester United", Matches: 1, Minutes: 90, Goals: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestPlayerMatchLog(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()
	if _, err := db.SaveDataset(ctx, sampleDataset()); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}

	home, err := db.PlayerMatchLog(ctx, "P001")
	if err != nil {
		t.Fatalf("PlayerMatchLog: %v", err)
	}
	if len(home) != 1 {
		t.Fatalf("len = %d, want 1", len(home))
	}
	e := home[0]
	if e.Side != "H" || e.Opponent != "Tottenham Hotspur" || e.Goals != 1 || e.XG == nil || *e.XG != 0.8 {
		t.Errorf("home entry = %+v", e)
	}

	away, err := db.PlayerMatchLog(ctx, "P002")
	if err != nil {
		t.Fatalf("PlayerMatchLog: %v", err)
	}
	if len(away) != 1 || away[0].Side != "A" || away[0].Opponent != "Manchester United" || away[0].XG != nil {
		t.Errorf("away log = %+v", away)
	}

	none, err := db.PlayerMatchLog(ctx, "P404")
	if err != nil {
		t.Fatalf("PlayerMatchLog unknown: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown player log = %+v", none)
	}
}
