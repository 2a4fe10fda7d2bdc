package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/pable/go-scout-elt/internal/model"
)

var (
	teamColumns = []string{"team_id", "name", "league", "stadium", "city"}

	playerColumns = []string{
		"player_id", "name", "team_id", "position", "date_of_birth",
		"nationality", "market_value", "contract_until", "age",
	}

	matchColumns = []string{
		"match_id", "competition", "season", "match_date", "home_team_id", "away_team_id",
		"home_score", "away_score", "venue", "attendance", "referee",
	}

	statColumns = []string{
		"player_id", "match_id", "minutes_played", "goals", "assists",
		"shots", "shots_on_target", "passes_attempted", "passes_completed", "key_passes",
		"tackles", "interceptions", "duels_won", "duels_lost", "fouls_committed",
		"yellow_cards", "red_cards", "xg", "xa", "goal_contribution", "g_xg",
	}

	eventColumns = []string{
		"event_id", "match_id", "minute", "second", "event_type", "player_id", "team_id",
		"x_start", "y_start", "x_end", "y_end", "outcome", "body_part", "pass_type", "recipient_id",
	}
)

// TableName maps an entity to its store table: dimensions for teams, players
// and matches, facts for the rest.
func TableName(entity string) string {
	switch entity {
	case model.EntityTeams, model.EntityPlayers, model.EntityMatches:
		return "dim_" + entity
	}
	return "fact_" + entity
}

// Tables lists every store table in dependency order.
func Tables() []string {
	out := make([]string, 0, len(model.Entities)+1)
	for _, e := range model.Entities {
		out = append(out, TableName(e))
	}
	return append(out, AggPlayerStatsTable)
}

func insertSQL(table string, cols []string) string {
	return fmt.Sprintf("INSERT OR REPLACE INTO %s(%s) VALUES (:%s)",
		table, strings.Join(cols, ", "), strings.Join(cols, ", :"))
}

func selectSQL(table string, cols []string, orderBy string) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", strings.Join(cols, ", "), table, orderBy)
}

// upsertRows inserts rows by key inside tx. Uses INSERT OR REPLACE for idempotency.
func upsertRows[T any](ctx context.Context, tx *sqlx.Tx, table string, cols []string, rows []T) error {
	stmt, err := tx.PrepareNamedContext(ctx, insertSQL(table, cols))
	if err != nil {
		return fmt.Errorf("prepare %s: %w", table, err)
	}
	defer stmt.Close()

	for i := range rows {
		if _, err := stmt.ExecContext(ctx, rows[i]); err != nil {
			return fmt.Errorf("upsert %s row %d: %w", table, i, err)
		}
	}
	return nil
}

// SaveSummary reports what SaveDataset wrote. Entities with no rows are
// listed in Skipped and leave their table untouched.
type SaveSummary struct {
	Saved   map[string]int
	Skipped []string
}

// SaveDataset upserts every non-empty entity of ds in one transaction. A
// failure on any table rolls back the whole dataset.
func (db *DB) SaveDataset(ctx context.Context, ds model.Dataset) (SaveSummary, error) {
	sum := SaveSummary{Saved: map[string]int{}}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return sum, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		entity string
		n      int
		write  func() error
	}{
		{model.EntityTeams, len(ds.Teams), func() error {
			return upsertRows(ctx, tx, TableName(model.EntityTeams), teamColumns, ds.Teams)
		}},
		{model.EntityPlayers, len(ds.Players), func() error {
			return upsertRows(ctx, tx, TableName(model.EntityPlayers), playerColumns, ds.Players)
		}},
		{model.EntityMatches, len(ds.Matches), func() error {
			return upsertRows(ctx, tx, TableName(model.EntityMatches), matchColumns, ds.Matches)
		}},
		{model.EntityPlayerMatchStats, len(ds.PlayerMatchStats), func() error {
			return upsertRows(ctx, tx, TableName(model.EntityPlayerMatchStats), statColumns, ds.PlayerMatchStats)
		}},
		{model.EntityMatchEvents, len(ds.MatchEvents), func() error {
			return upsertRows(ctx, tx, TableName(model.EntityMatchEvents), eventColumns, ds.MatchEvents)
		}},
	}
	for _, s := range steps {
		if s.n == 0 {
			sum.Skipped = append(sum.Skipped, s.entity)
			continue
		}
		if err := s.write(); err != nil {
			return SaveSummary{}, err
		}
		sum.Saved[s.entity] = s.n
	}

	if err := tx.Commit(); err != nil {
		return SaveSummary{}, fmt.Errorf("commit: %w", err)
	}
	return sum, nil
}

// LoadTeams returns all stored teams ordered by team_id.
func (db *DB) LoadTeams(ctx context.Context) ([]model.Team, error) {
	var out []model.Team
	if err := db.conn.SelectContext(ctx, &out, selectSQL(TableName(model.EntityTeams), teamColumns, "team_id")); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}
	return out, nil
}

// LoadPlayers returns all stored players ordered by player_id.
func (db *DB) LoadPlayers(ctx context.Context) ([]model.Player, error) {
	var out []model.Player
	if err := db.conn.SelectContext(ctx, &out, selectSQL(TableName(model.EntityPlayers), playerColumns, "player_id")); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	return out, nil
}

// LoadMatches returns all stored matches ordered by match_id.
func (db *DB) LoadMatches(ctx context.Context) ([]model.Match, error) {
	var out []model.Match
	if err := db.conn.SelectContext(ctx, &out, selectSQL(TableName(model.EntityMatches), matchColumns, "match_id")); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}
	return out, nil
}

// LoadPlayerMatchStats returns all stored per-match stats ordered by key.
func (db *DB) LoadPlayerMatchStats(ctx context.Context) ([]model.PlayerMatchStat, error) {
	var out []model.PlayerMatchStat
	q := selectSQL(TableName(model.EntityPlayerMatchStats), statColumns, "player_id, match_id")
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("select player match stats: %w", err)
	}
	return out, nil
}

// LoadMatchEvents returns all stored events ordered by event_id.
func (db *DB) LoadMatchEvents(ctx context.Context) ([]model.MatchEvent, error) {
	var out []model.MatchEvent
	q := selectSQL(TableName(model.EntityMatchEvents), eventColumns, "event_id")
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("select match events: %w", err)
	}
	return out, nil
}

// TableCount is the row count of one store table.
type TableCount struct {
	Table string
	Rows  int
}

// TableCounts returns the row count of every store table.
func (db *DB) TableCounts(ctx context.Context) ([]TableCount, error) {
	var out []TableCount
	for _, t := range Tables() {
		var n int
		if err := db.conn.GetContext(ctx, &n, "SELECT COUNT(1) FROM "+t); err != nil {
			return nil, fmt.Errorf("count %s: %w", t, err)
		}
		out = append(out, TableCount{Table: t, Rows: n})
	}
	return out, nil
}

// QueryRaw runs an arbitrary query and returns its columns and rows as text.
// NULL values render as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Queryx(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = formatValue(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
