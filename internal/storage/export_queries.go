package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/pable/go-scout-elt/internal/model"
)

// AggPlayerStatsTable holds the latest player aggregate. It is rebuilt in
// full by every analyze run.
const AggPlayerStatsTable = "agg_player_stats"

var aggColumns = []string{
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

// ReplacePlayerAggregates swaps the contents of agg_player_stats for aggs.
func (db *DB) ReplacePlayerAggregates(ctx context.Context, aggs []model.PlayerAggregate) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+AggPlayerStatsTable); err != nil {
		return fmt.Errorf("clear %s: %w", AggPlayerStatsTable, err)
	}
	if len(aggs) > 0 {
		if err := upsertRows(ctx, tx, AggPlayerStatsTable, aggColumns, aggs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PlayerAggregates returns the stored aggregate, optionally narrowed to one
// team, ordered by team name then goal contribution.
func (db *DB) PlayerAggregates(ctx context.Context, teamID string) ([]model.PlayerAggregate, error) {
	where, args := "", []any{}
	if teamID != "" {
		where, args = " WHERE team_id = ?", append(args, teamID)
	}
	q := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY team_name, goal_contribution DESC, player_id",
		strings.Join(aggColumns, ", "), AggPlayerStatsTable, where)
	var out []model.PlayerAggregate
	if err := db.conn.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, fmt.Errorf("select player aggregates: %w", err)
	}
	return out, nil
}
