package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/model"
	"github.com/pable/go-scout-elt/internal/report"
	"github.com/pable/go-scout-elt/internal/storage"
)

// comparePlayerColumns are the rows of the side-by-side player comparison.
var comparePlayerColumns = []string{
	"team_name", "position", "age", "matches", "minutes_played",
	"goals", "assists", "goal_contribution", "xg", "g_xg",
	"goals_90", "assists_90", "xg_90", "key_passes_90", "shot_accuracy",
	"pass_accuracy", "tackles_90", "interceptions_90", "duel_win_rate",
}

// playerCmd is the cobra command for comparing the aggregates of one or more players.
var playerCmd = &cobra.Command{
	Use:   "player <player_id> [<player_id>...]",
	Short: "Compare the aggregates of one or more players side by side",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printPlayers(db, args)
}

// printPlayers prints one column per requested player, in argument order.
func printPlayers(db *storage.DB, ids []string) error {
	aggs, err := db.PlayerAggregates(context.Background(), "")
	if err != nil {
		return fmt.Errorf("load player aggregates: %w", err)
	}
	byID := make(map[string]model.PlayerAggregate, len(aggs))
	for _, a := range aggs {
		byID[a.PlayerID] = a
	}

	var picked []model.PlayerAggregate
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			fmt.Fprintf(os.Stderr, "No aggregate found for player %s\n", id)
			continue
		}
		picked = append(picked, a)
	}
	if len(picked) == 0 {
		return nil
	}

	stats := report.PlayerStatsFrame(picked)
	col := make(map[string]int, len(stats.Header))
	for i, h := range stats.Header {
		col[h] = i
	}

	// transpose: metrics down, players across
	out := report.Frame{Name: "player_comparison", Header: []string{"metric"}}
	for _, row := range stats.Rows {
		out.Header = append(out.Header, row[col["name"]])
	}
	for _, metric := range comparePlayerColumns {
		line := []string{metric}
		for _, row := range stats.Rows {
			line = append(line, row[col[metric]])
		}
		out.Rows = append(out.Rows, line)
	}
	report.PrintFrame(os.Stdout, out)
	return nil
}
