package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/report"
	"github.com/pable/go-scout-elt/internal/storage"
)

var trendCmd = &cobra.Command{
	Use:   "trend <player_id>",
	Short: "Chronological per-match log for a player",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printTrend(db, args[0])
}

func printTrend(db *storage.DB, playerID string) error {
	entries, err := db.PlayerMatchLog(context.Background(), playerID)
	if err != nil {
		return fmt.Errorf("query match log: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("no matches found")
		return nil
	}
	report.PrintFrame(os.Stdout, report.MatchLogFrame(entries))
	return nil
}
