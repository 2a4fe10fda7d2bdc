package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/report"
	"github.com/pable/go-scout-elt/internal/storage"
)

// summaryCmd is the cobra command for displaying a high-level store overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the scouting store",
	Long: `Display aggregate statistics about the stored data: entity counts, match
date range, a competition breakdown and the players with most appearances.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printSummary(db)
}

func printSummary(db *storage.DB) error {
	ctx := context.Background()
	ov, err := db.Overview(ctx)
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Matches == 0 && ov.Players == 0 {
		fmt.Fprintln(os.Stdout, "Store is empty. Run 'scoutelt run' to load data.")
		return nil
	}

	dateOf := func(s *string) string {
		if s == nil {
			return "?"
		}
		return *s
	}
	fmt.Fprintf(os.Stdout, "\n=== Store Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Teams         : %d\n", ov.Teams)
	fmt.Fprintf(os.Stdout, "  Players       : %d\n", ov.Players)
	fmt.Fprintf(os.Stdout, "  Matches       : %d\n", ov.Matches)
	fmt.Fprintf(os.Stdout, "  Match events  : %d\n", ov.Events)
	fmt.Fprintf(os.Stdout, "  Date range    : %s → %s\n", dateOf(ov.EarliestMatch), dateOf(ov.LatestMatch))

	comps, err := db.CompetitionCounts(ctx)
	if err != nil {
		return fmt.Errorf("get competitions: %w", err)
	}
	if len(comps) > 0 {
		fmt.Fprintf(os.Stdout, "\n--- Competitions ---\n\n")
		report.PrintFrame(os.Stdout, report.CompetitionFrame(comps))
	}

	players, err := db.MostActivePlayers(ctx, 10)
	if err != nil {
		return fmt.Errorf("get active players: %w", err)
	}
	if len(players) > 0 {
		fmt.Fprintf(os.Stdout, "\n--- Most Active Players ---\n\n")
		report.PrintFrame(os.Stdout, report.ActivePlayersFrame(players))
	}
	return nil
}
