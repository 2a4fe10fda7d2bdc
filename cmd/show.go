package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/aggregator"
	"github.com/pable/go-scout-elt/internal/report"
	"github.com/pable/go-scout-elt/internal/storage"
)

var (
	showTeam   string
	showReport string
)

// showPlayerColumns is the compact console view of a player aggregate.
var showPlayerColumns = []string{
	"team_name", "name", "position", "age", "matches", "minutes_played",
	"goals", "assists", "goals_90", "assists_90", "xg", "g_xg", "pass_accuracy", "duel_win_rate",
}

var showCmd = &cobra.Command{
	Use:   "show <players|teams|top>",
	Short: "Show stored player aggregates as console tables",
	Long: `Print the aggregates built by the last 'analyze' run.

  players  one row per player (--report narrows to a scouting report)
  teams    per-team totals and mean rates
  top      top players per team by goal contribution`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"players", "teams", "top"},
	RunE:      runShow,
}

func init() {
	showCmd.Flags().StringVar(&showTeam, "team", "", "only show one team_id")
	showCmd.Flags().StringVar(&showReport, "report", "", "scouting report name for 'players' (effective_scorers, defensive_midfielders, creative_attackers)")
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printShow(db, args[0], showTeam, showReport)
}

// printShow renders one view of the stored aggregates.
func printShow(db *storage.DB, view, team, reportName string) error {
	ctx := context.Background()
	aggs, err := db.PlayerAggregates(ctx, team)
	if err != nil {
		return fmt.Errorf("load player aggregates: %w", err)
	}
	if len(aggs) == 0 {
		fmt.Fprintln(os.Stdout, "No aggregates stored yet. Run 'scoutelt analyze' first.")
		return nil
	}

	switch view {
	case "players":
		if reportName == "" {
			report.PrintColumns(os.Stdout, report.PlayerStatsFrame(aggs), showPlayerColumns...)
			return nil
		}
		for _, sr := range aggregator.ScoutingReports {
			if sr.Name != reportName {
				continue
			}
			matched, err := aggregator.FilterPlayers(aggs, sr.Filter)
			if err != nil {
				return err
			}
			report.PrintFrame(os.Stdout, report.ScoutingFrame(sr, matched))
			fmt.Fprintf(os.Stdout, "\n(%d players)\n", len(matched))
			return nil
		}
		return fmt.Errorf("unknown scouting report %q", reportName)

	case "teams", "top":
		teams, err := db.LoadTeams(ctx)
		if err != nil {
			return fmt.Errorf("load teams: %w", err)
		}
		if view == "teams" {
			report.PrintFrame(os.Stdout, report.TeamSummaryFrame(aggregator.TeamSummaries(aggs, teams, team)))
			return nil
		}
		report.PrintFrame(os.Stdout, report.TopPlayersFrame(aggregator.TopN(aggs, teams, cfg.Analysis.TopN, team)))
	default:
		return fmt.Errorf("unknown view %q (players, teams or top)", view)
	}
	return nil
}
