package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/report"
	"github.com/pable/go-scout-elt/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the scouting store",
	Long: `Run an arbitrary SQL query against the scouting store and print results as a table.

Schema overview:
  dim_teams(team_id, name, league, stadium, city)
  dim_players(player_id, name, team_id, position, date_of_birth, nationality,
    market_value, contract_until, age)
  dim_matches(match_id, competition, season, match_date, home_team_id, away_team_id,
    home_score, away_score, venue, attendance, referee)
  fact_player_match_stats(player_id, match_id, minutes_played, goals, assists, shots,
    shots_on_target, passes_attempted, passes_completed, key_passes, tackles,
    interceptions, duels_won, duels_lost, fouls_committed, yellow_cards, red_cards,
    xg, xa, goal_contribution, g_xg)
  fact_match_events(event_id, match_id, minute, second, event_type, player_id, team_id,
    x_start, y_start, x_end, y_end, outcome, body_part, pass_type, recipient_id)
  agg_player_stats(player_id, name, team_id, team_name, position, age, matches_played,
    minutes_played, goals, assists, ..., goals_90, pass_accuracy, duel_win_rate, ...)

Dates are stored as TEXT in YYYY-MM-DD form: WHERE match_date >= '2024-01-01'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printQuery(db, query)
}

func printQuery(db *storage.DB, query string) error {
	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintFrame(os.Stdout, report.Frame{Header: cols, Rows: rows})
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
