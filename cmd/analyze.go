package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/pipeline"
	"github.com/pable/go-scout-elt/internal/report"
)

var (
	analyzeTeam string
	analyzeXLSX bool
	analyzeTopN int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build player aggregates and write scouting reports",
	Long: `Aggregate per-match stats into one row per player (stored as agg_player_stats),
then write the team summary, the top players per team, the full player stats and
the canned scouting reports as CSV files under paths.analysis_dir.`,
	Args:        cobra.NoArgs,
	Annotations: stage,
	RunE:        runAnalyze,
}

func init() {
	addAnalyzeFlags(analyzeCmd)
}

// addAnalyzeFlags registers the analysis flags shared by analyze and run.
func addAnalyzeFlags(c *cobra.Command) {
	c.Flags().StringVar(&analyzeTeam, "team", "", "restrict team reports and scouting lists to one team_id")
	c.Flags().BoolVar(&analyzeXLSX, "xlsx", false, "also write every report into one xlsx workbook")
	c.Flags().IntVar(&analyzeTopN, "top", 0, "players per team in the top list (overrides analysis.top_n)")
}

func analyzeOptions() pipeline.AnalyzeOptions {
	if analyzeTopN > 0 {
		cfg.Analysis.TopN = analyzeTopN
	}
	return pipeline.AnalyzeOptions{TeamID: analyzeTeam, Workbook: analyzeXLSX}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	opts := analyzeOptions()
	p, db, err := newPipeline()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := p.Analyze(context.Background(), opts)
	if err != nil {
		return err
	}
	printAnalysis(res)
	return nil
}

func printAnalysis(res pipeline.AnalysisResult) {
	if res.Players == 0 {
		fmt.Fprintln(os.Stdout, "No players stored yet. Run 'scoutelt transform' first.")
		return
	}
	report.PrintFrame(os.Stdout, report.TopPlayersFrame(res.Top))
	fmt.Fprintf(os.Stdout, "\n%d player(s) aggregated. Files:\n", res.Players)
	for _, f := range res.Files {
		fmt.Fprintf(os.Stdout, "  %s\n", f)
	}
}
