package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/report"
)

var runStrict bool

var runCmd = &cobra.Command{
	Use:         "run",
	Short:       "Run ingest, validate, transform and analyze in one go",
	Args:        cobra.NoArgs,
	Annotations: stage,
	RunE:        runRun,
}

func init() {
	addAnalyzeFlags(runCmd)
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "stop before transform when validation finds invalid rows")
}

func runRun(cmd *cobra.Command, args []string) error {
	if runStrict {
		cfg.Validation.Strict = true
	}
	opts := analyzeOptions()
	p, db, err := newPipeline()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(os.Stdout, "Run %s\n\n", p.RunID)
	res, err := p.Run(context.Background(), opts)
	if res.Validation.Reports != nil {
		report.PrintValidationSummary(os.Stdout, res.Validation.Reports)
		fmt.Fprintf(os.Stdout, "Validation report: %s\n\n", res.Validation.ReportPath)
	}
	if err != nil {
		return err
	}
	printSaveSummary(res.Saved)
	fmt.Fprintln(os.Stdout)
	printAnalysis(res.Analysis)
	return nil
}
