package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/pipeline"
	"github.com/pable/go-scout-elt/internal/report"
	"github.com/pable/go-scout-elt/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate landing data and write the validation report",
	Long: `Check every landing entity against its row schema, the cross-field rules and
referential integrity, print a summary table and save the full report as
validation_report_<timestamp>.txt under paths.report_dir.`,
	Args:        cobra.NoArgs,
	Annotations: stage,
	RunE:        runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	p := pipeline.New(cfg, nil, log)
	res, err := p.Validate()
	if err != nil {
		return err
	}
	report.PrintValidationSummary(os.Stdout, res.Reports)
	fmt.Fprintf(os.Stdout, "\nReport: %s\n", res.ReportPath)
	if validate.HasInvalidRows(res.Reports) {
		fmt.Fprintln(os.Stdout, "Invalid rows found. 'transform --strict' will refuse to load this data.")
	}
	return nil
}
