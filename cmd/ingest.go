package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/pipeline"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Land raw CSV and JSON files as snapshots",
	Long: `Copy every file of the raw directory into the landing directory as a
timestamped JSON-lines snapshot named after the file stem. CSV columns are
type-inferred, JSON files are kept as wrapped documents. Files whose content
was already landed are skipped.`,
	Args:        cobra.NoArgs,
	Annotations: stage,
	RunE:        runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	p := pipeline.New(cfg, nil, log)
	res, err := p.Ingest()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Landed %d file(s), %d unchanged, %d skipped.\n",
		len(res.Written), len(res.Unchanged), len(res.Skipped))
	for _, name := range res.Skipped {
		fmt.Fprintf(os.Stdout, "  skipped: %s\n", name)
	}
	return nil
}
