package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/model"
	"github.com/pable/go-scout-elt/internal/storage"
)

var transformStrict bool

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Clean landing data and load it into the store",
	Long: `Normalize positions and dates, derive ages and per-match metrics, drop
orphaned rows, deduplicate by natural key and upsert every entity into the
SQLite store. With --strict, nothing is loaded when validation finds invalid rows.`,
	Args:        cobra.NoArgs,
	Annotations: stage,
	RunE:        runTransform,
}

func init() {
	transformCmd.Flags().BoolVar(&transformStrict, "strict", false, "refuse to load when validation finds invalid rows")
}

func runTransform(cmd *cobra.Command, args []string) error {
	if transformStrict {
		cfg.Validation.Strict = true
	}
	p, db, err := newPipeline()
	if err != nil {
		return err
	}
	defer db.Close()

	sum, err := p.Transform(context.Background())
	if err != nil {
		return err
	}
	printSaveSummary(sum)
	return nil
}

func printSaveSummary(sum storage.SaveSummary) {
	for _, entity := range model.Entities {
		if n, ok := sum.Saved[entity]; ok {
			fmt.Fprintf(os.Stdout, "%-28s %6d rows\n", storage.TableName(entity), n)
		}
	}
	for _, entity := range sum.Skipped {
		fmt.Fprintf(os.Stdout, "%-28s skipped (no rows)\n", storage.TableName(entity))
	}
}
