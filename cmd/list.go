package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List store tables and their row counts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printTableCounts(db)
}

func printTableCounts(db *storage.DB) error {
	counts, err := db.TableCounts(context.Background())
	if err != nil {
		return fmt.Errorf("count rows: %w", err)
	}
	total := 0
	for _, c := range counts {
		total += c.Rows
	}
	if total == 0 {
		fmt.Fprintln(os.Stdout, "Store is empty. Run 'scoutelt run' to load data.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-26s  %8s\n", "TABLE", "ROWS")
	fmt.Fprintf(os.Stdout, "%-26s  %8s\n", "──────────────────────────", "────────")
	for _, c := range counts {
		fmt.Fprintf(os.Stdout, "%-26s  %8d\n", c.Table, c.Rows)
	}
	return nil
}
