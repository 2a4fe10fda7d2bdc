package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/config"
	"github.com/pable/go-scout-elt/internal/logging"
	"github.com/pable/go-scout-elt/internal/pipeline"
	"github.com/pable/go-scout-elt/internal/storage"
)

var (
	cfgPath  string
	dbPath   string
	logLevel string

	cfg config.Config
	log *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "scoutelt",
	Short: "Football scouting ELT pipeline",
	Long: `Land raw football data files, validate them, load cleaned entities into an
embedded SQLite store and build per-player and per-team scouting reports.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "scoutelt.yaml", "path to YAML config file (skipped when missing)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (overrides paths.db_path)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

// setup loads the configuration, applies flag overrides and builds the run
// logger shared by every command.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.Paths.DBPath = dbPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	cfg = c

	// Only pipeline stages keep a run log file.
	logDir := ""
	if cmd.Annotations["runlog"] == "true" {
		logDir = cfg.Paths.LogDir
	}
	l, _, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Dir: logDir})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log = l
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if log != nil {
		_ = log.Sync()
	}
	return nil
}

// stage marks a command as a pipeline stage that writes a run log file.
var stage = map[string]string{"runlog": "true"}

// openStore opens the configured database.
func openStore() (*storage.DB, error) {
	db, err := storage.Open(cfg.Paths.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// newPipeline opens the store and returns a pipeline bound to it. The caller
// closes the store.
func newPipeline() (*pipeline.Pipeline, *storage.DB, error) {
	db, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return pipeline.New(cfg, db, log), db, nil
}
