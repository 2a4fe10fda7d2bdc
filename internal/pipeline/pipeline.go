// Package pipeline wires the ingest, validate, transform and analyze stages
// into one run sharing a configuration, a store and a run-scoped logger.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/pable/go-scout-elt/internal/aggregator"
	"github.com/pable/go-scout-elt/internal/config"
	"github.com/pable/go-scout-elt/internal/ingest"
	"github.com/pable/go-scout-elt/internal/landing"
	"github.com/pable/go-scout-elt/internal/logging"
	"github.com/pable/go-scout-elt/internal/model"
	"github.com/pable/go-scout-elt/internal/report"
	"github.com/pable/go-scout-elt/internal/storage"
	"github.com/pable/go-scout-elt/internal/transform"
	"github.com/pable/go-scout-elt/internal/validate"
)

// ErrValidationBlocked is returned by Transform in strict mode when the
// landing data has invalid rows.
var ErrValidationBlocked = crerr.New("validation found invalid rows")

// Pipeline runs the stages. DB may be nil for Ingest and Validate.
type Pipeline struct {
	Config config.Config
	DB     *storage.DB
	Log    *logging.Logger
	Now    func() time.Time
	RunID  string
}

// New returns a pipeline with a fresh run id attached to every log entry.
func New(cfg config.Config, db *storage.DB, log *logging.Logger) *Pipeline {
	id := uuid.NewString()
	return &Pipeline{
		Config: cfg,
		DB:     db,
		Log:    log.With("run_id", id),
		Now:    time.Now,
		RunID:  id,
	}
}

// ---- Ingest ----

// Ingest lands every raw file of the configured raw directory.
func (p *Pipeline) Ingest() (ingest.Result, error) {
	in := &ingest.Ingester{
		RawDir:     p.Config.Paths.RawDir,
		LandingDir: p.Config.Paths.LandingDir,
		Log:        p.Log.With("stage", "ingest"),
		Now:        p.Now,
	}
	res, err := in.Run()
	if err != nil {
		return res, crerr.Wrap(err, "ingest")
	}
	p.Log.Info("ingestion complete", "written", len(res.Written), "unchanged", len(res.Unchanged), "skipped", len(res.Skipped))
	return res, nil
}

// ---- Validate ----

// ValidationResult holds the reports of one validation pass and the path of
// the text report written for it.
type ValidationResult struct {
	Reports    []validate.Report
	ReportPath string
}

func (p *Pipeline) loadLanding() map[string]*landing.Table {
	return landing.NewReader(p.Config.Paths.LandingDir, p.Log.With("stage", "load")).LoadAll()
}

func (p *Pipeline) validator() *validate.Validator {
	return validate.New(validate.Limits{
		MaxYellowCards: p.Config.Validation.MaxYellowCards,
		MaxRedCards:    p.Config.Validation.MaxRedCards,
	})
}

// Validate checks the landing data and writes the validation report.
func (p *Pipeline) Validate() (ValidationResult, error) {
	return p.validate(p.loadLanding())
}

func (p *Pipeline) validate(tables map[string]*landing.Table) (ValidationResult, error) {
	reports := p.validator().ValidateAll(tables)
	for _, r := range reports {
		p.Log.Info("entity validated", "entity", r.Entity, "rows", r.TotalRows,
			"valid", r.ValidRows, "invalid", r.InvalidRows, "warnings", len(r.Warnings))
	}
	path, err := report.SaveValidationReport(p.Config.Paths.ReportDir, reports, p.Now())
	if err != nil {
		return ValidationResult{Reports: reports}, crerr.Wrap(err, "save validation report")
	}
	p.Log.Info("validation report saved", "path", path)
	return ValidationResult{Reports: reports, ReportPath: path}, nil
}

// ---- Transform ----

// Transform cleans the landing data and upserts it into the store. In strict
// mode the landing data is validated first and invalid rows block the load.
func (p *Pipeline) Transform(ctx context.Context) (storage.SaveSummary, error) {
	tables := p.loadLanding()
	var reports []validate.Report
	if p.Config.Validation.Strict {
		reports = p.validator().ValidateAll(tables)
	}
	return p.transform(ctx, tables, reports)
}

func (p *Pipeline) transform(ctx context.Context, tables map[string]*landing.Table, reports []validate.Report) (storage.SaveSummary, error) {
	if p.Config.Validation.Strict && validate.HasInvalidRows(reports) {
		p.Log.Error("transform blocked by invalid rows")
		return storage.SaveSummary{}, ErrValidationBlocked
	}
	if p.DB == nil {
		return storage.SaveSummary{}, crerr.New("transform: no store configured")
	}

	ds := transform.NewNormalizer(p.Log.With("stage", "transform"), p.Now).TransformAll(tables)
	sum, err := p.DB.SaveDataset(ctx, ds)
	if err != nil {
		return sum, crerr.Wrap(err, "save dataset")
	}
	for _, entity := range sum.Skipped {
		p.Log.Warn("no rows to save", "entity", entity)
	}
	for _, entity := range model.Entities {
		if n, ok := sum.Saved[entity]; ok {
			p.Log.Info("entity saved", "entity", entity, "table", storage.TableName(entity), "rows", n)
		}
	}
	return sum, nil
}

// ---- Analyze ----

// AnalyzeOptions scopes an analysis run.
type AnalyzeOptions struct {
	TeamID   string // restrict team reports and scouting lists to one team
	Workbook bool   // also write every frame into one xlsx workbook
}

// AnalysisResult lists what an analysis run produced.
type AnalysisResult struct {
	Players   int
	Summaries []model.TeamSummary
	Top       []model.TopPlayer
	Files     []string
}

// output is one analysis file: its name prefix and contents.
type output struct {
	name  string
	frame report.Frame
}

// Analyze rebuilds agg_player_stats from the store and writes the team
// summary, top-N, player stats and scouting report files.
func (p *Pipeline) Analyze(ctx context.Context, opts AnalyzeOptions) (AnalysisResult, error) {
	var res AnalysisResult
	if p.DB == nil {
		return res, crerr.New("analyze: no store configured")
	}
	log := p.Log.With("stage", "analyze")

	teams, err := p.DB.LoadTeams(ctx)
	if err != nil {
		return res, crerr.Wrap(err, "load teams")
	}
	players, err := p.DB.LoadPlayers(ctx)
	if err != nil {
		return res, crerr.Wrap(err, "load players")
	}
	stats, err := p.DB.LoadPlayerMatchStats(ctx)
	if err != nil {
		return res, crerr.Wrap(err, "load player match stats")
	}

	aggs := aggregator.PlayerAggregates(players, teams, stats)
	if err := p.DB.ReplacePlayerAggregates(ctx, aggs); err != nil {
		return res, crerr.Wrap(err, "store player aggregates")
	}
	res.Players = len(aggs)
	if len(aggs) == 0 {
		log.Warn("no players in store, nothing to analyze")
		return res, nil
	}
	log.Info("player aggregates built", "players", len(aggs), "stat_rows", len(stats))

	scoped := aggregator.FilterTeam(aggs, opts.TeamID)
	if opts.TeamID != "" && len(scoped) == 0 {
		log.Warn("team has no players", "team_id", opts.TeamID)
	}
	res.Summaries = aggregator.TeamSummaries(aggs, teams, opts.TeamID)
	n := p.Config.Analysis.TopN
	res.Top = aggregator.TopN(aggs, teams, n, opts.TeamID)

	ts := p.Now()
	scope := report.TeamScope(opts.TeamID)
	outputs := []output{
		{"team_summary_" + scope, report.TeamSummaryFrame(res.Summaries)},
		{fmt.Sprintf("team_top%d_%s", n, scope), report.TopPlayersFrame(res.Top)},
		{"player_stats", report.PlayerStatsFrame(aggs)},
	}
	for _, sr := range aggregator.ScoutingReports {
		matched, err := aggregator.FilterPlayers(scoped, sr.Filter)
		if err != nil {
			return res, crerr.Wrapf(err, "scouting report %s", sr.Name)
		}
		log.Info("scouting report built", "report", sr.Name, "players", len(matched))
		outputs = append(outputs, output{sr.Name, report.ScoutingFrame(sr, matched)})
	}

	frames := make([]report.Frame, 0, len(outputs))
	for _, o := range outputs {
		path := filepath.Join(p.Config.Paths.AnalysisDir, report.FileName(o.name, ts, ".csv"))
		if err := report.WriteCSV(path, o.frame); err != nil {
			return res, crerr.Wrapf(err, "write %s", o.name)
		}
		log.Info("analysis file saved", "path", path, "rows", len(o.frame.Rows))
		res.Files = append(res.Files, path)
		frames = append(frames, o.frame)
	}

	if opts.Workbook {
		path := filepath.Join(p.Config.Paths.AnalysisDir, report.FileName("analysis_"+scope, ts, ".xlsx"))
		if err := report.WriteWorkbook(path, frames...); err != nil {
			return res, crerr.Wrap(err, "write workbook")
		}
		log.Info("analysis workbook saved", "path", path, "sheets", len(frames))
		res.Files = append(res.Files, path)
	}
	return res, nil
}

// ---- Run ----

// RunResult collects the outcome of every stage of a full run.
type RunResult struct {
	Ingest     ingest.Result
	Validation ValidationResult
	Saved      storage.SaveSummary
	Analysis   AnalysisResult
}

// Run executes ingest, validate, transform and analyze in order. The landing
// data is read once and shared by validation and transform.
func (p *Pipeline) Run(ctx context.Context, opts AnalyzeOptions) (RunResult, error) {
	var res RunResult
	start := p.Now()
	p.Log.Info("pipeline started")

	var err error
	if res.Ingest, err = p.Ingest(); err != nil {
		return res, err
	}
	tables := p.loadLanding()
	if res.Validation, err = p.validate(tables); err != nil {
		return res, err
	}
	if res.Saved, err = p.transform(ctx, tables, res.Validation.Reports); err != nil {
		return res, err
	}
	if res.Analysis, err = p.Analyze(ctx, opts); err != nil {
		return res, err
	}

	p.Log.Info("pipeline finished", "elapsed", p.Now().Sub(start).String(), "files", len(res.Analysis.Files))
	return res, nil
}
