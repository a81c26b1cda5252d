package pipeline

import (
	"context"
	"fmt"

	"github.com/user/vascope/pkg/config"
	"github.com/user/vascope/pkg/engine"
	"github.com/user/vascope/pkg/loader"
	"github.com/user/vascope/pkg/render"
)

// SummaryPipeline builds the deduplicated, risk-ranked aggregate report
// over a batch of scan exports.
type SummaryPipeline struct {
	Config config.SummaryConfig
	Files  []string // explicit inputs; when empty InputDir/Pattern is globbed
}

// SummaryResult describes one aggregate run
type SummaryResult struct {
	ID      string                `json:"run_id" yaml:"run_id"`
	Files   []string              `json:"files" yaml:"files"`
	Read    int                   `json:"read" yaml:"read"`
	Skipped int                   `json:"skipped" yaml:"skipped"`
	Loaded  int                   `json:"loaded" yaml:"loaded"`
	Removed int                   `json:"removed" yaml:"removed"`
	Rows    []engine.AggregateRow `json:"rows" yaml:"rows"`
	Output  string                `json:"output" yaml:"output"`
}

func (r *SummaryResult) RunID() string      { return r.ID }
func (r *SummaryResult) OutputPath() string { return r.Output }

func (p *SummaryPipeline) Name() string {
	return "summary"
}

func (p *SummaryPipeline) Description() string {
	return "Aggregates a batch of scan exports into a deduplicated, risk-ranked count per finding and host."
}

// Execute runs the pipeline and returns a Result
func (p *SummaryPipeline) Execute(ctx context.Context, progress Progress) (Result, error) {
	res, err := p.Run(ctx, progress)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Run discovers and loads the batch, removes duplicate findings, aggregates
// the rest and writes the CSV report. Nothing is written unless every step
// before it succeeded.
func (p *SummaryPipeline) Run(ctx context.Context, progress Progress) (*SummaryResult, error) {
	r := newRun(p.Name())
	res := &SummaryResult{ID: r.id, Output: p.Config.Output}

	files := p.Files
	if len(files) == 0 {
		var err error
		files, err = loader.Discover(p.Config.InputDir, p.Config.Pattern)
		if err != nil {
			return nil, err
		}
	}
	res.Files = files
	r.log.Debugf("Discovered %d input files", len(files))
	progress.report(fmt.Sprintf("Loading %d files", len(files)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch, err := loader.LoadBatch(files, loader.BatchColumns)
	if err != nil {
		return nil, err
	}
	res.Read = batch.Files()
	res.Skipped = len(batch.Skipped)
	res.Loaded = len(batch.Findings)
	r.log.Infof("Loaded %d findings from %d record sets (%d skipped)", res.Loaded, res.Read, res.Skipped)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kept, removed := engine.Dedupe(batch.Findings, engine.BatchKey, false)
	res.Removed = removed
	r.log.Infof("Removed %d duplicate rows", removed)
	progress.report(fmt.Sprintf("Removed %d duplicates, %d findings remain", removed, len(kept)))

	res.Rows = engine.Aggregate(kept, p.Config.Risks)
	r.log.Debugf("Aggregated %d rows", len(res.Rows))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := render.WriteReportCSV(p.Config.Output, res.Rows); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	r.log.Infof("Wrote %s", p.Config.Output)
	progress.report("Report written to " + p.Config.Output)

	return res, nil
}
