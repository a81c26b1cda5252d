package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/user/vascope/pkg/config"
	"github.com/user/vascope/pkg/engine"
	"github.com/user/vascope/pkg/loader"
	"github.com/user/vascope/pkg/render"
)

// ComparePipeline labels every finding of the current workbook New or
// Existing against the prior workbook and writes the annotated copy.
type ComparePipeline struct {
	Config config.CompareConfig

	// Prior and Current override the tag lookup in Config.Dir
	Prior   string
	Current string
}

// DomainResult is the outcome for one sheet of the current workbook
type DomainResult struct {
	Domain  string              `json:"domain" yaml:"domain"`
	Kept    int                 `json:"kept" yaml:"kept"`
	Dropped int                 `json:"dropped" yaml:"dropped"`
	Counts  engine.DomainCounts `json:"counts" yaml:"counts"`
}

// CompareResult describes one recurrence run
type CompareResult struct {
	ID                string         `json:"run_id" yaml:"run_id"`
	Prior             string         `json:"prior" yaml:"prior"`
	Current           string         `json:"current" yaml:"current"`
	PriorFingerprints int            `json:"prior_fingerprints" yaml:"prior_fingerprints"`
	Domains           []DomainResult `json:"domains" yaml:"domains"`
	SkippedSheets     []string       `json:"skipped_sheets" yaml:"skipped_sheets"`
	Summary           engine.Summary `json:"summary" yaml:"summary"`
	Output            string         `json:"output" yaml:"output"`
}

func (r *CompareResult) RunID() string      { return r.ID }
func (r *CompareResult) OutputPath() string { return r.Output }

func (p *ComparePipeline) Name() string {
	return "compare"
}

func (p *ComparePipeline) Description() string {
	return "Compares the current scan workbook with the prior period and marks every finding New or Existing."
}

// Execute runs the pipeline and returns a Result
func (p *ComparePipeline) Execute(ctx context.Context, progress Progress) (Result, error) {
	res, err := p.Run(ctx, progress)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Run resolves both workbooks, builds the prior fingerprint set, classifies
// each current sheet and writes the annotated workbook with its summary tab.
// The current workbook itself is never modified.
func (p *ComparePipeline) Run(ctx context.Context, progress Progress) (*CompareResult, error) {
	r := newRun(p.Name())

	priorPath, currentPath, err := p.resolve()
	if err != nil {
		return nil, err
	}
	if err := checkOutput(currentPath, p.Config.Output); err != nil {
		return nil, err
	}

	res := &CompareResult{ID: r.id, Prior: priorPath, Current: currentPath, Output: p.Config.Output}
	r.log.Infof("Comparing %s against %s", currentPath, priorPath)
	progress.report(fmt.Sprintf("Prior: %s", filepath.Base(priorPath)))
	progress.report(fmt.Sprintf("Current: %s", filepath.Base(currentPath)))

	prior, err := loader.ReadWorkbook(priorPath)
	if err != nil {
		return nil, err
	}
	priorSet := engine.NewPriorSet(prior.Findings())
	res.PriorFingerprints = priorSet.Len()
	r.log.Infof("Prior period has %d distinct fingerprints across %d sheets", priorSet.Len(), len(prior.Sheets))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current, err := loader.ReadWorkbook(currentPath)
	if err != nil {
		return nil, err
	}

	var sheets []render.SheetResult
	var counts []engine.DomainCounts
	for _, sheet := range current.Sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if sheet.Name == render.SummarySheet {
			r.log.Debugf("Skipping previous %s sheet", sheet.Name)
			continue
		}

		findings, err := sheet.Records(sheet.Name, loader.PeriodColumns)
		if err != nil {
			r.log.Warnf("Skipping sheet: %v", err)
			res.SkippedSheets = append(res.SkippedSheets, sheet.Name)
			continue
		}

		c := engine.ClassifyDomain(sheet.Name, findings, priorSet)
		sheets = append(sheets, render.SheetResult{
			Classification: c,
			NameCol:        sheet.Index(loader.ColName) + 1,
		})
		counts = append(counts, c.Counts)
		res.Domains = append(res.Domains, DomainResult{
			Domain:  c.Domain,
			Kept:    len(c.Rows),
			Dropped: len(c.Dropped),
			Counts:  c.Counts,
		})

		r.log.WithField("domain", c.Domain).Infof("New %d, Existing %d, removed %d rows",
			c.Counts.New.Total, c.Counts.Existing.Total, len(c.Dropped))
		progress.report(fmt.Sprintf("%s: %d new, %d existing", c.Domain, c.Counts.New.Total, c.Counts.Existing.Total))
	}

	if len(sheets) == 0 {
		r.log.Warnf("No sheet of %s has the columns %v", currentPath, loader.PeriodColumns)
	}

	res.Summary = engine.BuildSummary(counts)

	if err := render.AnnotateWorkbook(currentPath, p.Config.Output, sheets, res.Summary); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	r.log.Infof("Wrote %s", p.Config.Output)
	progress.report("Workbook written to " + p.Config.Output)

	return res, nil
}

func (p *ComparePipeline) resolve() (string, string, error) {
	prior, current := p.Prior, p.Current
	var err error
	if prior == "" {
		if prior, err = loader.FindPeriod(p.Config.Dir, p.Config.PriorTag); err != nil {
			return "", "", fmt.Errorf("prior period: %w", err)
		}
	}
	if current == "" {
		if current, err = loader.FindPeriod(p.Config.Dir, p.Config.CurrentTag); err != nil {
			return "", "", fmt.Errorf("current period: %w", err)
		}
	}
	if samePath(prior, current) {
		return "", "", fmt.Errorf("%w: prior and current resolve to the same file %s", loader.ErrMissingInput, prior)
	}
	return prior, current, nil
}

func checkOutput(input, output string) error {
	if output == "" {
		return fmt.Errorf("no output path configured")
	}
	if samePath(input, output) {
		return fmt.Errorf("output %s would overwrite the current workbook", output)
	}
	return nil
}

func samePath(a, b string) bool {
	aa, errA := filepath.Abs(a)
	bb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return aa == bb
}
