// Package pipeline wires the merge job end to end: load every input
// workbook, validate and prune each table, unify the schemas, fold the tables
// into one destination, verify the result against its sources, and write the
// report.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lipidquant/lipimerge/internal/config"
	"github.com/lipidquant/lipimerge/internal/merge"
	"github.com/lipidquant/lipimerge/internal/schema"
	"github.com/lipidquant/lipimerge/internal/table"
	"github.com/lipidquant/lipimerge/internal/xlsx"
)

// Version of the lipimerge tool, reported on the log sheet and by -version.
const Version = "1.0.0"

// Result summarizes a finished merge job.
type Result struct {
	RunID      string
	OutputFile string
	RowCount   int
	Warnings   []string
}

// Pipeline runs merge jobs. Each job is stateless and independent, so one
// Pipeline may run jobs from multiple goroutines.
type Pipeline struct {
	log    *zap.Logger
	loader *xlsx.Loader
	writer *xlsx.Writer
}

func New(log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		log:    log,
		loader: xlsx.NewLoader(log),
		writer: xlsx.NewWriter(log, Version),
	}
}

// Run executes one merge job. Any validation, schema or verification failure
// aborts the whole job with no partial output.
func (p *Pipeline) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := checkInputs(cfg); err != nil {
		return nil, err
	}

	cleaned, warnings, err := p.loadAndValidate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s, err := schema.Unify(cleaned, cfg.MetaColumns)
	if err != nil {
		return nil, err
	}
	p.log.Info("schema unified",
		zap.Int("metadata_columns", len(s.Meta)),
		zap.Int("class_columns", len(s.Classes)))

	m := merge.NewMerger(s)
	var all []string
	for i, t := range cleaned {
		all = append(all, warnings[i]...)
		all = append(all, m.Add(t)...)
	}
	merged := m.Result()

	if err := merge.Verify(merged, cleaned); err != nil {
		return nil, fmt.Errorf("output verification: %w", err)
	}

	rep := merge.NewReport(s, merged, all, m.Provenance())
	if err := p.writer.Write(cfg.OutputPath, rep, cfg.InputFiles); err != nil {
		return nil, err
	}

	return &Result{
		RunID:      rep.RunID,
		OutputFile: cfg.OutputPath,
		RowCount:   len(merged.Rows),
		Warnings:   rep.Warnings,
	}, nil
}

// loadAndValidate loads and validates the inputs concurrently, one slot per
// file so input order is preserved, and joins before unification: the schema
// must have seen every input before any row is emitted. The returned warning
// lists are per table, load warnings first.
func (p *Pipeline) loadAndValidate(ctx context.Context, cfg *config.Config) ([]table.Table, [][]string, error) {
	opts := xlsx.LoadOptions{
		TrimClassNames: cfg.TrimClassNames,
		IgnoreBlanks:   cfg.IgnoreBlanks,
		SampleColumn:   cfg.MetaColumns[0],
	}

	cleaned := make([]table.Table, len(cfg.InputFiles))
	warnings := make([][]string, len(cfg.InputFiles))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range cfg.InputFiles {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, loadWarn, err := p.loader.Load(path, opts)
			if err != nil {
				return err
			}
			clean, valWarn, err := table.Validate(t)
			if err != nil {
				return err
			}
			cleaned[i] = clean
			warnings[i] = append(loadWarn, valWarn...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return cleaned, warnings, nil
}

func checkInputs(cfg *config.Config) error {
	if len(cfg.MetaColumns) == 0 {
		return fmt.Errorf("at least one metadata column label is required")
	}
	seen := make(map[string]struct{}, len(cfg.InputFiles))
	for _, in := range cfg.InputFiles {
		if _, dup := seen[in]; dup {
			return fmt.Errorf("duplicate input file %s: the same file must not be merged twice", in)
		}
		seen[in] = struct{}{}
	}
	if _, err := os.Stat(cfg.OutputPath); err == nil {
		return fmt.Errorf("output file %s already exists", cfg.OutputPath)
	}
	return nil
}
