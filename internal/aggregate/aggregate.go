// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate runs documents through the adapter, recognizer, and
// validator and merges the results of a multi-file run.
//
// Files are processed one at a time in traversal order. A file that cannot
// be decoded is recorded and skipped; it never aborts the run. Run
// statistics are returned as a types.RunReport for the caller to render.
package aggregate

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/pdiddy/qtipack/internal/adapter"
	"github.com/pdiddy/qtipack/internal/recognize"
	"github.com/pdiddy/qtipack/internal/validate"
	"github.com/pdiddy/qtipack/pkg/types"
)

// Options configures a Pipeline. Zero values are usable.
type Options struct {
	// Logger receives structured per-file progress. Defaults to slog.Default().
	Logger *slog.Logger

	// Out receives one human-readable status line per file. Defaults to
	// io.Discard.
	Out io.Writer
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Out == nil {
		o.Out = io.Discard
	}
}

// Pipeline processes documents with one immutable configuration.
type Pipeline struct {
	cfg        types.PipelineConfig
	recognizer *recognize.Recognizer
	logger     *slog.Logger
	out        io.Writer
}

// New returns a Pipeline for cfg. cfg is normalized first.
func New(cfg types.PipelineConfig, opts Options) *Pipeline {
	opts.defaults()
	cfg = cfg.Normalize()
	return &Pipeline{
		cfg:        cfg,
		recognizer: recognize.New(cfg),
		logger:     opts.Logger,
		out:        opts.Out,
	}
}

// Config returns the normalized configuration the pipeline runs with.
func (p *Pipeline) Config() types.PipelineConfig { return p.cfg }

// ProcessDocument runs one document through extraction, recognition, and
// validation. Decode failures and recognition gaps are reported in
// ParseResult.Err; accepted questions carry doc.Path as their source.
func (p *Pipeline) ProcessDocument(ctx context.Context, doc types.Document) types.ParseResult {
	res := types.ParseResult{Path: doc.Path, Format: doc.Format}

	text, err := adapter.Text(doc, p.cfg.MaxFileSize, p.logger)
	if err != nil {
		res.Err = err
		p.logger.WarnContext(ctx, "document failed", "path", doc.Path, "format", doc.Format, "error", err)
		fmt.Fprintf(p.out, "failed:  %s (%v)\n", doc.Path, err)
		return res
	}

	candidates := p.recognizer.Recognize(text, doc.Path)
	res.Recognized = len(candidates)
	if len(candidates) == 0 {
		res.Err = fmt.Errorf("%s: %w", doc.Path, types.ErrRecognitionGap)
		p.logger.InfoContext(ctx, "no question blocks", "path", doc.Path, "format", doc.Format)
		fmt.Fprintf(p.out, "empty:   %s (no questions found)\n", doc.Path)
		return res
	}

	res.Accepted, res.Rejected = validate.All(p.cfg, candidates)
	p.logger.InfoContext(ctx, "document parsed",
		"path", doc.Path,
		"format", doc.Format,
		"recognized", res.Recognized,
		"accepted", len(res.Accepted),
		"rejected", len(res.Rejected),
	)
	for _, r := range res.Rejected {
		p.logger.DebugContext(ctx, "candidate rejected",
			"path", doc.Path, "line", r.Candidate.Line, "reason", r.Reason)
	}
	fmt.Fprintf(p.out, "parsed:  %s (%d accepted, %d rejected)\n", doc.Path, len(res.Accepted), len(res.Rejected))
	return res
}

// Result is the merged outcome of a run.
type Result struct {
	// Questions holds every accepted question in traversal order.
	Questions []types.Question
	// Files holds the per-document results in traversal order.
	Files  []types.ParseResult
	Report types.RunReport
}

// Run processes docs sequentially and merges the results. The context is
// checked between files; on cancellation the partial result is discarded
// and the context error is returned. No per-file failure makes Run fail.
func (p *Pipeline) Run(ctx context.Context, docs []types.Document) (Result, error) {
	var res Result
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("run cancelled: %w", err)
		}
		pr := p.ProcessDocument(ctx, doc)
		res.Files = append(res.Files, pr)
		res.Questions = append(res.Questions, pr.Accepted...)
	}
	res.Report = p.report(res.Files)

	p.logger.InfoContext(ctx, "run complete",
		"files", res.Report.TotalFiles,
		"failed", res.Report.FailedFiles,
		"accepted", res.Report.Accepted,
		"rejected", res.Report.Rejected,
	)
	fmt.Fprintf(p.out, "\nRun summary: %d accepted, %d rejected, %d failed files (total: %d)\n",
		res.Report.Accepted, res.Report.Rejected, res.Report.FailedFiles, res.Report.TotalFiles)
	return res, nil
}

// report builds the run statistics from per-file results.
func (p *Pipeline) report(files []types.ParseResult) types.RunReport {
	r := types.RunReport{
		Title:   p.cfg.Title,
		Types:   make(map[types.QuestionType]int),
		Reasons: make(map[types.ReasonCode]int),
	}
	for _, f := range files {
		fr := types.FileReport{
			Path:       f.Path,
			Format:     f.Format,
			Recognized: f.Recognized,
			Accepted:   len(f.Accepted),
			Rejected:   len(f.Rejected),
		}
		switch {
		case f.Failed():
			fr.Failed = true
			fr.Error = f.Err.Error()
			r.FailedFiles++
		case errors.Is(f.Err, types.ErrRecognitionGap):
			fr.Gap = true
			r.GapFiles++
		}
		r.Files = append(r.Files, fr)

		r.Recognized += fr.Recognized
		r.Accepted += fr.Accepted
		r.Rejected += fr.Rejected
		for _, q := range f.Accepted {
			r.Types[q.Type]++
		}
		for _, rej := range f.Rejected {
			r.Reasons[rej.Reason]++
		}
		if fr.Accepted > 0 {
			r.Ranking = append(r.Ranking, types.RankedFile{Path: fr.Path, Accepted: fr.Accepted})
		}
	}
	r.TotalFiles = len(files)

	slices.SortStableFunc(r.Ranking, func(a, b types.RankedFile) int {
		if c := cmp.Compare(b.Accepted, a.Accepted); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	return r
}
