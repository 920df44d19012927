// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine drives the retrieval pipeline: paper processing
// (text extraction and chunking), question answering over single
// papers, across the corpus, and over a paper's reference network, and
// conversation recording. Each query runs synchronously to completion.
package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/refgraph/internal/chunker"
	"github.com/pdiddy/refgraph/internal/graph"
	"github.com/pdiddy/refgraph/internal/store"
	"github.com/pdiddy/refgraph/internal/textext"
	"github.com/pdiddy/refgraph/pkg/types"
)

// Engine answers questions over the paper corpus.
type Engine struct {
	store    *store.Store
	builder  *graph.Builder
	cfg      types.EngineConfig
	progress io.Writer
}

// New returns an engine with cfg's zero fields replaced by defaults.
// Progress lines go to w; pass io.Discard to silence them.
func New(s *store.Store, b *graph.Builder, cfg types.EngineConfig, w io.Writer) *Engine {
	if w == nil {
		w = io.Discard
	}
	return &Engine{store: s, builder: b, cfg: cfg.WithDefaults(), progress: w}
}

// ProcessPaper extracts text if needed and chunks it. Papers that
// already have chunks are left untouched, so reprocessing is a no-op.
// A paper with no extractable text is marked processed with no chunks;
// queries against it produce a no-content answer rather than an error.
func (e *Engine) ProcessPaper(ctx context.Context, paperID string) error {
	p, err := e.store.GetPaper(ctx, paperID)
	if err != nil {
		return fmt.Errorf("loading paper: %w", err)
	}

	hasChunks, err := e.store.HasChunks(ctx, p.ID)
	if err != nil {
		return err
	}
	if hasChunks {
		fmt.Fprintf(e.progress, "%q already chunked, skipping\n", p.Title)
		return nil
	}

	content := p.ContentText
	if content == "" && p.FilePath != "" {
		text, extractErr := textext.Extract(p.FilePath)
		if extractErr != nil {
			fmt.Fprintf(e.progress, "extracting %q: %v\n", p.Title, extractErr)
		}
		content = text
	}

	if content == "" {
		fmt.Fprintf(e.progress, "%q has no extractable text\n", p.Title)
		return e.store.UpdatePaperContent(ctx, p.ID, "", true)
	}

	chunks := chunker.Split(content, e.cfg.ChunkSize, e.cfg.ChunkOverlap)
	if err := e.store.CreateChunks(ctx, p.ID, chunks); err != nil {
		return fmt.Errorf("storing chunks: %w", err)
	}
	if err := e.store.UpdatePaperContent(ctx, p.ID, content, true); err != nil {
		return err
	}
	fmt.Fprintf(e.progress, "processed %q: %d chunks\n", p.Title, len(chunks))
	return nil
}

// BatchSummary reports the outcome of a batch processing run.
type BatchSummary struct {
	Processed int
	Failed    int
	Errors    []error
}

// ProcessAll chunks every paper in the store sequentially. One paper's
// failure is recorded and the batch continues.
func (e *Engine) ProcessAll(ctx context.Context) (BatchSummary, error) {
	papers, err := e.store.ListPapers(ctx)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("listing papers: %w", err)
	}

	var sum BatchSummary
	for _, p := range papers {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := e.ProcessPaper(ctx, p.ID); err != nil {
			sum.Failed++
			sum.Errors = append(sum.Errors, fmt.Errorf("%s: %w", p.Title, err))
			fmt.Fprintf(e.progress, "failed %q: %v\n", p.Title, err)
			continue
		}
		sum.Processed++
	}
	return sum, nil
}

// ExtractReferences runs citation extraction and linking for one paper,
// processing it first if its text has not been chunked yet.
func (e *Engine) ExtractReferences(ctx context.Context, paperID string, recursive bool, maxDepth int) (graph.LinkStats, error) {
	if err := e.ProcessPaper(ctx, paperID); err != nil {
		return graph.LinkStats{}, err
	}
	return e.builder.ExtractAndLink(ctx, paperID, recursive, maxDepth)
}

// ExtractAllReferences runs extraction for every paper with per-item
// error isolation, mirroring ProcessAll.
func (e *Engine) ExtractAllReferences(ctx context.Context, recursive bool, maxDepth int) (BatchSummary, error) {
	papers, err := e.store.ListPapers(ctx)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("listing papers: %w", err)
	}

	var sum BatchSummary
	for _, p := range papers {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if _, err := e.ExtractReferences(ctx, p.ID, recursive, maxDepth); err != nil {
			sum.Failed++
			sum.Errors = append(sum.Errors, fmt.Errorf("%s: %w", p.Title, err))
			fmt.Fprintf(e.progress, "failed %q: %v\n", p.Title, err)
			continue
		}
		sum.Processed++
	}
	return sum, nil
}
