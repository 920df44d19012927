// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph builds and walks the citation graph. The builder
// extracts citations from a paper's text, resolves each to a paper
// record, and records directed reference edges; the traversal side
// collects the neighborhood of a paper across both edge directions.
package graph

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/refgraph/internal/citeparse"
	"github.com/pdiddy/refgraph/internal/resolve"
	"github.com/pdiddy/refgraph/internal/store"
	"github.com/pdiddy/refgraph/pkg/types"
)

// Builder extracts citations and links papers in the store.
type Builder struct {
	store    *store.Store
	resolver *resolve.Resolver
	progress io.Writer
}

// NewBuilder returns a builder writing progress lines to w; pass
// io.Discard to silence them.
func NewBuilder(s *store.Store, r *resolve.Resolver, w io.Writer) *Builder {
	if w == nil {
		w = io.Discard
	}
	return &Builder{store: s, resolver: r, progress: w}
}

// LinkStats summarizes one extraction run.
type LinkStats struct {
	PapersVisited int
	CitationsSeen int
	EdgesCreated  int
	PapersCreated int
}

// task is one paper awaiting citation extraction.
type task struct {
	paperID string
	depth   int
}

// ExtractAndLink parses citations from the paper's text, resolves each
// to a target record, and creates source-to-target edges. With
// recursive set, newly created target papers are queued for their own
// extraction until maxDepth is exhausted. Targets that already have
// outgoing edges are never re-extracted, which keeps repeat runs
// idempotent and terminates citation cycles.
func (b *Builder) ExtractAndLink(ctx context.Context, paperID string, recursive bool, maxDepth int) (LinkStats, error) {
	var stats LinkStats

	work := []task{{paperID: paperID, depth: maxDepth}}
	for len(work) > 0 {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		t := work[0]
		work = work[1:]

		paper, err := b.store.GetPaper(ctx, t.paperID)
		if err != nil {
			return stats, fmt.Errorf("loading paper %s: %w", t.paperID, err)
		}
		stats.PapersVisited++

		refs := citeparse.Parse(paper.ContentText)
		stats.CitationsSeen += len(refs)
		fmt.Fprintf(b.progress, "extracting %q: %d citations\n", paper.Title, len(refs))

		for _, ref := range refs {
			target, created, err := b.resolver.Resolve(ctx, ref, paper)
			if err != nil {
				return stats, err
			}
			if created {
				stats.PapersCreated++
			}
			if target.ID == paper.ID {
				continue
			}

			edgeCreated, err := b.store.CreateReference(ctx, paper.ID, target.ID, ref.Matched)
			if err != nil {
				return stats, fmt.Errorf("linking %s -> %s: %w", paper.ID, target.ID, err)
			}
			if !edgeCreated {
				continue
			}
			stats.EdgesCreated++

			// Synthesized placeholders carry generated text quoting the
			// citing paper's context; parsing it would mint edges the
			// placeholder never made. Only papers with genuinely
			// extracted text are worth recursing into.
			if recursive && t.depth > 1 && target.Origin != types.OriginSynthesized {
				hasOut, err := b.store.HasOutgoing(ctx, target.ID)
				if err != nil {
					return stats, err
				}
				if !hasOut {
					work = append(work, task{paperID: target.ID, depth: t.depth - 1})
				}
			}
		}
	}
	return stats, nil
}
