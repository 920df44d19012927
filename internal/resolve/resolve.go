// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/refgraph/internal/store"
	"github.com/pdiddy/refgraph/pkg/types"
)

// Truncation limits applied to citation fields before local partial
// matching, so noisy parses cannot defeat the LIKE queries.
const (
	titleMatchLimit  = 100
	authorMatchLimit = 50
)

// Resolver maps a parsed citation to a paper record. The cascade runs
// local matching first, then the configured external backends, and
// falls through to placeholder synthesis, so every citation resolves to
// exactly one paper.
type Resolver struct {
	store    *store.Store
	backends []Backend
	progress io.Writer
}

// NewResolver builds a resolver over the store. Progress lines go to w;
// pass io.Discard to silence them.
func NewResolver(s *store.Store, backends []Backend, w io.Writer) *Resolver {
	if w == nil {
		w = io.Discard
	}
	return &Resolver{store: s, backends: backends, progress: w}
}

// Resolve returns the paper a citation refers to, creating one if no
// local or external match exists. The returned bool reports whether a
// new record was created. Resolve only errors on store failures;
// external lookup failures are logged and the cascade continues.
func (r *Resolver) Resolve(ctx context.Context, ref types.ParsedReference, citing *types.Paper) (*types.Paper, bool, error) {
	if p, err := r.matchLocal(ctx, ref); err != nil {
		return nil, false, err
	} else if p != nil {
		return p, false, nil
	}

	if c, ok := r.lookupExternal(ctx, ref); ok {
		p, err := r.createExternal(ctx, c)
		if err != nil {
			return nil, false, err
		}
		return p, true, nil
	}

	p, err := r.synthesize(ctx, ref, citing)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// matchLocal runs the in-store cascade: exact title, then truncated
// title plus author substring, then author plus year.
func (r *Resolver) matchLocal(ctx context.Context, ref types.ParsedReference) (*types.Paper, error) {
	if ref.Title != "" {
		p, err := r.store.FindByExactTitle(ctx, ref.Title)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("matching exact title: %w", err)
		}
		if p != nil {
			return p, nil
		}

		p, err = r.store.FindByTitleAuthor(ctx, truncate(ref.Title, titleMatchLimit), truncate(ref.Author, authorMatchLimit))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("matching title and author: %w", err)
		}
		if p != nil {
			return p, nil
		}
	}

	p, err := r.store.FindByAuthorYear(ctx, truncate(ref.Author, authorMatchLimit), ref.Year)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("matching author and year: %w", err)
	}
	return p, nil
}

// lookupExternal tries each backend in order and returns the first
// candidate whose similarity to the citation clears the acceptance
// threshold. Backend failures are logged, never propagated.
func (r *Resolver) lookupExternal(ctx context.Context, ref types.ParsedReference) (Candidate, bool) {
	for _, b := range r.backends {
		candidates, err := b.Lookup(ctx, ref.Title, ref.Author)
		if err != nil {
			fmt.Fprintf(r.progress, "  %s lookup failed: %v\n", b.Name(), err)
			continue
		}
		if len(candidates) == 0 {
			continue
		}

		// arXiv returns a single pre-accepted entry; CrossRef results
		// are re-ranked against the citation before acceptance.
		if b.Name() == "arxiv" {
			return candidates[0], true
		}

		best, score := bestCandidate(candidates, ref.Title, ref.Author)
		if score > acceptThreshold {
			fmt.Fprintf(r.progress, "  %s match %q (score %.2f)\n", b.Name(), best.Title, score)
			return best, true
		}
	}
	return Candidate{}, false
}

// createExternal stores a paper record built from external metadata.
// The record stays unprocessed until its full text is fetched.
func (r *Resolver) createExternal(ctx context.Context, c Candidate) (*types.Paper, error) {
	p := &types.Paper{
		Title:    c.Title,
		Author:   c.Author,
		Abstract: c.Abstract,
		Year:     c.Year,
		DOI:      c.DOI,
		Journal:  c.Journal,
		Origin:   types.OriginExternal,
	}
	if err := r.store.CreatePaper(ctx, p); err != nil {
		return nil, fmt.Errorf("creating external paper: %w", err)
	}
	return p, nil
}

// synthesize creates a placeholder record carrying everything known
// about the cited work: the citation fields plus generated text that
// records its provenance. Placeholders are marked processed so the
// pipeline never waits on text that will not arrive.
func (r *Resolver) synthesize(ctx context.Context, ref types.ParsedReference, citing *types.Paper) (*types.Paper, error) {
	title := ref.Title
	if title == "" {
		title = fmt.Sprintf("Untitled work by %s (%d)", ref.Author, ref.Year)
	}

	p := &types.Paper{
		Title:       title,
		Author:      ref.Author,
		Year:        ref.Year,
		ContentText: placeholderContent(ref, citing),
		Processed:   true,
		Origin:      types.OriginSynthesized,
	}
	if err := r.store.CreatePaper(ctx, p); err != nil {
		return nil, fmt.Errorf("creating placeholder paper: %w", err)
	}
	fmt.Fprintf(r.progress, "  synthesized placeholder %q\n", p.Title)
	return p, nil
}

// placeholderContent generates the searchable text of a synthesized
// record from the citation and the paper it was found in.
func placeholderContent(ref types.ParsedReference, citing *types.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Placeholder record for a cited work by %s (%d).\n\n", ref.Author, ref.Year)
	if ref.Title != "" {
		fmt.Fprintf(&b, "Cited title: %s\n", ref.Title)
	}
	fmt.Fprintf(&b, "Citation text: %s\n", ref.Matched)
	if ref.Context != "" {
		fmt.Fprintf(&b, "Citation context: %s\n", ref.Context)
	}
	if citing != nil {
		fmt.Fprintf(&b, "\nThis record was created from a citation in %q by %s.\n", citing.Title, citing.Author)
	}
	b.WriteString("The full text of this work has not been obtained; the information here comes entirely from the citing paper.\n")
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
