// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pdiddy/refgraph/internal/answer"
	"github.com/pdiddy/refgraph/internal/graph"
	"github.com/pdiddy/refgraph/internal/score"
	"github.com/pdiddy/refgraph/pkg/types"
)

// scoredChunk pairs a chunk with its similarity to the question and the
// paper it came from.
type scoredChunk struct {
	paper types.Paper
	chunk types.Chunk
	sim   float64
}

// AskAcross answers a question over the whole corpus: papers are found
// by question keywords, candidate chunks are selected per paper with
// the heuristic scorer, then re-scored with keyword-set similarity for
// the cross-paper ranking. The exchange is recorded under a
// conversation with no fixed paper.
func (e *Engine) AskAcross(ctx context.Context, question, sessionID string) (*types.Answer, error) {
	started := time.Now()

	papers, err := e.findPapers(ctx, question)
	if err != nil {
		return nil, err
	}

	var ans *types.Answer
	if len(papers) == 0 {
		ans = &types.Answer{Text: answer.NoMatchCross}
	} else {
		scored, err := e.scoreAcross(ctx, question, papers)
		if err != nil {
			return nil, err
		}
		if len(scored) == 0 {
			ans = &types.Answer{Text: answer.NoMatchCrossChunks}
		} else {
			ans = e.composeCross(question, scored)
		}
	}

	if err := e.record(ctx, "", sessionID, question, ans, started); err != nil {
		return nil, err
	}
	return ans, nil
}

// findPapers searches the corpus by each question keyword until the
// paper budget is reached.
func (e *Engine) findPapers(ctx context.Context, question string) ([]types.Paper, error) {
	var papers []types.Paper
	var seen []string

	for _, kw := range score.Keywords(question) {
		if len(papers) >= e.cfg.MaxPapers {
			break
		}
		found, err := e.store.SearchPapersByKeyword(ctx, kw, e.cfg.MaxPapers-len(papers), seen)
		if err != nil {
			return nil, fmt.Errorf("searching papers: %w", err)
		}
		for _, p := range found {
			papers = append(papers, p)
			seen = append(seen, p.ID)
		}
	}
	return papers, nil
}

// scoreAcross selects candidate chunks per paper with the heuristic
// scorer, then re-scores each with keyword-set similarity. The returned
// slice is sorted by similarity, best first, ties keeping paper order,
// and capped at twice the top-k budget.
func (e *Engine) scoreAcross(ctx context.Context, question string, papers []types.Paper) ([]scoredChunk, error) {
	var scored []scoredChunk
	jac := score.Jaccard{}

	for _, p := range papers {
		chunks, err := e.store.ChunksByPaper(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("loading chunks for %q: %w", p.Title, err)
		}
		if len(chunks) == 0 {
			continue
		}

		contents := make([]string, len(chunks))
		for i, c := range chunks {
			contents[i] = c.Content
		}
		// Heuristic-selected chunks stay in the ranking even at zero
		// similarity; a weak answer beats a refusal.
		for _, r := range score.Rank(score.Heuristic{}, question, contents, e.cfg.TopK) {
			sim := jac.Score(question, chunks[r.Index].Content)
			scored = append(scored, scoredChunk{paper: p, chunk: chunks[r.Index], sim: sim})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].sim > scored[j].sim })
	if limit := 2 * e.cfg.TopK; len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (e *Engine) composeCross(question string, scored []scoredChunk) *types.Answer {
	extracts := groupByPaper(scored, nil)

	ans := &types.Answer{Text: answer.ComposeCross(question, extracts)}
	fillDescriptors(ans, scored)
	return ans
}

// AskNetwork answers a question over the reference network of a paper:
// every paper within maxDepth hops, across both edge directions,
// contributes chunks scored by keyword-set similarity. Each
// contributing paper is annotated with its relationship to the start.
func (e *Engine) AskNetwork(ctx context.Context, paperID, question, sessionID string, maxDepth int) (*types.Answer, error) {
	started := time.Now()

	start, err := e.store.GetPaper(ctx, paperID)
	if err != nil {
		return nil, fmt.Errorf("loading paper: %w", err)
	}

	net, err := graph.Walk(ctx, e.store, paperID, maxDepth)
	if err != nil {
		return nil, fmt.Errorf("walking network: %w", err)
	}
	fmt.Fprintf(e.progress, "network of %q: %d papers\n", start.Title, len(net.Papers))

	scored, err := e.scoreAcross(ctx, question, net.Papers)
	if err != nil {
		return nil, err
	}

	var ans *types.Answer
	if len(scored) == 0 {
		ans = &types.Answer{Text: answer.NoMatchNetwork(start.Title)}
	} else {
		relationships := make(map[string]string)
		for _, sc := range scored {
			if _, ok := relationships[sc.paper.ID]; ok {
				continue
			}
			rel, err := graph.Classify(ctx, e.store, paperID, sc.paper.ID)
			if err != nil {
				return nil, fmt.Errorf("classifying relationship: %w", err)
			}
			relationships[sc.paper.ID] = string(rel)
		}

		extracts := groupByPaper(scored, relationships)
		ans = &types.Answer{Text: answer.ComposeNetwork(question, start.Title, extracts)}
		fillDescriptors(ans, scored)
	}

	if err := e.record(ctx, paperID, sessionID, question, ans, started); err != nil {
		return nil, err
	}
	return ans, nil
}

// groupByPaper folds scored chunks into per-paper extracts, preserving
// the ranking order of each paper's first appearance.
func groupByPaper(scored []scoredChunk, relationships map[string]string) []answer.PaperExtract {
	index := make(map[string]int)
	var extracts []answer.PaperExtract

	for _, sc := range scored {
		i, ok := index[sc.paper.ID]
		if !ok {
			i = len(extracts)
			index[sc.paper.ID] = i
			extracts = append(extracts, answer.PaperExtract{
				Title:        sc.paper.Title,
				Author:       sc.paper.Author,
				Year:         sc.paper.Year,
				Relationship: relationships[sc.paper.ID],
			})
		}
		extracts[i].Chunks = append(extracts[i].Chunks, sc.chunk.Content)
		extracts[i].Score += sc.sim
	}
	return extracts
}

func fillDescriptors(ans *types.Answer, scored []scoredChunk) {
	for _, sc := range scored {
		ans.Chunks = append(ans.Chunks, types.ChunkDescriptor{
			ID:             sc.chunk.ID,
			Content:        sc.chunk.Content,
			Index:          sc.chunk.Index,
			Page:           sc.chunk.Page,
			Section:        sc.chunk.Section,
			PaperTitle:     sc.paper.Title,
			PaperAuthor:    sc.paper.Author,
			RelevanceScore: sc.sim,
		})
		ans.Sources = append(ans.Sources, types.SourceDescriptor{
			ChunkID:         sc.chunk.ID,
			ContentPreview:  preview(sc.chunk.Content),
			SimilarityScore: sc.sim,
			PaperTitle:      sc.paper.Title,
			PaperAuthor:     sc.paper.Author,
		})
	}
}
