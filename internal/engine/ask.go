// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/refgraph/internal/answer"
	"github.com/pdiddy/refgraph/internal/score"
	"github.com/pdiddy/refgraph/pkg/types"
)

// singleSimilarity is the similarity reported for sources in
// single-paper mode, where the heuristic scorer's integer scale has no
// 0-1 interpretation.
const singleSimilarity = 0.8

// previewLimit bounds source content previews.
const previewLimit = 200

// Ask answers a question against one paper using the heuristic scorer.
// The exchange is recorded under a conversation keyed by paper and
// session.
func (e *Engine) Ask(ctx context.Context, paperID, question, sessionID string) (*types.Answer, error) {
	started := time.Now()

	p, err := e.store.GetPaper(ctx, paperID)
	if err != nil {
		return nil, fmt.Errorf("loading paper: %w", err)
	}
	if err := e.ProcessPaper(ctx, paperID); err != nil {
		return nil, err
	}

	chunks, err := e.store.ChunksByPaper(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}

	var ans *types.Answer
	if len(chunks) == 0 {
		ans = &types.Answer{Text: answer.NoContent(p.Title, question)}
	} else {
		ans = e.answerSingle(question, p, chunks)
	}

	if err := e.record(ctx, p.ID, sessionID, question, ans, started); err != nil {
		return nil, err
	}
	return ans, nil
}

func (e *Engine) answerSingle(question string, p *types.Paper, chunks []types.Chunk) *types.Answer {
	contents := make([]string, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
	}

	ranked := score.Rank(score.Heuristic{}, question, contents, e.cfg.TopK)
	if len(ranked) == 0 {
		return &types.Answer{Text: answer.NoMatchSingle}
	}

	ans := &types.Answer{}
	var selected []string
	for _, r := range ranked {
		c := chunks[r.Index]
		selected = append(selected, c.Content)
		ans.Chunks = append(ans.Chunks, types.ChunkDescriptor{
			ID:             c.ID,
			Content:        c.Content,
			Index:          c.Index,
			Page:           c.Page,
			Section:        c.Section,
			PaperTitle:     p.Title,
			PaperAuthor:    p.Author,
			RelevanceScore: r.Score,
		})
		ans.Sources = append(ans.Sources, types.SourceDescriptor{
			ChunkID:         c.ID,
			ContentPreview:  preview(c.Content),
			SimilarityScore: singleSimilarity,
			PaperTitle:      p.Title,
			PaperAuthor:     p.Author,
		})
	}

	content := answer.ExtractContent(selected, question)
	ans.Text = answer.Compose(question, content, p.Title, p.Author)
	return ans
}

// record appends the user question and assistant answer to the
// conversation and logs the query with its score metadata.
func (e *Engine) record(ctx context.Context, paperID, sessionID, question string, ans *types.Answer, started time.Time) error {
	conv, err := e.store.GetOrCreateConversation(ctx, paperID, sessionID)
	if err != nil {
		return fmt.Errorf("opening conversation: %w", err)
	}

	user := &types.Message{ConversationID: conv.ID, Role: types.RoleUser, Content: question}
	if err := e.store.AppendMessage(ctx, user); err != nil {
		return fmt.Errorf("recording question: %w", err)
	}

	asst := &types.Message{
		ConversationID: conv.ID,
		Role:           types.RoleAssistant,
		Content:        ans.Text,
		Chunks:         ans.Chunks,
		Sources:        ans.Sources,
	}
	if err := e.store.AppendMessage(ctx, asst); err != nil {
		return fmt.Errorf("recording answer: %w", err)
	}

	scores := make([]float64, len(ans.Chunks))
	for i, c := range ans.Chunks {
		scores[i] = c.RelevanceScore
	}
	if err := e.store.LogQuery(ctx, conv.ID, question, ans.Text, scores, time.Since(started)); err != nil {
		return fmt.Errorf("logging query: %w", err)
	}
	return nil
}

// History returns the messages of the conversation for a paper and
// session, oldest first.
func (e *Engine) History(ctx context.Context, paperID, sessionID string) ([]types.Message, error) {
	conv, err := e.store.GetOrCreateConversation(ctx, paperID, sessionID)
	if err != nil {
		return nil, err
	}
	return e.store.Messages(ctx, conv.ID)
}

func preview(content string) string {
	if len(content) <= previewLimit {
		return content
	}
	return content[:previewLimit] + "..."
}
