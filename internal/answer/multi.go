// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package answer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// PaperExtract groups the ranked chunk content drawn from one paper for a
// cross-paper or network answer. Score is the summed chunk relevance;
// Relationship is set only for network answers.
type PaperExtract struct {
	Title        string
	Author       string
	Year         int
	Relationship string
	Chunks       []string
	Score        float64
}

const (
	topPapersShown    = 3
	keyPointsPerPaper = 2
)

// ComposeCross renders the multi-paper answer: the top papers by summed
// relevance, two key points each, plus cross-paper insight lines when more
// than one paper contributed.
func ComposeCross(question string, papers []PaperExtract) string {
	sorted := sortByScore(papers)

	var b strings.Builder
	fmt.Fprintf(&b, "Based on my analysis of %d relevant papers, here's what I found:", len(sorted))

	writePaperSections(&b, sorted, question, false)

	if len(sorted) > 1 {
		b.WriteString("\n**Cross-paper insights:**")
		var all []string
		for _, p := range sorted {
			all = append(all, p.Chunks...)
		}
		for _, insight := range insights(strings.Join(all, " "), countChunks(sorted)) {
			b.WriteString("\n- " + insight)
		}
	}

	return b.String()
}

// ComposeNetwork renders the reference-network answer, annotating each
// paper with its relationship to the starting paper.
func ComposeNetwork(question, startTitle string, papers []PaperExtract) string {
	sorted := sortByScore(papers)

	var b strings.Builder
	fmt.Fprintf(&b, "Based on my analysis of the reference network starting from %q, here's what I found:", startTitle)

	writePaperSections(&b, sorted, question, true)

	return b.String()
}

func writePaperSections(b *strings.Builder, sorted []PaperExtract, question string, withRelationship bool) {
	shown := sorted
	if len(shown) > topPapersShown {
		shown = shown[:topPapersShown]
	}

	for _, p := range shown {
		if withRelationship {
			fmt.Fprintf(b, "\n\n**%s** (%s, %d) - %s:", p.Title, p.Author, p.Year, p.Relationship)
		} else {
			fmt.Fprintf(b, "\n\n**%s** (%s, %d):", p.Title, p.Author, p.Year)
		}
		points := keyPoints(p.Chunks, question)
		if len(points) > keyPointsPerPaper {
			points = points[:keyPointsPerPaper]
		}
		for _, point := range points {
			b.WriteString("\n- " + point)
		}
	}
}

var wsRe = regexp.MustCompile(`\s+`)

// keyPoints extracts up to five question-relevant sentences from the chunks,
// skipping short fragments and overly long sentences.
func keyPoints(chunks []string, question string) []string {
	q := strings.ToLower(question)
	var points []string

	for _, chunk := range chunks {
		for _, sentence := range sentenceRe.Split(chunk, -1) {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) <= minSentenceLen {
				continue
			}
			if !sentenceRelevant(strings.ToLower(sentence), q) {
				continue
			}
			sentence = wsRe.ReplaceAllString(sentence, " ")
			if len(sentence) < 200 {
				points = append(points, sentence)
			}
			if len(points) >= maxSentences {
				return points
			}
		}
	}
	return points
}

// Theme markers looked for across all contributed content.
var (
	methodologyRe = regexp.MustCompile(`(?i)\b(method|methodology|approach|technique|algorithm|framework)\b`)
	findingRe     = regexp.MustCompile(`(?i)\b(find|found|discover|reveal|show|demonstrate|indicate)\b`)
	conclusionRe  = regexp.MustCompile(`(?i)\b(conclude|conclusion|result|outcome|implication)\b`)
)

// insights produces the comparative lines shown under the cross-paper
// heading, based on theme markers shared across the contributed content.
func insights(allContent string, chunkCount int) []string {
	var out []string
	if methodologyRe.MatchString(allContent) {
		out = append(out, "Multiple papers discuss similar methodologies and approaches.")
	}
	if findingRe.MatchString(allContent) {
		out = append(out, "The papers present various findings and discoveries related to your question.")
	}
	if conclusionRe.MatchString(allContent) {
		out = append(out, "There are several conclusions and implications drawn across the papers.")
	}
	if chunkCount > 5 {
		out = append(out, "The topic is well-covered across multiple papers, suggesting it's an active area of research.")
	}
	return out
}

func sortByScore(papers []PaperExtract) []PaperExtract {
	sorted := make([]PaperExtract, len(papers))
	copy(sorted, papers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

func countChunks(papers []PaperExtract) int {
	n := 0
	for _, p := range papers {
		n += len(p.Chunks)
	}
	return n
}
