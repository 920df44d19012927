// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import "strings"

// keywordBoost is the additive bonus per question keyword present verbatim
// in the content.
const keywordBoost = 0.1

// Jaccard is the cross-paper and network chunk scorer: symmetric Jaccard
// similarity over stop-word-filtered keyword sets, boosted per question
// keyword found in the content and capped at 1.0. Scores live on a 0-1
// scale and are not comparable with Heuristic scores.
type Jaccard struct{}

func (Jaccard) Name() string { return "jaccard" }

// Score computes the boosted Jaccard similarity of question and content.
func (Jaccard) Score(question, content string) float64 {
	qWords := KeywordSet(question)
	cWords := KeywordSet(content)
	if len(qWords) == 0 || len(cWords) == 0 {
		return 0
	}

	inter := 0
	for w := range qWords {
		if cWords[w] {
			inter++
		}
	}
	union := len(qWords) + len(cWords) - inter
	base := float64(inter) / float64(union)

	contentLower := strings.ToLower(content)
	boost := 0.0
	for w := range qWords {
		if strings.Contains(contentLower, w) {
			boost += keywordBoost
		}
	}

	if s := base + boost; s < 1.0 {
		return s
	}
	return 1.0
}
