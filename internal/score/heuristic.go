// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import "strings"

// conceptCluster is a topical word cluster. When any trigger appears in the
// question the whole cluster is checked against the chunk.
type conceptCluster struct {
	triggers []string
	words    []string
}

// The five fixed clusters. Trigger and cluster word sets differ where the
// trigger is a question word ("phone" triggers the device cluster but is
// not itself scored).
var clusters = []conceptCluster{
	{
		triggers: []string{"mobile", "device", "smartphone", "tablet", "phone"},
		words:    []string{"mobile", "device", "smartphone", "tablet"},
	},
	{
		triggers: []string{"learn", "study", "education", "teaching"},
		words:    []string{"learn", "study", "education", "teaching"},
	},
	{
		triggers: []string{"language", "english", "vocabulary", "grammar"},
		words:    []string{"language", "english", "vocabulary", "grammar"},
	},
	{
		triggers: []string{"reason", "why", "purpose", "benefit", "advantage"},
		words:    []string{"reason", "why", "purpose", "benefit", "advantage"},
	},
	{
		triggers: []string{"how", "method", "process", "way"},
		words:    []string{"how", "method", "process", "way"},
	},
}

// Marker words scored by question type.
var (
	explanatoryWords  = []string{"because", "since", "as", "due to", "reason", "purpose", "benefit"}
	proceduralWords   = []string{"process", "method", "step", "procedure", "way", "approach"}
	definitionalWords = []string{"is", "are", "means", "refers to", "defined as", "consists of"}
)

// Score weights.
const (
	conceptWeight      = 5
	wordWeight         = 1
	phraseWeight       = 3
	questionTypeWeight = 2
)

// Heuristic is the single-paper chunk scorer. Scores are whole numbers:
// concept matches dominate, exact word and adjacent-bigram matches refine,
// and a question-type bonus rewards explanatory, procedural, or
// definitional content.
type Heuristic struct{}

func (Heuristic) Name() string { return "heuristic" }

// Score computes the integer relevance of content to question. Adding an
// occurrence of a question keyword to content never lowers the result.
func (Heuristic) Score(question, content string) float64 {
	q := strings.ToLower(question)
	c := strings.ToLower(content)

	score := 0

	for _, concept := range Concepts(q) {
		if strings.Contains(c, concept) {
			score += conceptWeight
		}
	}

	var words []string
	for _, w := range strings.Fields(q) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	for _, w := range words {
		if strings.Contains(c, w) {
			score += wordWeight
		}
	}

	for i := 0; i+1 < len(words); i++ {
		if strings.Contains(c, words[i]+" "+words[i+1]) {
			score += phraseWeight
		}
	}

	score += questionTypeBonus(q, c)

	return float64(score)
}

// Concepts returns the deduplicated cluster words activated by the question.
func Concepts(question string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, cl := range clusters {
		if !anyContained(question, cl.triggers) {
			continue
		}
		for _, w := range cl.words {
			if !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
	}
	return out
}

// questionTypeBonus scores marker words selected by the question form:
// why/reason questions reward explanatory content, how questions reward
// procedural content, what questions reward definitional content.
func questionTypeBonus(question, content string) int {
	var markers []string
	switch {
	case strings.Contains(question, "why") || strings.Contains(question, "reason"):
		markers = explanatoryWords
	case strings.Contains(question, "how"):
		markers = proceduralWords
	case strings.Contains(question, "what"):
		markers = definitionalWords
	default:
		return 0
	}

	bonus := 0
	for _, m := range markers {
		if strings.Contains(content, m) {
			bonus += questionTypeWeight
		}
	}
	return bonus
}

func anyContained(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
