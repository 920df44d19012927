// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import "strings"

// Weights for combining field similarities when ranking external
// candidates against a citation. Title dominates because citation
// author strings are frequently abbreviated or truncated.
const (
	titleWeight  = 0.7
	authorWeight = 0.3

	// acceptThreshold is the minimum combined similarity for an
	// external candidate to be accepted as a match.
	acceptThreshold = 0.6
)

// wordJaccard computes Jaccard similarity between the lowercase word
// sets of two strings. Empty inputs score zero.
func wordJaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

// candidateScore combines title and author similarity between an
// external candidate and the citation it should match.
func candidateScore(c Candidate, title, author string) float64 {
	return wordJaccard(c.Title, title)*titleWeight + wordJaccard(c.Author, author)*authorWeight
}

// bestCandidate returns the highest-scoring candidate and its score.
// Ties keep the earlier candidate, preserving the backend's own order.
func bestCandidate(candidates []Candidate, title, author string) (Candidate, float64) {
	var best Candidate
	bestScore := -1.0
	for _, c := range candidates {
		if s := candidateScore(c, title, author); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore
}
