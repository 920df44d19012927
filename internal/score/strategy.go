// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score ranks text chunks against a question. Two strategies are
// implemented: an integer-scale keyword heuristic for single-paper ranking
// and a 0-1 Jaccard similarity for cross-paper and network ranking. They
// are different scoring functions on different scales; callers select one
// by query mode and the two are deliberately not unified.
package score

import "sort"

// Strategy scores one chunk of text against a question. Heuristic returns
// whole-number scores; Jaccard returns floats in [0, 1].
type Strategy interface {
	Name() string
	Score(question, content string) float64
}

// Ranked pairs a chunk's original position with its score.
type Ranked struct {
	Index int
	Score float64
}

// fallbackCount is how many leading chunks are returned when nothing scores
// above zero. Ranking never returns an empty set for a non-empty input.
const fallbackCount = 3

// Rank scores every chunk and returns the top k by descending score,
// excluding zero scores. Ties keep original chunk order (stable sort).
// When no chunk scores above zero the first fallbackCount chunks are
// returned unscored.
func Rank(s Strategy, question string, contents []string, k int) []Ranked {
	if len(contents) == 0 {
		return nil
	}

	var ranked []Ranked
	for i, c := range contents {
		sc := s.Score(question, c)
		if sc > 0 {
			ranked = append(ranked, Ranked{Index: i, Score: sc})
		}
	}

	if len(ranked) == 0 {
		n := fallbackCount
		if n > len(contents) {
			n = len(contents)
		}
		for i := 0; i < n; i++ {
			ranked = append(ranked, Ranked{Index: i})
		}
		return ranked
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
