// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"regexp"
	"strings"
)

// stopWords are question/content words carrying no topical signal.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "could": true, "should": true, "may": true, "might": true,
	"can": true, "what": true, "how": true, "why": true, "when": true,
	"where": true, "who": true, "which": true, "that": true, "this": true,
	"these": true, "those": true, "about": true, "from": true, "into": true,
	"through": true, "during": true, "before": true, "after": true,
	"above": true, "below": true, "between": true, "among": true,
}

var wordRe = regexp.MustCompile(`\b\w+\b`)

// Keywords extracts the unique lowercase words of s that are longer than
// three characters and not stop words, preserving first-occurrence order.
func Keywords(s string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
		if len(w) <= 3 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// KeywordSet returns Keywords as a membership set.
func KeywordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range Keywords(s) {
		set[w] = true
	}
	return set
}
