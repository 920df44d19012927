// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citeparse extracts citation reference tuples from raw paper text.
// An ordered list of regex pattern families covers the common in-text and
// bibliography citation shapes; validated matches become ParsedReference
// tuples that the resolver turns into graph edges.
package citeparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/refgraph/pkg/types"
)

// contextWindow is the number of characters captured on each side of a
// match for the reference context.
const contextWindow = 200

// titleStoplist holds captured "titles" that are section furniture rather
// than bibliographic titles.
var titleStoplist = map[string]bool{
	"correction":    true,
	"figure":        true,
	"table":         true,
	"appendix":      true,
	"supplementary": true,
}

// Pattern families, applied in order. Earlier families win the (author, year)
// dedup, so the more specific shapes come first.
var patterns = []*regexp.Regexp{
	// "Smith, J. et al. (2023) AI Tutoring Systems in Education."
	regexp.MustCompile(`([A-Z][a-z]+,\s*[A-Z]\.(?:\s*[A-Z]\.)*\s+et\s+al\.)\s*\((\d{4})\)\.?\s*([^.!?\n]+[.!?])`),

	// "Smith, A. and Jones, B. (2019) Title."
	regexp.MustCompile(`([A-Z][a-z]+,\s*[A-Z]\.\s+and\s+[A-Z][a-z]+,\s*[A-Z]\.)\s*\((\d{4})\)\.?\s*([^.!?\n]+[.!?])`),

	// "Smith & Jones (2019) Title."
	regexp.MustCompile(`([A-Z][a-z]+(?:\s*&\s*[A-Z][a-z]+)+)\s*\((\d{4})\)\.?\s*([^.!?\n]+[.!?])`),

	// "Smith, A. B. (2019) Title."
	regexp.MustCompile(`([A-Z][a-z]+,\s*[A-Z]\.(?:\s*[A-Z]\.)*)\s*\((\d{4})\)\.?\s*([^.!?\n]+[.!?])`),

	// "Smith et al. (2019) Title." / "Smith (2019) Title."
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+et\s+al\.)?)\s*\((\d{4})\)\.?\s*([^.!?\n]+[.!?])`),

	// Comma form "Smith et al., 2019 Title."
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+et\s+al\.)?),\s*(\d{4})\s+([^.!?\n)][^.!?\n]*[.!?])`),

	// Numbered bibliography entry: "[3] Smith, J. (2019) Title."
	regexp.MustCompile(`(?m)^\[\d+\]\s+([A-Z][^(\n]+?)[.,]?\s*\((\d{4})\)\.?\s*([^.!?\n]+[.!?])`),

	// Bare "Smith et al. (2019)" with no captured title.
	regexp.MustCompile(`([A-Z][a-z]+(?:,\s*[A-Z]\.)?(?:\s+et\s+al\.)?)\s*\((\d{4})\)`),

	// Bare parenthetical "(Smith et al., 2019)" with no captured title.
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+et\s+al\.)?),\s+(\d{4})\)`),
}

// Parse scans text with every pattern family and returns the validated,
// deduplicated reference tuples. Duplicates are detected on the
// case-insensitive (author, year) pair and the first occurrence wins.
// That key deliberately merges same-author same-year citations with
// different titles; distinguishing those would need a product decision
// on disambiguation, so the collapse is kept as documented behavior.
func Parse(text string) []types.ParsedReference {
	seen := make(map[string]bool)
	var refs []types.ParsedReference

	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			ref, ok := buildRef(text, m)
			if !ok {
				continue
			}
			key := strings.ToLower(ref.Author) + "|" + strconv.Itoa(ref.Year)
			if seen[key] {
				continue
			}
			seen[key] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// buildRef validates one submatch and assembles the tuple. Malformed
// matches are discarded; parsing continues with the next match.
func buildRef(text string, m []int) (types.ParsedReference, bool) {
	author := strings.TrimSpace(text[m[2]:m[3]])
	yearStr := text[m[4]:m[5]]

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return types.ParsedReference{}, false
	}
	if len(author) <= 3 || len(yearStr) != 4 || year <= 1900 || year >= 2030 {
		return types.ParsedReference{}, false
	}

	var title string
	if len(m) > 6 && m[6] >= 0 {
		title = strings.TrimSpace(text[m[6]:m[7]])
		if !validTitle(title) {
			return types.ParsedReference{}, false
		}
	}

	return types.ParsedReference{
		Author:  author,
		Year:    year,
		Title:   title,
		Matched: text[m[0]:m[1]],
		Context: extractContext(text, m[0], m[1]),
	}, true
}

// validTitle rejects short captures and stoplisted section words.
func validTitle(title string) bool {
	if len(title) <= 10 {
		return false
	}
	bare := strings.ToLower(strings.TrimRight(title, ".!? "))
	return !titleStoplist[bare]
}

// extractContext returns the whitespace-normalized text surrounding a match.
func extractContext(text string, start, end int) string {
	ctxStart := start - contextWindow
	if ctxStart < 0 {
		ctxStart = 0
	}
	ctxEnd := end + contextWindow
	if ctxEnd > len(text) {
		ctxEnd = len(text)
	}
	return strings.Join(strings.Fields(text[ctxStart:ctxEnd]), " ")
}
