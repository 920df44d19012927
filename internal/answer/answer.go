// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package answer renders ranked chunk content into templated response text.
// Question intent selects one of five fixed templates; the content body is
// built from sentences extracted out of the top-ranked chunks. This layer
// is presentation: the template structure is the externally observed
// contract of the answer format.
package answer

import (
	"fmt"
	"regexp"
	"strings"
)

// Intent classifies what kind of answer a question expects.
type Intent string

const (
	IntentReasons    Intent = "reasons"
	IntentMethods    Intent = "methods"
	IntentFindings   Intent = "findings"
	IntentDefinition Intent = "definition"
	IntentGeneral    Intent = "general"
)

// Intent keyword sets, checked in priority order. First match wins.
var (
	reasonWords     = []string{"reason", "why", "purpose", "benefit", "advantage"}
	methodWords     = []string{"how", "method", "process", "way", "approach"}
	findingWords    = []string{"result", "find", "conclusion", "outcome", "effect"}
	definitionWords = []string{"what", "define", "explain", "meaning"}
)

// Classify determines the question intent. The priority order is
// reasons > methods > findings > definition > general; the categories are
// mutually exclusive.
func Classify(question string) Intent {
	q := strings.ToLower(question)
	switch {
	case containsAny(q, reasonWords):
		return IntentReasons
	case containsAny(q, methodWords):
		return IntentMethods
	case containsAny(q, findingWords):
		return IntentFindings
	case containsAny(q, definitionWords):
		return IntentDefinition
	default:
		return IntentGeneral
	}
}

const (
	minSentenceLen = 20
	maxSentences   = 5
)

var sentenceRe = regexp.MustCompile(`[.!?]+`)

// ExtractContent pulls the sentences out of the candidate chunks that speak
// to the question: at least minSentenceLen characters and containing a
// question keyword (longer than three characters) or one of the hardcoded
// concept pairs. At most maxSentences sentences are kept, joined with ". ".
// When nothing matches, the full chunk text is concatenated as a fallback.
func ExtractContent(chunks []string, question string) string {
	q := strings.ToLower(question)

	var relevant []string
	for _, chunk := range chunks {
		for _, sentence := range sentenceRe.Split(strings.TrimSpace(chunk), -1) {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) < minSentenceLen {
				continue
			}
			if sentenceRelevant(strings.ToLower(sentence), q) {
				relevant = append(relevant, sentence)
			}
			if len(relevant) >= maxSentences {
				break
			}
		}
		if len(relevant) >= maxSentences {
			break
		}
	}

	if len(relevant) == 0 {
		return strings.Join(chunks, " ")
	}
	return strings.Join(relevant, ". ")
}

// sentenceRelevant reports whether a lowercased sentence addresses the
// lowercased question, by keyword overlap or concept-pair match.
func sentenceRelevant(sentence, question string) bool {
	for _, w := range strings.Fields(question) {
		if len(w) > 3 && strings.Contains(sentence, w) {
			return true
		}
	}

	// Concept pairs: a question topic matched by either of two related words.
	if strings.Contains(question, "mobile") &&
		(strings.Contains(sentence, "mobile") || strings.Contains(sentence, "device")) {
		return true
	}
	if strings.Contains(question, "learn") &&
		(strings.Contains(sentence, "learn") || strings.Contains(sentence, "study")) {
		return true
	}
	if strings.Contains(question, "reason") &&
		(strings.Contains(sentence, "because") || strings.Contains(sentence, "reason") ||
			strings.Contains(sentence, "purpose")) {
		return true
	}

	return false
}

// Compose renders the templated answer for a single-paper query.
func Compose(question, content, paperTitle, paperAuthor string) string {
	switch Classify(question) {
	case IntentReasons:
		return fmt.Sprintf(`Based on the paper %q by %s, here are the key reasons identified by the research:

**Main Reasons:**
%s

**Summary:** The research identifies several important reasons, including convenience, accessibility, and enhanced effectiveness.`, paperTitle, paperAuthor, content)

	case IntentMethods:
		return fmt.Sprintf(`Based on the paper %q by %s, here is how the research approaches the topic:

**Methods and Approaches:**
%s

**Summary:** The study describes various methods and approaches used in this context.`, paperTitle, paperAuthor, content)

	case IntentFindings:
		return fmt.Sprintf(`Based on the paper %q by %s, here are the key findings:

**Research Findings:**
%s

**Summary:** The study reveals important findings about the effectiveness and impact of the studied approach.`, paperTitle, paperAuthor, content)

	case IntentDefinition:
		return fmt.Sprintf(`Based on the paper %q by %s, here is what the research explains:

**Key Information:**
%s

**Summary:** The paper provides important insights and explanations about the topic you asked about.`, paperTitle, paperAuthor, content)

	default:
		return fmt.Sprintf(`Based on the paper %q by %s, here is what I found regarding your question:

**Relevant Information:**
%s

**Summary:** The highlighted sections contain information that addresses your question: %q.`, paperTitle, paperAuthor, content, question)
	}
}

// NoContent is the user-visible message for a paper with nothing to
// extract from.
func NoContent(paperTitle, question string) string {
	return fmt.Sprintf("I couldn't find specific information in the paper %q to answer your question: %q. Please try rephrasing your question or ask about a different aspect of the paper.", paperTitle, question)
}

// NoMatchSingle is the message when a single-paper search finds nothing.
const NoMatchSingle = "I couldn't find relevant information in this paper to answer your question."

// NoMatchCross is the message when no paper in the corpus is relevant.
const NoMatchCross = "I couldn't find any papers relevant to your question in the system."

// NoMatchCrossChunks is the message when relevant papers yield no chunks.
const NoMatchCrossChunks = "I couldn't find relevant information across the papers to answer your question."

// NoMatchNetwork formats the message for an empty reference network.
func NoMatchNetwork(startTitle string) string {
	return fmt.Sprintf("I couldn't find any papers in the reference network starting from %q.", startTitle)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
