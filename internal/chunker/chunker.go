// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunker splits paper text into overlapping word windows, the
// retrieval granularity for relevance scoring.
package chunker

import "strings"

// Split breaks whitespace-tokenized text into windows of chunkSize words,
// advancing chunkSize-overlap words per step. Windows that trim to empty
// are dropped. Out-of-range arguments fall back to a full step.
func Split(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	step := chunkSize - overlap

	words := strings.Fields(text)
	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + chunkSize
		if end > len(words) {
			end = len(words)
		}
		part := strings.TrimSpace(strings.Join(words[i:end], " "))
		if part != "" {
			chunks = append(chunks, part)
		}
		if end == len(words) {
			break
		}
	}
	return chunks
}
