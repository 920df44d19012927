// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the refgraph pipeline:
// papers, reference edges, chunks, conversation logs, and the configuration
// structs passed to each component at construction.
package types

import "time"

// PaperOrigin records how a paper entered the system. Synthesized papers
// are created from citation metadata when no uploaded document exists and
// must stay distinguishable from genuinely uploaded ones.
type PaperOrigin string

const (
	OriginUploaded    PaperOrigin = "uploaded"
	OriginSynthesized PaperOrigin = "synthesized"
	OriginExternal    PaperOrigin = "external"
)

// Paper holds metadata and extracted text for one academic paper.
type Paper struct {
	// ID is an opaque unique identifier (UUID string).
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Author is the author string as captured at ingestion or parsing time.
	Author string `json:"author" yaml:"author"`

	// Abstract is the paper abstract, when known.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Year is the publication year, zero when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// DOI is the external identifier, when known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Journal is the venue reported by a bibliographic source.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// FilePath is the local path of the uploaded or fetched document.
	// Empty for papers that exist only as citation metadata.
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`

	// ContentText is the raw extracted text. Empty until processed.
	ContentText string `json:"content_text,omitempty" yaml:"content_text,omitempty"`

	// Processed reports whether text extraction and chunking completed.
	// A processed paper has non-empty ContentText, or is a synthesized
	// placeholder whose ContentText is generated descriptive text.
	Processed bool `json:"processed" yaml:"processed"`

	// Origin records how the record was created.
	Origin PaperOrigin `json:"origin" yaml:"origin"`

	// CreatedAt is the record creation time.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Reference is a directed edge meaning "source paper cites target paper".
// At most one edge exists per ordered (SourceID, TargetID) pair.
type Reference struct {
	// SourceID is the citing paper.
	SourceID string `json:"source_id" yaml:"source_id"`

	// TargetID is the cited paper.
	TargetID string `json:"target_id" yaml:"target_id"`

	// Text is the literal citation text that produced the edge.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// CreatedAt is the edge creation time.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ParsedReference is one citation tuple extracted from paper text before
// resolution. Matched is the literal regex match; Context is the
// whitespace-normalized window of surrounding text.
type ParsedReference struct {
	Author  string `json:"author" yaml:"author"`
	Year    int    `json:"year" yaml:"year"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Matched string `json:"matched" yaml:"matched"`
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// Chunk is a fixed-size overlapping word window of a paper's text, the
// retrieval unit. Index is zero-based and unique within the paper.
type Chunk struct {
	ID      int64  `json:"id" yaml:"id"`
	PaperID string `json:"paper_id" yaml:"paper_id"`
	Index   int    `json:"index" yaml:"index"`
	Content string `json:"content" yaml:"content"`

	// Page and Section are optional provenance fields.
	Page    int    `json:"page,omitempty" yaml:"page,omitempty"`
	Section string `json:"section,omitempty" yaml:"section,omitempty"`
}
