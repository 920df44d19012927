// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "refgraph/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EngineConfig holds retrieval settings. It is passed explicitly to the
// engine at construction; there is no process-wide mutable configuration.
type EngineConfig struct {
	// ChunkSize is the chunk window size in words (default 1000).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// ChunkOverlap is the number of words shared by consecutive chunks
	// (default 200).
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"`

	// TopK is the number of chunks returned per ranking (default 5).
	TopK int `json:"top_k" yaml:"top_k"`

	// MaxPapers caps the paper set for cross-paper search (default 10).
	MaxPapers int `json:"max_papers" yaml:"max_papers"`
}

// WithDefaults fills zero fields with the engine defaults.
func (c EngineConfig) WithDefaults() EngineConfig {
	if c.ChunkSize <= 0 {
		c.ChunkSize = 1000
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		c.ChunkOverlap = 200
	}
	if c.TopK <= 0 {
		c.TopK = 5
	}
	if c.MaxPapers <= 0 {
		c.MaxPapers = 10
	}
	return c
}

// GraphConfig holds settings for reference extraction and traversal.
type GraphConfig struct {
	// MaxDepth bounds recursive reference expansion (default 3).
	MaxDepth int `json:"max_depth" yaml:"max_depth"`
}

// LookupConfig holds settings for external bibliographic lookups.
type LookupConfig struct {
	HTTPConfig `yaml:",inline"`

	// EnableCrossref controls whether the CrossRef backend is queried.
	EnableCrossref bool `json:"enable_crossref" yaml:"enable_crossref"`

	// EnableArxiv controls whether the arXiv backend is queried.
	EnableArxiv bool `json:"enable_arxiv" yaml:"enable_arxiv"`

	// MailTo is the contact address sent to CrossRef for polite pool access.
	MailTo string `json:"mailto,omitempty" yaml:"mailto,omitempty"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	// DBPath is the SQLite database file (default "refgraph.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// FetchConfig holds settings for online full-text discovery.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDir is where fetched documents are stored.
	DownloadDir string `json:"download_dir" yaml:"download_dir"`
}

// Config groups all component configurations.
type Config struct {
	Engine EngineConfig `json:"engine" yaml:"engine"`
	Graph  GraphConfig  `json:"graph" yaml:"graph"`
	Lookup LookupConfig `json:"lookup" yaml:"lookup"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
}
