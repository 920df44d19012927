// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns parsed citation tuples into paper records. It
// matches against the local store first, then queries external
// bibliographic backends, and synthesizes a placeholder record when
// nothing matches. Resolution never fails outward: external errors are
// classified and swallowed, and the cascade falls through to synthesis.
package resolve

import (
	"context"
	"fmt"
)

// ErrorKind classifies an external lookup failure so callers can apply
// retry policy to transient failures only.
type ErrorKind int

const (
	// KindTransient covers timeouts, connection errors, and 5xx/429
	// responses. Retrying later may succeed.
	KindTransient ErrorKind = iota

	// KindPermanent covers malformed responses and 4xx rejections.
	// Retrying will not help.
	KindPermanent
)

func (k ErrorKind) String() string {
	if k == KindTransient {
		return "transient"
	}
	return "permanent"
}

// LookupError wraps a backend failure with its classification.
type LookupError struct {
	Backend string
	Kind    ErrorKind
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup (%s): %v", e.Backend, e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Candidate is one bibliographic match returned by an external backend.
type Candidate struct {
	Title    string
	Author   string
	Year     int
	DOI      string
	Journal  string
	Abstract string
}

// Backend queries one external bibliographic source. Implementations
// return results in the service's own ranking; the resolver re-ranks
// with its own similarity function.
type Backend interface {
	Name() string
	Lookup(ctx context.Context, title, author string) ([]Candidate, error)
}
