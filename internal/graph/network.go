// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"fmt"

	"github.com/pdiddy/refgraph/internal/store"
	"github.com/pdiddy/refgraph/pkg/types"
)

// Relationship classifies how a paper in a network relates to the
// paper the network was built from.
type Relationship string

const (
	RelSelf            Relationship = "self"
	RelReferences      Relationship = "references"       // start cites this paper
	RelCitedBy         Relationship = "cited by"         // this paper cites start
	RelSharedReference Relationship = "shared reference" // both cite a common paper
	RelRelated         Relationship = "related"
)

// Network is the neighborhood of a start paper within a hop limit,
// following edges in both directions.
type Network struct {
	StartID string
	Papers  []types.Paper

	// Hops maps paper ID to its distance from the start.
	Hops map[string]int
}

// Walk collects every paper reachable from startID within maxDepth
// hops, following reference edges both forward and backward. The
// traversal is iterative with a visited set seeded with the start, so
// citation cycles terminate.
func Walk(ctx context.Context, s *store.Store, startID string, maxDepth int) (*Network, error) {
	start, err := s.GetPaper(ctx, startID)
	if err != nil {
		return nil, fmt.Errorf("loading start paper: %w", err)
	}

	n := &Network{
		StartID: startID,
		Papers:  []types.Paper{*start},
		Hops:    map[string]int{startID: 0},
	}

	frontier := []string{startID}
	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var next []string
		for _, id := range frontier {
			neighbors, err := neighborIDs(ctx, s, id)
			if err != nil {
				return nil, err
			}
			for _, nid := range neighbors {
				if _, seen := n.Hops[nid]; seen {
					continue
				}
				p, err := s.GetPaper(ctx, nid)
				if err != nil {
					return nil, fmt.Errorf("loading paper %s: %w", nid, err)
				}
				n.Hops[nid] = depth
				n.Papers = append(n.Papers, *p)
				next = append(next, nid)
			}
		}
		frontier = next
	}
	return n, nil
}

// neighborIDs returns the papers adjacent to id across both edge
// directions, outgoing targets first.
func neighborIDs(ctx context.Context, s *store.Store, id string) ([]string, error) {
	out, err := s.OutgoingRefs(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err := s.IncomingRefs(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(out)+len(in))
	for _, r := range out {
		ids = append(ids, r.TargetID)
	}
	for _, r := range in {
		ids = append(ids, r.SourceID)
	}
	return ids, nil
}

// Classify determines the relationship between the start paper and
// another paper in its network. Edge sets are loaded lazily, only when
// a classification is requested.
func Classify(ctx context.Context, s *store.Store, startID, otherID string) (Relationship, error) {
	if startID == otherID {
		return RelSelf, nil
	}

	startOut, err := s.OutgoingRefs(ctx, startID)
	if err != nil {
		return "", err
	}
	for _, r := range startOut {
		if r.TargetID == otherID {
			return RelReferences, nil
		}
	}

	startIn, err := s.IncomingRefs(ctx, startID)
	if err != nil {
		return "", err
	}
	for _, r := range startIn {
		if r.SourceID == otherID {
			return RelCitedBy, nil
		}
	}

	otherOut, err := s.OutgoingRefs(ctx, otherID)
	if err != nil {
		return "", err
	}
	startTargets := make(map[string]bool, len(startOut))
	for _, r := range startOut {
		startTargets[r.TargetID] = true
	}
	for _, r := range otherOut {
		if startTargets[r.TargetID] {
			return RelSharedReference, nil
		}
	}

	return RelRelated, nil
}
