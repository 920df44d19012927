// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/refgraph/pkg/types"
)

// CreateReference inserts the directed edge source→target if it does not
// already exist. The insert is an atomic upsert; created reports whether a
// new edge was written, so re-running extraction on an already-processed
// paper yields a created count of zero.
func (s *Store) CreateReference(ctx context.Context, sourceID, targetID, refText string) (created bool, err error) {
	n, err := s.execContext(ctx,
		`INSERT INTO paper_refs (source_id, target_id, ref_text, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (source_id, target_id) DO NOTHING`,
		sourceID, targetID, refText, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return false, fmt.Errorf("inserting reference edge: %w", err)
	}
	return n > 0, nil
}

// OutgoingRefs returns the edges citing out of the given paper.
func (s *Store) OutgoingRefs(ctx context.Context, paperID string) ([]types.Reference, error) {
	return s.refsWhere(ctx, "source_id", paperID)
}

// IncomingRefs returns the edges citing into the given paper.
func (s *Store) IncomingRefs(ctx context.Context, paperID string) ([]types.Reference, error) {
	return s.refsWhere(ctx, "target_id", paperID)
}

// HasOutgoing reports whether the paper already has any outgoing edges.
// Recursive extraction uses this to treat a paper as already processed.
func (s *Store) HasOutgoing(ctx context.Context, paperID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM paper_refs WHERE source_id = ?`, paperID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("counting outgoing edges: %w", err)
	}
	return n > 0, nil
}

func (s *Store) refsWhere(ctx context.Context, column, paperID string) ([]types.Reference, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_id, target_id, ref_text, created_at
		 FROM paper_refs WHERE `+column+` = ? ORDER BY created_at`, paperID)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var out []types.Reference
	for rows.Next() {
		var (
			r         types.Reference
			createdAt string
		)
		if err := rows.Scan(&r.SourceID, &r.TargetID, &r.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			r.CreatedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
