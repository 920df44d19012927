// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pdiddy/refgraph/pkg/types"
)

// CreateChunks writes a paper's chunks in one transaction, assigning
// sequential indices in slice order. Chunks are immutable once written;
// callers check HasChunks first and skip re-chunking.
func (s *Store) CreateChunks(ctx context.Context, paperID string, contents []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (paper_id, chunk_index, content) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for i, content := range contents {
		if _, err := stmt.ExecContext(ctx, paperID, i, content); err != nil {
			return fmt.Errorf("inserting chunk %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// HasChunks reports whether the paper has been chunked.
func (s *Store) HasChunks(ctx context.Context, paperID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chunks WHERE paper_id = ?`, paperID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("counting chunks: %w", err)
	}
	return n > 0, nil
}

// ChunksByPaper returns the paper's chunks ordered by index.
func (s *Store) ChunksByPaper(ctx context.Context, paperID string) ([]types.Chunk, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, paper_id, chunk_index, content, page, section
		 FROM chunks WHERE paper_id = ? ORDER BY chunk_index`, paperID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var out []types.Chunk
	for rows.Next() {
		var (
			c       types.Chunk
			page    sql.NullInt64
			section sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.PaperID, &c.Index, &c.Content, &page, &section); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		c.Page = int(page.Int64)
		c.Section = section.String
		out = append(out, c)
	}
	return out, rows.Err()
}
