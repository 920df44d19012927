// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists papers, reference edges, chunks, and conversation
// logs in SQLite. Uniqueness invariants live in the schema: one edge per
// ordered (source, target) pair and one chunk per (paper, index) pair.
// Get-or-create paths use atomic upserts so they stay correct under
// concurrent writers.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/refgraph/pkg/types"
)

const defaultDBFile = "refgraph.db"

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("not found")

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at cfg.DBPath and ensures the schema
// exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = defaultDBFile
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT,
			abstract TEXT,
			year INTEGER,
			doi TEXT,
			journal TEXT,
			file_path TEXT,
			content_text TEXT,
			processed INTEGER NOT NULL DEFAULT 0,
			origin TEXT NOT NULL DEFAULT 'uploaded',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS paper_refs (
			source_id TEXT NOT NULL REFERENCES papers(id),
			target_id TEXT NOT NULL REFERENCES papers(id),
			ref_text TEXT,
			created_at TEXT NOT NULL,
			PRIMARY KEY (source_id, target_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_paper_refs_target ON paper_refs(target_id)`,
		`CREATE TABLE IF NOT EXISTS chunks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			paper_id TEXT NOT NULL REFERENCES papers(id),
			chunk_index INTEGER NOT NULL,
			content TEXT NOT NULL,
			page INTEGER,
			section TEXT,
			UNIQUE (paper_id, chunk_index)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_paper ON chunks(paper_id)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			paper_id TEXT REFERENCES papers(id),
			session_id TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			conversation_id TEXT NOT NULL REFERENCES conversations(id),
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			chunks TEXT,
			sources TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id)`,
		`CREATE TABLE IF NOT EXISTS query_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id TEXT,
			query TEXT NOT NULL,
			response TEXT,
			scores TEXT,
			elapsed_ms INTEGER,
			created_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// like escapes a substring for use inside a LIKE '%...%' pattern.
func like(sub string) string {
	return "%" + sub + "%"
}

// execContext is a small helper returning rows affected.
func (s *Store) execContext(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
