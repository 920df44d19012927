// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/refgraph/pkg/types"
)

// GetOrCreateConversation returns the conversation for (paperID, sessionID),
// creating it when absent. paperID is empty for cross-paper conversations.
func (s *Store) GetOrCreateConversation(ctx context.Context, paperID, sessionID string) (*types.Conversation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, paper_id, session_id, created_at FROM conversations
		 WHERE COALESCE(paper_id, '') = ? AND COALESCE(session_id, '') = ?
		 ORDER BY created_at DESC LIMIT 1`, paperID, sessionID)

	conv, err := scanConversation(row)
	if err == nil {
		return conv, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	conv = &types.Conversation{
		ID:        uuid.NewString(),
		PaperID:   paperID,
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, paper_id, session_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		conv.ID, nullable(conv.PaperID), nullable(conv.SessionID),
		conv.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("inserting conversation: %w", err)
	}
	return conv, nil
}

// AppendMessage writes one message to the conversation log. Chunk and
// source descriptors are stored as JSON alongside the text. Messages are
// append-only; nothing updates or deletes them.
func (s *Store) AppendMessage(ctx context.Context, m *types.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	chunksJSON, _ := json.Marshal(m.Chunks)
	sourcesJSON, _ := json.Marshal(m.Sources)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, conversation_id, role, content, chunks, sources, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ConversationID, string(m.Role), m.Content,
		string(chunksJSON), string(sourcesJSON),
		m.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

// Messages returns a conversation's messages oldest first.
func (s *Store) Messages(ctx context.Context, conversationID string) ([]types.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, conversation_id, role, content, chunks, sources, created_at
		 FROM messages WHERE conversation_id = ? ORDER BY created_at`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var out []types.Message
	for rows.Next() {
		var (
			m           types.Message
			role        string
			chunksJSON  sql.NullString
			sourcesJSON sql.NullString
			createdAt   string
		)
		if err := rows.Scan(&m.ID, &m.ConversationID, &role, &m.Content,
			&chunksJSON, &sourcesJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.Role = types.MessageRole(role)
		if chunksJSON.Valid {
			json.Unmarshal([]byte(chunksJSON.String), &m.Chunks)
		}
		if sourcesJSON.Valid {
			json.Unmarshal([]byte(sourcesJSON.String), &m.Sources)
		}
		if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			m.CreatedAt = t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// LogQuery appends one row to the query log with score metadata.
func (s *Store) LogQuery(ctx context.Context, conversationID, query, response string, scores []float64, elapsed time.Duration) error {
	scoresJSON, _ := json.Marshal(scores)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO query_log (conversation_id, query, response, scores, elapsed_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		nullable(conversationID), query, response, string(scoresJSON),
		elapsed.Milliseconds(), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting query log row: %w", err)
	}
	return nil
}

func scanConversation(row rowScanner) (*types.Conversation, error) {
	var (
		c         types.Conversation
		paperID   sql.NullString
		sessionID sql.NullString
		createdAt string
	)
	err := row.Scan(&c.ID, &paperID, &sessionID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning conversation: %w", err)
	}
	c.PaperID = paperID.String
	c.SessionID = sessionID.String
	if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
		c.CreatedAt = t
	}
	return &c, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
