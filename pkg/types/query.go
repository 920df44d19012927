// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// MessageRole tags a conversation message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Conversation groups the messages exchanged about one paper, or about the
// whole corpus when PaperID is empty (cross-paper mode). Conversations and
// messages are append-only logs.
type Conversation struct {
	ID        string    `json:"id" yaml:"id"`
	PaperID   string    `json:"paper_id,omitempty" yaml:"paper_id,omitempty"`
	SessionID string    `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Message is one exchange in a conversation. Assistant messages carry the
// chunk and source descriptors used to produce the answer.
type Message struct {
	ID             string             `json:"id" yaml:"id"`
	ConversationID string             `json:"conversation_id" yaml:"conversation_id"`
	Role           MessageRole        `json:"role" yaml:"role"`
	Content        string             `json:"content" yaml:"content"`
	Chunks         []ChunkDescriptor  `json:"chunks,omitempty" yaml:"chunks,omitempty"`
	Sources        []SourceDescriptor `json:"sources,omitempty" yaml:"sources,omitempty"`
	CreatedAt      time.Time          `json:"created_at" yaml:"created_at"`
}

// ChunkDescriptor reports one chunk used to answer a query.
type ChunkDescriptor struct {
	ID             int64   `json:"id" yaml:"id"`
	Content        string  `json:"content" yaml:"content"`
	Index          int     `json:"index" yaml:"index"`
	Page           int     `json:"page,omitempty" yaml:"page,omitempty"`
	Section        string  `json:"section,omitempty" yaml:"section,omitempty"`
	PaperTitle     string  `json:"paper_title" yaml:"paper_title"`
	PaperAuthor    string  `json:"paper_author" yaml:"paper_author"`
	RelevanceScore float64 `json:"relevance_score,omitempty" yaml:"relevance_score,omitempty"`
}

// SourceDescriptor reports the provenance of an answer: the chunk it came
// from, a bounded preview, and the similarity score assigned to it.
type SourceDescriptor struct {
	ChunkID         int64   `json:"chunk_id" yaml:"chunk_id"`
	ContentPreview  string  `json:"content_preview" yaml:"content_preview"`
	SimilarityScore float64 `json:"similarity_score" yaml:"similarity_score"`
	PaperTitle      string  `json:"paper_title" yaml:"paper_title"`
	PaperAuthor     string  `json:"paper_author" yaml:"paper_author"`
}

// Answer is the full result of one query: the rendered response text plus
// the chunk and source descriptors reported back to the caller.
type Answer struct {
	Text    string             `json:"text" yaml:"text"`
	Chunks  []ChunkDescriptor  `json:"chunks" yaml:"chunks"`
	Sources []SourceDescriptor `json:"sources" yaml:"sources"`
}
