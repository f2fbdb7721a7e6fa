package model

import "time"

// MessageRole identifies who authored a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Rating is user feedback on an assistant answer. Empty means unrated.
type Rating string

const (
	RatingUp   Rating = "up"
	RatingDown Rating = "down"
)

// Source is a citation backing an assistant answer.
type Source struct {
	Title      string  `json:"title"`
	Page       int     `json:"page,omitempty"`
	Excerpt    string  `json:"excerpt"`
	Relevance  float64 `json:"relevance,omitempty"`
	DocumentID string  `json:"document_id,omitempty"`
}

// ChatMessage is one turn of the Q&A conversation.
type ChatMessage struct {
	ID        string      `json:"id"`
	Type      MessageRole `json:"type"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Sources   []Source    `json:"sources,omitempty"`
	Rating    Rating      `json:"rating,omitempty"`
	SessionID string      `json:"session_id,omitempty"`
}

// ChatSession groups messages of one Q&A conversation.
type ChatSession struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}
