package api

import (
	"context"
	"net/http"
	"time"

	"smartdoc/internal/convert"
	"smartdoc/internal/model"
	"smartdoc/internal/transport"
)

// AskRequest is the body of POST /qa/ask. Context lists document ids to
// ground the answer in; SessionID continues an existing conversation.
type AskRequest struct {
	Question  string   `json:"question" validate:"required"`
	Context   []string `json:"context,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
}

// HistoryEntry is one conversation summary from GET /qa/history.
type HistoryEntry struct {
	SessionID      string              `json:"session_id"`
	Title          string              `json:"title"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	RecentMessages []model.ChatMessage `json:"recent_messages"`
}

// SessionDetail is the payload of GET /qa/sessions/{id}: the session record
// plus its full message list.
type SessionDetail struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Messages  []model.ChatMessage `json:"messages"`
}

// Ask sends a question and returns the assistant's answer, normalized through
// the chat message converter.
func (c *Client) Ask(ctx context.Context, req AskRequest) model.Response[model.ChatMessage] {
	if err := c.validate.Struct(req); err != nil {
		return model.Fail[model.ChatMessage](err.Error())
	}

	raw, errMsg := intoRaw(c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/qa/ask",
		Name:   "qa.ask",
		Body:   req,
	}))
	if errMsg != "" {
		return model.Fail[model.ChatMessage](errMsg)
	}
	return model.Ok(convert.ChatMessage(raw))
}

// History lists recent conversations with their last few messages.
func (c *Client) History(ctx context.Context) model.Response[[]HistoryEntry] {
	return into[[]HistoryEntry](c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/qa/history",
		Name:   "qa.history",
	}))
}

// CreateSession opens a new named conversation.
func (c *Client) CreateSession(ctx context.Context, title string) model.Response[model.ChatSession] {
	return into[model.ChatSession](c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/qa/sessions",
		Name:   "qa.sessions.create",
		Body:   map[string]string{"title": title},
	}))
}

// Session fetches one conversation with its full message list, each message
// normalized through the chat converter.
func (c *Client) Session(ctx context.Context, id string) model.Response[SessionDetail] {
	raw, errMsg := intoRaw(c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/qa/sessions/" + id,
		Name:   "qa.sessions.get",
	}))
	if errMsg != "" {
		return model.Fail[SessionDetail](errMsg)
	}

	messages, err := convert.ChatMessages(raw["messages"])
	if err != nil {
		return model.Fail[SessionDetail](err.Error())
	}
	createdAt, _ := convert.ParseTime(raw["created_at"])
	updatedAt, _ := convert.ParseTime(raw["updated_at"])
	return model.Ok(SessionDetail{
		ID:        convert.SafeGet(raw, "id", ""),
		Title:     convert.SafeGet(raw, "title", ""),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Messages:  messages,
	})
}
