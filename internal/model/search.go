package model

import "time"

// SearchResult is one full-text search hit.
type SearchResult struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	Department string    `json:"department,omitempty"`
	Date       time.Time `json:"date"`
	Type       string    `json:"type"`
	Highlights []string  `json:"highlights"`
	Score      float64   `json:"score,omitempty"`
}

// SearchResponse is the payload of POST /search.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Query   string         `json:"query"`
	Took    float64        `json:"took"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query   string         `json:"query" validate:"required"`
	Filters map[string]any `json:"filters,omitempty"`
	Page    int            `json:"page,omitempty"`
	Limit   int            `json:"limit,omitempty"`
}
