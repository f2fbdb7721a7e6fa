package api

import (
	"context"
	"net/http"
	"net/url"

	"smartdoc/internal/model"
	"smartdoc/internal/transport"
)

// Search runs a full-text query over the caller's documents.
func (c *Client) Search(ctx context.Context, req model.SearchRequest) model.Response[model.SearchResponse] {
	if err := c.validate.Struct(req); err != nil {
		return model.Fail[model.SearchResponse](err.Error())
	}
	return into[model.SearchResponse](c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/search",
		Name:   "search",
		Body:   req,
	}))
}

// Suggestions fetches query completions for a partial search term.
func (c *Client) Suggestions(ctx context.Context, q string) model.Response[[]string] {
	query := url.Values{}
	query.Set("q", q)
	return into[[]string](c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/search/suggestions",
		Name:   "search.suggestions",
		Query:  query,
	}))
}
