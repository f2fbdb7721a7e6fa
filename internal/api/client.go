// Package api is the typed surface over the transport layer: one method per
// backend endpoint, each returning the uniform Response envelope. Payloads
// from endpoints with historically loose shapes (documents, OCR, chat) are run
// through internal/convert before reaching the caller.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"smartdoc/internal/model"
	"smartdoc/internal/session"
	"smartdoc/internal/transport"
)

// Client groups the per-endpoint operations. The credential store is optional;
// when present, login/register persist the token and logout clears it.
type Client struct {
	transport *transport.Client
	store     session.Store
	validate  *validator.Validate
}

// New builds an API client on top of a transport. store may be nil for
// callers that manage credentials themselves.
func New(t *transport.Client, store session.Store) *Client {
	return &Client{
		transport: t,
		store:     store,
		validate:  validator.New(),
	}
}

// rootURL derives the server root from the configured base URL so the health
// check can reach GET / outside the /api prefix.
func (c *Client) rootURL() string {
	return strings.TrimSuffix(c.transport.BaseURL(), "/api")
}

// into decodes a transport result into a typed Response. A decode failure is
// reported through the envelope like any other transport-level failure.
func into[T any](res transport.Result) model.Response[T] {
	if !res.Success {
		return model.Fail[T](res.Error)
	}
	var data T
	if len(res.Data) > 0 {
		if err := json.Unmarshal(res.Data, &data); err != nil {
			return model.Fail[T]("parse response: " + err.Error())
		}
	}
	return model.Response[T]{Success: true, Data: &data}
}

// intoRaw decodes into the loose map shape the converters consume.
func intoRaw(res transport.Result) (map[string]any, string) {
	if !res.Success {
		return nil, res.Error
	}
	var raw map[string]any
	if err := json.Unmarshal(res.Data, &raw); err != nil {
		return nil, "parse response: " + err.Error()
	}
	return raw, ""
}

// intoRawList decodes into the loose list shape the converters consume.
func intoRawList(res transport.Result) (any, string) {
	if !res.Success {
		return nil, res.Error
	}
	var raw any
	if err := json.Unmarshal(res.Data, &raw); err != nil {
		return nil, "parse response: " + err.Error()
	}
	return raw, ""
}

func jsonEncode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Health checks the server root endpoint (GET /, outside the /api base).
func (c *Client) Health(ctx context.Context) model.Response[model.HealthStatus] {
	return into[model.HealthStatus](c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		URL:    c.rootURL() + "/",
		Name:   "health",
	}))
}
