package api

import (
	"context"
	"net/http"

	"smartdoc/internal/model"
	"smartdoc/internal/transport"
)

// LoginRequest is validated client-side before hitting the wire, mirroring
// the server's schema validation.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the fields of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin user manager"`
}

// Login authenticates and, when a credential store is attached, persists the
// returned token and user record for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) model.Response[model.AuthPayload] {
	req := LoginRequest{Email: email, Password: password}
	if err := c.validate.Struct(req); err != nil {
		return model.Fail[model.AuthPayload](err.Error())
	}

	resp := into[model.AuthPayload](c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Name:   "auth.login",
		Body:   req,
	}))
	c.persist(resp)
	return resp
}

// Register creates an account and signs in, persisting credentials like Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) model.Response[model.AuthPayload] {
	if err := c.validate.Struct(req); err != nil {
		return model.Fail[model.AuthPayload](err.Error())
	}

	resp := into[model.AuthPayload](c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Name:   "auth.register",
		Body:   req,
	}))
	c.persist(resp)
	return resp
}

// Me fetches the current account.
func (c *Client) Me(ctx context.Context) model.Response[model.User] {
	return into[model.User](c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/auth/me",
		Name:   "auth.me",
	}))
}

// Logout clears the stored credentials. There is no server-side session to
// tear down; tokens simply expire.
func (c *Client) Logout() error {
	if c.store == nil {
		return nil
	}
	return c.store.Clear()
}

func (c *Client) persist(resp model.Response[model.AuthPayload]) {
	if c.store == nil || !resp.Success || resp.Data == nil {
		return
	}
	if err := c.store.SetToken(resp.Data.Token); err != nil {
		return
	}
	_ = c.store.SetUser(resp.Data.User)
}
