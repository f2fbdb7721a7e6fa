package api

import (
	"context"
	"net/http"

	"smartdoc/internal/model"
	"smartdoc/internal/transport"
)

// Settings fetches the system settings bundle.
func (c *Client) Settings(ctx context.Context) model.Response[model.SystemSettings] {
	return into[model.SystemSettings](c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/settings",
		Name:   "settings.get",
	}))
}

// UpdateSettings applies a partial settings update.
func (c *Client) UpdateSettings(ctx context.Context, update model.SettingsUpdate) model.Response[map[string]any] {
	return into[map[string]any](c.transport.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   "/settings",
		Name:   "settings.update",
		Body:   update,
	}))
}

// DashboardStats fetches the aggregate counters and recent activity shown on
// the dashboard landing page.
func (c *Client) DashboardStats(ctx context.Context) model.Response[model.DashboardStats] {
	return into[model.DashboardStats](c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/stats/dashboard",
		Name:   "stats.dashboard",
	}))
}
