package api

import (
	"context"
	"net/http"

	"smartdoc/internal/model"
	"smartdoc/internal/transport"
)

// GenerateReport queues report generation; the returned record starts in the
// "generating" state and is polled via Reports/Report.
func (c *Client) GenerateReport(ctx context.Context, req model.ReportRequest) model.Response[model.Report] {
	if err := c.validate.Struct(req); err != nil {
		return model.Fail[model.Report](err.Error())
	}
	return into[model.Report](c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/reports/generate",
		Name:   "reports.generate",
		Body:   req,
	}))
}

// Reports lists the caller's reports.
func (c *Client) Reports(ctx context.Context) model.Response[[]model.Report] {
	return into[[]model.Report](c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/reports",
		Name:   "reports.list",
	}))
}

// Report fetches one report by id.
func (c *Client) Report(ctx context.Context, id string) model.Response[model.Report] {
	return into[model.Report](c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/reports/" + id,
		Name:   "reports.get",
	}))
}

// DownloadReport fetches the report artifact as raw bytes. The body is not
// JSON, so it arrives through the Raw side of the transport result.
func (c *Client) DownloadReport(ctx context.Context, id string) model.Response[[]byte] {
	res := c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/reports/" + id + "/download",
		Name:   "reports.download",
	})
	if !res.Success {
		return model.Fail[[]byte](res.Error)
	}
	if res.Raw != nil {
		return model.Ok(res.Raw)
	}
	// Some servers ship small artifacts as JSON-encoded strings.
	return model.Ok([]byte(res.Data))
}
