package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"smartdoc/internal/convert"
	"smartdoc/internal/model"
	"smartdoc/internal/transport"
)

// ListParams are the query parameters of GET /documents.
type ListParams struct {
	Page       int
	Limit      int
	Search     string
	TypeFilter string
}

// ListDocuments fetches one page of documents. Each item is normalized through
// the document converter so every field carries a usable value.
func (c *Client) ListDocuments(ctx context.Context, p ListParams) model.Response[model.DocumentList] {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.TypeFilter != "" {
		q.Set("type_filter", p.TypeFilter)
	}

	raw, errMsg := intoRaw(c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/documents",
		Name:   "documents.list",
		Query:  q,
	}))
	if errMsg != "" {
		return model.Fail[model.DocumentList](errMsg)
	}

	docs, err := convert.Documents(raw["documents"])
	if err != nil {
		return model.Fail[model.DocumentList](err.Error())
	}
	return model.Ok(model.DocumentList{
		Documents: docs,
		Total:     int(convert.SafeGet(raw, "total", float64(0))),
		Page:      int(convert.SafeGet(raw, "page", float64(0))),
		Limit:     int(convert.SafeGet(raw, "limit", float64(0))),
		Pages:     int(convert.SafeGet(raw, "pages", float64(0))),
	})
}

// UploadDocument streams a file as multipart form data (field name "file").
// Optional metadata is serialized into a sibling form field.
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader, metadata map[string]any) model.Response[model.Document] {
	fields := map[string]string{}
	if len(metadata) > 0 {
		encoded, err := jsonEncode(metadata)
		if err != nil {
			return model.Fail[model.Document]("encode metadata: " + err.Error())
		}
		fields["metadata"] = encoded
	}

	raw, errMsg := intoRaw(c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/documents/upload",
		Name:   "documents.upload",
		Multipart: &transport.MultipartBody{
			Filename: filename,
			Content:  content,
			Fields:   fields,
		},
	}))
	if errMsg != "" {
		return model.Fail[model.Document](errMsg)
	}

	doc, err := convert.Document(any(raw))
	if err != nil {
		return model.Fail[model.Document](err.Error())
	}
	return model.Ok(doc)
}

// DeleteDocument removes a document by id.
func (c *Client) DeleteDocument(ctx context.Context, id string) model.Response[map[string]any] {
	return into[map[string]any](c.transport.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   "/documents/" + id,
		Name:   "documents.delete",
	}))
}

// ShareDocument grants another user access to a document.
func (c *Client) ShareDocument(ctx context.Context, id string, share model.SharePayload) model.Response[map[string]any] {
	if err := c.validate.Struct(share); err != nil {
		return model.Fail[map[string]any](err.Error())
	}
	return into[map[string]any](c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/documents/" + id + "/share",
		Name:   "documents.share",
		Body:   share,
	}))
}
