package api

import (
	"context"
	"io"
	"net/http"

	"smartdoc/internal/convert"
	"smartdoc/internal/model"
	"smartdoc/internal/transport"
)

// ProcessOCR submits an image or PDF for digitization (multipart field "file").
func (c *Client) ProcessOCR(ctx context.Context, filename string, content io.Reader) model.Response[model.OCRResult] {
	raw, errMsg := intoRaw(c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/ocr/process",
		Name:   "ocr.process",
		Multipart: &transport.MultipartBody{
			Filename: filename,
			Content:  content,
		},
	}))
	if errMsg != "" {
		return model.Fail[model.OCRResult](errMsg)
	}
	return model.Ok(convert.OCRResult(raw))
}

// OCRResults lists the caller's OCR results.
func (c *Client) OCRResults(ctx context.Context) model.Response[[]model.OCRResult] {
	raw, errMsg := intoRawList(c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/ocr/results",
		Name:   "ocr.results",
	}))
	if errMsg != "" {
		return model.Fail[[]model.OCRResult](errMsg)
	}
	results, err := convert.OCRResults(raw)
	if err != nil {
		return model.Fail[[]model.OCRResult](err.Error())
	}
	return model.Ok(results)
}

// OCRResult fetches one OCR result by id.
func (c *Client) OCRResult(ctx context.Context, id string) model.Response[model.OCRResult] {
	raw, errMsg := intoRaw(c.transport.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/ocr/results/" + id,
		Name:   "ocr.result",
	}))
	if errMsg != "" {
		return model.Fail[model.OCRResult](errMsg)
	}
	return model.Ok(convert.OCRResult(raw))
}

// UpdateOCRResult corrects the extracted text or metadata of a result.
func (c *Client) UpdateOCRResult(ctx context.Context, id string, update model.OCRUpdate) model.Response[model.OCRResult] {
	raw, errMsg := intoRaw(c.transport.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   "/ocr/results/" + id,
		Name:   "ocr.update",
		Body:   update,
	}))
	if errMsg != "" {
		return model.Fail[model.OCRResult](errMsg)
	}
	return model.Ok(convert.OCRResult(raw))
}
