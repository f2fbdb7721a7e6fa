// Package convert adapts raw backend payloads into the stable record shapes in
// internal/model. The backend is loosely typed at this boundary: fields may be
// absent, timestamps arrive as ISO-8601 strings, and older server builds used
// different names for the same value. Converters absorb all of that so callers
// downstream never deal with partially-shaped data.
package convert

import (
	"errors"
	"fmt"
	"log"
	"time"

	"smartdoc/internal/model"
)

// ErrInvalidDocument is returned when a document payload is not an object at all.
// This is the one converter that rejects malformed input outright; a document
// with missing fields is still usable after defaulting, a non-object is not.
var ErrInvalidDocument = errors.New("invalid document data")

// Document converts a raw backend document payload into a model.Document,
// filling defaults for every absent field. It fails only when v is not an
// object (nil, a string, a number).
func Document(v any) (model.Document, error) {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return model.Document{}, ErrInvalidDocument
	}

	name := stringOr(m, "name", "Unknown Document")
	uploadDate := stringOr(m, "upload_date", "")
	uploadedAt, parsed := ParseTime(firstPresent(m, "upload_date", "uploadDate"))
	if !parsed {
		uploadedAt = time.Now()
	}
	if uploadDate == "" {
		uploadDate = uploadedAt.UTC().Format(time.RFC3339)
	}

	return model.Document{
		ID:           stringOr(m, "id", ""),
		Name:         name,
		OriginalName: stringOr(m, "original_name", name),
		Type:         stringOr(m, "type", "Unknown"),
		Size:         stringOr(m, "size", "0 KB"),
		UploadDate:   uploadDate,
		UploadedAt:   uploadedAt,
		Author:       stringOr(m, "author", ""),
		Folder:       stringOr(m, "folder", ""),
		FilePath:     stringOr(m, "file_path", ""),
		Shared:       boolOr(m, "shared", false),
		IsProcessed:  boolOr(m, "is_processed", false),
		IsOwner:      boolOr(m, "is_owner", true), // absent means owned
		Metadata:     metadataOr(m, "doc_metadata", "metadata"),
	}, nil
}

// OCRResult converts a raw backend OCR payload. Unlike Document it performs a
// straight field mapping with no validation: the /ocr endpoints always return
// object-shaped items, so missing fields simply map to zero values.
func OCRResult(m map[string]any) model.OCRResult {
	originalFile := stringOr(m, "original_file", "")
	extractedText := stringOr(m, "extracted_text", "")
	processDate := stringOr(m, "process_date", "")
	processedAt, _ := ParseTime(m["process_date"])

	return model.OCRResult{
		ID:                  stringOr(m, "id", ""),
		DocumentID:          stringOr(m, "document_id", ""),
		UserID:              stringOr(m, "user_id", ""),
		OriginalFile:        originalFile,
		OriginalFileCompat:  originalFile,
		ExtractedText:       extractedText,
		ExtractedTextCompat: extractedText,
		Confidence:          floatOr(m, "confidence", 0),
		ProcessDate:         processDate,
		ProcessedAt:         processedAt,
		Status:              model.OCRStatus(stringOr(m, "status", "")),
		EngineUsed:          stringOr(m, "engine_used", ""),
		Language:            stringOr(m, "language", ""),
		Metadata:            metadataOr(m, "ocr_metadata", "metadata"),
	}
}

// ChatMessage converts a raw backend chat message. The timestamp is parsed
// only when it arrives as a string; an already-parsed time.Time passes through.
func ChatMessage(m map[string]any) model.ChatMessage {
	var ts time.Time
	switch v := m["timestamp"].(type) {
	case string:
		ts, _ = ParseTime(v)
	case time.Time:
		ts = v
	}

	return model.ChatMessage{
		ID:        stringOr(m, "id", ""),
		Type:      model.MessageRole(stringOr(m, "type", "")),
		Content:   stringOr(m, "content", ""),
		Timestamp: ts,
		Sources:   sources(m["sources"]),
		Rating:    model.Rating(stringOr(m, "rating", "")),
		SessionID: stringOr(m, "session_id", ""),
	}
}

// Slice maps a raw value that should be a list through a per-item converter.
// Non-list input degrades to an empty slice with a logged warning. A failing
// element fails the whole batch; there is no partial-success mode.
func Slice[T any](v any, fn func(any) (T, error)) ([]T, error) {
	items, ok := v.([]any)
	if !ok {
		log.Printf("convert: expected array but got %T", v)
		return []T{}, nil
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		converted, err := fn(item)
		if err != nil {
			return nil, fmt.Errorf("convert item at index %d: %w", i, err)
		}
		out = append(out, converted)
	}
	return out, nil
}

// Documents converts a raw list of document payloads.
func Documents(v any) ([]model.Document, error) {
	return Slice(v, Document)
}

// OCRResults converts a raw list of OCR payloads.
func OCRResults(v any) ([]model.OCRResult, error) {
	return Slice(v, func(item any) (model.OCRResult, error) {
		m, _ := item.(map[string]any)
		return OCRResult(m), nil
	})
}

// ChatMessages converts a raw list of chat message payloads.
func ChatMessages(v any) ([]model.ChatMessage, error) {
	return Slice(v, func(item any) (model.ChatMessage, error) {
		m, _ := item.(map[string]any)
		return ChatMessage(m), nil
	})
}

func sources(v any) []model.Source {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]model.Source, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		out = append(out, model.Source{
			Title:      stringOr(m, "title", ""),
			Page:       int(floatOr(m, "page", 0)),
			Excerpt:    stringOr(m, "excerpt", ""),
			Relevance:  floatOr(m, "relevance", 0),
			DocumentID: stringOr(m, "document_id", ""),
		})
	}
	return out
}

// firstPresent returns the first non-nil value among the given keys.
func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func metadataOr(m map[string]any, keys ...string) map[string]any {
	for _, k := range keys {
		if md, ok := m[k].(map[string]any); ok {
			return md
		}
	}
	return map[string]any{}
}

func stringOr(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

func boolOr(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

func floatOr(m map[string]any, key string, def float64) float64 {
	switch n := m[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

// timeLayouts are tried in order when parsing backend timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses a backend timestamp that may be a string in any of the
// known layouts or an already-parsed time.Time.
func ParseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}
