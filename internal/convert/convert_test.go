package convert

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdoc/internal/model"
)

func TestDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    func(t *testing.T, doc model.Document)
		wantErr error
	}{
		{
			name: "full payload",
			input: map[string]any{
				"id":            "d1",
				"name":          "report.pdf",
				"original_name": "Q3 report.pdf",
				"type":          "pdf",
				"size":          "2.4 MB",
				"upload_date":   "2024-01-15T10:30:00Z",
				"author":        "an.nguyen",
				"folder":        "finance",
				"file_path":     "/uploads/d1.pdf",
				"shared":        true,
				"is_processed":  true,
				"is_owner":      false,
				"doc_metadata":  map[string]any{"pages": float64(12)},
			},
			want: func(t *testing.T, doc model.Document) {
				assert.Equal(t, "d1", doc.ID)
				assert.Equal(t, "report.pdf", doc.Name)
				assert.Equal(t, "Q3 report.pdf", doc.OriginalName)
				assert.Equal(t, "2024-01-15T10:30:00Z", doc.UploadDate)
				assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), doc.UploadedAt)
				assert.True(t, doc.Shared)
				assert.True(t, doc.IsProcessed)
				assert.False(t, doc.IsOwner)
				assert.Equal(t, float64(12), doc.Metadata["pages"])
			},
		},
		{
			name:  "empty object gets every default",
			input: map[string]any{},
			want: func(t *testing.T, doc model.Document) {
				assert.Equal(t, "", doc.ID)
				assert.Equal(t, "Unknown Document", doc.Name)
				assert.Equal(t, "Unknown Document", doc.OriginalName)
				assert.Equal(t, "Unknown", doc.Type)
				assert.Equal(t, "0 KB", doc.Size)
				assert.NotEmpty(t, doc.UploadDate)
				assert.False(t, doc.UploadedAt.IsZero())
				assert.False(t, doc.Shared)
				assert.False(t, doc.IsProcessed)
				assert.True(t, doc.IsOwner, "ownership defaults to true when unspecified")
				assert.NotNil(t, doc.Metadata)
			},
		},
		{
			name: "legacy metadata key",
			input: map[string]any{
				"id":       "d2",
				"name":     "a.txt",
				"metadata": map[string]any{"lang": "vi"},
			},
			want: func(t *testing.T, doc model.Document) {
				assert.Equal(t, "vi", doc.Metadata["lang"])
			},
		},
		{name: "nil input", input: nil, wantErr: ErrInvalidDocument},
		{name: "string input", input: "not a document", wantErr: ErrInvalidDocument},
		{name: "number input", input: 42, wantErr: ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Document(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.want(t, doc)
		})
	}
}

func TestDocumentAliasRoundTrip(t *testing.T) {
	doc, err := Document(map[string]any{
		"id":          "d1",
		"name":        "a.pdf",
		"upload_date": "2024-06-01T08:00:00Z",
	})
	require.NoError(t, err)

	// Canonical string and legacy parsed alias represent the same instant.
	parsed, perr := time.Parse(time.RFC3339, doc.UploadDate)
	require.NoError(t, perr)
	assert.True(t, parsed.Equal(doc.UploadedAt))
}

func TestOCRResult(t *testing.T) {
	result := OCRResult(map[string]any{
		"id":             "o1",
		"document_id":    "d1",
		"user_id":        "u1",
		"original_file":  "scan.png",
		"extracted_text": "Hóa đơn số 42",
		"confidence":     96.5,
		"process_date":   "2024-02-01T00:00:00Z",
		"status":         "completed",
		"engine_used":    "tesseract",
		"language":       "vi",
	})

	assert.Equal(t, "o1", result.ID)
	assert.Equal(t, "scan.png", result.OriginalFile)
	assert.Equal(t, result.OriginalFile, result.OriginalFileCompat)
	assert.Equal(t, result.ExtractedText, result.ExtractedTextCompat)
	assert.Equal(t, 96.5, result.Confidence)
	assert.Equal(t, model.OCRCompleted, result.Status)
	assert.Equal(t, "2024-02-01T00:00:00Z", result.ProcessDate)
	assert.Equal(t, 2024, result.ProcessedAt.Year())
}

func TestOCRResultEmptyInput(t *testing.T) {
	// Straight mapping: missing fields become zero values, never a panic.
	result := OCRResult(nil)
	assert.Equal(t, "", result.ID)
	assert.Zero(t, result.Confidence)
}

func TestChatMessage(t *testing.T) {
	t.Run("string timestamp gets parsed", func(t *testing.T) {
		msg := ChatMessage(map[string]any{
			"id":        "m1",
			"type":      "assistant",
			"content":   "Tài liệu gồm 12 trang.",
			"timestamp": "2024-03-01T12:00:00Z",
			"sources": []any{
				map[string]any{"title": "report.pdf", "page": float64(3), "excerpt": "..."},
			},
			"rating":     "up",
			"session_id": "s1",
		})

		assert.Equal(t, model.RoleAssistant, msg.Type)
		assert.Equal(t, 2024, msg.Timestamp.Year())
		require.Len(t, msg.Sources, 1)
		assert.Equal(t, 3, msg.Sources[0].Page)
		assert.Equal(t, model.RatingUp, msg.Rating)
		assert.Equal(t, "s1", msg.SessionID)
	})

	t.Run("already-parsed timestamp passes through", func(t *testing.T) {
		ts := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
		msg := ChatMessage(map[string]any{"id": "m2", "type": "user", "timestamp": ts})
		assert.Equal(t, ts, msg.Timestamp)
	})

	t.Run("unrated message", func(t *testing.T) {
		msg := ChatMessage(map[string]any{"id": "m3", "type": "user", "content": "hi"})
		assert.Equal(t, model.Rating(""), msg.Rating)
		assert.Nil(t, msg.Sources)
	})
}

func TestSlice(t *testing.T) {
	identity := func(v any) (string, error) {
		s, ok := v.(string)
		if !ok {
			return "", errors.New("not a string")
		}
		return s, nil
	}

	t.Run("maps every element", func(t *testing.T) {
		out, err := Slice([]any{"a", "b"}, identity)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, out)
	})

	t.Run("non-list input degrades to empty", func(t *testing.T) {
		for _, input := range []any{nil, map[string]any{}, 42, "nope"} {
			out, err := Slice(input, identity)
			require.NoError(t, err)
			assert.Empty(t, out)
			assert.NotNil(t, out)
		}
	})

	t.Run("one bad element fails the batch", func(t *testing.T) {
		out, err := Slice([]any{"a", 1, "c"}, identity)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "index 1")
		assert.Nil(t, out)
	})
}

func TestDocumentsBatch(t *testing.T) {
	docs, err := Documents([]any{
		map[string]any{"id": "1"},
		map[string]any{"id": "2", "name": "b.pdf"},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Unknown Document", docs[0].Name)
	assert.Equal(t, "b.pdf", docs[1].Name)

	// A non-object element propagates the converter error.
	_, err = Documents([]any{map[string]any{"id": "1"}, "bad"})
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
