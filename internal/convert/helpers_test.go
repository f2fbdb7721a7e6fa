package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartdoc/internal/model"
)

func TestSafeGet(t *testing.T) {
	obj := map[string]any{
		"a": map[string]any{"b": 2},
		"s": map[string]any{"name": "x"},
	}

	assert.Equal(t, 2, SafeGet(obj, "a.b", 0))
	assert.Equal(t, "fallback", SafeGet(map[string]any{"a": map[string]any{}}, "a.b.c", "fallback"))
	assert.Equal(t, 5, SafeGet(nil, "a.b", 5))
	assert.Equal(t, "x", SafeGet(obj, "s.name", ""))
	// Present but wrong type falls back too.
	assert.Equal(t, 7, SafeGet(obj, "s.name", 7))
	// Traversal through a non-object segment falls back.
	assert.Equal(t, "d", SafeGet(obj, "a.b.c", "d"))
}

func TestFormatDateSafe(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil input", nil, "N/A"},
		{"empty string", "", "N/A"},
		{"zero time", time.Time{}, "N/A"},
		{"garbage string", "not-a-date", "Invalid Date"},
		{"date only", "2024-01-15", "15/01/2024"},
		{"full timestamp", "2024-01-15T10:30:00Z", "15/01/2024"},
		{"time value", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), "31/12/2023"},
		{"unsupported type", 42, "Invalid Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateSafe(tt.input))
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"already formatted", "2.4 MB", "2.4 MB"},
		{"numeric string", "2048", "2 KB"},
		{"unparseable string", "big", "big"},
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"kilobytes", 1536, "1.5 KB"},
		{"megabytes", int64(5 * 1024 * 1024), "5 MB"},
		{"gigabytes", float64(3)*1024*1024*1024 + 100*1024*1024, "3.1 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFileSize(tt.input))
		})
	}
}

func TestHasData(t *testing.T) {
	assert.True(t, HasData(model.Ok("payload")))
	assert.False(t, HasData(model.Fail[string]("boom")))
	assert.False(t, HasData(model.Response[string]{Success: true})) // success without payload
}

func TestHandleResponse(t *testing.T) {
	t.Run("success branch", func(t *testing.T) {
		var got string
		var failed bool
		ok := HandleResponse(model.Ok("data"),
			func(v string) { got = v },
			func(string) { failed = true },
		)
		assert.True(t, ok)
		assert.Equal(t, "data", got)
		assert.False(t, failed)
	})

	t.Run("error branch", func(t *testing.T) {
		var gotErr string
		ok := HandleResponse(model.Fail[string]("server down"),
			func(string) { t.Fatal("success callback must not fire") },
			func(msg string) { gotErr = msg },
		)
		assert.False(t, ok)
		assert.Equal(t, "server down", gotErr)
	})

	t.Run("missing error string gets a default", func(t *testing.T) {
		var gotErr string
		HandleResponse(model.Response[string]{Success: false},
			func(string) {},
			func(msg string) { gotErr = msg },
		)
		assert.Equal(t, "Unknown error occurred", gotErr)
	})

	t.Run("nil error callback is allowed", func(t *testing.T) {
		ok := HandleResponse(model.Fail[int]("x"), func(int) {}, nil)
		assert.False(t, ok)
	})
}
