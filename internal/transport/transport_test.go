package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdoc/internal/config"
	"smartdoc/internal/session"
	sessionMocks "smartdoc/internal/session/mocks"
)

func newTestClient(baseURL string, tokens session.Source) *Client {
	return New(
		config.APIConfig{BaseURL: baseURL, TimeoutSec: 5},
		tokens,
		WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
	)
}

func TestDoSuccessJSON(t *testing.T) {
	payload := `{"id":"1","name":"report.pdf","nested":{"a":2}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, payload)
	}))
	defer srv.Close()

	res := newTestClient(srv.URL+"/api", session.Static("")).Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/documents",
	})

	require.True(t, res.Success)
	assert.Equal(t, http.StatusOK, res.Status)
	// Payload passes through unmodified.
	assert.JSONEq(t, payload, string(res.Data))
	assert.Empty(t, res.Error)
}

func TestDoNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL, session.Static("")).Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/reports/r1/download",
	})

	require.True(t, res.Success)
	assert.Nil(t, res.Data)
	assert.Equal(t, []byte("%PDF-1.4 fake"), res.Raw)
}

func TestDoErrorStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantErr     string
	}{
		{
			name:        "server detail preferred",
			status:      401,
			contentType: "application/json",
			body:        `{"detail":"Email hoặc mật khẩu không đúng"}`,
			wantErr:     "Email hoặc mật khẩu không đúng",
		},
		{
			name:        "message when no detail",
			status:      400,
			contentType: "application/json",
			body:        `{"message":"bad request body"}`,
			wantErr:     "bad request body",
		},
		{
			name:        "synthesized for empty JSON",
			status:      500,
			contentType: "application/json",
			body:        `{}`,
			wantErr:     "HTTP 500: Internal Server Error",
		},
		{
			name:        "synthesized for text body",
			status:      502,
			contentType: "text/plain",
			body:        "upstream exploded",
			wantErr:     "HTTP 502: Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			res := newTestClient(srv.URL, session.Static("")).Do(context.Background(), Request{
				Method: http.MethodGet,
				Path:   "/x",
			})

			assert.False(t, res.Success)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.wantErr, res.Error)
		})
	}
}

func TestDoUnreachableHost(t *testing.T) {
	// Port 1 on loopback is closed; the connection is refused immediately.
	res := newTestClient("http://127.0.0.1:1", session.Static("")).Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/documents",
	})

	assert.False(t, res.Success)
	assert.Equal(t, "Lỗi kết nối đến server", res.Error)
}

func TestDoContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res := newTestClient(srv.URL, session.Static("")).Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/slow",
	})

	assert.False(t, res.Success)
	assert.Equal(t, timeoutErr, res.Error)
}

func TestDoBearerInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	tokens := new(sessionMocks.MockStore)
	tokens.On("Token").Return("abc")

	newTestClient(srv.URL, tokens).Do(context.Background(), Request{Method: http.MethodGet, Path: "/me"})
	assert.Equal(t, "Bearer abc", gotAuth)
	tokens.AssertExpectations(t)

	// No stored token, no header.
	newTestClient(srv.URL, session.Static("")).Do(context.Background(), Request{Method: http.MethodGet, Path: "/me"})
	assert.Empty(t, gotAuth)
}

func TestDoLocaleHeader(t *testing.T) {
	var gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := New(
		config.APIConfig{BaseURL: srv.URL, TimeoutSec: 5, Locale: "vi-VN"},
		session.Static(""),
		WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
	)
	c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/settings"})
	assert.Equal(t, "vi-VN", gotLang)
}

func TestDoJSONBodyAndHeaders(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	newTestClient(srv.URL, session.Static("")).Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   map[string]string{"email": "a@b.vn", "password": "secret"},
	})

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "a@b.vn", gotBody["email"])
}

func TestDoMultipart(t *testing.T) {
	var gotContentType, gotFilename, gotContent, gotMeta string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		gotFilename = header.Filename
		gotContent = string(content)
		gotMeta = r.FormValue("metadata")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"d1"}`)
	}))
	defer srv.Close()

	res := newTestClient(srv.URL, session.Static("tok")).Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/documents/upload",
		Multipart: &MultipartBody{
			Filename: "scan.png",
			Content:  strings.NewReader("pixels"),
			Fields:   map[string]string{"metadata": `{"folder":"inbox"}`},
		},
	})

	require.True(t, res.Success)
	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="),
		"JSON default must not override the multipart boundary, got %q", gotContentType)
	assert.Equal(t, "scan.png", gotFilename)
	assert.Equal(t, "pixels", gotContent)
	assert.Equal(t, `{"folder":"inbox"}`, gotMeta)
}

func TestDoQueryParams(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	q := url.Values{}
	q.Set("page", "1")
	q.Set("limit", "10")
	q.Set("search", "hóa đơn")

	newTestClient(srv.URL, session.Static("")).Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/documents",
		Query:  q,
	})

	assert.Equal(t, "1", gotQuery.Get("page"))
	assert.Equal(t, "hóa đơn", gotQuery.Get("search"))
}

func TestDoAbsoluteURLOverride(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"healthy"}`)
	}))
	defer srv.Close()

	// Health check lives at the server root, outside the /api base.
	newTestClient(srv.URL+"/api", session.Static("")).Do(context.Background(), Request{
		Method: http.MethodGet,
		URL:    srv.URL + "/",
	})
	assert.Equal(t, "/", gotPath)
}

func TestDoInvalidJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"truncated":`)
	}))
	defer srv.Close()

	res := newTestClient(srv.URL, session.Static("")).Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/x",
	})

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}
