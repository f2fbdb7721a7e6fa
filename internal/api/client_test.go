package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdoc/internal/config"
	"smartdoc/internal/convert"
	"smartdoc/internal/model"
	"smartdoc/internal/session"
	"smartdoc/internal/transport"
)

// newClient wires an API client against a test server, with a real file-backed
// credential store under a temp dir.
func newClient(t *testing.T, srvURL string) (*Client, session.Store) {
	t.Helper()
	store, err := session.NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)

	tr := transport.New(
		config.APIConfig{BaseURL: srvURL + "/api", TimeoutSec: 5},
		store,
		transport.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
	)
	return New(tr, store), store
}

func jsonHandler(t *testing.T, wantMethod, wantPath string, status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantMethod, r.Method)
		assert.Equal(t, wantPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestLogin(t *testing.T) {
	t.Run("success persists credentials", func(t *testing.T) {
		srv := httptest.NewServer(jsonHandler(t, http.MethodPost, "/api/auth/login", 200,
			`{"token":"abc","user":{"id":"u1","name":"An","email":"an@x.vn","role":"user"}}`))
		defer srv.Close()

		client, store := newClient(t, srv.URL)
		resp := client.Login(context.Background(), "an@x.vn", "secret123")

		require.True(t, resp.Success)
		assert.Equal(t, "abc", resp.Data.Token)
		assert.Equal(t, "An", resp.Data.User.Name)

		assert.Equal(t, "abc", store.Token())
		user, ok := store.User()
		require.True(t, ok)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("wrong credentials surface the server detail", func(t *testing.T) {
		srv := httptest.NewServer(jsonHandler(t, http.MethodPost, "/api/auth/login", 401,
			`{"detail":"Email hoặc mật khẩu không đúng"}`))
		defer srv.Close()

		client, store := newClient(t, srv.URL)
		resp := client.Login(context.Background(), "an@x.vn", "wrong")

		assert.False(t, resp.Success)
		assert.Equal(t, "Email hoặc mật khẩu không đúng", resp.Error)
		assert.Empty(t, store.Token())
	})

	t.Run("invalid email rejected before the wire", func(t *testing.T) {
		client, _ := newClient(t, "http://127.0.0.1:1")
		resp := client.Login(context.Background(), "not-an-email", "x")
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
	})
}

func TestRegisterValidation(t *testing.T) {
	client, _ := newClient(t, "http://127.0.0.1:1")

	resp := client.Register(context.Background(), RegisterRequest{
		Name: "An", Email: "an@x.vn", Password: "short",
	})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "min")
}

func TestLogoutClearsStore(t *testing.T) {
	client, store := newClient(t, "http://127.0.0.1:1")
	require.NoError(t, store.SetToken("abc"))
	require.NoError(t, store.SetUser(model.User{ID: "u1"}))

	require.NoError(t, client.Logout())
	assert.Empty(t, store.Token())
	_, ok := store.User()
	assert.False(t, ok)
}

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"documents":[{"id":"1"}],"total":1,"page":1,"limit":10,"pages":1}`)
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	resp := client.ListDocuments(context.Background(), ListParams{Page: 1, Limit: 10})

	require.True(t, resp.Success)
	list := *resp.Data
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, 1, list.Pages)
	require.Len(t, list.Documents, 1)
	// The sparse backend item was fully defaulted by the converter.
	doc := list.Documents[0]
	assert.Equal(t, "1", doc.ID)
	assert.Equal(t, "Unknown Document", doc.Name)
	assert.Equal(t, "0 KB", doc.Size)
	assert.True(t, doc.IsOwner)
}

func TestListDocumentsBadItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"documents":[{"id":"1"},"oops"],"total":2}`)
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	resp := client.ListDocuments(context.Background(), ListParams{})

	// One bad element fails the whole batch.
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "index 1")
}

func TestUploadDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "scan.pdf", header.Filename)
		assert.JSONEq(t, `{"folder":"inbox"}`, r.FormValue("metadata"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"d9","name":"scan.pdf","size":"1.2 MB","upload_date":"2024-05-01T00:00:00Z"}`)
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	resp := client.UploadDocument(context.Background(), "scan.pdf",
		strings.NewReader("content"), map[string]any{"folder": "inbox"})

	require.True(t, resp.Success)
	assert.Equal(t, "d9", resp.Data.ID)
	assert.Equal(t, 2024, resp.Data.UploadedAt.Year())
}

func TestOCRResults(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.MethodGet, "/api/ocr/results", 200,
		`[{"id":"o1","original_file":"a.png","extracted_text":"xin chào","confidence":91.2,"status":"completed","process_date":"2024-01-01T00:00:00Z"}]`))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	resp := client.OCRResults(context.Background())

	require.True(t, resp.Success)
	results := *resp.Data
	require.Len(t, results, 1)
	assert.Equal(t, "a.png", results[0].OriginalFile)
	assert.Equal(t, results[0].OriginalFile, results[0].OriginalFileCompat)
	assert.Equal(t, model.OCRCompleted, results[0].Status)
}

func TestAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "Tài liệu nói về gì?", body["question"])
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"m1","type":"assistant","content":"Về hóa đơn.","timestamp":"2024-03-01T12:00:00Z","sources":[{"title":"a.pdf","page":2,"excerpt":"..."}],"session_id":"s1"}`)
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	resp := client.Ask(context.Background(), AskRequest{Question: "Tài liệu nói về gì?", Context: []string{"d1"}})

	require.True(t, resp.Success)
	msg := *resp.Data
	assert.Equal(t, model.RoleAssistant, msg.Type)
	assert.Equal(t, 2024, msg.Timestamp.Year())
	require.Len(t, msg.Sources, 1)
	assert.Equal(t, 2, msg.Sources[0].Page)
}

func TestSession(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.MethodGet, "/api/qa/sessions/s1", 200,
		`{"id":"s1","title":"Hóa đơn Q3","created_at":"2024-02-01T00:00:00Z","updated_at":"2024-02-02T00:00:00Z","messages":[{"id":"m1","type":"user","content":"?","timestamp":"2024-02-01T01:00:00Z"}]}`))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	resp := client.Session(context.Background(), "s1")

	require.True(t, resp.Success)
	detail := *resp.Data
	assert.Equal(t, "Hóa đơn Q3", detail.Title)
	require.Len(t, detail.Messages, 1)
	assert.Equal(t, model.RoleUser, detail.Messages[0].Type)
}

func TestDownloadReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF report"))
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	resp := client.DownloadReport(context.Background(), "r1")

	require.True(t, resp.Success)
	assert.Equal(t, []byte("%PDF report"), *resp.Data)
}

func TestHealthHitsServerRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"SmartDoc API is running","version":"1.0.0"}`)
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	resp := client.Health(context.Background())

	require.True(t, resp.Success)
	assert.Equal(t, "1.0.0", resp.Data.Version)
}

func TestUnreachableHostNeverPanics(t *testing.T) {
	client, _ := newClient(t, "http://127.0.0.1:1")

	ctx := context.Background()
	assert.False(t, client.Me(ctx).Success)
	assert.False(t, client.OCRResults(ctx).Success)
	assert.False(t, client.Reports(ctx).Success)
	assert.False(t, client.DashboardStats(ctx).Success)
	assert.NotEmpty(t, client.Me(ctx).Error)
}

func TestResponseFlowsThroughHandleResponse(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.MethodGet, "/api/settings", 200,
		`{"ai_models":[],"ocr_engines":[],"current_settings":{"default_ai_model":"gpt-4"}}`))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	var got model.SystemSettings
	ok := convert.HandleResponse(client.Settings(context.Background()),
		func(s model.SystemSettings) { got = s },
		nil,
	)
	require.True(t, ok)
	assert.Equal(t, "gpt-4", got.CurrentSettings["default_ai_model"])
}
