package stub

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartdoc/internal/convert"
	"smartdoc/internal/model"
	"smartdoc/internal/stub/middleware"
)

const userLocalKey = "stub_user"

// writeError writes a FastAPI-style error body, matching what the real
// backend produces and what the client's error classification expects.
func writeError(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

// NewApp assembles the stub server around a Store. uploadLimitMB caps request
// bodies; zero keeps fiber's default.
func NewApp(store *Store, reg prometheus.Registerer, uploadLimitMB int) (*fiber.App, error) {
	bodyLimit := fiber.DefaultBodyLimit
	if uploadLimitMB > 0 {
		bodyLimit = uploadLimitMB * 1024 * 1024
	}
	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return writeError(c, status, "internal server error")
		},
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	if reg != nil {
		prom, err := middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			return nil, err
		}
		app.Use(prom.Handler())
		if gatherer, ok := reg.(prometheus.Gatherer); ok {
			app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
		}
	}

	registerRoutes(app, store)
	return app, nil
}

func registerRoutes(app *fiber.App, store *Store) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "SmartDoc API is running", "version": "1.0.0"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "timestamp": time.Now().UTC()})
	})

	api := app.Group("/api")

	api.Post("/auth/login", func(c *fiber.Ctx) error {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}
		user, token, ok := store.Login(body.Email, body.Password)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "Email hoặc mật khẩu không đúng")
		}
		return c.JSON(fiber.Map{"token": token, "user": user})
	})

	api.Post("/auth/register", func(c *fiber.Ctx) error {
		var body struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}
		if len(body.Password) < 6 {
			return writeError(c, fiber.StatusBadRequest, "Mật khẩu phải có ít nhất 6 ký tự")
		}
		user, token, ok := store.Register(body.Name, body.Email, body.Password, body.Role)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "Email đã được sử dụng")
		}
		return c.JSON(fiber.Map{"token": token, "user": user})
	})

	// Everything below requires a bearer token.
	api.Use(func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		token, found := strings.CutPrefix(auth, "Bearer ")
		if !found {
			return writeError(c, fiber.StatusUnauthorized, "Invalid token")
		}
		user, ok := store.Authenticate(token)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "Invalid token")
		}
		c.Locals(userLocalKey, user)
		return c.Next()
	})

	api.Get("/auth/me", func(c *fiber.Ctx) error {
		return c.JSON(currentUser(c))
	})

	registerDocumentRoutes(api, store)
	registerOCRRoutes(api, store)
	registerSearchRoutes(api, store)
	registerQARoutes(api, store)
	registerReportRoutes(api, store)
	registerSettingsRoutes(api, store)
}

func currentUser(c *fiber.Ctx) model.User {
	user, _ := c.Locals(userLocalKey).(model.User)
	return user
}

func registerDocumentRoutes(api fiber.Router, store *Store) {
	api.Get("/documents", func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)
		docs, total := store.ListDocuments(currentUser(c).ID, page, limit,
			c.Query("search"), c.Query("type_filter"))
		pages := 0
		if limit > 0 {
			pages = (total + limit - 1) / limit
		}
		return c.JSON(fiber.Map{
			"documents": docs,
			"total":     total,
			"page":      page,
			"limit":     limit,
			"pages":     pages,
		})
	})

	api.Post("/documents/upload", func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "file is required")
		}

		metadata := map[string]any{}
		if raw := c.FormValue("metadata"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
				return writeError(c, fiber.StatusBadRequest, "invalid metadata")
			}
		}

		user := currentUser(c)
		doc := store.AddDocument(user.ID, model.Document{
			Name:         fh.Filename,
			OriginalName: fh.Filename,
			Type:         docType(fh.Filename),
			Size:         convert.FormatFileSize(fh.Size),
			Author:       user.Name,
			Folder:       convert.SafeGet(any(metadata), "folder", "root"),
			Metadata:     metadata,
		})
		return c.Status(fiber.StatusCreated).JSON(doc)
	})

	api.Delete("/documents/:id", func(c *fiber.Ctx) error {
		if !store.DeleteDocument(currentUser(c).ID, c.Params("id")) {
			return writeError(c, fiber.StatusNotFound, "Không tìm thấy tài liệu")
		}
		return c.JSON(fiber.Map{"message": "Tài liệu đã được xóa thành công"})
	})

	api.Post("/documents/:id/share", func(c *fiber.Ctx) error {
		var body struct {
			UserEmail  string `json:"user_email"`
			Permission string `json:"permission"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserEmail == "" {
			return writeError(c, fiber.StatusBadRequest, "user_email is required")
		}
		if !store.ShareDocument(currentUser(c).ID, c.Params("id")) {
			return writeError(c, fiber.StatusNotFound, "Không tìm thấy tài liệu")
		}
		return c.JSON(fiber.Map{"message": "Tài liệu đã được chia sẻ thành công"})
	})
}

func registerOCRRoutes(api fiber.Router, store *Store) {
	api.Post("/ocr/process", func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "cannot open uploaded file")
		}
		defer f.Close()
		content, _ := io.ReadAll(f)

		user := currentUser(c)
		doc := store.AddDocument(user.ID, model.Document{
			Name:         fh.Filename,
			OriginalName: fh.Filename,
			Type:         docType(fh.Filename),
			Size:         convert.FormatFileSize(fh.Size),
			Author:       user.Name,
		})

		text := extractText(fh.Filename, content)
		result := store.AddOCRResult(model.OCRResult{
			DocumentID:          doc.ID,
			UserID:              user.ID,
			OriginalFile:        fh.Filename,
			OriginalFileCompat:  fh.Filename,
			ExtractedText:       text,
			ExtractedTextCompat: text,
			Confidence:          94.7,
			Status:              model.OCRCompleted,
			EngineUsed:          "tesseract",
			Language:            "vi",
		})
		return c.JSON(result)
	})

	api.Get("/ocr/results", func(c *fiber.Ctx) error {
		return c.JSON(store.OCRResults(currentUser(c).ID))
	})

	api.Get("/ocr/results/:id", func(c *fiber.Ctx) error {
		result, ok := store.OCRResult(currentUser(c).ID, c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusNotFound, "Không tìm thấy kết quả OCR")
		}
		return c.JSON(result)
	})

	api.Put("/ocr/results/:id", func(c *fiber.Ctx) error {
		var update model.OCRUpdate
		if err := c.BodyParser(&update); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}
		result, ok := store.UpdateOCRResult(currentUser(c).ID, c.Params("id"), update)
		if !ok {
			return writeError(c, fiber.StatusNotFound, "Không tìm thấy kết quả OCR")
		}
		return c.JSON(result)
	})
}

func registerSearchRoutes(api fiber.Router, store *Store) {
	api.Post("/search", func(c *fiber.Ctx) error {
		var req model.SearchRequest
		if err := c.BodyParser(&req); err != nil || req.Query == "" {
			return writeError(c, fiber.StatusBadRequest, "query is required")
		}
		start := time.Now()
		results := store.SearchDocuments(currentUser(c).ID, req.Query)
		page := req.Page
		if page <= 0 {
			page = 1
		}
		limit := req.Limit
		if limit <= 0 {
			limit = 10
		}
		return c.JSON(model.SearchResponse{
			Results: results,
			Total:   len(results),
			Page:    page,
			Limit:   limit,
			Query:   req.Query,
			Took:    time.Since(start).Seconds(),
		})
	})

	api.Get("/search/suggestions", func(c *fiber.Ctx) error {
		return c.JSON(store.Suggestions(currentUser(c).ID, c.Query("q")))
	})
}

func registerQARoutes(api fiber.Router, store *Store) {
	api.Post("/qa/ask", func(c *fiber.Ctx) error {
		var req struct {
			Question  string   `json:"question"`
			Context   []string `json:"context"`
			SessionID string   `json:"session_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.Question == "" {
			return writeError(c, fiber.StatusBadRequest, "question is required")
		}

		user := currentUser(c)
		answer, sources := answerFor(store, user.ID, req.Question)
		now := time.Now().UTC()

		question := model.ChatMessage{Type: model.RoleUser, Content: req.Question, Timestamp: now}
		reply := model.ChatMessage{
			Type:      model.RoleAssistant,
			Content:   answer,
			Timestamp: now,
			Sources:   sources,
		}
		sessionID := store.AppendMessages(user.ID, req.SessionID, question, reply)

		reply.SessionID = sessionID
		return c.JSON(fiber.Map{
			"id":         sessionID,
			"type":       reply.Type,
			"content":    reply.Content,
			"timestamp":  reply.Timestamp.Format(time.RFC3339),
			"sources":    reply.Sources,
			"session_id": sessionID,
		})
	})

	api.Get("/qa/history", func(c *fiber.Ctx) error {
		history := []fiber.Map{}
		for _, sess := range store.History(currentUser(c).ID) {
			recent := sess.Messages
			if len(recent) > 4 {
				recent = recent[len(recent)-4:]
			}
			history = append(history, fiber.Map{
				"session_id":      sess.ID,
				"title":           sess.Title,
				"created_at":      sess.CreatedAt.Format(time.RFC3339),
				"updated_at":      sess.UpdatedAt.Format(time.RFC3339),
				"recent_messages": recent,
			})
		}
		return c.JSON(history)
	})

	api.Post("/qa/sessions", func(c *fiber.Ctx) error {
		var body struct {
			Title string `json:"title"`
		}
		if err := c.BodyParser(&body); err != nil || body.Title == "" {
			return writeError(c, fiber.StatusBadRequest, "title is required")
		}
		return c.JSON(store.CreateSession(currentUser(c).ID, body.Title))
	})

	api.Get("/qa/sessions/:id", func(c *fiber.Ctx) error {
		sess, messages, ok := store.Session(currentUser(c).ID, c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusNotFound, "Không tìm thấy session chat")
		}
		return c.JSON(fiber.Map{
			"id":         sess.ID,
			"title":      sess.Title,
			"created_at": sess.CreatedAt.Format(time.RFC3339),
			"updated_at": sess.UpdatedAt.Format(time.RFC3339),
			"messages":   messages,
		})
	})
}

func registerReportRoutes(api fiber.Router, store *Store) {
	api.Post("/reports/generate", func(c *fiber.Ctx) error {
		var req model.ReportRequest
		if err := c.BodyParser(&req); err != nil || req.Title == "" || req.Type == "" {
			return writeError(c, fiber.StatusBadRequest, "title and type are required")
		}
		user := currentUser(c)
		docs, processed, questions, reports := store.Stats(user.ID)
		content := fmt.Sprintf(
			"%s\n\nTài liệu: %d\nĐã xử lý OCR: %d\nCâu hỏi: %d\nBáo cáo: %d\n",
			req.Title, docs, processed, questions, reports,
		)
		return c.Status(fiber.StatusCreated).JSON(store.AddReport(user.ID, req, []byte(content)))
	})

	api.Get("/reports", func(c *fiber.Ctx) error {
		return c.JSON(store.Reports(currentUser(c).ID))
	})

	api.Get("/reports/:id", func(c *fiber.Ctx) error {
		rep, _, ok := store.Report(currentUser(c).ID, c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusNotFound, "Không tìm thấy báo cáo")
		}
		return c.JSON(rep)
	})

	api.Get("/reports/:id/download", func(c *fiber.Ctx) error {
		_, content, ok := store.Report(currentUser(c).ID, c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusNotFound, "Không tìm thấy báo cáo")
		}
		c.Set("Content-Type", "text/plain; charset=utf-8")
		return c.Send(content)
	})
}

func registerSettingsRoutes(api fiber.Router, store *Store) {
	api.Get("/settings", func(c *fiber.Ctx) error {
		return c.JSON(model.SystemSettings{
			AIModels: []model.AIModelConfig{
				{ID: "gpt-4", Name: "GPT-4", Provider: "openai"},
				{ID: "gpt-3.5", Name: "GPT-3.5 Turbo", Provider: "openai"},
			},
			OCREngines: []model.OCREngineConfig{
				{ID: "tesseract", Name: "Tesseract", Languages: []string{"vi", "en"}},
				{ID: "easyocr", Name: "EasyOCR", Languages: []string{"vi", "en"}},
			},
			CurrentSettings: store.Settings(),
		})
	})

	api.Put("/settings", func(c *fiber.Ctx) error {
		update := map[string]any{}
		if err := c.BodyParser(&update); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}
		store.UpdateSettings(update)
		return c.JSON(fiber.Map{"message": "Cài đặt đã được cập nhật", "success": true})
	})

	api.Get("/stats/dashboard", func(c *fiber.Ctx) error {
		user := currentUser(c)
		docs, processed, questions, reports := store.Stats(user.ID)
		return c.JSON(fiber.Map{
			"total_documents":     docs,
			"total_ocr_processed": processed,
			"total_questions":     questions,
			"total_reports":       reports,
			"recent_documents":    store.RecentDocuments(user.ID, 5),
			"recent_questions":    []model.ChatMessage{},
		})
	})
}

func docType(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return "Unknown"
	}
	return ext
}

// extractText fakes digitization: text files pass through, binary formats get
// a canned transcript so the search and Q&A flows have something to chew on.
func extractText(filename string, content []byte) string {
	switch docType(filename) {
	case "txt", "md", "csv":
		return string(content)
	default:
		return fmt.Sprintf("Nội dung trích xuất từ %s (bản mô phỏng).", filename)
	}
}

// answerFor produces a canned grounded answer: it cites the best-matching
// document when one exists.
func answerFor(store *Store, userID, question string) (string, []model.Source) {
	results := store.SearchDocuments(userID, firstKeyword(question))
	if len(results) == 0 {
		return "Không tìm thấy tài liệu liên quan đến câu hỏi của bạn.", nil
	}
	top := results[0]
	answer := fmt.Sprintf("Dựa trên tài liệu \"%s\": %s", top.Title, top.Content)
	return answer, []model.Source{{
		Title:      top.Title,
		Excerpt:    top.Content,
		Relevance:  top.Score,
		DocumentID: top.ID,
	}}
}

// firstKeyword picks the longest word of the question as a crude search term.
func firstKeyword(question string) string {
	best := ""
	for _, w := range strings.Fields(question) {
		w = strings.Trim(w, "?.,!")
		if len(w) > len(best) {
			best = w
		}
	}
	return best
}
