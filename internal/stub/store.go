// Package stub is an in-memory stand-in for the SmartDoc backend, close
// enough to the real wire contract to develop and demo the client against.
// Nothing here persists past process exit.
package stub

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartdoc/internal/model"
)

type account struct {
	User     model.User
	Password string
}

type document struct {
	model.Document
	OwnerID string
	Text    string // extracted text, searchable once OCR ran
}

type chatSession struct {
	model.ChatSession
	OwnerID  string
	Messages []model.ChatMessage
}

type report struct {
	model.Report
	Content []byte
}

// Store holds all stub state. Safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	accounts  map[string]*account // by user id
	tokens    map[string]string   // token -> user id
	documents map[string]*document
	ocr       map[string]*model.OCRResult
	sessions  map[string]*chatSession
	reports   map[string]*report
	settings  map[string]any
}

func NewStore() *Store {
	return &Store{
		accounts:  map[string]*account{},
		tokens:    map[string]string{},
		documents: map[string]*document{},
		ocr:       map[string]*model.OCRResult{},
		sessions:  map[string]*chatSession{},
		reports:   map[string]*report{},
		settings: map[string]any{
			"default_ai_model":   "gpt-3.5",
			"default_ocr_engine": "tesseract",
			"auto_backup":        true,
			"backup_frequency":   "daily",
		},
	}
}

// Seed registers the demo account used by local development.
func (s *Store) Seed() {
	s.Register("Demo User", "demo@smartdoc.vn", "smartdoc", "admin")
}

// Register creates an account, or returns false when the email is taken.
func (s *Store) Register(name, email, password, role string) (model.User, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.User.Email == email {
			return model.User{}, "", false
		}
	}
	if role == "" {
		role = "user"
	}
	user := model.User{ID: uuid.NewString(), Name: name, Email: email, Role: role}
	s.accounts[user.ID] = &account{User: user, Password: password}
	token := s.issueToken(user.ID)
	return user, token, true
}

// Login checks credentials and issues a token.
func (s *Store) Login(email, password string) (model.User, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		// Plaintext comparison: the stub holds throwaway dev accounts only.
		if acc.User.Email == email && acc.Password == password {
			return acc.User, s.issueToken(acc.User.ID), true
		}
	}
	return model.User{}, "", false
}

// issueToken mints an opaque token. Callers must hold the lock.
func (s *Store) issueToken(userID string) string {
	token := uuid.NewString()
	s.tokens[token] = userID
	return token
}

// Authenticate resolves a bearer token to its user.
func (s *Store) Authenticate(token string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return model.User{}, false
	}
	acc, ok := s.accounts[userID]
	if !ok {
		return model.User{}, false
	}
	return acc.User, true
}

// AddDocument stores an uploaded document owned by userID.
func (s *Store) AddDocument(userID string, doc model.Document) model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.ID = uuid.NewString()
	now := time.Now().UTC()
	doc.UploadDate = now.Format(time.RFC3339)
	doc.UploadedAt = now
	doc.IsOwner = true
	s.documents[doc.ID] = &document{Document: doc, OwnerID: userID}
	return doc
}

// ListDocuments returns one page of the user's documents, newest first.
func (s *Store) ListDocuments(userID string, page, limit int, search, typeFilter string) ([]model.Document, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []model.Document
	for _, doc := range s.documents {
		if doc.OwnerID != userID && !doc.Shared {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(doc.Name), strings.ToLower(search)) {
			continue
		}
		if typeFilter != "" && doc.Type != typeFilter {
			continue
		}
		d := doc.Document
		d.IsOwner = doc.OwnerID == userID
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UploadedAt.After(all[j].UploadedAt) })

	total := len(all)
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= total {
		return []model.Document{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total
}

// DeleteDocument removes the user's document; false when absent or not owned.
func (s *Store) DeleteDocument(userID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok || doc.OwnerID != userID {
		return false
	}
	delete(s.documents, id)
	return true
}

// ShareDocument marks a document shared; false when absent or not owned.
func (s *Store) ShareDocument(userID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok || doc.OwnerID != userID {
		return false
	}
	doc.Shared = true
	return true
}

// AddOCRResult stores a digitization result and marks the document processed.
func (s *Store) AddOCRResult(result model.OCRResult) model.OCRResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	result.ID = uuid.NewString()
	now := time.Now().UTC()
	result.ProcessDate = now.Format(time.RFC3339)
	result.ProcessedAt = now
	s.ocr[result.ID] = &result
	if doc, ok := s.documents[result.DocumentID]; ok {
		doc.IsProcessed = true
		doc.Text = result.ExtractedText
	}
	return result
}

// OCRResults lists the user's OCR results, newest first.
func (s *Store) OCRResults(userID string) []model.OCRResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.OCRResult
	for _, r := range s.ocr {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProcessedAt.After(out[j].ProcessedAt) })
	return out
}

// OCRResult fetches one result owned by the user.
func (s *Store) OCRResult(userID, id string) (model.OCRResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.ocr[id]
	if !ok || r.UserID != userID {
		return model.OCRResult{}, false
	}
	return *r, true
}

// UpdateOCRResult applies a correction to one result.
func (s *Store) UpdateOCRResult(userID, id string, update model.OCRUpdate) (model.OCRResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.ocr[id]
	if !ok || r.UserID != userID {
		return model.OCRResult{}, false
	}
	if update.ExtractedText != "" {
		r.ExtractedText = update.ExtractedText
		r.ExtractedTextCompat = update.ExtractedText
	}
	if update.Confidence != 0 {
		r.Confidence = update.Confidence
	}
	if update.Metadata != nil {
		r.Metadata = update.Metadata
	}
	return *r, true
}

// SearchDocuments substring-matches the user's documents and extracted text.
func (s *Store) SearchDocuments(userID, query string) []model.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(query)
	var out []model.SearchResult
	for _, doc := range s.documents {
		if doc.OwnerID != userID && !doc.Shared {
			continue
		}
		haystack := strings.ToLower(doc.Name + " " + doc.Text)
		if !strings.Contains(haystack, needle) {
			continue
		}
		out = append(out, model.SearchResult{
			ID:         doc.ID,
			Title:      doc.Name,
			Content:    snippet(doc.Text, 160),
			Author:     doc.Author,
			Date:       doc.UploadedAt,
			Type:       doc.Type,
			Highlights: []string{query},
			Score:      1.0,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// Suggestions returns document names starting with the prefix.
func (s *Store) Suggestions(userID, prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(prefix) < 2 {
		return []string{}
	}
	needle := strings.ToLower(prefix)
	out := []string{}
	for _, doc := range s.documents {
		if doc.OwnerID != userID {
			continue
		}
		if strings.HasPrefix(strings.ToLower(doc.Name), needle) {
			out = append(out, doc.Name)
		}
	}
	sort.Strings(out)
	return out
}

// CreateSession opens a chat session for the user.
func (s *Store) CreateSession(userID, title string) model.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createSessionLocked(userID, title)
}

func (s *Store) createSessionLocked(userID, title string) model.ChatSession {
	now := time.Now().UTC()
	sess := model.ChatSession{ID: uuid.NewString(), Title: title, CreatedAt: now, UpdatedAt: now}
	s.sessions[sess.ID] = &chatSession{ChatSession: sess, OwnerID: userID}
	return sess
}

// AppendMessages adds messages to a session (creating one when id is empty)
// and returns the session id.
func (s *Store) AppendMessages(userID, sessionID string, msgs ...model.ChatMessage) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		title := "Cuộc trò chuyện mới"
		if len(msgs) > 0 {
			title = snippet(msgs[0].Content, 50)
		}
		created := s.createSessionLocked(userID, title)
		sess = s.sessions[created.ID]
	}
	for i := range msgs {
		msgs[i].SessionID = sess.ID
	}
	sess.Messages = append(sess.Messages, msgs...)
	sess.UpdatedAt = time.Now().UTC()
	sess.MessageCount = len(sess.Messages)
	return sess.ID
}

// Session fetches a user's session with messages.
func (s *Store) Session(userID, id string) (model.ChatSession, []model.ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.OwnerID != userID {
		return model.ChatSession{}, nil, false
	}
	return sess.ChatSession, append([]model.ChatMessage{}, sess.Messages...), true
}

// History lists the user's sessions, most recently updated first.
func (s *Store) History(userID string) []*chatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*chatSession
	for _, sess := range s.sessions {
		if sess.OwnerID == userID {
			out = append(out, sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

// AddReport stores a finished report with its artifact.
func (s *Store) AddReport(userID string, req model.ReportRequest, content []byte) model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	rep := model.Report{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   userID,
		CreatedDate: time.Now().UTC(),
		Status:      model.ReportCompleted,
		Type:        req.Type,
		FilePath:    "/reports/" + req.Type + ".txt",
	}
	s.reports[rep.ID] = &report{Report: rep, Content: content}
	return rep
}

// Reports lists the user's reports, newest first.
func (s *Store) Reports(userID string) []model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Report
	for _, rep := range s.reports {
		if rep.CreatedBy == userID {
			out = append(out, rep.Report)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedDate.After(out[j].CreatedDate) })
	return out
}

// Report fetches one report and its artifact.
func (s *Store) Report(userID, id string) (model.Report, []byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rep, ok := s.reports[id]
	if !ok || rep.CreatedBy != userID {
		return model.Report{}, nil, false
	}
	return rep.Report, rep.Content, true
}

// Settings returns a copy of the current settings map.
func (s *Store) Settings() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out
}

// UpdateSettings merges the given keys into the settings map.
func (s *Store) UpdateSettings(update map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range update {
		if v != nil {
			s.settings[k] = v
		}
	}
}

// Stats aggregates dashboard counters for the user.
func (s *Store) Stats(userID string) (docs, processed, questions, reports int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.documents {
		if doc.OwnerID == userID {
			docs++
			if doc.IsProcessed {
				processed++
			}
		}
	}
	for _, sess := range s.sessions {
		if sess.OwnerID != userID {
			continue
		}
		for _, msg := range sess.Messages {
			if msg.Type == model.RoleUser {
				questions++
			}
		}
	}
	for _, rep := range s.reports {
		if rep.CreatedBy == userID {
			reports++
		}
	}
	return docs, processed, questions, reports
}

// RecentDocuments returns up to n of the user's newest documents.
func (s *Store) RecentDocuments(userID string, n int) []model.Document {
	docs, _ := s.ListDocuments(userID, 1, n, "", "")
	return docs
}

func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
