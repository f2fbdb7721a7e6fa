// Package session persists the auth token and the last-known user record
// between CLI invocations. The transport takes a Source explicitly instead of
// reading ambient global state, so it can be tested without faking storage.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"smartdoc/internal/model"
)

// Source provides the current bearer token for outbound requests.
// An empty string means no credentials are stored.
type Source interface {
	Token() string
}

// Store is the full credential store: token plus the last-known user record.
// Both are cleared together on logout.
type Store interface {
	Source
	SetToken(token string) error
	User() (model.User, bool)
	SetUser(user model.User) error
	Clear() error
}

// credentials is the on-disk layout. Key names mirror the browser client's
// persisted keys so a stored file is self-describing.
type credentials struct {
	Token string      `json:"token,omitempty"`
	User  *model.User `json:"user,omitempty"`
}

// fileStore persists credentials as a JSON file. Safe for concurrent use.
type fileStore struct {
	mu    sync.Mutex
	path  string
	creds credentials
}

// NewFileStore opens (or lazily creates) a file-backed store at path.
// A missing file is treated as an empty store, not an error.
func NewFileStore(path string) (Store, error) {
	if path == "" {
		return nil, errors.New("credentials path is required")
	}

	fs := &fileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if err := json.Unmarshal(data, &fs.creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return fs, nil
}

func (s *fileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.Token
}

func (s *fileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.Token = token
	return s.flush()
}

func (s *fileStore) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds.User == nil {
		return model.User{}, false
	}
	return *s.creds.User, true
}

func (s *fileStore) SetUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.User = &user
	return s.flush()
}

// Clear removes both token and user, matching logout semantics.
func (s *fileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = credentials{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// flush writes the current credentials with owner-only permissions.
// Callers must hold the lock.
func (s *fileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	data, err := json.MarshalIndent(s.creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Static is a fixed-token Source for tests and one-shot scripted calls.
type Static string

func (s Static) Token() string { return string(s) }
