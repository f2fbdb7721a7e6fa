package model

import "time"

// Document represents a stored file in the system.
//
// The backend serializes timestamps as ISO-8601 strings under snake_case names;
// older dashboard builds read a parsed timestamp under the camelCase name. Both
// fields are kept populated with the same instant so either naming style resolves.
type Document struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	OriginalName string         `json:"original_name,omitempty"`
	Type         string         `json:"type"`
	Size         string         `json:"size"`
	UploadDate   string         `json:"upload_date"`
	UploadedAt   time.Time      `json:"uploadDate"` // legacy alias of UploadDate
	Author       string         `json:"author,omitempty"`
	Folder       string         `json:"folder,omitempty"`
	FilePath     string         `json:"file_path,omitempty"`
	Shared       bool           `json:"shared"`
	IsProcessed  bool           `json:"is_processed"`
	IsOwner      bool           `json:"is_owner"`
	Metadata     map[string]any `json:"doc_metadata,omitempty"`
}

// DocumentList is the paginated payload of GET /documents.
type DocumentList struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
	Pages     int        `json:"pages"`
}

// SharePayload is the body of POST /documents/{id}/share.
type SharePayload struct {
	UserEmail  string `json:"user_email" validate:"required,email"`
	Permission string `json:"permission" validate:"required,oneof=read write admin"`
}
