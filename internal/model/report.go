package model

import "time"

// ReportStatus is the lifecycle state of a generated report.
type ReportStatus string

const (
	ReportGenerating ReportStatus = "generating"
	ReportCompleted  ReportStatus = "completed"
	ReportFailed     ReportStatus = "failed"
)

// Report describes a generated report and where its artifact lives.
type Report struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	CreatedBy   string       `json:"created_by"`
	CreatedDate time.Time    `json:"created_date"`
	Status      ReportStatus `json:"status"`
	Type        string       `json:"type"`
	FilePath    string       `json:"file_path,omitempty"`
}

// ReportRequest is the body of POST /reports/generate.
type ReportRequest struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description,omitempty"`
	Type        string         `json:"type" validate:"required"`
	Config      map[string]any `json:"config" validate:"required"`
}
