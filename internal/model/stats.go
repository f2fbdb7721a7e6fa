package model

import "time"

// DashboardStats is the payload of GET /stats/dashboard.
type DashboardStats struct {
	TotalDocuments    int           `json:"total_documents"`
	TotalOCRProcessed int           `json:"total_ocr_processed"`
	TotalQuestions    int           `json:"total_questions"`
	TotalReports      int           `json:"total_reports"`
	RecentDocuments   []Document    `json:"recent_documents"`
	RecentQuestions   []ChatMessage `json:"recent_questions"`
}

// HealthStatus is the payload of the server root health check.
type HealthStatus struct {
	Message   string    `json:"message,omitempty"`
	Version   string    `json:"version,omitempty"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}
