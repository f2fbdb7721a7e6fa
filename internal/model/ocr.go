package model

import "time"

// OCRStatus is the lifecycle state of an OCR job.
type OCRStatus string

const (
	OCRProcessing OCRStatus = "processing"
	OCRCompleted  OCRStatus = "completed"
	OCRFailed     OCRStatus = "failed"
)

// OCRResult is a digitization result linked to a document.
//
// OriginalFileCompat, ExtractedTextCompat and ProcessedAt are legacy aliases
// of their snake_case counterparts, kept populated for older dashboard builds.
type OCRResult struct {
	ID                  string         `json:"id"`
	DocumentID          string         `json:"document_id"`
	UserID              string         `json:"user_id"`
	OriginalFile        string         `json:"original_file"`
	OriginalFileCompat  string         `json:"originalFile,omitempty"`
	ExtractedText       string         `json:"extracted_text"`
	ExtractedTextCompat string         `json:"extractedText,omitempty"`
	Confidence          float64        `json:"confidence"`
	ProcessDate         string         `json:"process_date"`
	ProcessedAt         time.Time      `json:"processDate"`
	Status              OCRStatus      `json:"status"`
	EngineUsed          string         `json:"engine_used,omitempty"`
	Language            string         `json:"language,omitempty"`
	Metadata            map[string]any `json:"ocr_metadata,omitempty"`
}

// OCRUpdate is the body of PUT /ocr/results/{id}.
type OCRUpdate struct {
	ExtractedText string         `json:"extracted_text,omitempty"`
	Confidence    float64        `json:"confidence,omitempty"`
	Metadata      map[string]any `json:"ocr_metadata,omitempty"`
}
