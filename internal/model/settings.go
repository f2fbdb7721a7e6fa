package model

// AIModelConfig describes one configured answering model.
type AIModelConfig struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Provider   string         `json:"provider"`
	APIKey     string         `json:"api_key,omitempty"`
	BaseURL    string         `json:"base_url,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// OCREngineConfig describes one configured OCR engine.
type OCREngineConfig struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Languages  []string       `json:"languages"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// SystemSettings is the payload of GET /settings.
type SystemSettings struct {
	AIModels        []AIModelConfig   `json:"ai_models"`
	OCREngines      []OCREngineConfig `json:"ocr_engines"`
	CurrentSettings map[string]any    `json:"current_settings"`
}

// SettingsUpdate is the body of PUT /settings. Zero values are omitted so the
// server only touches fields the caller set.
type SettingsUpdate struct {
	DefaultAIModel   string `json:"default_ai_model,omitempty"`
	DefaultOCREngine string `json:"default_ocr_engine,omitempty"`
	AutoBackup       *bool  `json:"auto_backup,omitempty"`
	BackupFrequency  string `json:"backup_frequency,omitempty"`
}
