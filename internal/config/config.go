package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// APIConfig holds settings for the SmartDoc backend connection.
type APIConfig struct {
	BaseURL    string
	TimeoutSec int
	Locale     string
}

// StubConfig holds settings for the local development stub server.
type StubConfig struct {
	Port        string
	UploadLimit int
}

// AppConfig is the centralized configuration struct for the client.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	API             APIConfig
	Stub            StubConfig
	CredentialsPath string
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:    getEnv("SMARTDOC_API_URL", "http://localhost:8000/api"),
			TimeoutSec: getEnvInt("SMARTDOC_TIMEOUT_SEC", 30),
			Locale:     getEnv("SMARTDOC_LOCALE", "vi-VN"),
		},
		Stub: StubConfig{
			Port:        getEnv("SMARTDOC_STUB_PORT", "8000"),
			UploadLimit: getEnvInt("SMARTDOC_STUB_UPLOAD_LIMIT_MB", 50),
		},
		CredentialsPath: getEnv("SMARTDOC_CREDENTIALS_FILE", defaultCredentialsPath()),
	}
}

// defaultCredentialsPath resolves to <user config dir>/smartdoc/credentials.json,
// falling back to a relative path when the config dir cannot be determined.
func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".smartdoc/credentials.json"
	}
	return filepath.Join(dir, "smartdoc", "credentials.json")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
