package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Upload    UploadConfig
	OCR       OCRConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// UploadConfig holds temporary upload handling configuration
type UploadConfig struct {
	Dir        string
	MaxSizeMB  int64
	TimeoutSec int
}

// OCRConfig holds OCR engine configuration
type OCRConfig struct {
	Binary   string // tesseract binary name or absolute path
	Language string // recognition language hint, default "eng"
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "3001"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "crmgo"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		Upload: UploadConfig{
			Dir:        getEnv("UPLOAD_DIR", "uploads"),
			MaxSizeMB:  getEnvInt64("MAX_UPLOAD_MB", 50),
			TimeoutSec: int(getEnvInt64("EXTRACT_TIMEOUT_SECONDS", 120)),
		},
		OCR: OCRConfig{
			Binary:   getEnv("TESSERACT_BIN", "tesseract"),
			Language: getEnv("TESSERACT_LANG", "eng"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 gets an integer environment variable with default value
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
