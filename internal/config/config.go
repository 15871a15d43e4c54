package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Uploads  UploadsConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	Provider     string // "mock" or "openai"
	OpenAIAPIKey string
	ChatModel    string
	AudioModel   string
	GuideSeed    string // path to the initial style guide file
}

type UploadsConfig struct {
	AudioDir string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			Provider:     getEnv("AI_PROVIDER", "mock"),
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			ChatModel:    getEnv("OPENAI_CHAT_MODEL", "gpt-4o"),
			AudioModel:   getEnv("OPENAI_AUDIO_MODEL", "whisper-1"),
			GuideSeed:    getEnv("GUIDE_SEED_PATH", "poetry_guide.md"),
		},
		Uploads: UploadsConfig{
			AudioDir: getEnv("AUDIO_UPLOAD_DIR", "uploads/audio"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
