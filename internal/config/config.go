package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Provider ProviderConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	UploadDir          string
	SummaryCacheTTL    time.Duration
}

type DatabaseConfig struct {
	Connection string
}

type ProviderConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthConfig struct {
	JwtSecret            string
	TokenTTL             time.Duration
	OperatorEmail        string
	OperatorPasswordHash string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	OpsInbox   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "kyc.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
			SummaryCacheTTL:    getEnvAsDuration("SUMMARY_CACHE_TTL", 30*time.Second),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Provider: ProviderConfig{
			BaseURL: getEnv("EMBEDDING_SERVICE_URL", "http://localhost:8500"),
			Timeout: getEnvAsDuration("EMBEDDING_SERVICE_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			JwtSecret:            getEnv("JWT_SECRET", ""),
			TokenTTL:             getEnvAsDuration("JWT_TOKEN_TTL", 8*time.Hour),
			OperatorEmail:        getEnv("OPERATOR_EMAIL", ""),
			OperatorPasswordHash: getEnv("OPERATOR_PASSWORD_HASH", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "KYC Verification"),
			OpsInbox:   getEnv("OPS_INBOX_EMAIL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
