package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL = "https://cst438-d5640ff12bdc.herokuapp.com"
	// the Expo web dev server
	defaultCORSOrigins = "http://localhost:8081"
)

type Config struct {
	Port              string
	Env               string
	LogLevel          string
	DBPath            string
	APIBaseURL        string
	GoogleClientID    string
	SecureStoreSecret string
	CORSOrigins       string
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:              GetEnv("PORT", "3000"),
		Env:               GetEnv("ENV", "development"),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		DBPath:            GetEnv("DB_PATH", "./data/flexzone_database.db"),
		APIBaseURL:        GetEnv("API_BASE_URL", defaultAPIBaseURL),
		GoogleClientID:    GetEnv("GOOGLE_CLIENT_ID", ""),
		SecureStoreSecret: GetEnv("SECURE_STORE_SECRET", ""),
		CORSOrigins:       GetEnv("CORS_ORIGINS", defaultCORSOrigins),
	}

	if AppConfig.GoogleClientID == "" {
		log.Fatal("GOOGLE_CLIENT_ID is required")
	}
	if AppConfig.SecureStoreSecret == "" {
		log.Fatal("SECURE_STORE_SECRET is required")
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
