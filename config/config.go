package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	CORS_ORIGIN string

	AI_BASE_URL string
	AI_API_KEY  string
	AI_MODEL    string

	IMAGE_API_URL string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")

	// Narrative provider (any OpenAI-compatible endpoint). AI_API_KEY may be
	// empty: the enricher then generates every story with the local fallback.
	AI_BASE_URL = getEnv("AI_BASE_URL", "")
	AI_API_KEY = getEnv("AI_API_KEY", "")
	AI_MODEL = getEnv("AI_MODEL", "gpt-4o-mini")

	IMAGE_API_URL = getEnv("IMAGE_API_URL", "https://subnp.com/api/free")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
