package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type EnvConfig struct {
	AppPort      string
	DBDSN        string
	MongoURI     string
	MongoDB      string
	JWTSecret    string
	GeminiAPIKey string
	GeminiModel  string
	UploadDir    string
	PublicURL    string
}

var Env EnvConfig

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	Env.AppPort = getEnv("APP_PORT", "3000")
	Env.DBDSN = os.Getenv("DB_DSN")
	Env.MongoURI = os.Getenv("MONGO_URI")
	Env.MongoDB = getEnv("MONGO_DB_NAME", "student_hub")
	Env.JWTSecret = os.Getenv("JWT_SECRET")
	Env.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	Env.GeminiModel = getEnv("GEMINI_MODEL", "gemini-2.5-flash")
	Env.UploadDir = getEnv("UPLOAD_DIR", "./uploads")
	Env.PublicURL = getEnv("PUBLIC_URL", "http://localhost:3000")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetJWTSecret() string {
	return Env.JWTSecret
}
