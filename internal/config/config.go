package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	MongoURL       string
	MongoDBName    string
	RedisURL       string
	JWTSecret      string
	AccessTokenTTL time.Duration
	ResetTokenTTL  time.Duration
	RequestTimeout time.Duration

	OllamaURL        string
	OllamaModel      string
	HFAPIKey         string
	HFModel          string
	GenerateTimeout  time.Duration
	GenerateDisabled bool

	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string

	SMTPAddr string
	SMTPFrom string
	SMTPUser string
	SMTPPass string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		MongoURL:         getEnv("MONGODB_URL", ""),
		MongoDBName:      getEnv("MONGODB_DB_NAME", "hirepulse"),
		RedisURL:         getEnv("REDIS_URL", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		AccessTokenTTL:   getDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		ResetTokenTTL:    getDuration("RESET_TOKEN_TTL", time.Hour),
		RequestTimeout:   getDuration("REQUEST_TIMEOUT", 30*time.Second),
		OllamaURL:        getEnv("OLLAMA_API_URL", ""),
		OllamaModel:      getEnv("OLLAMA_MODEL", "llama2"),
		HFAPIKey:         getEnv("HUGGINGFACE_API_KEY", ""),
		HFModel:          getEnv("HF_MODEL", "gpt2"),
		GenerateTimeout:  getDuration("GENERATE_TIMEOUT", 20*time.Second),
		GenerateDisabled: getBool("GENERATE_DISABLED", false),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3Region:         getEnv("S3_REGION", "auto"),
		S3Endpoint:       getEnv("S3_ENDPOINT", ""),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
		SMTPAddr:         getEnv("SMTP_ADDR", ""),
		SMTPFrom:         getEnv("SMTP_FROM", "no-reply@hirepulse.local"),
		SMTPUser:         getEnv("SMTP_USER", ""),
		SMTPPass:         getEnv("SMTP_PASS", ""),
	}

	if cfg.MongoURL == "" {
		log.Fatal("MONGODB_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return strings.EqualFold(value, "true") || value == "1"
	}
	return fallback
}
