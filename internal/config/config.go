// Package config
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	EnvState       string
	Address        string
	AllowedOrigins []string
	PublicBaseURL  string
	DatabaseURL    string
	RedisURL       string
	LogLevel       string
	LogFormat      string

	JWTSecret            string
	JWTAlgorithm         string
	AccessTokenTTL       time.Duration
	ConfirmationTokenTTL time.Duration
	BcryptCost           int
	BcryptWorkers        int

	MailgunAPIKey  string
	MailgunDomain  string
	MailgunBaseURL string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIImageSize string

	TaskPollInterval time.Duration
	UploadMaxBytes   int64
}

func Load() *Config {
	_ = godotenv.Load()

	envState := getEnv("ENV_STATE", "dev")

	// Logs
	defaultLevel := "info"
	if envState == "dev" {
		defaultLevel = "debug"
	}
	logLevel := getEnv("LOG_LEVEL", defaultLevel)
	logFormat := getEnv("LOG_FORMAT", "text")

	// HTTP
	addr := getEnv("HTTP_ADDR", ":8000")

	var origins []string
	rawOrigins := os.Getenv("ALLOWED_ORIGINS")
	if rawOrigins != "" {
		parts := strings.SplitSeq(rawOrigins, ",")
		for o := range parts {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	publicBaseURL := strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost"+addr), "/")

	return &Config{
		EnvState:       envState,
		LogLevel:       logLevel,
		LogFormat:      logFormat,
		Address:        addr,
		AllowedOrigins: origins,
		PublicBaseURL:  publicBaseURL,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),

		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTAlgorithm:         getEnv("JWT_ALGORITHM", "HS256"),
		AccessTokenTTL:       getDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		ConfirmationTokenTTL: getDuration("CONFIRMATION_TOKEN_TTL", 24*time.Hour),
		BcryptCost:           getInt("BCRYPT_COST", 0),
		BcryptWorkers:        getInt("BCRYPT_WORKERS", runtime.NumCPU()),

		MailgunAPIKey:  os.Getenv("MAILGUN_API_KEY"),
		MailgunDomain:  os.Getenv("MAILGUN_DOMAIN"),
		MailgunBaseURL: getEnv("MAILGUN_BASE_URL", "https://api.mailgun.net"),

		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIImageSize: getEnv("OPENAI_IMAGE_SIZE", "1024x1024"),

		TaskPollInterval: getDuration("TASK_POLL_INTERVAL", 2*time.Second),
		UploadMaxBytes:   int64(getInt("UPLOAD_MAX_BYTES", 10<<20)),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
