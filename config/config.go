package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort      string
	MinIOEndpoint   string
	MinIOAccessKey  string
	MinIOSecretKey  string
	MinIOUseSSL     bool
	CacheTTL        time.Duration
	PresignedURLTTL time.Duration
	Environment     string
	SourceBucket    string // Бакет для исходных книг расписаний
	TargetBucket    string // Бакет для разобранных JSON файлов
	RawDir          string // Локальный каталог сырых книг
	ParsedDir       string // Локальный каталог разобранных JSON
}

func Load() *Config {
	cacheMinutes, _ := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "10"))
	presignedMinutes, _ := strconv.Atoi(getEnv("PRESIGNED_URL_TTL_MINUTES", "15"))
	useSSL, _ := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "3000"),
		MinIOEndpoint:   getEnv("MINIO_ENDPOINT", "minio:9000"),
		MinIOAccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOUseSSL:     useSSL,
		CacheTTL:        time.Duration(cacheMinutes) * time.Minute,
		PresignedURLTTL: time.Duration(presignedMinutes) * time.Minute,
		Environment:     getEnv("ENVIRONMENT", "development"),
		SourceBucket:    getEnv("SOURCE_BUCKET", "schedules-raw"),
		TargetBucket:    getEnv("TARGET_BUCKET", "schedules-parsed"),
		RawDir:          getEnv("RAW_DIR", ""),
		ParsedDir:       getEnv("PARSED_DIR", "schedules/parsed"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
