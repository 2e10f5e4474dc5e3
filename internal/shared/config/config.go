package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Store type identifiers.
const (
	StoreNone  = "none"
	StoreS3    = "s3"
	StoreMinIO = "minio"
	StoreLocal = "local"
)

// Config holds application configuration. It is built once at process start
// and passed by value into bootstrap.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LogLevel        string
	LogFormat       string
	DatabaseURL     string

	PrimaryStore    string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string

	FallbackStore       string
	MinIOEndpoint       string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	MinIORegion         string
	MinIOPublicBaseURL  string
	LocalStoreDir       string
	LocalPublicBaseURL  string
	UploadRatePerSecond float64
	UploadRateBurst     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is empty in production; document persistence is disabled")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		DatabaseURL:     dbURL,

		PrimaryStore:    normalizeStoreType(getEnv("PRIMARY_STORE", StoreNone), StoreS3),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		FallbackStore:       normalizeStoreType(getEnv("FALLBACK_STORE", StoreLocal), StoreMinIO, StoreLocal),
		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:         getEnv("MINIO_BUCKET", "documents"),
		MinIOUseSSL:         getEnvBool("MINIO_USE_SSL", false),
		MinIORegion:         getEnv("MINIO_REGION", "us-east-1"),
		MinIOPublicBaseURL:  getEnv("MINIO_PUBLIC_BASE_URL", ""),
		LocalStoreDir:       getEnv("LOCAL_STORE_DIR", "./data"),
		LocalPublicBaseURL:  getEnv("LOCAL_PUBLIC_BASE_URL", "http://localhost:8080/files"),
		UploadRatePerSecond: getEnvFloat("UPLOAD_RATE_PER_SEC", 0),
		UploadRateBurst:     getEnvInt("UPLOAD_RATE_BURST", 0),
	}
}

// IsDevLike reports whether the environment tolerates in-memory fallbacks.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config env %s invalid bool: %v", key, err)
		return def
	}
	return val
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config env %s invalid float: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

// normalizeStoreType maps raw to one of allowed, or StoreNone.
func normalizeStoreType(raw string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, a := range allowed {
		if v == a {
			return a
		}
	}
	return StoreNone
}
