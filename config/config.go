package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultLimitPosts = 20
	MaxLimitPosts     = 100
)

type Config struct {
	Port   string
	Origin string

	StoreDriver string
	MongoURI    string
	MongoDB     string

	SessionSecret string
	CookieSecure  bool

	UploadDriver   string
	UploadDir      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	OpenAIKey             string
	OpenAIBaseURL         string
	OpenAIChatModel       string
	OpenAIImageModel      string
	OpenAIModerationModel string
	OpenAITimeout         time.Duration

	LogLevel       string
	LogFormat      string
	BodyLimitMB    int
	ProfanityWords string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		return fallback
	}
	return v
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		Port:   getEnv("PORT", "4000"),
		Origin: getEnv("ORIGIN", "http://localhost:5173"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
		MongoURI:    getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:     getEnv("MONGO_DB", "iiituna_feed"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		CookieSecure:  getEnvBool("COOKIE_SECURE", false),

		UploadDriver:   strings.ToLower(getEnv("UPLOAD_DRIVER", "disk")),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "uploads"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", ""),

		OpenAIKey:             getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIChatModel:       getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		OpenAIImageModel:      getEnv("OPENAI_IMAGE_MODEL", "gpt-image-1"),
		OpenAIModerationModel: getEnv("OPENAI_MODERATION_MODEL", "omni-moderation-latest"),
		OpenAITimeout:         getEnvDuration("OPENAI_TIMEOUT", 120*time.Second),

		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "json")),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 20),

		ProfanityWords: getEnv("PROFANITY_WORDS", ""),
	}
}
