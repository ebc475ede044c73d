package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBMaxConns int
	DBMinConns int

	OllamaURL      string
	EmbeddingModel string
	OllamaTimeout  time.Duration

	GenerationURL     string
	GenerationModel   string
	GenerationAPIKey  string
	GenerationTimeout time.Duration
	AnswerMaxTokens   int

	SearchBaseURL     string
	SearchMaxResults  int
	SearchTimeout     time.Duration
	SearchPaceSeconds int

	TopK          int
	ChunkMaxWords int

	CacheSize       int
	CacheTTLMinutes int

	OTelEnabled bool
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8000"),

		DBHost:     getEnv("DB_HOST", "research-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "research_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "research_password"),
		DBName:     getEnv("DB_NAME", "research_db"),
		DBMaxConns: getEnvInt("DB_MAX_CONNS", 10),
		DBMinConns: getEnvInt("DB_MIN_CONNS", 2),

		OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
		OllamaTimeout:  time.Duration(getEnvInt("OLLAMA_TIMEOUT_SECONDS", 60)) * time.Second,

		GenerationURL:     getEnvWithAlt("GENERATION_URL", "OLLAMA_URL", "http://localhost:11434"),
		GenerationModel:   getEnv("GENERATION_MODEL", "llama3.1"),
		GenerationAPIKey:  getSecret("GENERATION_API_KEY", "GENERATION_API_KEY_FILE", ""),
		GenerationTimeout: time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 120)) * time.Second,
		AnswerMaxTokens:   getEnvInt("ANSWER_MAX_TOKENS", 768),

		SearchBaseURL:     getEnv("SEARCH_BASE_URL", "https://html.duckduckgo.com/html/"),
		SearchMaxResults:  getEnvInt("SEARCH_MAX_RESULTS", 5),
		SearchTimeout:     time.Duration(getEnvInt("SEARCH_TIMEOUT_SECONDS", 15)) * time.Second,
		SearchPaceSeconds: getEnvInt("SEARCH_RATE_LIMIT_SECONDS", 1),

		TopK:          getEnvInt("RAG_TOP_K", 3),
		ChunkMaxWords: getEnvInt("CHUNK_MAX_WORDS", 250),

		CacheSize:       getEnvInt("CACHE_SIZE", 0),
		CacheTTLMinutes: getEnvInt("CACHE_TTL_MINUTES", 15),

		OTelEnabled: getEnvBool("OTEL_ENABLED", false),
	}
}

// DSN renders the document store connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getSecret reads the value from envKey, then from the file named by
// fileEnvKey, then falls back.
func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}

	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return fallback
}

func getEnvWithAlt(key, altKey, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	if value, ok := os.LookupEnv(altKey); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
