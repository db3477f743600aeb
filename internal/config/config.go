package config

import (
	"os"
	"strings"
)

type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Translate TranslateConfig
	Embedding EmbeddingConfig
	Postgres  PostgresConfig
}

type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

type AuthConfig struct {
	JWTSecret    string
	JWTAccessTTL string
}

type TranslateConfig struct {
	Provider   string
	APIKey     string
	SourceLang string
	TargetLang string
	Timeout    string
}

type EmbeddingConfig struct {
	APIKey string
	Model  string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":" + getenv("PORT", "8080"),
			AllowedOrigins: strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ","),
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTAccessTTL: getenv("JWT_ACCESS_TTL", "15m"),
		},
		Translate: TranslateConfig{
			Provider:   getenv("TRANSLATE_PROVIDER", "deep-translate"),
			APIKey:     os.Getenv("DEEP_TRANSLATE_API_KEY"),
			SourceLang: getenv("TRANSLATE_SOURCE", "ru"),
			TargetLang: getenv("TRANSLATE_TARGET", "en"),
			Timeout:    getenv("TRANSLATE_TIMEOUT", "10s"),
		},
		Embedding: EmbeddingConfig{
			APIKey: os.Getenv("AI_API_KEY"),
			Model:  getenv("EMBEDDING_MODEL", "text-embedding-004"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
