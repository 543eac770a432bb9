package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Session  SessionConfig
	Queue    QueueConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	SyncTopic          string
}

type DatabaseConfig struct {
	Connection      string
	LogLevel        string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type SessionConfig struct {
	AutoSaveInterval time.Duration
	SaveNowTimeout   time.Duration
	StaleAfter       time.Duration
	DebounceWindow   time.Duration
	ContextCacheTTL  time.Duration
	BackoffBaseDelay time.Duration
	BackoffMaxDelay  time.Duration
	BackoffAttempts  int
}

type QueueConfig struct {
	DefaultMaxAttempts int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			SyncTopic:          getEnv("SYNC_ACTIONS_TOPIC_NAME", "SYNC_PENDING_ACTIONS"),
		},
		Database: DatabaseConfig{
			Connection:      getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "CV Builder"),
		},
		Session: SessionConfig{
			AutoSaveInterval: getEnvAsDuration("SESSION_AUTOSAVE_INTERVAL", 30*time.Second),
			SaveNowTimeout:   getEnvAsDuration("SESSION_SAVE_NOW_TIMEOUT", 3*time.Second),
			StaleAfter:       getEnvAsDuration("SESSION_STALE_AFTER", 7*24*time.Hour),
			DebounceWindow:   getEnvAsDuration("NAVIGATION_DEBOUNCE_WINDOW", 300*time.Millisecond),
			ContextCacheTTL:  getEnvAsDuration("NAVIGATION_CONTEXT_CACHE_TTL", 2*time.Minute),
			BackoffBaseDelay: getEnvAsDuration("NETWORK_BACKOFF_BASE_DELAY", 500*time.Millisecond),
			BackoffMaxDelay:  getEnvAsDuration("NETWORK_BACKOFF_MAX_DELAY", 8*time.Second),
			BackoffAttempts:  getEnvAsInt("NETWORK_BACKOFF_MAX_ATTEMPTS", 5),
		},
		Queue: QueueConfig{
			DefaultMaxAttempts: getEnvAsInt("QUEUE_DEFAULT_MAX_ATTEMPTS", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
