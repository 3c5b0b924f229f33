package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	BaseURL string

	Scheduler SchedulerConfig
	SMTP      SMTPConfig
}

// SchedulerConfig holds the connection settings for the external
// scheduling engine that generates timetables.
type SchedulerConfig struct {
	EngineURL    string
	TokenURL     string
	ClientID     string
	ClientSecret string
	// CallbackKey authenticates the engine's result callbacks.
	CallbackKey string
	Timeout     time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	accessExpiry, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"))
	if err != nil {
		refreshExpiry = 168 * time.Hour
	}

	schedulerTimeout, err := time.ParseDuration(getEnv("SCHEDULER_TIMEOUT", "30s"))
	if err != nil {
		schedulerTimeout = 30 * time.Second
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:        getEnvOrPanic("JWT_SECRET"),
		JWTAccessExpiry:  accessExpiry,
		JWTRefreshExpiry: refreshExpiry,

		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		Scheduler: SchedulerConfig{
			EngineURL:    getEnv("SCHEDULER_ENGINE_URL", ""),
			TokenURL:     getEnv("SCHEDULER_TOKEN_URL", ""),
			ClientID:     getEnv("SCHEDULER_CLIENT_ID", ""),
			ClientSecret: getEnv("SCHEDULER_CLIENT_SECRET", ""),
			CallbackKey:  getEnv("SCHEDULER_CALLBACK_KEY", ""),
			Timeout:      schedulerTimeout,
		},

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
