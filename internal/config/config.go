// Package config loads runtime settings from the environment and holds the
// domain constants of the hostel complaint service.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	HTTPAddr string

	// PostgreSQL
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Auth
	JWTSecret string
	JWTTTL    time.Duration

	// Telegram sink is disabled when the token is empty.
	TelegramBotToken string

	DefaultLanguage string

	// Notification fan-out
	NotifyTimeout     time.Duration
	NotifyConcurrency int
}

// LoadConfig loads configuration from a .env file (if present) and
// environment variables with defaults.
func LoadConfig() (*Config, error) {
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads the configuration without validating it. The admin CLI
// uses it since it only needs the database settings.
func FromEnv() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("WARN: .env file not loaded, using process environment")
	}

	return &Config{
		HTTPAddr: getEnvOrDefault("HTTP_ADDR", ":8080"),

		DBHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DBUser:     getEnvOrDefault("DB_USER", "user"),
		DBPassword: getEnvOrDefault("DB_PASSWORD", "password"),
		DBName:     getEnvOrDefault("DB_NAME", "hostelcaredb"),
		DBPort:     getEnvOrDefault("DB_PORT", "5432"),
		DBSSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),

		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    getEnvDuration("JWT_TTL", 72*time.Hour),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),

		DefaultLanguage: getEnvOrDefault("DEFAULT_LANGUAGE", "en"),

		NotifyTimeout:     getEnvDuration("NOTIFY_TIMEOUT", 10*time.Second),
		NotifyConcurrency: getEnvInt("NOTIFY_CONCURRENCY", 8),
	}
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.DBHost == "" || c.DBName == "" {
		return fmt.Errorf("DB_HOST and DB_NAME cannot be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.NotifyConcurrency < 1 {
		return fmt.Errorf("NOTIFY_CONCURRENCY must be at least 1")
	}
	if c.NotifyTimeout <= 0 {
		return fmt.Errorf("NOTIFY_TIMEOUT must be positive")
	}
	return nil
}

// DSN builds the PostgreSQL connection string for gorm.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
