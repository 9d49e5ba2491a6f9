package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	XClientID     string
	XClientSecret string
	XAPIBaseURL   string

	DispatchInterval   time.Duration
	DispatchBatchLimit int
	MonthlyPostLimit   int
}

func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		XClientID:     getEnv("X_CLIENT_ID", ""),
		XClientSecret: getEnv("X_CLIENT_SECRET", ""),
		XAPIBaseURL:   getEnv("X_API_BASE_URL", "https://api.twitter.com"),

		DispatchInterval:   getEnvDuration("DISPATCH_INTERVAL", time.Minute),
		DispatchBatchLimit: getEnvInt("DISPATCH_BATCH_LIMIT", 100),
		MonthlyPostLimit:   getEnvInt("MONTHLY_POST_LIMIT", 500),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}
