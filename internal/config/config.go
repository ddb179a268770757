package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	HTTPAddr          string
	LogLevel          zapcore.Level
	DiscordWebhookURL string
	AllowedOrigins    []string
	RNGSeed           int64
	Team1Name         string
	Team2Name         string
	ShutdownTimeout   time.Duration
}

// Load reads .env (if present) and the process environment. A missing .env
// is reported but the defaults still apply.
func Load() (Config, error) {
	err := godotenv.Load()

	level, lerr := zapcore.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if lerr != nil {
		level = zapcore.InfoLevel
	}

	return Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		LogLevel:          level,
		DiscordWebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "*")),
		RNGSeed:           getEnvAsInt64("RNG_SEED", 0),
		Team1Name:         getEnv("TEAM1_NAME", "BANANA TREE HOLE"),
		Team2Name:         getEnv("TEAM2_NAME", "PAGPAG EATER"),
		ShutdownTimeout:   getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
