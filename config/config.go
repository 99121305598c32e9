package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/versehub/versehub/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Config holds application configuration values
type Config struct {
	ServerPort      string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration // declared for API parity; no operation issues refresh tokens yet
	CORSOrigins     []string
	RateLimitPerMin int
	MaxUploadBytes  int64
	UploadDir       string
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	// Attempt to load .env file if in development environment (skip in production)
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	// Read values from environment variables, providing defaults where appropriate
	port := getEnv("SERVER_PORT", "8080")
	jwtSecret := os.Getenv("JWT_SECRET_KEY") // No sensible default for the secret!
	accessMinutesStr := getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	refreshDaysStr := getEnv("REFRESH_TOKEN_EXPIRE_DAYS", "7")
	corsOrigins := getEnv("CORS_ORIGINS", "http://localhost:3000")
	rateLimitStr := getEnv("RATE_LIMIT_PER_MINUTE", "60")
	maxUploadStr := getEnv("MAX_FILE_SIZE", "10485760") // 10 MiB
	uploadDir := getEnv("UPLOAD_PATH", "uploads")

	// --- Validation and Parsing ---
	// Critical: Ensure JWT Secret is set
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY environment variable must be set")
	}
	if jwtSecret == "!!replace_this_with_a_real_secret_key!!" {
		customLog.Warnln("WARNING: JWT_SECRET_KEY is set to the default placeholder!")
	}

	accessMinutes, err := strconv.Atoi(accessMinutesStr)
	if err != nil || accessMinutes <= 0 {
		customLog.Warnf("Invalid ACCESS_TOKEN_EXPIRE_MINUTES '%s'. Using default 30m. Error: %v", accessMinutesStr, err)
		accessMinutes = 30
	}

	refreshDays, err := strconv.Atoi(refreshDaysStr)
	if err != nil || refreshDays <= 0 {
		customLog.Warnf("Invalid REFRESH_TOKEN_EXPIRE_DAYS '%s'. Using default 7d. Error: %v", refreshDaysStr, err)
		refreshDays = 7
	}

	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil || rateLimit <= 0 {
		customLog.Warnf("Invalid RATE_LIMIT_PER_MINUTE '%s'. Using default 60. Error: %v", rateLimitStr, err)
		rateLimit = 60
	}

	maxUpload, err := strconv.ParseInt(maxUploadStr, 10, 64)
	if err != nil || maxUpload <= 0 {
		customLog.Warnf("Invalid MAX_FILE_SIZE '%s'. Using default 10MiB. Error: %v", maxUploadStr, err)
		maxUpload = 10 << 20
	}

	// Ensure the upload directory exists before the server starts accepting files
	if err := os.MkdirAll(uploadDir, 0750); err != nil {
		return nil, errors.New("failed to create upload directory: " + err.Error())
	}

	// Return final Config struct
	cfg := &Config{
		ServerPort:      port,
		JWTSecret:       jwtSecret,
		AccessTokenTTL:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenTTL: time.Duration(refreshDays) * 24 * time.Hour,
		CORSOrigins:     splitAndTrim(corsOrigins),
		RateLimitPerMin: rateLimit,
		MaxUploadBytes:  maxUpload,
		UploadDir:       uploadDir,
	}

	customLog.Printf("Configuration loaded successfully. Port: %s, Access TTL: %v", cfg.ServerPort, cfg.AccessTokenTTL)
	return cfg, nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// splitAndTrim turns a comma-separated env value into a clean slice.
func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
