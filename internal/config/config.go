// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
}

// DatabaseConfig holds PostgreSQL configuration settings
type DatabaseConfig struct {
	URI      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// StorageConfig holds S3-compatible object storage settings.
// Path-style addressing is always used so MinIO works out of the box.
type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// UploadConfig holds upload middleware limits.
type UploadConfig struct {
	MaxFileSize   int64 // general files
	MaxAvatarSize int64
	UserQuota     int64 // total bytes per user
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret     string
	CookieName    string
	TokenLifetime int // hours
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Database       *DatabaseConfig
	Storage        *StorageConfig
	Upload         *UploadConfig
	Auth           *AuthConfig
	AllowedOrigins []string
	Debug          bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
	}
}

// DefaultDatabaseConfig provides default database settings
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Port:    5432,
		SSLMode: "require",
	}
}

// DefaultUploadConfig matches the limits enforced by the upload middleware:
// 20 MB for general files, 5 MB for avatars, 200 MB per-user quota.
func DefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxFileSize:   20 << 20,
		MaxAvatarSize: 5 << 20,
		UserQuota:     200 << 20,
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Try to load .env file from multiple possible locations
	envLocations := []string{
		".env",
		"../../.env", // project root when running from cmd/server
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		// Silent failure if no .env exists, which is fine
		_ = godotenv.Load()
	}

	serverConfig := DefaultConfig()

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			serverConfig.Port = port
		}
	}
	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}
	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		serverConfig.MetricsEnabled = metricsEnabled == "true"
	}

	dbConfig := DefaultDatabaseConfig()

	// Prioritize DATABASE_URL if provided
	if uri := os.Getenv("DATABASE_URL"); uri != "" {
		dbConfig.URI = uri
		dbConfig.SSLMode = getSSLModeFromURI(uri)
	} else {
		dbConfig.Host = getEnvOrDefault("DB_HOST", "localhost")

		if portStr := os.Getenv("DB_PORT"); portStr != "" {
			if port, err := strconv.Atoi(portStr); err == nil {
				dbConfig.Port = port
			}
		}

		dbConfig.User = os.Getenv("DB_USER")
		if dbConfig.User == "" {
			return nil, fmt.Errorf("DB_USER environment variable is required when DATABASE_URL is not set")
		}

		dbConfig.Password = os.Getenv("DB_PASSWORD")
		if dbConfig.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD environment variable is required when DATABASE_URL is not set")
		}

		dbConfig.Name = getEnvOrDefault("DB_NAME", "sloboda")
		dbConfig.SSLMode = getEnvOrDefault("DB_SSL_MODE", "require")

		dbConfig.URI = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			dbConfig.User,
			dbConfig.Password,
			dbConfig.Host,
			dbConfig.Port,
			dbConfig.Name,
			dbConfig.SSLMode,
		)
	}

	storageConfig := &StorageConfig{
		Endpoint:      getEnvOrDefault("S3_ENDPOINT", "localhost:9000"),
		AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		SecretKey:     os.Getenv("S3_SECRET_KEY"),
		Bucket:        getEnvOrDefault("S3_BUCKET", "sloboda"),
		UseSSL:        os.Getenv("S3_USE_SSL") == "true",
		PublicBaseURL: getEnvOrDefault("S3_PUBLIC_BASE_URL", "http://localhost:9000"),
	}

	uploadConfig := DefaultUploadConfig()
	if v := os.Getenv("UPLOAD_MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			uploadConfig.MaxFileSize = n
		}
	}
	if v := os.Getenv("UPLOAD_MAX_AVATAR_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			uploadConfig.MaxAvatarSize = n
		}
	}
	if v := os.Getenv("UPLOAD_USER_QUOTA"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			uploadConfig.UserQuota = n
		}
	}

	authConfig := &AuthConfig{
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "sloboda_dev_secret_change_me"),
		CookieName:    getEnvOrDefault("SESSION_COOKIE_NAME", "sloboda_session"),
		TokenLifetime: 24,
	}
	if v := os.Getenv("TOKEN_LIFETIME_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authConfig.TokenLifetime = n
		}
	}

	config := &Config{
		Server:         serverConfig,
		Database:       dbConfig,
		Storage:        storageConfig,
		Upload:         uploadConfig,
		Auth:           authConfig,
		AllowedOrigins: []string{"*"},
		Debug:          false,
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
	}

	return config, nil
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Helper function to extract sslmode from a DSN, defaults to "require"
func getSSLModeFromURI(uri string) string {
	if strings.Contains(uri, "sslmode=") {
		parts := strings.Split(uri, "?")
		if len(parts) > 1 {
			queryParams := strings.Split(parts[1], "&")
			for _, param := range queryParams {
				kv := strings.SplitN(param, "=", 2)
				if len(kv) == 2 && kv[0] == "sslmode" {
					return kv[1]
				}
			}
		}
	}
	return "require"
}
