package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     string
	Database DatabaseConfig
	Session  SessionConfig
	Storage  StorageConfig
	Import   ImportConfig
	Slug     SlugConfig
}

type DatabaseConfig struct {
	URL         string
	AutoMigrate bool
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

// StorageConfig points at an S3 compatible object store. PublicURL is the
// base of the URLs handed back to clients, <PublicURL>/<bucket>/<key>.
type StorageConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	PublicURL string
	UseSSL    bool
}

type ImportConfig struct {
	BaseDir        string
	UploadMaxBytes int64
}

type SlugConfig struct {
	MaxAttempts int
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	cfg := read()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadImport is Load for the import command, which only needs the database.
func LoadImport() (*Config, error) {
	cfg := read()
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("configuration validation failed: DATABASE_URL is required")
	}
	return cfg, nil
}

func read() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:  getEnv("ENV", "production"),
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			URL:         os.Getenv("DATABASE_URL"),
			AutoMigrate: parseBool(getEnv("AUTO_MIGRATE", "true")),
		},
		Session: SessionConfig{
			Secret:       os.Getenv("SESSION_SECRET"),
			TTL:          parseDuration(getEnv("SESSION_TTL", "168h"), 7*24*time.Hour),
			CookieSecure: parseBool(getEnv("SESSION_COOKIE_SECURE", "true")),
		},
		Storage: StorageConfig{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			PublicURL: os.Getenv("S3_PUBLIC_URL"),
			UseSSL:    parseBool(getEnv("S3_USE_SSL", "true")),
		},
		Import: ImportConfig{
			BaseDir:        getEnv("IMPORT_BASE_DIR", "."),
			UploadMaxBytes: int64(parseInt(getEnv("UPLOAD_MAX_BYTES", "10485760"), 10<<20)),
		},
		Slug: SlugConfig{
			MaxAttempts: parseInt(getEnv("SLUG_MAX_ATTEMPTS", "500"), 500),
		},
	}
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Slug.MaxAttempts <= 0 {
		return fmt.Errorf("SLUG_MAX_ATTEMPTS must be positive")
	}
	if c.Import.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// StorageEnabled reports whether uploads can be served.
func (c *Config) StorageEnabled() bool {
	return c.Storage.AccessKey != "" && c.Storage.SecretKey != "" && c.Storage.PublicURL != ""
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseInt(value string, defaultValue int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func parseBool(value string) bool {
	return value == "true" || value == "1" || value == "yes"
}
