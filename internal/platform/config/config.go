package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	RateLimit          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string

	// Claim retry on transient storage conflicts
	ClaimMaxRetries   int
	ClaimRetryBackoff time.Duration

	DirectoryCacheSize int
	DirectoryCacheTTL  time.Duration

	DefaultPageSize int
	MaxPageSize     int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "cod-ledger")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("CLAIM_MAX_RETRIES", 3)
	viper.SetDefault("CLAIM_RETRY_BACKOFF", "25ms")
	viper.SetDefault("DIRECTORY_CACHE_SIZE", 1024)
	viper.SetDefault("DIRECTORY_CACHE_TTL", "10m")
	viper.SetDefault("DEFAULT_PAGE_SIZE", 20)
	viper.SetDefault("MAX_PAGE_SIZE", 100)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.StorageDriver = strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	if cfg.StorageDriver != StorageMemory && cfg.StorageDriver != StoragePostgres {
		log.Printf("Warning: Invalid value for STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StorageDriver == StoragePostgres {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "cod-ledger"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.ClaimMaxRetries = viper.GetInt("CLAIM_MAX_RETRIES")
	if cfg.ClaimMaxRetries < 0 {
		log.Printf("Warning: Invalid value for CLAIM_MAX_RETRIES (%d). Defaulting to 3.\n", cfg.ClaimMaxRetries)
		cfg.ClaimMaxRetries = 3
	}
	cfg.ClaimRetryBackoff = parseDuration("CLAIM_RETRY_BACKOFF", 25*time.Millisecond)

	cfg.DirectoryCacheSize = viper.GetInt("DIRECTORY_CACHE_SIZE")
	if cfg.DirectoryCacheSize <= 0 {
		log.Printf("Warning: Invalid value for DIRECTORY_CACHE_SIZE (%d). Defaulting to 1024.\n", cfg.DirectoryCacheSize)
		cfg.DirectoryCacheSize = 1024
	}
	cfg.DirectoryCacheTTL = parseDuration("DIRECTORY_CACHE_TTL", 10*time.Minute)

	cfg.DefaultPageSize = viper.GetInt("DEFAULT_PAGE_SIZE")
	cfg.MaxPageSize = viper.GetInt("MAX_PAGE_SIZE")
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	if cfg.DefaultPageSize <= 0 || cfg.DefaultPageSize > cfg.MaxPageSize {
		log.Printf("Warning: Invalid value for DEFAULT_PAGE_SIZE (%d). Defaulting to 20.\n", cfg.DefaultPageSize)
		cfg.DefaultPageSize = 20
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	if cfg.PosthogAPIKey == "" {
		log.Println("Warning: POSTHOG_API_KEY not set. Analytics events will not be sent.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
