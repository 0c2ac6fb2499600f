package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultRateLimit = "100-M"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	JWTIssuer      string
	RulesFile      string
	MigrationsPath string
	RateLimit      string // ulule formatted, e.g. "100-M"
	AllowedOrigins []string
	MetricsEnabled bool

	// Audit side-channel
	AuditQueueSize   int
	AuditWorkers     int
	AuditMaxAttempts int
	AuditRetryBase   time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "finance-core")
	viper.SetDefault("RULES_FILE", "config/rules.yaml")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("RATE_LIMIT", defaultRateLimit)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("AUDIT_QUEUE_SIZE", 1024)
	viper.SetDefault("AUDIT_WORKERS", 2)
	viper.SetDefault("AUDIT_MAX_ATTEMPTS", 5)
	viper.SetDefault("AUDIT_RETRY_BASE", "100ms")
	viper.SetDefault("METRICS_ENABLED", true)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:    viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		JWTIssuer:        viper.GetString("JWT_ISSUER"),
		RulesFile:        viper.GetString("RULES_FILE"),
		MigrationsPath:   viper.GetString("MIGRATIONS_PATH"),
		RateLimit:        viper.GetString("RATE_LIMIT"),
		AllowedOrigins:   splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		MetricsEnabled:   viper.GetBool("METRICS_ENABLED"),
		AuditQueueSize:   viper.GetInt("AUDIT_QUEUE_SIZE"),
		AuditWorkers:     viper.GetInt("AUDIT_WORKERS"),
		AuditMaxAttempts: viper.GetInt("AUDIT_MAX_ATTEMPTS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.RulesFile == "" {
		log.Println("Warning: RULES_FILE not set. Using built-in currency and validation rules.")
	}

	retryStr := viper.GetString("AUDIT_RETRY_BASE")
	retryBase, err := time.ParseDuration(retryStr)
	if err != nil || retryBase <= 0 {
		retryBase = 100 * time.Millisecond
		if retryStr != "" {
			log.Printf("Warning: Invalid value for AUDIT_RETRY_BASE ('%s'). Defaulting to %s.\n", retryStr, retryBase.String())
		}
	}
	cfg.AuditRetryBase = retryBase

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
