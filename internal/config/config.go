package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	AppName string
	Port    string

	// JWT
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Cookie for the refresh token
	CookieSecure   bool
	CookieSameSite string

	// CORS (React dev servers by default)
	CORSOrigins []string

	// User store
	DatabasePath string

	// Refresh-token revocation store. Memory-backed unless RedisAddr is set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Text acquisition
	FetchTimeout time.Duration

	// ClaimBuster
	ClaimBusterAPIKey  string
	ClaimBusterURL     string
	ClaimBusterTimeout time.Duration

	// Google Fact Check Tools
	FactCheckAPIKey      string
	FactCheckTimeout     time.Duration
	FactCheckConcurrency int

	// OpenAI / LLM
	OpenAIAPIKey  string
	LLMModel      string
	LLMTopNClaims int
	LLMMinSources int
	LLMTimeout    time.Duration
}

// LoadConfig loads configuration from a .env file and environment variables.
func LoadConfig() (*AppConfig, error) {
	// Attempt to load .env. If it doesn't exist, that's fine; environment
	// variables can still be used (common in containerized deployments).
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Info: Could not load .env file: %v (this is ok if using environment variables)\n", err)
	}

	config := &AppConfig{
		AppName:              getEnv("APP_NAME", "Claim-Polygraph API"),
		Port:                 getEnv("PORT", "8080"),
		SecretKey:            os.Getenv("SECRET_KEY"),
		AccessTokenTTL:       time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL:      time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 14)) * 24 * time.Hour,
		CookieSecure:         getEnvBool("COOKIE_SECURE", false),
		CookieSameSite:       getEnv("COOKIE_SAMESITE", "lax"),
		CORSOrigins:          splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		DatabasePath:         getEnv("DATABASE_PATH", "dev.db"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		FetchTimeout:         time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
		ClaimBusterAPIKey:    os.Getenv("CLAIMBUSTER_API_KEY"),
		ClaimBusterURL:       getEnv("CLAIMBUSTER_BATCH_URL", "https://idir.uta.edu/claimbuster/api/v2/score/text/sentences/"),
		ClaimBusterTimeout:   time.Duration(getEnvInt("CLAIMBUSTER_TIMEOUT_SECONDS", 30)) * time.Second,
		FactCheckAPIKey:      os.Getenv("FACT_CHECK_API_KEY"),
		FactCheckTimeout:     time.Duration(getEnvInt("FACTCHECK_TIMEOUT_SECONDS", 30)) * time.Second,
		FactCheckConcurrency: getEnvInt("FACTCHECK_CONCURRENCY", 4),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		LLMModel:             getEnv("LLM_MODEL", "gpt-5"),
		LLMTopNClaims:        getEnvInt("LLM_TOP_N_CLAIMS", 3),
		LLMMinSources:        getEnvInt("LLM_MIN_SOURCES", 2),
		LLMTimeout:           time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *AppConfig) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port number: %s", c.Port)
	}

	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}

	validSameSite := map[string]bool{"lax": true, "strict": true, "none": true}
	if !validSameSite[strings.ToLower(c.CookieSameSite)] {
		return fmt.Errorf("invalid COOKIE_SAMESITE: %s (must be 'lax', 'strict', or 'none')", c.CookieSameSite)
	}

	// Warn about missing optional configurations
	if c.ClaimBusterAPIKey == "" {
		fmt.Println("Warning: CLAIMBUSTER_API_KEY not set - checkworthiness scoring will fail upstream")
	}
	if c.FactCheckAPIKey == "" {
		fmt.Println("Warning: FACT_CHECK_API_KEY not set - fact-check search will fail upstream")
	}
	if c.OpenAIAPIKey == "" {
		fmt.Println("Warning: OPENAI_API_KEY not set - LLM verification will fail upstream")
	}

	return nil
}

// GetPort returns the port as an integer.
func (c *AppConfig) GetPort() int {
	port, _ := strconv.Atoi(c.Port) // Already validated in Validate()
	return port
}

// SameSite maps the configured cookie policy to the http package constant.
func (c *AppConfig) SameSite() http.SameSite {
	switch strings.ToLower(c.CookieSameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// HasRedis returns true if a Redis revocation store is configured.
func (c *AppConfig) HasRedis() bool {
	return c.RedisAddr != ""
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		fmt.Printf("Warning: invalid value for %s: %q (using default %d)\n", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
