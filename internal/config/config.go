package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	APIBaseURL     string
	DataDir        string
	RequestTimeout time.Duration
	RazorpayKeyID  string
	LogLevel       string
	LogFormat      string
	Environment    string // development, staging, production
}

// Load loads configuration from environment variables and validates for production
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:5000"),
		DataDir:        getEnv("DATA_DIR", defaultDataDir()),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
		RazorpayKeyID:  getEnv("RAZORPAY_KEY_ID", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		Environment:    getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	return cfg
}

// Validate checks configuration for security and correctness
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive (got %s)", c.RequestTimeout)
	}

	if c.IsProduction() {
		if !strings.HasPrefix(c.APIBaseURL, "https://") {
			return fmt.Errorf("API_BASE_URL must use HTTPS in production (got %s)", c.APIBaseURL)
		}
		if c.RazorpayKeyID == "" {
			log.Println("WARNING: RAZORPAY_KEY_ID is not set, card payments will be unavailable")
		}
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev" || c.Environment == ""
}

// defaultDataDir places local state under the user config directory,
// falling back to a hidden directory in the working directory.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".monoshop"
	}
	return filepath.Join(base, "monoshop")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	// Plain integers are treated as seconds
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Invalid %s value %q, using default %s", key, value, defaultValue)
	return defaultValue
}
