package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"wordleclub/database"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	ListenAddr string
	BaseURL    string // External base URL, used for invite links

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Reveal configuration
	RevealTimezone   string // IANA zone the day keys and cutoff are evaluated in
	RevealCutoffHour int    // Hour of day after which a day's results always show (0-23)

	// External service configuration
	RecapServiceURL    string // AI recap endpoint; empty disables recap generation
	ReactionServiceURL string // Reaction image endpoint; empty disables lookups

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// HTTP
		ListenAddr: getEnvWithDefault("LISTEN_ADDR", ":8080"),
		BaseURL:    getEnvWithDefault("BASE_URL", "http://localhost:8080"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Reveal policy
		RevealTimezone:   getEnvWithDefault("REVEAL_TIMEZONE", "America/New_York"),
		RevealCutoffHour: 13,

		// External services
		RecapServiceURL:    os.Getenv("RECAP_SERVICE_URL"),
		ReactionServiceURL: os.Getenv("REACTION_SERVICE_URL"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if hour := os.Getenv("REVEAL_CUTOFF_HOUR"); hour != "" {
		parsedHour, err := strconv.Atoi(hour)
		if err != nil || parsedHour < 0 || parsedHour > 23 {
			return nil, fmt.Errorf("REVEAL_CUTOFF_HOUR must be an hour between 0 and 23, got %q", hour)
		}
		config.RevealCutoffHour = parsedHour
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		// If DatabaseName is provided, ensure it's not empty
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:      "test",
		ListenAddr:       ":0",
		BaseURL:          "http://localhost:8080",
		RevealTimezone:   "America/New_York",
		RevealCutoffHour: 13,
	}
}
