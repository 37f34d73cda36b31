package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"hellbingo/database"
	"hellbingo/models"
)

// Config holds all application configuration
type Config struct {
	// Game configuration
	GameSeed         int64 // 0 means seed from the clock
	EnemyCount       int
	StartingCurrency int
	CheatsEnabled    bool

	// Database configuration (optional, enables the campaign archive)
	DatabaseURL  string
	DatabaseName string

	// NATS configuration (optional, enables event export)
	NATSServers string

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int
	OTelServiceName          string

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
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
			if os.Getenv("ENVIRONMENT") == "test" {
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

// ArchiveEnabled reports whether campaign results go to PostgreSQL
func (c *Config) ArchiveEnabled() bool {
	return c.DatabaseURL != ""
}

// EventExportEnabled reports whether events are exported to NATS
func (c *Config) EventExportEnabled() bool {
	return c.NATSServers != ""
}

// ResolveSeed returns the configured seed, or a clock-derived one when unset
func (c *Config) ResolveSeed() int64 {
	if c.GameSeed != 0 {
		return c.GameSeed
	}
	return time.Now().UnixNano()
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Game settings with defaults
		EnemyCount:       models.DefaultEnemyCount,
		StartingCurrency: models.DefaultStartingCurrency,
		CheatsEnabled:    os.Getenv("CHEATS_ENABLED") == "true",

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// OpenTelemetry
		OTelEnabled:              os.Getenv("OTEL_ENABLED") == "true",
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "console"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_OTLP_ENDPOINT", "localhost:4317"),
		OTelExportIntervalMillis: 30000,
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "hellbingo"),

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if seed := os.Getenv("GAME_SEED"); seed != "" {
		parsed, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("GAME_SEED must be an integer: %w", err)
		}
		config.GameSeed = parsed
	}
	if count := os.Getenv("ENEMY_COUNT"); count != "" {
		if parsed, err := strconv.Atoi(count); err == nil {
			config.EnemyCount = parsed
		}
	}
	if ink := os.Getenv("STARTING_INK"); ink != "" {
		if parsed, err := strconv.Atoi(ink); err == nil {
			config.StartingCurrency = parsed
		}
	}
	if interval := os.Getenv("OTEL_EXPORT_INTERVAL_MS"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil {
			config.OTelExportIntervalMillis = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	// Validate
	if config.EnemyCount < 1 {
		return nil, fmt.Errorf("ENEMY_COUNT must be at least 1, got %d", config.EnemyCount)
	}
	if config.StartingCurrency < 0 {
		return nil, fmt.Errorf("STARTING_INK cannot be negative, got %d", config.StartingCurrency)
	}
	if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
		return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
	}
	switch config.OTelExporterType {
	case "console", "otlp", "none":
	default:
		return nil, fmt.Errorf("OTEL_EXPORTER_TYPE must be console, otlp or none, got %q", config.OTelExporterType)
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
		GameSeed:         42,
		EnemyCount:       models.DefaultEnemyCount,
		StartingCurrency: models.DefaultStartingCurrency,
		OTelExporterType: "none",
		OTelServiceName:  "hellbingo-test",
		LogLevel:         "error",
	}
}
