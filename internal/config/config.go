package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Teller session
	CatalogPath  string
	BaseCurrency int
	ExportPath   string

	// Central services
	RateServiceURL  string
	PriceServiceURL string

	// Auth
	TellerID         string
	TellerPINHash    string
	JWTSecret        string
	JWTExpirationDur time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Teller session
		CatalogPath:  getEnv("CATALOG_PATH", "catalog.xml"),
		BaseCurrency: getEnvInt("BASE_CURRENCY", 0),
		ExportPath:   getEnv("EXPORT_PATH", "snapshot.db"),

		// Central services
		RateServiceURL:  getEnv("RATE_SERVICE_URL", "http://localhost:9001"),
		PriceServiceURL: getEnv("PRICE_SERVICE_URL", "http://localhost:9002"),

		// Auth
		TellerID:      getEnv("TELLER_ID", "teller1"),
		TellerPINHash: getEnv("TELLER_PIN_HASH", ""),
		JWTSecret:     getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "12h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 12h\n", expStr)
		expDur = 12 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}
