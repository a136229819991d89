package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL        string
	Port               string
	GoEnv              string
	JWTSecret          string
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	LogLevel           string

	// Organization identity printed on generated documents
	OrgName    string
	OrgTagline string
	OrgNIT     string

	// Logistics distribution list for workflow notifications
	LogisticsEmail string
	LogisticsPhone string
}

var currentConfig *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// In production, environment variables are set directly
			// so it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	config := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Port:               getEnv("PORT", "8080"),
		GoEnv:              getEnv("GO_ENV", "development"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		OrgName:            getEnv("ORG_NAME", "HELP SOLUCIONES INFORMATICAS"),
		OrgTagline:         getEnv("ORG_TAGLINE", "Expertos en Tecnología | Servicios y Productos"),
		OrgNIT:             getEnv("ORG_NIT", "900686378-7"),
		LogisticsEmail:     getEnv("LOGISTICS_EMAIL", "logistica@helpsoluciones.com.co"),
		LogisticsPhone:     getEnv("LOGISTICS_PHONE", "+573001234567"),
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	currentConfig = config
	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// GetConfig returns the currently loaded configuration
func GetConfig() *Config {
	if currentConfig == nil {
		currentConfig = &Config{
			Port:           "8080",
			GoEnv:          "development",
			JWTSecret:      getEnv("JWT_SECRET", "dev-secret"),
			OrgName:        "HELP SOLUCIONES INFORMATICAS",
			OrgTagline:     "Expertos en Tecnología | Servicios y Productos",
			OrgNIT:         "900686378-7",
			LogisticsEmail: "logistica@helpsoluciones.com.co",
			LogisticsPhone: "+573001234567",
		}
	}
	return currentConfig
}

// SetConfig replaces the current configuration (primarily for testing)
func SetConfig(c *Config) {
	currentConfig = c
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
