package helper

import "os"

// AppConfig holds the storefront server settings.
type AppConfig struct {
	Port    string
	GinMode string
}

// LoadConfigFromEnv loads server configuration from environment variables
func LoadConfigFromEnv() AppConfig {
	return AppConfig{
		Port:    getEnvOrDefault("APP_PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
