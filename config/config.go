package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	Port       string
	Env        string
	// CatalogAPIBaseURL is the base URL the sale manager client talks to,
	// e.g. "http://localhost:8080/v1/admin".
	CatalogAPIBaseURL string
}

// LoadConfig loads configuration from environment variables. A missing .env
// file is not an error; the process environment alone is enough outside
// local development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		Port:              os.Getenv("PORT"),
		Env:               os.Getenv("ENV"),
		CatalogAPIBaseURL: os.Getenv("CATALOG_API_BASE_URL"),
	}

	if config.Port == "" {
		config.Port = "8080"
	}

	return config, nil
}
