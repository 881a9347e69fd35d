package config

import (
	"os"
	"strconv"

	"doc-editor-shell/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort   string
	LogLevel     string
	DataDir      string
	StorageLimit int64
	MaxFileSize  int64
	InMemory     bool
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:   getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		DataDir:      getEnvOrDefault("DATA_DIR", "./data"),
		StorageLimit: getEnvInt64OrDefault("STORAGE_LIMIT", 5*1024*1024),
		MaxFileSize:  getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024),
		InMemory:     getEnvBoolOrDefault("STORAGE_IN_MEMORY", false),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetDataDir returns the directory backing the persistent store
func (c *AppConfig) GetDataDir() string {
	return c.DataDir
}

// GetStorageLimit returns the persistent store write ceiling in bytes
func (c *AppConfig) GetStorageLimit() int64 {
	return c.StorageLimit
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// StorageInMemory reports whether the store should be ephemeral
func (c *AppConfig) StorageInMemory() bool {
	return c.InMemory
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
