package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultJWTSecret is used when BLOSSOM_JWT_SECRET is unset. It is fine
// for local development and UNSAFE for production; deployments must
// override it.
const DefaultJWTSecret = "blossom-super-secret-key-change-in-production"

// Config holds user preferences for the CLI client
type Config struct {
	ServerURL string `yaml:"server_url" json:"server_url"` // Blossom server base URL

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// ServerConfig holds everything the HTTP server needs, sourced from the
// environment.
type ServerConfig struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	BcryptCost  int
	SeedDemo    bool
}

// DefaultConfig returns default CLI settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".blossom", "logs", "blossom.log")
	}

	return &Config{
		ServerURL:  getEnv("BLOSSOM_SERVER_URL", "http://localhost:5001"),
		LogLevel:   getEnv("BLOSSOM_LOG_LEVEL", "INFO"),
		LogFile:    getEnv("BLOSSOM_LOG_FILE", logPath),
		LogConsole: getEnv("BLOSSOM_LOG_CONSOLE", "false") == "true",
	}
}

// LoadServer builds the server configuration from environment variables.
func LoadServer() ServerConfig {
	cfg := ServerConfig{
		Port:        getEnv("PORT", "5001"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("BLOSSOM_JWT_SECRET", DefaultJWTSecret),
		AccessTTL:   getEnvDuration("BLOSSOM_ACCESS_TTL", 24*time.Hour),
		RefreshTTL:  getEnvDuration("BLOSSOM_REFRESH_TTL", 7*24*time.Hour),
		BcryptCost:  10,
		SeedDemo:    getEnv("BLOSSOM_SEED_DEMO", "false") == "true",
	}
	return cfg
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// Load loads config from ~/.blossom/config.yaml
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".blossom", "config.yaml")

	// Check if exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return defaults if no config
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.blossom/config.yaml
func (c *Config) Save() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".blossom")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
