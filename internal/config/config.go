package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Client ClientConfig
	Server ServerConfig
	App    AppConfig
}

// ClientConfig drives the terminal client.
type ClientConfig struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	// CredentialDir overrides the default user config dir, mainly for tests.
	CredentialDir string
}

// ServerConfig drives the in-tree stub backend.
type ServerConfig struct {
	Port            int
	JWTSecret       string
	TokenExpiration string
	DatabasePath    string
	Seed            bool
}

// AppConfig holds shared application configuration
type AppConfig struct {
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	config := &Config{}

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	config.Client = ClientConfig{
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8000"),
		HTTPTimeout:   timeout,
		CredentialDir: getEnv("CREDENTIAL_DIR", ""),
	}

	serverPort, err := strconv.Atoi(getEnv("SERVER_PORT", "8000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	config.Server = ServerConfig{
		Port:            serverPort,
		JWTSecret:       getEnv("JWT_SECRET_KEY", ""),
		TokenExpiration: getEnv("JWT_EXPIRATION_TIME", "12h"),
		DatabasePath:    getEnv("DB_PATH", "shiftdesk.db"),
		Seed:            getEnv("SEED_DEMO_DATA", "false") == "true",
	}

	config.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return config, nil
}

// ValidateServer checks the fields the stub server cannot run without.
// The client side has usable defaults for everything.
func (c *Config) ValidateServer() error {
	if c.Server.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.Server.TokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT_EXPIRATION_TIME: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
