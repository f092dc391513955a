package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL can be set at build time to bake the auth service address
// into the binary. Example: go build -ldflags "-X 'github.com/nfrund/authflow/internal/config.DefaultAPIBaseURL=https://api.example.com'"
var DefaultAPIBaseURL string

// Provider exposes read access to the configuration so handlers and services
// can depend on an interface instead of the concrete struct.
type Provider interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
	GetServerAddr() string
	GetSessionSecret() string
	GetTokenStore() string
	GetRedisURL() string
	GetLogFormat() string
	GetLogLevel() string
}

// Config holds all configuration for the application.
type Config struct {
	APIBaseURL    string
	APITimeout    time.Duration
	ServerAddr    string
	SessionSecret string
	TokenStore    string
	RedisURL      string
	LogFormat     string
	LogLevel      string
}

// New loads configuration from environment variables, reading a .env file
// first when one exists.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function. Missing values fall back to
// their defaults; invalid durations are treated as unset.
func FromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		APIBaseURL:    strings.TrimRight(getenv("AUTH_API_BASE_URL"), "/"),
		ServerAddr:    getenv("SERVER_ADDR"),
		SessionSecret: getenv("SESSION_SECRET"),
		TokenStore:    strings.ToLower(getenv("TOKEN_STORE")),
		RedisURL:      getenv("REDIS_URL"),
		LogFormat:     getenv("LOG_FORMAT"),
		LogLevel:      getenv("LOG_LEVEL"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = strings.TrimRight(DefaultAPIBaseURL, "/")
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}
	if cfg.TokenStore == "" {
		cfg.TokenStore = "cookie"
	}
	if raw := getenv("AUTH_API_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.APITimeout = d
		}
	}

	return cfg
}

// Validate reports the required settings that are missing for the web front end.
func (c *Config) Validate() error {
	var missing []string
	if c.APIBaseURL == "" {
		missing = append(missing, "AUTH_API_BASE_URL")
	}
	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if c.TokenStore == "redis" && c.RedisURL == "" {
		missing = append(missing, "REDIS_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	switch c.TokenStore {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unknown token store: %s", c.TokenStore)
	}
	return nil
}

func (c *Config) GetAPIBaseURL() string        { return c.APIBaseURL }
func (c *Config) GetAPITimeout() time.Duration { return c.APITimeout }
func (c *Config) GetServerAddr() string        { return c.ServerAddr }
func (c *Config) GetSessionSecret() string     { return c.SessionSecret }
func (c *Config) GetTokenStore() string        { return c.TokenStore }
func (c *Config) GetRedisURL() string          { return c.RedisURL }
func (c *Config) GetLogFormat() string         { return c.LogFormat }
func (c *Config) GetLogLevel() string          { return c.LogLevel }
