package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the whole application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
	Auth   AuthConfig
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
}

// StoreConfig holds one document store DSN per managed environment. An empty
// DSN leaves that environment unconfigured; the testdata environment never
// touches a store.
type StoreConfig struct {
	SB1DSN string `envconfig:"STORE_SB1_DSN"`
	QADSN  string `envconfig:"STORE_QA_DSN"`
}

// RedisConfig holds the preference store settings. An empty Addr falls back
// to the in-memory store, which loses preferences on restart.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// AuthConfig holds the token and identity gate settings.
type AuthConfig struct {
	JWTSecret       string   `envconfig:"JWT_SECRET" required:"true"`
	IdentityBaseURL string   `envconfig:"IDENTITY_BASE_URL" default:"https://graph.microsoft.com/v1.0"`
	AllowedDomains  []string `envconfig:"ALLOWED_MAIL_DOMAINS" default:"symphogen.com"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
