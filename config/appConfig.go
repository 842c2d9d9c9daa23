package config

import (
	"errors"
	"fmt"
	"gocompare_api/config/values"
	"gopkg.in/yaml.v3"
	"os"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string       `yaml:"driver"`
	Sqlite SqliteConfig `yaml:"sqlite"`
}

type ApifyConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

type MeilisearchConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	Index  string `yaml:"index"`
}

func (m MeilisearchConfig) Enabled() bool {
	return m.URL != ""
}

type WebhookConfig struct {
	JWTSecret string  `yaml:"jwt_secret"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second
	Burst     int     `yaml:"burst"`
}

type CorsConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type AppConfig struct {
	Server      ServerConfig         `yaml:"server"`
	Database    DatabaseConfig       `yaml:"database"`
	Postgres    PostgresConfig       `yaml:"postgres"`
	Apify       ApifyConfig          `yaml:"apify"`
	Meilisearch MeilisearchConfig    `yaml:"meilisearch"`
	Webhook     WebhookConfig        `yaml:"webhook"`
	Cors        CorsConfig           `yaml:"cors"`
	Ingest      values.IngestValues  `yaml:"ingest"`
	Display     values.DisplayValues `yaml:"display"`
}

// LoadConfig decodes the YAML file at filename, then applies defaults and
// environment overrides. An empty filename or a missing file yields the
// defaults plus environment.
func LoadConfig(filename string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if filename != "" {
		file, err := os.Open(filename)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("open config %s: %w", filename, err)
		default:
			defer file.Close()
			decoder := yaml.NewDecoder(file)
			if err := decoder.Decode(cfg); err != nil {
				return nil, fmt.Errorf("decode config %s: %w", filename, err)
			}
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Apify.BaseURL == "" {
		c.Apify.BaseURL = "https://api.apify.com/v2"
	}
	if c.Meilisearch.Index == "" {
		c.Meilisearch.Index = "products"
	}
	if c.Webhook.RateLimit <= 0 {
		c.Webhook.RateLimit = 1
	}
	if c.Webhook.Burst <= 0 {
		c.Webhook.Burst = 5
	}
	if len(c.Cors.AllowedOrigins) == 0 {
		c.Cors.AllowedOrigins = []string{"*"}
	}
	c.Ingest = c.Ingest.WithDefaults()
	c.Display = c.Display.WithDefaults()
}

func (c *AppConfig) applyEnv() {
	c.Server.Addr = getEnv("SERVER_ADDR", c.Server.Addr)
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Sqlite.Path = getEnv("SQLITE_PATH", c.Database.Sqlite.Path)

	c.Postgres.Host = getEnv("POSTGRES_HOST", orDefault(c.Postgres.Host, "localhost"))
	c.Postgres.Port = getEnv("POSTGRES_PORT", orDefault(c.Postgres.Port, "5432"))
	c.Postgres.User = getEnv("POSTGRES_USER", orDefault(c.Postgres.User, "postgres"))
	c.Postgres.Password = getEnv("POSTGRES_PASSWORD", orDefault(c.Postgres.Password, "postgres"))
	c.Postgres.DBName = getEnv("POSTGRES_NAME", orDefault(c.Postgres.DBName, "postgres"))
	c.Postgres.SSLMode = getEnv("POSTGRES_SSLMODE", orDefault(c.Postgres.SSLMode, "disable"))

	c.Apify.BaseURL = getEnv("APIFY_BASE_URL", c.Apify.BaseURL)
	c.Apify.Token = getEnv("APIFY_TOKEN", c.Apify.Token)

	c.Meilisearch.URL = getEnv("MEILI_URL", c.Meilisearch.URL)
	c.Meilisearch.APIKey = getEnv("MEILI_API_KEY", c.Meilisearch.APIKey)

	c.Webhook.JWTSecret = getEnv("WEBHOOK_JWT_SECRET", c.Webhook.JWTSecret)
	c.Webhook.RateLimit = getEnvFloat("WEBHOOK_RATE_LIMIT", c.Webhook.RateLimit)
}

// DbConfig returns the connection settings of the configured driver.
func (c *AppConfig) DbConfig() DbConfig {
	if c.Database.Driver == "sqlite" {
		return &c.Database.Sqlite
	}
	return &c.Postgres
}

func orDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
