package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql, sqlite
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Redis struct {
		URL string `yaml:"url"` // пусто: кэш метаданных отключен
	} `yaml:"redis"`

	Metadata struct {
		Timeout   time.Duration `yaml:"timeout"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"metadata"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Load собирает конфигурацию: .env -> config.yaml (если есть) -> переменные окружения.
func Load() (*Config, error) {
	// .env необязателен, в проде переменные приходят из окружения
	_ = godotenv.Load()

	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	if err := loadYAML(configPath, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	if cfg.Metadata.UserAgent == "" {
		cfg.Metadata.UserAgent = DefaultUserAgent
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Database.Driver = "postgres"
	cfg.JWT.TTL = 60 * 24
	cfg.Metadata.Timeout = 10 * time.Second
	cfg.Metadata.CacheTTL = 6 * time.Hour
	cfg.Metadata.UserAgent = DefaultUserAgent
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	return cfg
}

func loadYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.LogLevel, "LOG_LEVEL")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setInt(&cfg.JWT.TTL, "JWT_TTL")
	setString(&cfg.Redis.URL, "REDIS_URL")
	setDuration(&cfg.Metadata.Timeout, "METADATA_TIMEOUT")
	setDuration(&cfg.Metadata.CacheTTL, "METADATA_CACHE_TTL")
	setString(&cfg.FirstAdminEmail, "FIRST_ADMIN_EMAIL")
	setString(&cfg.FirstAdminPassword, "FIRST_ADMIN_PASSWORD")
}

func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("SERVER_PORT must be positive")
	}
	if c.Metadata.Timeout <= 0 {
		return fmt.Errorf("metadata timeout must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
