package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location, relative to the working
// directory.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port                   string   `yaml:"port"`
	LogLevel               string   `yaml:"logLevel"`
	DatabaseURL            string   `yaml:"databaseURL"`
	RedisAddr              string   `yaml:"redisAddr"`
	RedisPassword          string   `yaml:"redisPassword"`
	SessionTTL             string   `yaml:"sessionTTL"`
	SeedFile               string   `yaml:"seedFile"`
	TrustedProxyCIDRs      []string `yaml:"trustedProxyCidrs"`
	CartRateLimitPerMinute int      `yaml:"cartRateLimitPerMinute"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("BOOKSTORE_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("BOOKSTORE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BOOKSTORE_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("BOOKSTORE_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("BOOKSTORE_REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("BOOKSTORE_SESSION_TTL"); v != "" {
		cfg.SessionTTL = v
	}
	if v := os.Getenv("BOOKSTORE_SEED_FILE"); v != "" {
		cfg.SeedFile = v
	}
	if v := os.Getenv("BOOKSTORE_CART_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CartRateLimitPerMinute = n
		}
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	return nil
}

// ParseSessionTTL parses the session idle expiry, defaulting to 30 minutes
// when unset.
func ParseSessionTTL(value string) (time.Duration, error) {
	if value == "" {
		return 30 * time.Minute, nil
	}
	ttl, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse sessionTTL: %w", err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("sessionTTL must be positive, got %q", value)
	}
	return ttl, nil
}
