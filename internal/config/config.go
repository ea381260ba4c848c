package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/catalyst/backend/pkg/auth"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const devSessionSecret = "dev-secret-change-in-production-32bytes"

// Config is the server configuration.
type Config struct {
	Addr               string              `yaml:"addr"`
	DatabaseURL        string              `yaml:"database_url"`
	AutoMigrate        bool                `yaml:"auto_migrate"`
	FrontendURL        string              `yaml:"frontend_url"`
	SessionSecret      string              `yaml:"session_secret"`
	SessionTTL         time.Duration       `yaml:"session_ttl"`
	SecureCookies      bool                `yaml:"secure_cookies"`
	LogLevel           string              `yaml:"log_level"`
	LogFormat          string              `yaml:"log_format"`
	RateLimitPerMinute int                 `yaml:"rate_limit_per_minute"`
	TrustedProxyCount  int                 `yaml:"trusted_proxy_count"`
	ReadTimeout        time.Duration       `yaml:"read_timeout"`
	WriteTimeout       time.Duration       `yaml:"write_timeout"`
	Staff              []auth.StaffAccount `yaml:"staff"`
	// UploadDir holds intake attachments. Empty disables uploads.
	UploadDir string `yaml:"upload_dir"`
}

// Load reads .env files, then the environment, then the YAML file named by
// CONFIG_FILE if set. Later sources override earlier ones.
func Load() (*Config, error) {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile builds a Config from the environment and overlays the YAML file at path.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{
		Addr:               getEnv("ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "sqlite://data/catalyst.db"),
		AutoMigrate:        getBool("AUTO_MIGRATE", true),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:4321"),
		SessionSecret:      getEnv("SESSION_SECRET", devSessionSecret),
		SessionTTL:         getDuration("SESSION_TTL", 12*time.Hour),
		SecureCookies:      getBool("SECURE_COOKIES", false),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 10),
		TrustedProxyCount:  getInt("TRUSTED_PROXY_COUNT", 1),
		ReadTimeout:        getDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:       getDuration("WRITE_TIMEOUT", 10*time.Second),
		Staff:              parseStaff(os.Getenv("STAFF_ACCOUNTS")),
		UploadDir:          getEnv("UPLOAD_DIR", "data/uploads"),
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("rate_limit_per_minute must be at least 1")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	for _, s := range c.Staff {
		if s.Username == "" || s.PasswordHash == "" {
			return fmt.Errorf("staff account needs username and password_hash")
		}
	}
	return nil
}

// DevSecret reports whether the built-in development session secret is in use.
func (c *Config) DevSecret() bool {
	return c.SessionSecret == devSessionSecret
}

// parseStaff reads "user:hash,user:hash". bcrypt hashes contain no ':' or ','.
func parseStaff(s string) []auth.StaffAccount {
	var out []auth.StaffAccount
	for _, part := range strings.Split(s, ",") {
		user, hash, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || user == "" || hash == "" {
			continue
		}
		out = append(out, auth.StaffAccount{Username: user, PasswordHash: hash})
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return def
}

func getInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}
