package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultMaxBodyBytes = 16 << 20 // 16 MiB

type Config struct {
	Addr              string        `yaml:"addr"`
	DatabasePath      string        `yaml:"database_path"`
	UploadDir         string        `yaml:"upload_dir"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	RedirectBaseURL   string        `yaml:"redirect_base_url"`
	SessionSecret     string        `yaml:"session_secret"`
	JWTSecret         string        `yaml:"jwt_secret"`
	AdminPasswordHash string        `yaml:"admin_password_hash"`
	TokenDuration     time.Duration `yaml:"token_duration"`
	APITimeout        time.Duration `yaml:"timeout"`
}

// LoadConfig builds a Config from environment variables and, when path is
// non-empty, overlays values from a YAML file.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:              getEnv("INTAKE_ADDR", ":8080"),
		DatabasePath:      getEnv("INTAKE_DATABASE_PATH", "instance/job_portal.db"),
		UploadDir:         getEnv("INTAKE_UPLOAD_DIR", "uploads"),
		MaxBodyBytes:      getEnvInt64("INTAKE_MAX_BODY_BYTES", defaultMaxBodyBytes),
		RedirectBaseURL:   getEnv("INTAKE_REDIRECT_BASE_URL", "https://application.taskifyjobs.com/submit"),
		SessionSecret:     getEnv("INTAKE_SESSION_SECRET", "supersecretkey"),
		JWTSecret:         getEnv("INTAKE_JWT_SECRET", "supersecretkey"),
		AdminPasswordHash: getEnv("INTAKE_ADMIN_PASSWORD_HASH", ""),
		TokenDuration:     1 * time.Hour,
		APITimeout:        15 * time.Second,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks that the configuration is usable. Default secrets are only
// allowed when INTAKE_ENV is development (or unset).
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("upload_dir must not be empty")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive")
	}
	u, err := url.Parse(c.RedirectBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("redirect_base_url %q is not an absolute URL", c.RedirectBaseURL)
	}
	env := os.Getenv("INTAKE_ENV")
	if env != "" && env != "development" {
		if c.SessionSecret == "supersecretkey" {
			return fmt.Errorf("session_secret must be changed outside development")
		}
		if c.JWTSecret == "supersecretkey" {
			return fmt.Errorf("jwt_secret must be changed outside development")
		}
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}

	return def
}
