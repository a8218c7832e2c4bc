package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const devJWTSecret = "supersecretkey"

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
}

// LoadConfig builds the configuration from environment variables and,
// when path is non-empty, overrides it with the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("OBRAS_ADDR", ":8080"),
		JWTSecret:     getEnv("OBRAS_JWT_SECRET", devJWTSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("OBRAS_DATABASE_PATH", "construtora.db"),
		TokenDuration: 24 * time.Hour,
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

// Validate rejects configurations that must not reach production: an empty
// JWT secret, or the development default secret outside OBRAS_ENV=development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret must not be empty")
	}
	if c.JWTSecret == devJWTSecret && os.Getenv("OBRAS_ENV") != "development" {
		return fmt.Errorf("jwt_secret is the insecure development default; set OBRAS_JWT_SECRET")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
