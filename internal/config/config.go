package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Caderneta"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Storage struct {
		// Dir holds the bbolt file. Empty means ~/.caderneta.
		Dir       string `envconfig:"DATA_DIR" default:""`
		File      string `envconfig:"DATA_FILE" default:"caderneta.db"`
		Namespace string `envconfig:"STORAGE_NAMESPACE" default:"caderneta"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET" default:"caderneta-dev-secret"`
	}

	HTTP struct {
		CORSOrigin string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
	}
}

// DatabasePath resolves the full path of the bbolt file, creating the
// data directory if needed.
func (c *Config) DatabasePath() (string, error) {
	dir := c.Storage.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home dir: %w", err)
		}

		dir = filepath.Join(home, ".caderneta")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}

	return filepath.Join(dir, c.Storage.File), nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
