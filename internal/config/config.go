package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Notas"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Path        string        `envconfig:"DB_PATH" default:"data/notas.db"`
		BusyTimeout time.Duration `envconfig:"DB_BUSY_TIMEOUT" default:"5s"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
		// File is only used by the TUI, which owns stdout.
		File string `envconfig:"LOG_FILE" default:"notas.log"`
	}
}

// DSN builds the modernc sqlite connection string with the pragmas every
// connection in the pool needs.
func (c *Config) DSN() string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)",
		c.DB.Path, c.DB.BusyTimeout.Milliseconds())
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
