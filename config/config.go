// Package config maps ACTA_* environment variables onto a typed struct.
// Command-line flags override what is loaded here.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ByLCY/acta/layout"
)

// Backends accepted by Backend.
const (
	BackendCanvas = "canvas"
	BackendFPDF   = "fpdf"
)

// Config holds runtime settings for the CLI and the HTTP server.
type Config struct {
	// Rendering
	Backend       string `env:"BACKEND"        envDefault:"canvas"`
	FooterCaption string `env:"FOOTER_CAPTION"`
	Author        string `env:"AUTHOR"`
	HidePageNums  bool   `env:"HIDE_PAGE_NUMBERS" envDefault:"false"`

	// Margin is applied to all four sides of a US Letter page.
	Margin string `env:"MARGIN" envDefault:"2.5cm"`

	// Delivery
	OutputDir    string   `env:"OUTPUT_DIR"    envDefault:"output"`
	PrintCommand string   `env:"PRINT_COMMAND" envDefault:"lp"`
	PrintArgs    []string `env:"PRINT_ARGS"    envSeparator:" "`

	// Server
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	Debug      bool   `env:"DEBUG"       envDefault:"false"`

	// Optional document store
	RedisURL    string        `env:"REDIS_URL"`
	RedisTTL    time.Duration `env:"REDIS_TTL"    envDefault:"24h"`
	RedisPrefix string        `env:"REDIS_PREFIX" envDefault:"acta:"`
}

// Load parses the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "ACTA_"}); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no component can honour.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendCanvas, BackendFPDF:
	default:
		return fmt.Errorf("config: unknown backend %q (want %s or %s)", c.Backend, BackendCanvas, BackendFPDF)
	}
	if m := layout.ParseLength(c.Margin); m.IsZero() {
		return fmt.Errorf("config: invalid margin %q", c.Margin)
	} else if err := c.Geometry().Validate(); err != nil {
		return fmt.Errorf("config: margin %s: %w", m, err)
	}
	if c.RedisTTL < 0 {
		return fmt.Errorf("config: negative redis TTL %s", c.RedisTTL)
	}
	return nil
}

// Geometry is the US Letter page with Margin on every side.
func (c *Config) Geometry() layout.PageGeometry {
	return layout.Letter(layout.ParseLength(c.Margin).Points())
}

// Addr is the listen address for the server.
func (c *Config) Addr() string { return ":" + c.ServerPort }

// HasStore reports whether a Redis document store is configured.
func (c *Config) HasStore() bool { return c.RedisURL != "" }
