// Package config handles configuration of the development backend:
// defaults, an optional JSON file and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/moviebook/internal/common"
)

// Config holds runtime settings for the development backend.
//
// SecretKey signs access tokens (HS256). When empty, a random key is
// generated at load time and tokens do not survive a restart.
type Config struct {
	Addr      string
	SecretKey string
	TokenTTL  time.Duration
	// SeedDemo creates the demo accounts and their order history on start.
	SeedDemo bool
	LogLevel string
}

func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:8080"
	c.SecretKey = ""
	c.TokenTTL = time.Hour
	c.SeedDemo = true
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// flags. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.ensureSecret(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ensureSecret() error {
	if c.SecretKey != "" {
		return nil
	}
	key, err := common.MakeRandHexString(32)
	if err != nil {
		return fmt.Errorf("generate secret key: %w", err)
	}
	c.SecretKey = key
	return nil
}
