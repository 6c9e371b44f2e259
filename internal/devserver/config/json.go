package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/moviebook/internal/flagx"
	"github.com/dmitrijs2005/moviebook/internal/timex"
)

// JsonConfig is the on-disk form of Config.
type JsonConfig struct {
	Addr      string          `json:"addr"`
	SecretKey string          `json:"secret_key"`
	TokenTTL  *timex.Duration `json:"token_ttl"`
	SeedDemo  *bool           `json:"seed_demo"`
	LogLevel  string          `json:"log_level"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenTTL != nil {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.SeedDemo != nil {
		cfg.SeedDemo = *jc.SeedDemo
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
