package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/moviebook/internal/flagx"
	"github.com/dmitrijs2005/moviebook/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations use timex.Duration so
// they can be written as "2s" or as integer nanoseconds.
type JsonConfig struct {
	ServerURL     string          `json:"server_url"`
	RedirectDelay *timex.Duration `json:"redirect_delay"`
	SessionDSN    string          `json:"session_dsn"`
	LogLevel      string          `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config. Keys
// missing from the file keep their current value.
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

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RedirectDelay != nil {
		cfg.RedirectDelay = jc.RedirectDelay.Duration
	}
	if jc.SessionDSN != "" {
		cfg.SessionDSN = jc.SessionDSN
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
