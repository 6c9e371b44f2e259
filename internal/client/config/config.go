package config

import (
	"time"
)

// Config holds runtime settings for the moviebook client.
type Config struct {
	// ServerURL is the base URL of the REST backend.
	ServerURL string
	// RedirectDelay is how long the registration notification stays before
	// the login screen opens.
	RedirectDelay time.Duration
	// SessionDSN is the SQLite DSN backing the session store.
	SessionDSN string
	LogLevel   string
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RedirectDelay = 2000 * time.Millisecond
	c.SessionDSN = ":memory:"
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
	return cfg, nil
}
