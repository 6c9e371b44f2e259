package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/moviebook/internal/flagx"
)

// parseFlags overlays cfg with:
//
//	-a string   listen address
//	-s string   JWT HMAC secret key
//	-t int      access token validity (minutes)
//	-seed bool  create demo accounts
//	-l string   log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-seed", "-l"})

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to listen on")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	ttl := fs.Int("t", int(cfg.TokenTTL.Minutes()), "access token validity (in minutes)")
	fs.BoolVar(&cfg.SeedDemo, "seed", cfg.SeedDemo, "create demo accounts")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	cfg.TokenTTL = time.Duration(*ttl) * time.Minute
	return nil
}
