package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/moviebook/internal/flagx"
)

// parseFlags overlays cfg with the flags it knows about:
//
//	-a string   backend base URL
//	-d int      registration redirect delay (milliseconds)
//	-l string   log level
//
// Other arguments are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-l"})

	fs := flag.NewFlagSet("moviebook", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	delay := fs.Int64("d", cfg.RedirectDelay.Milliseconds(), "redirect delay after registration (ms)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *delay < 0 {
		return fmt.Errorf("parse flags: negative redirect delay %d", *delay)
	}

	cfg.RedirectDelay = time.Duration(*delay) * time.Millisecond
	return nil
}
