package config

import (
	"flag"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Addr           string
	AllowedOrigins string
	SaveDir        string
	AIDelay        time.Duration
	LogLevel       string
}

// Load reads flags from args. Every flag falls back to an environment
// variable, then to a default.
func Load(args []string, getenv func(string) string) (Config, error) {
	def := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	delay, err := time.ParseDuration(def("MACAN_AI_DELAY", "800ms"))
	if err != nil {
		return Config{}, fmt.Errorf("MACAN_AI_DELAY: %w", err)
	}

	var cfg Config
	fs := flag.NewFlagSet("macanchess", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", def("MACAN_ADDR", ":3000"), "listen address")
	fs.StringVar(&cfg.AllowedOrigins, "origins", def("MACAN_ORIGINS", "http://localhost:5173"), "comma separated CORS origins")
	fs.StringVar(&cfg.SaveDir, "saves", def("MACAN_SAVE_DIR", "./saves"), "directory for saved games")
	fs.DurationVar(&cfg.AIDelay, "ai-delay", delay, "pause before the computer replies")
	fs.StringVar(&cfg.LogLevel, "log-level", def("MACAN_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.AIDelay < 0 {
		return Config{}, fmt.Errorf("ai-delay must not be negative, got %s", cfg.AIDelay)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	return cfg, nil
}

// Origins splits AllowedOrigins for the websocket origin check.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
