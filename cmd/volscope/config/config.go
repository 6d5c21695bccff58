// Package config implements the volscope command-line configuration.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all volscope configuration. Component is the single
// positional argument; everything else comes from flags with environment
// fallbacks.
type Config struct {
	Component  string
	Listen     string
	Count      int
	Start      time.Time
	Cadence    time.Duration
	Seed       int64
	Presence   float64
	WindowSize int
	LogFormat  string
	LogLevel   string
}

// ParseFlags parses command-line flags and environment variables into a
// Config. A .env file in the working directory is loaded first, if present.
// Exits with a usage error if the component argument is missing, and with
// status 1 on invalid values.
func ParseFlags() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	flag.StringVar(&cfg.Listen, "listen", getEnv("LISTEN", ":8080"), "HTTP listen address")

	// Data generation
	flag.IntVar(&cfg.Count, "count", getEnvInt("COUNT", 120), "Readings per series")
	start := flag.String("start", getEnv("START", "2023-01-01T00:00:00Z"), "First timestamp (RFC3339)")
	flag.DurationVar(&cfg.Cadence, "cadence", getEnvDuration("CADENCE", 30*time.Minute), "Spacing between readings")
	flag.Int64Var(&cfg.Seed, "seed", getEnvInt64("SEED", 0), "Random seed (0 derives one from the clock)")
	flag.Float64Var(&cfg.Presence, "presence", getEnvFloat("PRESENCE", 0.8), "Probability a reading carries a component label")

	// View
	flag.IntVar(&cfg.WindowSize, "window-size", getEnvInt("WINDOW_SIZE", 20), "Timestamps visible at once")

	// Logging
	flag.StringVar(&cfg.LogFormat, "log-format", getEnv("LOG_FORMAT", "text"), "Log format: text or json")
	flag.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <component>\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Plots dev and prod volumes for the named component (e.g. ComponentA).")
		fmt.Fprintln(flag.CommandLine.Output(), "\nFlags:")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: component argument is required")
		flag.Usage()
		os.Exit(2)
	}
	cfg.Component = flag.Arg(0)

	t, err := time.Parse(time.RFC3339, *start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -start value %q: %v\n", *start, err)
		os.Exit(1)
	}
	cfg.Start = t

	if cfg.Count <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -count must be positive")
		os.Exit(1)
	}
	if cfg.Cadence <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -cadence must be positive")
		os.Exit(1)
	}
	if cfg.WindowSize <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -window-size must be positive")
		os.Exit(1)
	}
	if cfg.Presence < 0 || cfg.Presence > 1 {
		fmt.Fprintln(os.Stderr, "Error: -presence must be in [0, 1]")
		os.Exit(1)
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// warnEnv reports a malformed environment value before falling back to the
// default, so env values are not silently weaker than their flag equivalents.
func warnEnv(key, value string, defaultValue interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: ignoring invalid %s=%q, using %v\n", key, value, defaultValue)
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err != nil {
			warnEnv(key, value, defaultValue)
			return defaultValue
		}
		return i
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			warnEnv(key, value, defaultValue)
			return defaultValue
		}
		return i
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			warnEnv(key, value, defaultValue)
			return defaultValue
		}
		return f
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			warnEnv(key, value, defaultValue)
			return defaultValue
		}
		return d
	}
	return defaultValue
}
