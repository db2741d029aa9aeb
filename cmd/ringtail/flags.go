package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"time"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	Ring        string
	Capacity    int
	Variant     string
	Policy      string
	File        string
	NATSURL     string
	Subject     string
	Output      string
	Reverse     bool
	Follow      bool
	Interval    time.Duration
	MetricsPort int
	LogLevel    string
	LogFormat   string
	ShowVersion bool
}

func parseFlags(args []string, stderr io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Define flags with environment variable fallback
	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("RINGTAIL_CONFIG", ""),
		"Path to a YAML or JSON configuration file (env: RINGTAIL_CONFIG)")

	fs.StringVar(&cfg.Ring, "ring",
		getEnv("RINGTAIL_RING", "default"),
		"Name of the ring in the configuration file (env: RINGTAIL_RING)")

	fs.IntVar(&cfg.Capacity, "n",
		getEnvInt("RINGTAIL_CAPACITY", 0),
		"Number of records to keep, overrides the ring's capacity (env: RINGTAIL_CAPACITY)")

	fs.StringVar(&cfg.Variant, "variant",
		getEnv("RINGTAIL_VARIANT", ""),
		"Ring variant: static, dynamic (env: RINGTAIL_VARIANT)")

	fs.StringVar(&cfg.Policy, "policy",
		getEnv("RINGTAIL_POLICY", ""),
		"Overflow policy: drop_oldest, drop_newest, block (env: RINGTAIL_POLICY)")

	fs.StringVar(&cfg.File, "file",
		getEnv("RINGTAIL_FILE", ""),
		"Read lines from this file instead of stdin (env: RINGTAIL_FILE)")

	fs.StringVar(&cfg.NATSURL, "nats-url",
		getEnv("RINGTAIL_NATS_URL", ""),
		"NATS server URL, overrides the configuration (env: RINGTAIL_NATS_URL)")

	fs.StringVar(&cfg.Subject, "subject",
		getEnv("RINGTAIL_SUBJECT", ""),
		"Tail this NATS subject instead of a file (env: RINGTAIL_SUBJECT)")

	fs.StringVar(&cfg.Output, "output",
		getEnv("RINGTAIL_OUTPUT", "text"),
		"Output format: text, json (env: RINGTAIL_OUTPUT)")

	fs.BoolVar(&cfg.Reverse, "reverse",
		getEnvBool("RINGTAIL_REVERSE", false),
		"Print newest records first (env: RINGTAIL_REVERSE)")

	fs.BoolVar(&cfg.Follow, "follow",
		getEnvBool("RINGTAIL_FOLLOW", false),
		"Print and drain the ring periodically (env: RINGTAIL_FOLLOW)")

	fs.DurationVar(&cfg.Interval, "interval",
		getEnvDuration("RINGTAIL_INTERVAL", time.Second),
		"Print interval with -follow (env: RINGTAIL_INTERVAL)")

	fs.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("RINGTAIL_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: RINGTAIL_METRICS_PORT)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("RINGTAIL_LOG_LEVEL", ""),
		"Log level: debug, info, warn, error (env: RINGTAIL_LOG_LEVEL)")

	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("RINGTAIL_LOG_FORMAT", ""),
		"Log format: json, text (env: RINGTAIL_LOG_FORMAT)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	fs.Usage = func() {
		printDetailedHelp(fs, stderr)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 && cfg.File == "" {
		cfg.File = fs.Arg(0)
	}

	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion {
		return nil
	}

	if cfg.Capacity < 0 {
		return fmt.Errorf("invalid capacity: %d", cfg.Capacity)
	}

	if !slices.Contains([]string{"text", "json"}, cfg.Output) {
		return fmt.Errorf("invalid output format: %s", cfg.Output)
	}

	if cfg.LogLevel != "" && !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "" && !slices.Contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	if cfg.Follow && cfg.Interval <= 0 {
		return fmt.Errorf("invalid follow interval: %v", cfg.Interval)
	}

	if cfg.Subject != "" && cfg.File != "" {
		return fmt.Errorf("-subject and -file are mutually exclusive")
	}

	return nil
}

func printDetailedHelp(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprintf(w, `%s - keep the last N records of a stream

Usage: %s [options] [file]

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # Last 20 lines of a log, newest first
  %s -n 20 -reverse /var/log/app.log

  # Tail a NATS subject, printing every 5 seconds as JSON
  %s -subject 'logs.>' -follow -interval 5s -output json

  # Use a named ring from a config file and export metrics
  %s -config ringtail.yaml -ring errors -metrics-port 9090

Version: %s
Build: %s
`, appName, appName, appName, Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
