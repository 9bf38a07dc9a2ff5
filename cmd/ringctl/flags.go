package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ScenarioPath string
	LogLevel     string
	LogFormat    string
	MetricsAddr  string
	ShowVersion  bool
}

func parseFlags(args []string, stderr io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.ScenarioPath, "scenario",
		getEnv("RINGCTL_SCENARIO", ""),
		"Path to YAML replay scenario (env: RINGCTL_SCENARIO)")
	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("RINGCTL_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: RINGCTL_LOG_LEVEL)")
	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("RINGCTL_LOG_FORMAT", "text"),
		"Log format: json, text (env: RINGCTL_LOG_FORMAT)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr",
		getEnv("RINGCTL_METRICS_ADDR", ""),
		"Serve /metrics on this address after the run until interrupted (env: RINGCTL_METRICS_ADDR)")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, `%s - replay ring buffer scenarios

Usage: %s -scenario file.yaml [options]

Options:
`, appName, appName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := validateFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion {
		return nil
	}
	if cfg.ScenarioPath == "" {
		return fmt.Errorf("missing -scenario")
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if !slices.Contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
