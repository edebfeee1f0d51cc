package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress              string
	DatabaseURI             string
	RatesAddress            string
	RatesAPIKey             string
	RatesFetchTimeout       time.Duration
	PriorityRefreshInterval time.Duration
	ProcessInterval         time.Duration
	NotifyLogPath           string
	ShutdownTimeout         time.Duration
}

const (
	defaultRunAddress              = ":8080"
	defaultRatesFetchTimeout       = 10 * time.Second
	defaultPriorityRefreshInterval = 5 * time.Minute
	defaultProcessInterval         = 5 * time.Minute
	defaultNotifyLogPath           = "completed_orders.log"
	defaultShutdownTimeout         = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:              getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:             getString(lookup, "DATABASE_URI", ""),
		RatesAddress:            getString(lookup, "RATES_SYSTEM_ADDRESS", ""),
		RatesAPIKey:             getString(lookup, "RATES_API_KEY", ""),
		RatesFetchTimeout:       getDuration(lookup, "RATES_FETCH_TIMEOUT", defaultRatesFetchTimeout),
		PriorityRefreshInterval: getDuration(lookup, "PRIORITY_REFRESH_INTERVAL", defaultPriorityRefreshInterval),
		ProcessInterval:         getDuration(lookup, "ORDER_PROCESS_INTERVAL", defaultProcessInterval),
		NotifyLogPath:           getString(lookup, "NOTIFY_LOG_PATH", defaultNotifyLogPath),
		ShutdownTimeout:         getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("ordermart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		fetchTimeoutStr    = cfg.RatesFetchTimeout.String()
		refreshIntervalStr = cfg.PriorityRefreshInterval.String()
		processIntervalStr = cfg.ProcessInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RatesAddress, "r", cfg.RatesAddress, "Currency rate source base URL")
	fs.StringVar(&cfg.RatesAPIKey, "rates-api-key", cfg.RatesAPIKey, "Static credential for the rate source")
	fs.StringVar(&cfg.NotifyLogPath, "notify-log", cfg.NotifyLogPath, "Path of the completed orders log")
	fs.StringVar(&fetchTimeoutStr, "rates-timeout", fetchTimeoutStr, "Timeout of one rate fetch")
	fs.StringVar(&refreshIntervalStr, "refresh-interval", refreshIntervalStr, "Interval between priority refresh passes")
	fs.StringVar(&processIntervalStr, "process-interval", processIntervalStr, "Interval between order processing passes")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RatesFetchTimeout, err = time.ParseDuration(fetchTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid rates timeout: %w", err)
	}

	if cfg.PriorityRefreshInterval, err = time.ParseDuration(refreshIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}

	if cfg.ProcessInterval, err = time.ParseDuration(processIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid process interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if keyFile, ok := lookup("RATES_API_KEY_FILE"); ok && keyFile != "" {
		content, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read rates api key file: %w", err)
		}
		cfg.RatesAPIKey = string(content)
	}

	if cfg.RatesFetchTimeout <= 0 {
		cfg.RatesFetchTimeout = defaultRatesFetchTimeout
	}

	if cfg.PriorityRefreshInterval <= 0 {
		cfg.PriorityRefreshInterval = defaultPriorityRefreshInterval
	}

	if cfg.ProcessInterval <= 0 {
		cfg.ProcessInterval = defaultProcessInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.RatesAddress == "" {
		return nil, fmt.Errorf("rates system address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
