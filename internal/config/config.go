package config

import (
	"fmt"
	"time"

	"github.com/law-makers/racecard/internal/utils/headers"
	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Browser
	UserAgent  string
	Proxy      string
	ChromePath string
	Headless   bool
	Headers    map[string]string

	// Timeouts
	RaceNavTimeout    time.Duration
	ConsentTimeout    time.Duration
	RunnerRowsTimeout time.Duration
	FormNavTimeout    time.Duration
	FormPanelTimeout  time.Duration
	ReadTimeout       time.Duration
	Retries           int

	// Diagnostics
	SnapshotDir string
}

// Default returns a Config populated with the package defaults
func Default() *Config {
	return &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		UserAgent:         DefaultUserAgent,
		Headless:          DefaultHeadless,
		RaceNavTimeout:    DefaultRaceNavTimeout,
		ConsentTimeout:    DefaultConsentTimeout,
		RunnerRowsTimeout: DefaultRunnerRowsTimeout,
		FormNavTimeout:    DefaultFormNavTimeout,
		FormPanelTimeout:  DefaultFormPanelTimeout,
		ReadTimeout:       DefaultReadTimeout,
		Retries:           DefaultRetries,
	}
}

// Load builds a Config from the defaults and the CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	if cmd != nil {
		flags := cmd.Flags()
		lookup := func(name string) string {
			if f := flags.Lookup(name); f != nil {
				return f.Value.String()
			}
			return ""
		}

		if s := lookup("user-agent"); s != "" {
			cfg.UserAgent = s
		}
		cfg.Proxy = lookup("proxy")
		cfg.ChromePath = lookup("chrome-path")
		cfg.SnapshotDir = lookup("snapshot-dir")

		if lookup("headful") == "true" {
			cfg.Headless = false
		}
		if lookup("json") == "true" {
			cfg.JSONLog = true
		}
		switch {
		case lookup("verbose") == "true":
			cfg.LogLevel = "debug"
		case lookup("quiet") == "true":
			cfg.LogLevel = "error"
		}

		if raw, err := flags.GetStringArray("header"); err == nil && len(raw) > 0 {
			h, err := headers.ParseHeaders(raw)
			if err != nil {
				return nil, err
			}
			cfg.Headers = h
		}

		if n, err := flags.GetInt("retries"); err == nil {
			cfg.Retries = n
		}

		if s := lookup("timeout"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("invalid --timeout %q: %w", s, err)
			}
			cfg.RaceNavTimeout = d
		}
		if s := lookup("form-timeout"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("invalid --form-timeout %q: %w", s, err)
			}
			cfg.FormNavTimeout = d
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
