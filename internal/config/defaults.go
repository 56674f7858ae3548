package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel  = "warn"
	DefaultJSONLog   = false
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"
	DefaultHeadless  = true

	// Navigation only waits for the DOM to be parsed. The racecard document
	// is large and slow to serve, so it gets a generous budget.
	DefaultRaceNavTimeout    = 60 * time.Second
	DefaultConsentTimeout    = 5 * time.Second
	DefaultRunnerRowsTimeout = 20 * time.Second
	DefaultFormNavTimeout    = 30 * time.Second
	DefaultFormPanelTimeout  = 10 * time.Second
	DefaultReadTimeout       = 10 * time.Second

	MaxTimeout = 5 * time.Minute

	// Attempts per page load. Only a 429 or 5xx answer is ever retried.
	DefaultRetries = 1
	MaxRetries     = 10
)
