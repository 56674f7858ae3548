package config

import (
	"fmt"
	"time"
)

func validate(c *Config) error {
	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"race navigation timeout", c.RaceNavTimeout},
		{"consent timeout", c.ConsentTimeout},
		{"runner rows timeout", c.RunnerRowsTimeout},
		{"form navigation timeout", c.FormNavTimeout},
		{"form panel timeout", c.FormPanelTimeout},
		{"read timeout", c.ReadTimeout},
	}
	for _, t := range timeouts {
		if t.d <= 0 {
			return fmt.Errorf("%s must be > 0", t.name)
		}
		if t.d > MaxTimeout {
			return fmt.Errorf("%s must not exceed %s", t.name, MaxTimeout)
		}
	}
	if c.Retries < 1 || c.Retries > MaxRetries {
		return fmt.Errorf("retries must be between 1 and %d", MaxRetries)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent must not be empty")
	}
	return nil
}
