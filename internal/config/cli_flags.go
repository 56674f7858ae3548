package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	cmd.PersistentFlags().String("proxy", "", "Send browser traffic through a proxy (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", DefaultRaceNavTimeout.String(), "Navigation timeout for the racecard page")
	cmd.PersistentFlags().Int("retries", DefaultRetries, "Attempts per page load; only 429 and 5xx answers are retried")
	cmd.PersistentFlags().String("form-timeout", DefaultFormNavTimeout.String(), "Navigation timeout for each horse page")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().StringArrayP("header", "H", nil, "Extra request header for every page (e.g., -H \"Accept-Language: en-GB\")")
	cmd.PersistentFlags().String("chrome-path", "", "Path to the Chrome/Chromium executable")
	cmd.PersistentFlags().Bool("headful", false, "Show the browser window")
	cmd.PersistentFlags().String("snapshot-dir", "", "Write HTML snapshots of fetched pages to this directory")
}
