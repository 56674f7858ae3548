package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/law-makers/racecard/internal/ui"
	"github.com/law-makers/racecard/internal/utils/output"
	urlutil "github.com/law-makers/racecard/internal/utils/url"
	"github.com/law-makers/racecard/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	preview    bool
	noProgress bool
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank <race-url>",
	Short: "Rank the runners of a race by recent form",
	Long: `Loads the racecard, follows every runner to its profile page to read the
last six finishing positions, scores them and prints the field best first.

A horse whose form page fails to load is still listed, with form N/A.`,
	Example: `  # Rank a race and print a table
  racecard rank https://www.attheraces.com/racecard/Ascot/17-October-2026/1330

  # Only show horse and score
  racecard rank https://www.attheraces.com/racecard/Ascot/17-October-2026/1330 --preview

  # Export to CSV and keep HTML snapshots for debugging selectors
  racecard rank https://www.attheraces.com/racecard/Ascot/17-October-2026/1330 -o ascot.csv --snapshot-dir ./snapshots`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVarP(&outputPath, "output", "o", "", "File path to save results (supports .csv, .json)")
	rankCmd.Flags().BoolVarP(&preview, "preview", "p", false, "Only show horse and score")
	rankCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Do not show the per-horse progress bar")
}

func runRank(cmd *cobra.Command, args []string) error {
	raceURL := strings.TrimSpace(args[0])
	if err := urlutil.ValidateURL(raceURL); err != nil {
		return err
	}

	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	ranker := a.Ranker
	if !noProgress && !a.Config.JSONLog {
		ranker = ranker.WithProgress(newProgressBar(cmd.ErrOrStderr()))
	}

	log.Info().Str("url", raceURL).Msg("Ranking race")
	runners, err := ranker.Rank(cmd.Context(), raceURL)
	if err != nil {
		return fmt.Errorf("failed to rank race: %w", err)
	}

	if len(runners) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Info("No runners found: the racecard had no usable race data."))
	}
	layout := output.LayoutFull
	if preview {
		layout = output.LayoutPreview
	}
	return emit(cmd.OutOrStdout(), runners, outputPath, layout)
}

// emit saves runners to path when given, otherwise prints them as a table
func emit(w io.Writer, runners []models.Runner, path string, layout output.Layout) error {
	if path == "" {
		if len(runners) > 0 {
			output.RenderTable(w, runners, layout)
		}
		return nil
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = output.SaveJSON(runners, path)
	case ".csv", "":
		err = output.SaveCSV(runners, path, layout)
	default:
		return fmt.Errorf("unsupported output format %q (use .csv or .json)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Info().Str("file", path).Int("runners", len(runners)).Msg("Output saved")
	fmt.Fprintln(w, ui.Success("✓ Saved to "+path))
	return nil
}
