package cli

import (
	"github.com/law-makers/racecard/internal/racecard"
	"github.com/law-makers/racecard/internal/utils/output"
	"github.com/spf13/cobra"
)

var (
	demoOutput string
	demoFull   bool
)

// demoCmd ranks a built-in racecard without starting a browser
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Rank a built-in sample race without going online",
	Long: `Scores and ranks three sample runners without Chrome or network access.

The sample race uses a richer prediction model than the rank command: past
wins, distance and ground suitability are weighted on top of the form score.
--full shows the breakdown behind each score.`,
	Example: `  racecard demo
  racecard demo --full -o sample.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		layout := output.LayoutPreview
		if demoFull {
			layout = output.LayoutBreakdown
		}
		return emit(cmd.OutOrStdout(), racecard.DemoRunners(), demoOutput, layout)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVarP(&demoOutput, "output", "o", "", "File path to save results (supports .csv, .json)")
	demoCmd.Flags().BoolVar(&demoFull, "full", false, "Show the full breakdown behind each score")
}
