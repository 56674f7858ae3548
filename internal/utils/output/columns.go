package output

import (
	"strconv"

	"github.com/law-makers/racecard/pkg/models"
)

// Layout selects the columns written for each runner
type Layout int

const (
	// LayoutFull is horse, jockey, form and form score
	LayoutFull Layout = iota
	// LayoutPreview is horse and score only
	LayoutPreview
	// LayoutBreakdown adds the sample model inputs behind a demo score
	LayoutBreakdown
)

var layoutColumns = map[Layout][]string{
	LayoutFull:      {"Horse", "Jockey", "Form", "FormScore"},
	LayoutPreview:   {"Horse", "Score"},
	LayoutBreakdown: {"Horse", "Jockey", "Form", "FormScore", "Wins", "Distance Match", "Ground Match", "Score"},
}

// Columns returns the header row for layout
func Columns(layout Layout) []string {
	cols, ok := layoutColumns[layout]
	if !ok {
		cols = layoutColumns[LayoutFull]
	}
	return append([]string(nil), cols...)
}

// Values returns a runner's cells in the order given by Columns
func Values(r models.Runner, layout Layout) []string {
	score := strconv.Itoa(r.Score)
	switch layout {
	case LayoutPreview:
		return []string{r.HorseName, score}
	case LayoutBreakdown:
		p := r.Prediction
		if p == nil {
			return []string{r.HorseName, r.JockeyName, r.FormCode, score, "", "", "", score}
		}
		return []string{
			r.HorseName, r.JockeyName, r.FormCode, strconv.Itoa(p.FormScore),
			strconv.Itoa(p.Wins), formatRatio(p.DistanceMatch), formatRatio(p.GroundMatch), score,
		}
	default:
		return []string{r.HorseName, r.JockeyName, r.FormCode, score}
	}
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
