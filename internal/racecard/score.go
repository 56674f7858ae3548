package racecard

import (
	"sort"

	"github.com/law-makers/racecard/pkg/models"
)

// Score weights a form code: a win counts 5, a second 3 and a third 1.
// Anything else, the unavailable sentinel included, counts nothing.
func Score(formCode string) int {
	score := 0
	for _, c := range formCode {
		switch c {
		case '1':
			score += 5
		case '2':
			score += 3
		case '3':
			score += 1
		}
	}
	return score
}

// NewRunner merges a racecard row with its form and scores it
func NewRunner(row models.RunnerRow, form models.FormRecord) models.Runner {
	return models.Runner{
		RunnerRow:  row,
		FormRecord: form,
		Score:      Score(form.FormCode),
	}
}

// RankRunners sorts runners by score, highest first. Runners with equal
// scores keep their racecard order.
func RankRunners(runners []models.Runner) {
	sort.SliceStable(runners, func(i, j int) bool {
		return runners[i].Score > runners[j].Score
	})
}
