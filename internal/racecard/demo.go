package racecard

import (
	"math"

	"github.com/law-makers/racecard/pkg/models"
)

// Weights of the sample prediction model used by the demo race
const (
	winWeight      = 10
	distanceWeight = 20
	groundWeight   = 20
)

// demoCard is a fixed racecard used to exercise ranking and output without a browser
var demoCard = []struct {
	horse    string
	jockey   string
	form     string
	wins     int
	distance float64
	ground   float64
}{
	{"Thunder Rhythm", "W. Buick", "3211", 3, 1, 0.9},
	{"Mud Dancer", "H. Doyle", "2P14", 1, 0.5, 0.3},
	{"Track Bullet", "O. Murphy", "4352", 0, 0.3, 0.4},
}

// PredictionScore combines past wins, distance and ground suitability with
// the form score. Suitability ratios run from 0 to 1.
func PredictionScore(p models.Prediction) int {
	v := float64(p.Wins*winWeight) + p.DistanceMatch*distanceWeight + p.GroundMatch*groundWeight
	return int(math.Round(v)) + p.FormScore
}

// DemoRunners returns the demo racecard scored with the sample prediction
// model and ranked. Live rankings score on form alone.
func DemoRunners() []models.Runner {
	runners := make([]models.Runner, 0, len(demoCard))
	for _, d := range demoCard {
		row := models.RunnerRow{HorseName: d.horse, JockeyName: d.jockey}
		r := NewRunner(row, models.FormRecord{FormCode: d.form})
		r.Prediction = &models.Prediction{
			Wins:          d.wins,
			DistanceMatch: d.distance,
			GroundMatch:   d.ground,
			FormScore:     r.Score,
		}
		r.Score = PredictionScore(*r.Prediction)
		runners = append(runners, r)
	}
	RankRunners(runners)
	return runners
}
