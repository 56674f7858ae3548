package models

// Sentinel values used in place of data that could not be extracted.
const (
	NotFound        = "Not found"
	FormUnavailable = "N/A"
)

// MaxFormLength is the number of most recent finishing positions kept in a form code.
const MaxFormLength = 6

// RunnerRow is one runner as read from a racecard row
type RunnerRow struct {
	HorseName   string `json:"horse"`
	JockeyName  string `json:"jockey"`
	ProfileLink string `json:"profile_link,omitempty"`
}

// HasLink reports whether the row carries a link to the horse's profile page.
func (r RunnerRow) HasLink() bool {
	return r.ProfileLink != ""
}

// Complete reports whether the row can be enriched and ranked.
func (r RunnerRow) Complete() bool {
	return r.HorseName != NotFound && r.JockeyName != NotFound && r.HasLink()
}

// FormRecord holds a horse's recent finishing positions, most recent last.
type FormRecord struct {
	FormCode string `json:"form"`
}

// Available reports whether the form figures were retrieved.
func (f FormRecord) Available() bool {
	return f.FormCode != FormUnavailable
}

// Prediction is the sample model behind the demo race. Live rankings never
// carry one.
type Prediction struct {
	Wins          int     `json:"wins"`
	DistanceMatch float64 `json:"distance_match"`
	GroundMatch   float64 `json:"ground_match"`
	FormScore     int     `json:"form_score"`
}

// Runner is a ranked runner: the racecard row, its form and the derived score
type Runner struct {
	RunnerRow
	FormRecord
	Score      int         `json:"score"`
	Prediction *Prediction `json:"prediction,omitempty"`
}
