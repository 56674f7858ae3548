package output

import (
	"encoding/json"
	"os"

	"github.com/law-makers/racecard/pkg/models"
)

// SaveJSON writes runners to filepath as an indented JSON array
func SaveJSON(runners []models.Runner, filepath string) error {
	if runners == nil {
		runners = []models.Runner{}
	}
	content, err := json.MarshalIndent(runners, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, content, 0644)
}
