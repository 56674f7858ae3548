package output

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/law-makers/racecard/pkg/models"
)

// WriteCSV writes runners as CSV with a header row
func WriteCSV(w io.Writer, runners []models.Runner, layout Layout) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns(layout)); err != nil {
		return err
	}
	for _, r := range runners {
		if err := writer.Write(Values(r, layout)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV writes runners to a CSV file. Returns an error on failure.
func SaveCSV(runners []models.Runner, filepath string, layout Layout) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}

	if err := WriteCSV(file, runners, layout); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
