package racecard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/racecard/pkg/models"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

var digitRun = regexp.MustCompile(`\d+`)

// ParseRunnerRows extracts every runner row from a rendered racecard document.
// Rows that cannot be read are logged and skipped; rows missing a name, a
// jockey or a profile link are dropped.
func ParseRunnerRows(markup string, logger *zerolog.Logger) ([]models.RunnerRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse racecard: %w", err)
	}

	var rows []models.RunnerRow
	doc.Find(RunnerRowSelector).Each(func(i int, sel *goquery.Selection) {
		row, err := extractRow(sel)
		if err != nil {
			logger.Warn().Err(err).Int("row", i).Msg("Skipping unreadable runner row")
			return
		}
		if !row.Complete() {
			logger.Debug().
				Int("row", i).
				Str("horse", row.HorseName).
				Str("jockey", row.JockeyName).
				Bool("has_link", row.HasLink()).
				Msg("Skipping incomplete runner row")
			return
		}
		rows = append(rows, row)
	})

	return rows, nil
}

// extractRow reads one runner row. Missing sub-elements degrade to
// sentinels; a panic from malformed markup is turned into an error.
func extractRow(sel *goquery.Selection) (row models.RunnerRow, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed runner row: %v", r)
		}
	}()

	row = models.RunnerRow{
		HorseName:  models.NotFound,
		JockeyName: models.NotFound,
	}

	if horse := sel.Find(HorseLinkSelector).First(); horse.Length() > 0 {
		if name := normalizeText(horse.Text()); name != "" {
			row.HorseName = name
		}
		if href, ok := horse.Attr("href"); ok {
			row.ProfileLink = strings.TrimSpace(href)
		}
	}

	if jockey := sel.Find(JockeySelector).First(); jockey.Length() > 0 {
		if name := normalizeText(jockey.Text()); name != "" {
			row.JockeyName = name
		}
	}

	return row, nil
}

// normalizeText replaces non-breaking spaces and collapses runs of whitespace
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// ExtractFormCode pulls the finishing positions out of the form panel markup.
// Figures are often split across nested elements, so every text run of the
// markup is scanned in document order. Tag names and attribute values such as
// class="col-3" are skipped.
func ExtractFormCode(markup string) string {
	code := CompactForm(formTokens(markup))
	if code == "" {
		return models.FormUnavailable
	}
	return code
}

// formTokens returns the digit runs found in the text of markup, with tags
// and their attributes stripped
func formTokens(markup string) []string {
	var tokens []string
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return tokens
		case html.TextToken:
			tokens = append(tokens, digitRun.FindAllString(string(z.Text()), -1)...)
		}
	}
}

// CompactForm joins form tokens and keeps the most recent MaxFormLength characters
func CompactForm(tokens []string) string {
	code := strings.Join(tokens, "")
	if len(code) > models.MaxFormLength {
		code = code[len(code)-models.MaxFormLength:]
	}
	return code
}
