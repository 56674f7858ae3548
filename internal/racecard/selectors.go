package racecard

// Site markup. A change on attheraces.com should only ever touch this block.
const (
	// BaseOrigin is the origin profile links are resolved against
	BaseOrigin = "https://www.attheraces.com"

	// ConsentButtonLabel is the text on the cookie banner's accept button
	ConsentButtonLabel = "Accept All"

	// RunnerRowSelector matches one runner row on the racecard
	RunnerRowSelector = ".card-entry"

	// HorseLinkSelector matches the horse name anchor inside a runner row
	HorseLinkSelector = "a.horse__link"

	// JockeySelector matches the jockey name inside a runner row
	JockeySelector = ".card-jockey a"

	// FormPanelSelector matches the form figures panel on a horse profile
	FormPanelSelector = ".form-figures"
)
