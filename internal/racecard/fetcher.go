package racecard

import (
	"context"
	"fmt"
	"time"

	"github.com/law-makers/racecard/internal/config"
	"github.com/law-makers/racecard/internal/engine"
	"github.com/law-makers/racecard/internal/retry"
	"github.com/law-makers/racecard/internal/utils/output"
	urlutil "github.com/law-makers/racecard/internal/utils/url"
	"github.com/law-makers/racecard/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Timeouts bounds every wait the fetchers perform
type Timeouts struct {
	RaceNavigation time.Duration
	Consent        time.Duration
	RunnerRows     time.Duration
	FormNavigation time.Duration
	FormPanel      time.Duration
	Read           time.Duration
}

// TimeoutsFromConfig copies the fetch timeouts out of cfg
func TimeoutsFromConfig(cfg *config.Config) Timeouts {
	return Timeouts{
		RaceNavigation: cfg.RaceNavTimeout,
		Consent:        cfg.ConsentTimeout,
		RunnerRows:     cfg.RunnerRowsTimeout,
		FormNavigation: cfg.FormNavTimeout,
		FormPanel:      cfg.FormPanelTimeout,
		Read:           cfg.ReadTimeout,
	}
}

// Fetcher reads racecards and horse form pages through a browser session
type Fetcher struct {
	// BaseOrigin is what relative profile links are resolved against
	BaseOrigin string
	// Retry governs reloading a page that answered 429 or 5xx. The default
	// is a single attempt.
	Retry retry.Policy

	timeouts  Timeouts
	snapshots *output.SnapshotWriter
}

// NewFetcher creates a Fetcher. snapshots may be nil.
func NewFetcher(timeouts Timeouts, snapshots *output.SnapshotWriter) *Fetcher {
	return &Fetcher{
		BaseOrigin: BaseOrigin,
		Retry:      retry.DefaultPolicy(),
		timeouts:   timeouts,
		snapshots:  snapshots,
	}
}

// FetchRunners loads the racecard at raceURL and returns its complete runner
// rows in card order. When the page has no runner rows it returns an error
// matching engine.ErrNoRaceData.
func (f *Fetcher) FetchRunners(ctx context.Context, session engine.Session, raceURL string) ([]models.RunnerRow, error) {
	logger := loggerFrom(ctx).With().Str("url", raceURL).Logger()
	start := time.Now()

	page, err := session.NewPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open racecard page: %w", err)
	}
	defer page.Close()

	// A document that is slow to finish parsing is not fatal as long as the
	// runner rows render.
	if err := f.navigate(ctx, page, raceURL, f.timeouts.RaceNavigation); err != nil {
		if ctx.Err() != nil || engine.CodeOf(err) != engine.ErrCodeTimeout {
			return nil, fmt.Errorf("failed to load racecard: %w", err)
		}
		logger.Warn().Err(err).Msg("Racecard did not finish loading, waiting for runners anyway")
	}

	f.dismissConsent(ctx, page, &logger)

	if err := page.WaitFor(ctx, RunnerRowSelector, f.timeouts.RunnerRows); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.snapshot(ctx, page, "race", raceURL, &logger)
		return nil, engine.NewEngineError(engine.ErrCodeNoData, "no runner rows on racecard", err).
			WithDetail("url", raceURL)
	}

	html, err := page.OuterHTML(ctx, "html", f.timeouts.Read)
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeNoData, "failed to read racecard", err).
			WithDetail("url", raceURL)
	}
	f.snapshots.Save("race", raceURL, html)

	rows, err := ParseRunnerRows(html, &logger)
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeNoData, "failed to parse racecard", err)
	}

	logger.Info().
		Int("runners", len(rows)).
		Dur("elapsed_ms", time.Since(start)).
		Msg("Racecard fetched")
	return rows, nil
}

// navigate loads url, reloading it while the site answers with a retryable status
func (f *Fetcher) navigate(ctx context.Context, page engine.Page, url string, timeout time.Duration) error {
	return retry.Do(ctx, f.Retry, func() error {
		return page.Navigate(ctx, url, timeout)
	})
}

// dismissConsent tries to accept the cookie banner. The banner is not shown
// on every visit, so a missing or unclickable button is ignored.
func (f *Fetcher) dismissConsent(ctx context.Context, page engine.Page, logger *zerolog.Logger) {
	if err := page.ClickButton(ctx, ConsentButtonLabel, f.timeouts.Consent); err != nil {
		logger.Debug().Err(err).Msg("No consent banner dismissed")
		return
	}
	logger.Debug().Msg("Consent banner dismissed")
}

// FetchForm loads the horse profile behind link and returns its form figures.
// It never fails: any problem yields the unavailable sentinel.
func (f *Fetcher) FetchForm(ctx context.Context, session engine.Session, link string) (record models.FormRecord) {
	logger := loggerFrom(ctx).With().Str("link", link).Logger()
	record = models.FormRecord{FormCode: models.FormUnavailable}

	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Msg("Form extraction aborted")
			record = models.FormRecord{FormCode: models.FormUnavailable}
		}
	}()

	profileURL := urlutil.ResolveURL(f.BaseOrigin, link)

	page, err := session.NewPage(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to open horse page")
		return record
	}
	defer page.Close()

	if err := f.navigate(ctx, page, profileURL, f.timeouts.FormNavigation); err != nil {
		logger.Warn().Err(err).Str("url", profileURL).Msg("Failed to load horse page")
		return record
	}

	if err := page.WaitFor(ctx, FormPanelSelector, f.timeouts.FormPanel); err != nil {
		logger.Warn().Err(err).Msg("Form figures not found")
		f.snapshot(ctx, page, "horse", link, &logger)
		return record
	}

	markup, err := page.OuterHTML(ctx, FormPanelSelector, f.timeouts.Read)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read form figures")
		return record
	}
	f.snapshot(ctx, page, "horse", link, &logger)

	record.FormCode = ExtractFormCode(markup)
	logger.Debug().Str("form", record.FormCode).Msg("Form fetched")
	return record
}

// snapshot saves the page's current markup when snapshots are enabled
func (f *Fetcher) snapshot(ctx context.Context, page engine.Page, kind, id string, logger *zerolog.Logger) {
	if !f.snapshots.Enabled() {
		return
	}
	html, err := page.OuterHTML(ctx, "html", f.timeouts.Read)
	if err != nil {
		logger.Debug().Err(err).Str("kind", kind).Msg("Could not read page for snapshot")
		return
	}
	f.snapshots.Save(kind, id, html)
}

// loggerFrom returns the lookup logger carried by ctx, or the global one
func loggerFrom(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return log.Logger
}
