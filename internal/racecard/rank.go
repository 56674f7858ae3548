package racecard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/law-makers/racecard/internal/engine"
	"github.com/law-makers/racecard/internal/reqctx"
	"github.com/law-makers/racecard/pkg/models"
	"github.com/rs/zerolog/log"
)

// Progress receives per-horse updates while a race is being ranked
type Progress interface {
	Start(total int)
	Advance(horse string)
	Finish()
}

type noProgress struct{}

func (noProgress) Start(int)      {}
func (noProgress) Advance(string) {}
func (noProgress) Finish()        {}

// Ranker drives a full race lookup: racecard, then each horse's form, then
// scoring and ordering.
type Ranker struct {
	newSession engine.SessionFactory
	fetcher    *Fetcher
	progress   Progress
}

// NewRanker creates a Ranker that starts one browser session per lookup
func NewRanker(newSession engine.SessionFactory, fetcher *Fetcher) *Ranker {
	return &Ranker{
		newSession: newSession,
		fetcher:    fetcher,
		progress:   noProgress{},
	}
}

// WithProgress sets the progress reporter used by Rank
func (r *Ranker) WithProgress(p Progress) *Ranker {
	if p == nil {
		p = noProgress{}
	}
	r.progress = p
	return r
}

// Rank returns the runners of the race at raceURL, highest score first.
//
// A racecard with no usable data yields an empty slice and a nil error.
// An error is returned only when the browser cannot be started, the context
// is cancelled, or the lookup is aborted by a panic. The browser session is
// closed exactly once on every path.
func (r *Ranker) Rank(ctx context.Context, raceURL string) (runners []models.Runner, err error) {
	if strings.TrimSpace(raceURL) == "" {
		return nil, engine.NewEngineError(engine.ErrCodeValidation, "race URL is required", nil)
	}

	ctx = reqctx.WithRequestContext(ctx)
	rc := reqctx.GetRequestContext(ctx)
	logger := log.With().Str("request_id", rc.RequestID).Str("race", raceURL).Logger()
	ctx = logger.WithContext(ctx)

	session, err := r.newSession(ctx)
	if err != nil {
		return nil, reqctx.NewRequestError(ctx, fmt.Errorf("failed to start browser: %w", err))
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Error closing browser session")
		}
	}()
	defer func() {
		if p := recover(); p != nil {
			logger.Error().Interface("panic", p).Msg("Race lookup aborted")
			runners = nil
			err = reqctx.NewRequestError(ctx, fmt.Errorf("race lookup aborted: %v", p))
		}
	}()

	rows, err := r.fetcher.FetchRunners(ctx, session, raceURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, reqctx.NewRequestError(ctx, ctx.Err())
		}
		logger.Warn().Err(err).Msg("No usable race data")
		return []models.Runner{}, nil
	}
	if len(rows) == 0 {
		logger.Warn().Msg("Racecard has no complete runner rows")
		return []models.Runner{}, nil
	}

	r.progress.Start(len(rows))
	defer r.progress.Finish()

	runners = make([]models.Runner, 0, len(rows))
	for _, row := range rows {
		if ctx.Err() != nil {
			return nil, reqctx.NewRequestError(ctx, ctx.Err())
		}
		form := r.fetcher.FetchForm(ctx, session, row.ProfileLink)
		runners = append(runners, NewRunner(row, form))
		r.progress.Advance(row.HorseName)
	}

	RankRunners(runners)

	logger.Info().
		Int("runners", len(runners)).
		Dur("elapsed_ms", time.Since(rc.StartTime)).
		Msg("Race ranked")
	return runners, nil
}
