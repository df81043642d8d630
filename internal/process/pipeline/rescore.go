package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/riskwire/riskwire/internal/core/domain"
	"github.com/riskwire/riskwire/internal/platform/observability"
	"github.com/riskwire/riskwire/internal/process/score"
)

// RescoreRepository is the storage surface the rescore task consumes.
type RescoreRepository interface {
	ArticlesPublishedSince(ctx context.Context, cutoff time.Time) ([]*domain.StoredArticle, error)
	GetEngagement(ctx context.Context, articleID string) (*domain.Engagement, error)
	UpdateSmartScore(ctx context.Context, id string, smartScore float64) error
}

// Rescorer periodically recomputes SmartScore for the recent window. The
// stored score is a cache of the pure scoring function; decay and fresh
// engagement counters move it between runs.
type Rescorer struct {
	repo   RescoreRepository
	window time.Duration
	logger *zerolog.Logger
	now    func() time.Time
}

func NewRescorer(repo RescoreRepository, window time.Duration, logger *zerolog.Logger) *Rescorer {
	return &Rescorer{
		repo:   repo,
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the rescore clock. For tests.
func (r *Rescorer) WithClock(now func() time.Time) *Rescorer {
	r.now = now

	return r
}

// Run refreshes the cached score of every article in the window. Per-article
// failures are logged and skipped; the pass itself only fails when the
// window cannot be loaded.
func (r *Rescorer) Run(ctx context.Context) error {
	nowAt := r.now()

	articles, err := r.repo.ArticlesPublishedSince(ctx, nowAt.Add(-r.window))
	if err != nil {
		return fmt.Errorf("load rescore window: %w", err)
	}

	var updated int

	for _, article := range articles {
		if ctx.Err() != nil {
			return fmt.Errorf("rescore cancelled: %w", ctx.Err())
		}

		eng, err := r.repo.GetEngagement(ctx, article.ID)
		if err != nil {
			r.logger.Warn().Err(err).Str("id", article.ID).Msg("Engagement load failed during rescore")

			continue
		}

		fresh := score.Calculate(article, eng, nowAt)
		if fresh == article.SmartScore {
			continue
		}

		if err := r.repo.UpdateSmartScore(ctx, article.ID, fresh); err != nil {
			r.logger.Warn().Err(err).Str("id", article.ID).Msg("Score update failed during rescore")

			continue
		}

		updated++

		observability.ArticlesRescored.Inc()
	}

	r.logger.Info().Int("articles", len(articles)).Int("updated", updated).Msg("Rescore pass finished")

	return nil
}
