// Package brief produces and repairs the structured LLM brief for one
// article. The generator owns the retry budget around the LLM contract; the
// validator repairs citation lists and checks impact coherence.
package brief

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/riskwire/riskwire/internal/core/domain"
	apperrors "github.com/riskwire/riskwire/internal/core/errors"
	"github.com/riskwire/riskwire/internal/core/llm"
	"github.com/riskwire/riskwire/internal/platform/config"
	"github.com/riskwire/riskwire/internal/platform/observability"
	"github.com/riskwire/riskwire/internal/platform/retry"
)

// Generator drives the LLM call for one article with bounded retries.
// Schema-validation failures, malformed JSON, and transport failures all
// retry; exhausting the budget surfaces ErrSummarization and the caller must
// skip the item.
type Generator struct {
	client     llm.Client
	policy     retry.Policy
	sleep      retry.Sleeper
	charBudget int
	logger     *zerolog.Logger
}

func NewGenerator(cfg *config.Config, client llm.Client, logger *zerolog.Logger) *Generator {
	return &Generator{
		client: client,
		policy: retry.Policy{
			MaxAttempts:  cfg.LLM.BriefMaxAttempts,
			InitialDelay: cfg.LLM.BriefRetryBase,
		},
		charBudget: cfg.LLM.ContentCharBudget,
		logger:     logger,
	}
}

// WithSleeper overrides the backoff sleeper. For tests.
func (g *Generator) WithSleeper(sleep retry.Sleeper) *Generator {
	g.sleep = sleep

	return g
}

func (g *Generator) Generate(ctx context.Context, in llm.BriefInput) (*domain.ArticleBrief, error) {
	in.Text = truncate(in.Text, g.charBudget)

	var (
		result   *domain.ArticleBrief
		attempts int
	)

	err := retry.Do(ctx, g.policy, g.sleep, nil, func(ctx context.Context, attempt int) error {
		attempts = attempt

		brief, err := g.client.GenerateBrief(ctx, in)
		if err != nil {
			g.logger.Warn().Err(err).Int("attempt", attempt).Str("url", in.URL).Msg("brief attempt failed")

			return err
		}

		result = brief

		return nil
	})

	observability.BriefAttempts.Observe(float64(attempts))

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrSummarization, in.URL, err)
	}

	return result, nil
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}

	return s[:max]
}
