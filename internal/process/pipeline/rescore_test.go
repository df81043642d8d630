package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskwire/riskwire/internal/core/domain"
	"github.com/riskwire/riskwire/internal/process/score"
)

type fakeRescoreRepo struct {
	articles   []*domain.StoredArticle
	engagement map[string]*domain.Engagement
	updates    map[string]float64
	gotCutoff  time.Time
}

func (r *fakeRescoreRepo) ArticlesPublishedSince(_ context.Context, cutoff time.Time) ([]*domain.StoredArticle, error) {
	r.gotCutoff = cutoff

	return r.articles, nil
}

func (r *fakeRescoreRepo) GetEngagement(_ context.Context, articleID string) (*domain.Engagement, error) {
	return r.engagement[articleID], nil
}

func (r *fakeRescoreRepo) UpdateSmartScore(_ context.Context, id string, smartScore float64) error {
	r.updates[id] = smartScore

	return nil
}

func TestRescorer_RefreshesStaleScores(t *testing.T) {
	article := &domain.StoredArticle{
		ArticleBrief: domain.ArticleBrief{
			RiskPulse:   domain.RiskPulseMedium,
			ImpactScore: 50,
			ImpactBreakdown: domain.ImpactBreakdown{
				Market: 50, Regulatory: 50, Catastrophe: 40, Technology: 30,
			},
		},
		ID:          "stale",
		SmartScore:  99.9,
		PublishedAt: pipelineNow.Add(-48 * time.Hour),
	}

	repo := &fakeRescoreRepo{
		articles:   []*domain.StoredArticle{article},
		engagement: map[string]*domain.Engagement{},
		updates:    map[string]float64{},
	}

	logger := zerolog.Nop()
	rescorer := NewRescorer(repo, 7*24*time.Hour, &logger).
		WithClock(func() time.Time { return pipelineNow })

	require.NoError(t, rescorer.Run(context.Background()))

	assert.Equal(t, pipelineNow.Add(-7*24*time.Hour), repo.gotCutoff)

	fresh, ok := repo.updates["stale"]
	require.True(t, ok)
	assert.Equal(t, score.Calculate(article, nil, pipelineNow), fresh)
	assert.Less(t, fresh, 99.9)
}

func TestRescorer_SkipsUnchangedScores(t *testing.T) {
	article := &domain.StoredArticle{
		ArticleBrief: domain.ArticleBrief{
			ImpactScore: 50,
			ImpactBreakdown: domain.ImpactBreakdown{
				Market: 50, Regulatory: 50, Catastrophe: 40, Technology: 30,
			},
		},
		ID:          "current",
		PublishedAt: pipelineNow.Add(-48 * time.Hour),
	}
	article.SmartScore = score.Calculate(article, nil, pipelineNow)

	repo := &fakeRescoreRepo{
		articles:   []*domain.StoredArticle{article},
		engagement: map[string]*domain.Engagement{},
		updates:    map[string]float64{},
	}

	logger := zerolog.Nop()
	rescorer := NewRescorer(repo, 7*24*time.Hour, &logger).
		WithClock(func() time.Time { return pipelineNow })

	require.NoError(t, rescorer.Run(context.Background()))
	assert.Empty(t, repo.updates)
}

func TestRescorer_EngagementMovesScore(t *testing.T) {
	article := &domain.StoredArticle{
		ArticleBrief: domain.ArticleBrief{
			ImpactScore: 50,
			ImpactBreakdown: domain.ImpactBreakdown{
				Market: 50, Regulatory: 50, Catastrophe: 40, Technology: 30,
			},
		},
		ID:          "hot",
		PublishedAt: pipelineNow.Add(-6 * time.Hour),
	}
	article.SmartScore = score.Calculate(article, nil, pipelineNow)

	repo := &fakeRescoreRepo{
		articles: []*domain.StoredArticle{article},
		engagement: map[string]*domain.Engagement{
			"hot": {Clicks: 80, Saves: 40, Shares: 15, TimeSpentSec: 250},
		},
		updates: map[string]float64{},
	}

	logger := zerolog.Nop()
	rescorer := NewRescorer(repo, 7*24*time.Hour, &logger).
		WithClock(func() time.Time { return pipelineNow })

	require.NoError(t, rescorer.Run(context.Background()))

	fresh, ok := repo.updates["hot"]
	require.True(t, ok)
	assert.Greater(t, fresh, article.SmartScore)
}
