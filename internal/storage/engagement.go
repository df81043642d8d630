package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/riskwire/riskwire/internal/core/domain"
)

// GetEngagement loads the counters for one article. A missing row means no
// engagement yet and returns nil without error.
func (db *DB) GetEngagement(ctx context.Context, articleID string) (*domain.Engagement, error) {
	var eng domain.Engagement

	err := db.Pool.QueryRow(ctx, `
		SELECT clicks, saves, shares, time_spent_sec
		FROM article_engagement
		WHERE article_id = $1
	`, articleID).Scan(&eng.Clicks, &eng.Saves, &eng.Shares, &eng.TimeSpentSec)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("get engagement: %w", err)
	}

	return &eng, nil
}

// RecordEngagement adds the delta counters to an article's totals.
func (db *DB) RecordEngagement(ctx context.Context, articleID string, delta domain.Engagement) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO article_engagement (article_id, clicks, saves, shares, time_spent_sec)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (article_id) DO UPDATE
		SET clicks         = article_engagement.clicks + EXCLUDED.clicks,
		    saves          = article_engagement.saves + EXCLUDED.saves,
		    shares         = article_engagement.shares + EXCLUDED.shares,
		    time_spent_sec = article_engagement.time_spent_sec + EXCLUDED.time_spent_sec,
		    updated_at     = NOW()
	`, articleID, delta.Clicks, delta.Saves, delta.Shares, delta.TimeSpentSec)
	if err != nil {
		return fmt.Errorf("record engagement: %w", err)
	}

	return nil
}
