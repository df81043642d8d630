package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/riskwire/riskwire/internal/core/domain"
	apperrors "github.com/riskwire/riskwire/internal/core/errors"
)

const uniqueViolationCode = "23505"

// SaveArticle inserts a new article. The id is the only primary key; a
// second run racing on the same id loses silently via ON CONFLICT DO
// NOTHING, and a syndicated copy colliding on content_hash surfaces
// ErrDuplicate.
func (db *DB) SaveArticle(ctx context.Context, a *domain.StoredArticle) error {
	brief, err := json.Marshal(a.ArticleBrief)
	if err != nil {
		return fmt.Errorf("marshal brief: %w", err)
	}

	tag, err := db.Pool.Exec(ctx, `
		INSERT INTO articles (
			id, url, canonical_url, content_hash, title, source, brief,
			smart_score, storm_name, regulatory, processed, published_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`, a.ID, a.URL, a.CanonicalURL, a.ContentHash, SanitizeUTF8(a.Title), a.Source,
		brief, a.SmartScore, a.StormName, a.Regulatory, a.Processed,
		toTimestamptz(a.PublishedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: content hash %s", apperrors.ErrDuplicate, a.ContentHash)
		}

		return fmt.Errorf("insert article: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %s", apperrors.ErrDuplicate, a.ID)
	}

	return nil
}

// ArticleExists reports whether an article with this id is already stored.
func (db *DB) ArticleExists(ctx context.Context, id string) (bool, error) {
	var exists bool

	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("article exists: %w", err)
	}

	return exists, nil
}

// ContentHashExists reports whether any stored article shares this content
// fingerprint.
func (db *DB) ContentHashExists(ctx context.Context, hash string) (bool, error) {
	var exists bool

	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM articles WHERE content_hash = $1)`, hash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("content hash exists: %w", err)
	}

	return exists, nil
}

// GetArticle loads one article by id.
func (db *DB) GetArticle(ctx context.Context, id string) (*domain.StoredArticle, error) {
	row := db.Pool.QueryRow(ctx, `
		SELECT id, url, canonical_url, content_hash, title, source, brief,
		       smart_score, storm_name, regulatory, processed, published_at,
		       created_at, updated_at
		FROM articles
		WHERE id = $1
	`, id)

	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: article %s", apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("get article: %w", err)
	}

	return a, nil
}

// RecentArticles returns the most recently published articles, newest first.
func (db *DB) RecentArticles(ctx context.Context, limit int) ([]*domain.StoredArticle, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, url, canonical_url, content_hash, title, source, brief,
		       smart_score, storm_name, regulatory, processed, published_at,
		       created_at, updated_at
		FROM articles
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent articles: %w", err)
	}
	defer rows.Close()

	return collectArticles(rows)
}

// ArticlesPublishedSince returns articles published after the cutoff,
// newest first. Used by the periodic rescore task.
func (db *DB) ArticlesPublishedSince(ctx context.Context, cutoff time.Time) ([]*domain.StoredArticle, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, url, canonical_url, content_hash, title, source, brief,
		       smart_score, storm_name, regulatory, processed, published_at,
		       created_at, updated_at
		FROM articles
		WHERE published_at >= $1
		ORDER BY published_at DESC
	`, toTimestamptz(cutoff))
	if err != nil {
		return nil, fmt.Errorf("articles published since: %w", err)
	}
	defer rows.Close()

	return collectArticles(rows)
}

// UpdateSmartScore refreshes the cached score for one article.
func (db *DB) UpdateSmartScore(ctx context.Context, id string, smartScore float64) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE articles
		SET smart_score = $2, updated_at = NOW()
		WHERE id = $1
	`, id, smartScore)
	if err != nil {
		return fmt.Errorf("update smart score: %w", err)
	}

	return nil
}

func collectArticles(rows pgx.Rows) ([]*domain.StoredArticle, error) {
	var articles []*domain.StoredArticle

	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}

		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}

	return articles, nil
}

func scanArticle(row pgx.Row) (*domain.StoredArticle, error) {
	var (
		a         domain.StoredArticle
		brief     []byte
		published pgtype.Timestamptz
		created   pgtype.Timestamptz
		updated   pgtype.Timestamptz
	)

	err := row.Scan(&a.ID, &a.URL, &a.CanonicalURL, &a.ContentHash, &a.Title,
		&a.Source, &brief, &a.SmartScore, &a.StormName, &a.Regulatory,
		&a.Processed, &published, &created, &updated)
	if err != nil {
		return nil, err
	}

	if err := unmarshalBrief(brief, &a); err != nil {
		return nil, err
	}

	a.PublishedAt = fromTimestamptz(published)
	a.CreatedAt = fromTimestamptz(created)
	a.UpdatedAt = fromTimestamptz(updated)

	return &a, nil
}

func unmarshalBrief(raw []byte, a *domain.StoredArticle) error {
	if err := json.Unmarshal(raw, &a.ArticleBrief); err != nil {
		return fmt.Errorf("unmarshal brief: %w", err)
	}

	return nil
}
