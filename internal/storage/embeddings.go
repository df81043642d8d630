package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pgvector/pgvector-go"

	"github.com/riskwire/riskwire/internal/core/domain"
)

// SaveEmbedding stores the vector for an article, replacing any prior one.
func (db *DB) SaveEmbedding(ctx context.Context, articleID string, vector []float32) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO embeddings (article_id, embedding)
		VALUES ($1, $2::vector)
		ON CONFLICT (article_id) DO UPDATE
		SET embedding = EXCLUDED.embedding, created_at = NOW()
	`, articleID, pgvector.NewVector(vector))
	if err != nil {
		return fmt.Errorf("save embedding: %w", err)
	}

	return nil
}

// RecentArticlesWithEmbeddings returns the most recently published articles
// that have a stored vector, newest first.
func (db *DB) RecentArticlesWithEmbeddings(ctx context.Context, limit int) ([]domain.ArticleWithVector, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT a.id, a.url, a.canonical_url, a.content_hash, a.title, a.source,
		       a.brief, a.smart_score, a.storm_name, a.regulatory, a.processed,
		       a.published_at, a.created_at, a.updated_at, e.embedding
		FROM articles a
		JOIN embeddings e ON e.article_id = a.id
		ORDER BY a.published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent articles with embeddings: %w", err)
	}
	defer rows.Close()

	var out []domain.ArticleWithVector

	for rows.Next() {
		var (
			a         domain.StoredArticle
			brief     []byte
			published pgtype.Timestamptz
			created   pgtype.Timestamptz
			updated   pgtype.Timestamptz
			vec       pgvector.Vector
		)

		err := rows.Scan(&a.ID, &a.URL, &a.CanonicalURL, &a.ContentHash,
			&a.Title, &a.Source, &brief, &a.SmartScore, &a.StormName,
			&a.Regulatory, &a.Processed, &published, &created, &updated, &vec)
		if err != nil {
			return nil, fmt.Errorf("scan article with embedding: %w", err)
		}

		if err := unmarshalBrief(brief, &a); err != nil {
			return nil, err
		}

		a.PublishedAt = fromTimestamptz(published)
		a.CreatedAt = fromTimestamptz(created)
		a.UpdatedAt = fromTimestamptz(updated)

		out = append(out, domain.ArticleWithVector{Article: &a, Vector: vec.Slice()})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles with embeddings: %w", err)
	}

	return out, nil
}
