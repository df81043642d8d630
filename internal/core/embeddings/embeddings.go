// Package embeddings provides text embedding generation with one fixed
// dimension end-to-end. Ingestion and query-time vectors must have the same
// length; any mismatch is a hard configuration error, never silently padded
// or truncated.
package embeddings

import (
	"context"
	"fmt"
	"math"

	apperrors "github.com/riskwire/riskwire/internal/core/errors"
)

// Client generates fixed-length embedding vectors.
type Client interface {
	// GetEmbedding returns a vector of exactly Dimensions() length.
	GetEmbedding(ctx context.Context, text string) ([]float32, error)

	// Dimensions is the configured vector length.
	Dimensions() int
}

// CheckDimensions returns ErrDimensionMismatch unless the vector has exactly
// the expected length.
func CheckDimensions(vec []float32, want int) error {
	if len(vec) != want {
		return fmt.Errorf("%w: got %d, want %d", apperrors.ErrDimensionMismatch, len(vec), want)
	}

	return nil
}

// CosineSimilarity returns the cosine of the angle between two vectors of
// equal length, or an error when the lengths differ.
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", apperrors.ErrDimensionMismatch, len(a), len(b))
	}

	if len(a) == 0 {
		return 0, nil
	}

	var dotProduct, normA, normB float32

	for i := 0; i < len(a); i++ {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dotProduct / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB)))), nil
}
