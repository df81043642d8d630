package embeddings

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/riskwire/riskwire/internal/core/errors"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float32
	}{
		{
			name:     "identical vectors",
			a:        []float32{1, 0, 0},
			b:        []float32{1, 0, 0},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0, 0},
			b:        []float32{0, 1, 0},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 0, 0},
			b:        []float32{-1, 0, 0},
			expected: -1.0,
		},
		{
			name:     "zero vector",
			a:        []float32{0, 0, 0},
			b:        []float32{1, 1, 1},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-6)
		})
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 0}, []float32{1, 0, 0})
	require.ErrorIs(t, err, apperrors.ErrDimensionMismatch)
}

func TestCheckDimensions(t *testing.T) {
	require.NoError(t, CheckDimensions(make([]float32, 512), 512))
	require.ErrorIs(t, CheckDimensions(make([]float32, 256), 512), apperrors.ErrDimensionMismatch)
}

func TestMockClient_Deterministic(t *testing.T) {
	m := NewMock(512)

	a, err := m.GetEmbedding(context.Background(), "hurricane losses")
	require.NoError(t, err)
	require.Len(t, a, 512)

	b, err := m.GetEmbedding(context.Background(), "hurricane losses")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := m.GetEmbedding(context.Background(), "rate filing")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	for _, v := range a {
		assert.False(t, math.IsNaN(float64(v)))
	}
}
