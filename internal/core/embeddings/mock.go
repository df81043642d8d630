package embeddings

import (
	"context"
	"crypto/sha256"
)

// MockClient produces deterministic pseudo-vectors from the input text.
// For tests and local development without an API key.
type MockClient struct {
	Dim int
}

func NewMock(dim int) *MockClient {
	return &MockClient{Dim: dim}
}

func (m *MockClient) Dimensions() int {
	return m.Dim
}

func (m *MockClient) GetEmbedding(_ context.Context, text string) ([]float32, error) {
	sum := sha256.Sum256([]byte(text))
	vec := make([]float32, m.Dim)

	for i := range vec {
		b := sum[i%len(sum)]
		vec[i] = float32(b)/255.0 - 0.5
	}

	return vec, nil
}
