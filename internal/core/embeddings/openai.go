package embeddings

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	apperrors "github.com/riskwire/riskwire/internal/core/errors"
	"github.com/riskwire/riskwire/internal/platform/config"
	"github.com/riskwire/riskwire/internal/platform/observability"
	"github.com/riskwire/riskwire/internal/platform/retry"
)

const (
	rateLimiterBurst = 5
	opEmbed          = "embed"
)

type openaiClient struct {
	client      *openai.Client
	model       openai.EmbeddingModel
	dimensions  int
	timeout     time.Duration
	policy      retry.Policy
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

// NewOpenAI creates the production embedding client. Each attempt runs under
// its own timeout; transient failures retry with exponential backoff
// independently of the brief generator's retry policy.
func NewOpenAI(cfg *config.Config, logger *zerolog.Logger) Client {
	return &openaiClient{
		client:     openai.NewClient(cfg.LLM.APIKey),
		model:      openai.EmbeddingModel(cfg.LLM.EmbeddingModel),
		dimensions: cfg.LLM.EmbeddingDimensions,
		timeout:    cfg.LLM.EmbedTimeout,
		policy: retry.Policy{
			MaxAttempts:  cfg.LLM.EmbedMaxAttempts,
			InitialDelay: time.Second,
		},
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.LLM.RateLimitRPS), rateLimiterBurst),
	}
}

func (c *openaiClient) Dimensions() int {
	return c.dimensions
}

func (c *openaiClient) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	var vector []float32

	err := retry.Do(ctx, c.policy, nil, classifyEmbedError, func(ctx context.Context, attempt int) error {
		if attempt > 1 {
			c.logger.Debug().Int("attempt", attempt).Msg("retrying embedding request")
		}

		vec, err := c.embedOnce(ctx, text)
		if err != nil {
			return err
		}

		vector = vec

		return nil
	})
	if err != nil {
		return nil, err
	}

	return vector, nil
}

func (c *openaiClient) embedOnce(ctx context.Context, text string) ([]float32, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	resp, err := c.client.CreateEmbeddings(attemptCtx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      c.model,
		Dimensions: c.dimensions,
	})

	observability.LLMRequestDuration.WithLabelValues(opEmbed).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, apperrors.ErrEmptyResponse
	}

	vec := resp.Data[0].Embedding
	if err := CheckDimensions(vec, c.dimensions); err != nil {
		return nil, err
	}

	return vec, nil
}

// classifyEmbedError treats a dimension mismatch as fatal (misconfiguration,
// retrying cannot help) and everything else as transient.
func classifyEmbedError(err error) retry.Outcome {
	if apperrors.Is(err, apperrors.ErrDimensionMismatch) {
		return retry.FatalFailure
	}

	return retry.RetryableFailure
}
