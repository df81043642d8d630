package brief

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskwire/riskwire/internal/core/domain"
	apperrors "github.com/riskwire/riskwire/internal/core/errors"
	"github.com/riskwire/riskwire/internal/core/llm"
	"github.com/riskwire/riskwire/internal/platform/config"
	"github.com/riskwire/riskwire/internal/platform/retry"
)

type fakeLLM struct {
	failures int
	calls    int
	brief    *domain.ArticleBrief
	inputs   []llm.BriefInput
}

func (f *fakeLLM) GenerateBrief(_ context.Context, in llm.BriefInput) (*domain.ArticleBrief, error) {
	f.calls++
	f.inputs = append(f.inputs, in)

	if f.calls <= f.failures {
		return nil, apperrors.ErrSchemaValidation
	}

	return f.brief, nil
}

func (f *fakeLLM) AnswerQuestion(context.Context, string, string) (*llm.AnswerResult, error) {
	panic("not used")
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LLM.BriefMaxAttempts = 5
	cfg.LLM.BriefRetryBase = time.Second
	cfg.LLM.ContentCharBudget = 14000

	return cfg
}

func recordingSleeper(delays *[]time.Duration) retry.Sleeper {
	return func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)

		return nil
	}
}

func TestGenerate_SucceedsAfterRetries(t *testing.T) {
	want := &domain.ArticleBrief{Title: "Hurricane losses mount"}
	client := &fakeLLM{failures: 2, brief: want}

	var delays []time.Duration

	logger := zerolog.Nop()
	gen := NewGenerator(testConfig(), client, &logger).WithSleeper(recordingSleeper(&delays))

	got, err := gen.Generate(context.Background(), llm.BriefInput{URL: "https://example.com/a"})

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 3, client.calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestGenerate_ExhaustsBudget(t *testing.T) {
	client := &fakeLLM{failures: 10}

	var delays []time.Duration

	logger := zerolog.Nop()
	gen := NewGenerator(testConfig(), client, &logger).WithSleeper(recordingSleeper(&delays))

	_, err := gen.Generate(context.Background(), llm.BriefInput{URL: "https://example.com/a"})

	require.ErrorIs(t, err, apperrors.ErrSummarization)
	assert.Equal(t, 5, client.calls)
	assert.Equal(t, []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
	}, delays)
}

func TestGenerate_TruncatesText(t *testing.T) {
	client := &fakeLLM{brief: &domain.ArticleBrief{}}

	cfg := testConfig()
	cfg.LLM.ContentCharBudget = 10

	logger := zerolog.Nop()
	gen := NewGenerator(cfg, client, &logger).WithSleeper(recordingSleeper(&[]time.Duration{}))

	_, err := gen.Generate(context.Background(), llm.BriefInput{Text: "0123456789abcdef"})

	require.NoError(t, err)
	require.Len(t, client.inputs, 1)
	assert.Equal(t, "0123456789", client.inputs[0].Text)
}
