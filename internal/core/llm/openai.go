package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/riskwire/riskwire/internal/core/domain"
	apperrors "github.com/riskwire/riskwire/internal/core/errors"
	"github.com/riskwire/riskwire/internal/platform/config"
	"github.com/riskwire/riskwire/internal/platform/observability"
)

const (
	rateLimiterBurst = 5

	opBrief  = "brief"
	opAnswer = "answer"

	errRateLimiter        = "rate limiter wait: %w"
	errChatCompletion     = "openai chat completion: %w"
	briefSchemaName       = "article_brief"
	briefTemperature      = 0.2
	logKeyOperation       = "operation"
	responseContentsLimit = 2000
)

type openaiClient struct {
	cfg         *config.Config
	client      *openai.Client
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

// NewOpenAI creates the production chat-completion client.
func NewOpenAI(cfg *config.Config, logger *zerolog.Logger) Client {
	return &openaiClient{
		cfg:         cfg,
		client:      openai.NewClient(cfg.LLM.APIKey),
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.LLM.RateLimitRPS), rateLimiterBurst),
	}
}

func (c *openaiClient) GenerateBrief(ctx context.Context, in BriefInput) (*domain.ArticleBrief, error) {
	content, err := c.complete(ctx, opBrief, openai.ChatCompletionRequest{
		Model:       c.cfg.LLM.Model,
		Temperature: briefTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: briefSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildBriefUserPrompt(in)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   briefSchemaName,
				Schema: json.RawMessage(BriefSchema),
			},
		},
	})
	if err != nil {
		return nil, err
	}

	// Independent client-side pass; structured-output mode alone is not trusted.
	if err := ValidateBriefJSON([]byte(content)); err != nil {
		c.logger.Debug().Str("content", clip(content, responseContentsLimit)).Msg("brief failed schema validation")

		return nil, err
	}

	var brief domain.ArticleBrief
	if err := json.Unmarshal([]byte(content), &brief); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSchemaValidation, err)
	}

	return &brief, nil
}

func (c *openaiClient) AnswerQuestion(ctx context.Context, question, contextBlock string) (*AnswerResult, error) {
	content, err := c.complete(ctx, opAnswer, openai.ChatCompletionRequest{
		Model: c.cfg.LLM.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: answerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Context articles:\n" + contextBlock + "\n\nQuestion: " + question},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, err
	}

	var result AnswerResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parse answer response: %w", err)
	}

	return &result, nil
}

func (c *openaiClient) complete(ctx context.Context, operation string, req openai.ChatCompletionRequest) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf(errRateLimiter, err)
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	observability.LLMRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		return "", fmt.Errorf(errChatCompletion, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", apperrors.ErrEmptyResponse
	}

	c.logger.Debug().Str(logKeyOperation, operation).Msg("LLM response received")

	return resp.Choices[0].Message.Content, nil
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
