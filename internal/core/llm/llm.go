// Package llm wraps the chat-completion collaborator behind a narrow client
// interface. The brief contract is enforced twice per call: structured-output
// mode on the request and an independent schema validation pass on the
// response.
package llm

import (
	"context"
	"time"

	"github.com/riskwire/riskwire/internal/core/domain"
)

// BriefInput is the article metadata and body handed to the model.
// Text is already truncated to the configured character budget.
type BriefInput struct {
	Title       string
	URL         string
	Source      string
	Category    string
	PublishedAt time.Time
	Text        string
}

// AnswerResult is the model's grounded answer to a free-text question.
type AnswerResult struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Client is the chat-completion collaborator. A single call, no retries;
// retry policy belongs to the callers.
type Client interface {
	// GenerateBrief performs one schema-constrained completion. Failures are
	// ErrSchemaValidation, ErrEmptyResponse, or a wrapped transport error.
	GenerateBrief(ctx context.Context, in BriefInput) (*domain.ArticleBrief, error)

	// AnswerQuestion answers a question using only the supplied context block.
	AnswerQuestion(ctx context.Context, question, contextBlock string) (*AnswerResult, error)
}
