// Package answer implements the retrieval-augmented question endpoint. The
// scan is a deliberate O(N) cosine pass over a bounded recency window, not a
// vector index.
package answer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/riskwire/riskwire/internal/core/domain"
	"github.com/riskwire/riskwire/internal/core/embeddings"
	apperrors "github.com/riskwire/riskwire/internal/core/errors"
	"github.com/riskwire/riskwire/internal/core/llm"
	"github.com/riskwire/riskwire/internal/platform/config"
	"github.com/riskwire/riskwire/internal/platform/observability"
)

// Repository is the storage surface the answer step consumes.
type Repository interface {
	RecentArticlesWithEmbeddings(ctx context.Context, limit int) ([]domain.ArticleWithVector, error)
}

// Result is the grounded answer returned to the caller.
type Result struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Service answers free-text questions from the recent article window.
type Service struct {
	repo        Repository
	embedder    embeddings.Client
	client      llm.Client
	recentLimit int
	topK        int
	logger      *zerolog.Logger
}

func NewService(cfg *config.Config, repo Repository, embedder embeddings.Client, client llm.Client, logger *zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		embedder:    embedder,
		client:      client,
		recentLimit: cfg.Answer.RecentLimit,
		topK:        cfg.Answer.TopK,
		logger:      logger,
	}
}

// Ask embeds the question, ranks the recent window by cosine similarity,
// and asks the model to answer from the top matches only.
func (s *Service) Ask(ctx context.Context, question string) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		observability.QuestionsAnswered.WithLabelValues("invalid").Inc()

		return nil, fmt.Errorf("%w: empty question", apperrors.ErrInvalidInput)
	}

	queryVec, err := s.embedder.GetEmbedding(ctx, question)
	if err != nil {
		observability.QuestionsAnswered.WithLabelValues("error").Inc()

		return nil, fmt.Errorf("embed question: %w", err)
	}

	window, err := s.repo.RecentArticlesWithEmbeddings(ctx, s.recentLimit)
	if err != nil {
		observability.QuestionsAnswered.WithLabelValues("error").Inc()

		return nil, fmt.Errorf("load recent window: %w", err)
	}

	top, err := rank(queryVec, window, s.topK)
	if err != nil {
		observability.QuestionsAnswered.WithLabelValues("error").Inc()

		return nil, err
	}

	if len(top) == 0 {
		observability.QuestionsAnswered.WithLabelValues("empty").Inc()

		return &Result{Answer: "No recent articles are available to answer this question.", Sources: []string{}}, nil
	}

	result, err := s.client.AnswerQuestion(ctx, question, contextBlock(top))
	if err != nil {
		observability.QuestionsAnswered.WithLabelValues("error").Inc()

		return nil, fmt.Errorf("answer question: %w", err)
	}

	observability.QuestionsAnswered.WithLabelValues("ok").Inc()

	return &Result{Answer: result.Answer, Sources: result.Sources}, nil
}

type scored struct {
	article    *domain.StoredArticle
	similarity float32
}

// rank scores every candidate against the query vector and returns the
// top-k most similar articles, best first. A stored vector of the wrong
// length is a hard configuration error, not a skip.
func rank(queryVec []float32, window []domain.ArticleWithVector, k int) ([]*domain.StoredArticle, error) {
	candidates := make([]scored, 0, len(window))

	for _, entry := range window {
		similarity, err := embeddings.CosineSimilarity(queryVec, entry.Vector)
		if err != nil {
			return nil, fmt.Errorf("score article %s: %w", entry.Article.ID, err)
		}

		candidates = append(candidates, scored{article: entry.Article, similarity: similarity})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}

	top := make([]*domain.StoredArticle, len(candidates))
	for i, c := range candidates {
		top[i] = c.article
	}

	return top, nil
}

// contextBlock concatenates the matched articles into the prompt context.
func contextBlock(articles []*domain.StoredArticle) string {
	var b strings.Builder

	for i, a := range articles {
		fmt.Fprintf(&b, "Article %d: %s\nURL: %s\nSource: %s\n", i+1, a.Title, a.URL, a.Source)

		for _, bullet := range a.Bullets {
			fmt.Fprintf(&b, "- %s\n", bullet)
		}

		if a.WhyItMatters.Underwriting != "" {
			fmt.Fprintf(&b, "Underwriting: %s\n", a.WhyItMatters.Underwriting)
		}

		if a.WhyItMatters.Claims != "" {
			fmt.Fprintf(&b, "Claims: %s\n", a.WhyItMatters.Claims)
		}

		if a.WhyItMatters.Brokerage != "" {
			fmt.Fprintf(&b, "Brokerage: %s\n", a.WhyItMatters.Brokerage)
		}

		if a.WhyItMatters.Actuarial != "" {
			fmt.Fprintf(&b, "Actuarial: %s\n", a.WhyItMatters.Actuarial)
		}

		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}
