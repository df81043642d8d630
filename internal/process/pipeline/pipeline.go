// Package pipeline sequences the ingestion run: feeds are fetched in
// configured order, items flow through dedup, extraction, summarization,
// validation, scoring, and embedding, and every run appends one audit
// record. Per-item and per-feed failures are contained; the run itself
// always completes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/riskwire/riskwire/internal/core/domain"
	"github.com/riskwire/riskwire/internal/core/embeddings"
	apperrors "github.com/riskwire/riskwire/internal/core/errors"
	"github.com/riskwire/riskwire/internal/core/identity"
	"github.com/riskwire/riskwire/internal/core/llm"
	"github.com/riskwire/riskwire/internal/ingest/extract"
	"github.com/riskwire/riskwire/internal/ingest/feeds"
	"github.com/riskwire/riskwire/internal/platform/config"
	"github.com/riskwire/riskwire/internal/platform/observability"
	"github.com/riskwire/riskwire/internal/process/brief"
	"github.com/riskwire/riskwire/internal/process/normalize"
	"github.com/riskwire/riskwire/internal/process/score"
)

// minContentLength is the shortest extracted body worth an LLM call.
const minContentLength = 100

// embedCharBudget bounds the text sent to the embedding model.
const embedCharBudget = 2000

// Repository is the storage surface the orchestrator consumes.
type Repository interface {
	ArticleExists(ctx context.Context, id string) (bool, error)
	ContentHashExists(ctx context.Context, hash string) (bool, error)
	SaveArticle(ctx context.Context, a *domain.StoredArticle) error
	SaveEmbedding(ctx context.Context, articleID string, vector []float32) error
	InsertBatchRun(ctx context.Context, run *domain.BatchRunLog) error
	GetEngagement(ctx context.Context, articleID string) (*domain.Engagement, error)
}

// Orchestrator runs the ingestion pipeline over the configured feed list.
type Orchestrator struct {
	repo      Repository
	fetcher   feeds.Fetcher
	extractor extract.Extractor
	generator *brief.Generator
	embedder  embeddings.Client
	feedList  []domain.Feed
	batchSize int
	logger    *zerolog.Logger
	now       func() time.Time
}

func NewOrchestrator(
	cfg *config.Config,
	repo Repository,
	fetcher feeds.Fetcher,
	extractor extract.Extractor,
	generator *brief.Generator,
	embedder embeddings.Client,
	feedList []domain.Feed,
	logger *zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		repo:      repo,
		fetcher:   fetcher,
		extractor: extractor,
		generator: generator,
		embedder:  embedder,
		feedList:  feedList,
		batchSize: cfg.Ingest.BatchSize,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the run clock. For tests.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now

	return o
}

// Run executes one full ingestion pass and always returns the run record,
// even when every feed failed. The error is reserved for a failure to
// persist the record itself.
func (o *Orchestrator) Run(ctx context.Context) (*domain.BatchRunLog, error) {
	started := o.now()
	run := &domain.BatchRunLog{StartedAt: started}

	for _, feed := range o.feedList {
		if ctx.Err() != nil {
			break
		}

		o.runFeed(ctx, feed, run)
	}

	run.Duration = o.now().Sub(started)
	run.Status = runStatus(run)

	observability.BatchDurationSeconds.Observe(run.Duration.Seconds())
	observability.BatchRuns.WithLabelValues(run.Status).Inc()

	o.logger.Info().
		Int("processed", run.Processed).
		Int("skipped", run.Skipped).
		Int("errors", run.Errors).
		Str("status", run.Status).
		Dur("duration", run.Duration).
		Msg("Ingestion run finished")

	if err := o.repo.InsertBatchRun(ctx, run); err != nil {
		return run, fmt.Errorf("record batch run: %w", err)
	}

	return run, nil
}

func runStatus(run *domain.BatchRunLog) string {
	switch {
	case run.Errors == 0:
		return domain.RunStatusSuccess
	case run.Processed == 0:
		return domain.RunStatusFailed
	default:
		return domain.RunStatusPartial
	}
}

// runFeed fetches one feed and walks its items in feed order. A fetch
// failure counts as one error and the run moves on to the next feed.
func (o *Orchestrator) runFeed(ctx context.Context, feed domain.Feed, run *domain.BatchRunLog) {
	items, err := o.fetcher.Fetch(ctx, feed)
	if err != nil {
		run.Errors++

		observability.FeedErrors.WithLabelValues(feed.Name).Inc()
		o.logger.Error().Err(err).Str("feed", feed.Name).Msg("Feed fetch failed")

		return
	}

	if len(items) > o.batchSize {
		items = items[:o.batchSize]
	}

	for _, item := range items {
		if ctx.Err() != nil {
			return
		}

		o.runItem(ctx, feed, item, run)
	}
}

func (o *Orchestrator) runItem(ctx context.Context, feed domain.Feed, item domain.FeedItem, run *domain.BatchRunLog) {
	err := o.processItem(ctx, item)
	if err == nil {
		run.Processed++

		observability.ItemsIngested.WithLabelValues(feed.Name).Inc()

		return
	}

	switch {
	case errors.Is(err, apperrors.ErrDuplicate):
		run.Skipped++

		observability.ItemsSkipped.WithLabelValues("duplicate").Inc()
		o.logger.Debug().Str("url", item.Link).Msg("Duplicate item skipped")
	case errors.Is(err, apperrors.ErrShortContent):
		run.Skipped++

		observability.ItemsSkipped.WithLabelValues("short_content").Inc()
		o.logger.Debug().Str("url", item.Link).Msg("Short item skipped")
	default:
		run.Errors++

		observability.ItemErrors.WithLabelValues(errStage(err)).Inc()
		o.logger.Error().Err(err).Str("url", item.Link).Str("feed", feed.Name).Msg("Item failed")
	}
}

// processItem moves one feed item through the full per-item state machine.
func (o *Orchestrator) processItem(ctx context.Context, item domain.FeedItem) error {
	id := identity.HashID(item.Link)

	exists, err := o.repo.ArticleExists(ctx, id)
	if err != nil {
		return fmt.Errorf("dedup check: %w", err)
	}

	if exists {
		return fmt.Errorf("%w: id %s", apperrors.ErrDuplicate, id)
	}

	content := o.extractOrFallback(ctx, item)
	if len(content.Text) < minContentLength {
		return fmt.Errorf("%w: %d chars", apperrors.ErrShortContent, len(content.Text))
	}

	publishedAt := item.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = o.now()
	}

	generated, err := o.generator.Generate(ctx, llm.BriefInput{
		Title:       content.Title,
		URL:         item.Link,
		Source:      item.FeedName,
		Category:    item.FeedCategory,
		PublishedAt: publishedAt,
		Text:        content.Text,
	})
	if err != nil {
		return err
	}

	cleaned, warnings := brief.Clean(*generated)
	for _, warning := range warnings {
		observability.CoherenceWarnings.Inc()
		o.logger.Warn().Str("url", item.Link).Msg(warning)
	}

	cleaned.Tags.Regions = normalize.Regions(cleaned.Tags.Regions)
	cleaned.Tags.Companies = normalize.Companies(cleaned.Tags.Companies)

	article := &domain.StoredArticle{
		ArticleBrief: cleaned,
		ID:           id,
		ContentHash:  identity.ContentFingerprint(content.Text),
		CanonicalURL: identity.CanonicalURL(item.Link, []byte(content.HTML)),
		StormName:    normalize.DetectStorm(content.Title + " " + content.Text),
		Regulatory:   item.Regulatory || normalize.IsRegulatorySource(item.Link, item.FeedName),
		Processed:    true,
		PublishedAt:  publishedAt,
	}

	hashDup, err := o.repo.ContentHashExists(ctx, article.ContentHash)
	if err != nil {
		return fmt.Errorf("content dedup check: %w", err)
	}

	if hashDup {
		return fmt.Errorf("%w: content hash %s", apperrors.ErrDuplicate, article.ContentHash)
	}

	eng, err := o.repo.GetEngagement(ctx, id)
	if err != nil {
		return fmt.Errorf("load engagement: %w", err)
	}

	article.SmartScore = score.Calculate(article, eng, o.now())
	observability.SmartScoreDistribution.Observe(article.SmartScore)

	vector, err := o.embedder.GetEmbedding(ctx, embeddingText(content))
	if err != nil {
		return fmt.Errorf("embed article: %w", err)
	}

	if err := o.repo.SaveArticle(ctx, article); err != nil {
		return err
	}

	if err := o.repo.SaveEmbedding(ctx, id, vector); err != nil {
		return fmt.Errorf("persist embedding: %w", err)
	}

	return nil
}

// extractOrFallback tries the full page extraction and falls back to the
// feed-supplied title and snippet when it fails. Extraction failure is
// recoverable, never fatal for the item.
func (o *Orchestrator) extractOrFallback(ctx context.Context, item domain.FeedItem) *domain.ExtractedContent {
	content, err := o.extractor.Extract(ctx, item.Link)
	if err == nil {
		if content.Title == "" {
			content.Title = item.Title
		}

		return content
	}

	o.logger.Warn().Err(err).Str("url", item.Link).Msg("Extraction failed, using feed content")

	return &domain.ExtractedContent{
		URL:   item.Link,
		Title: item.Title,
		Text:  item.Content,
	}
}

func embeddingText(content *domain.ExtractedContent) string {
	text := content.Text
	if len(text) > embedCharBudget {
		text = text[:embedCharBudget]
	}

	return strings.TrimSpace(content.Title + "\n\n" + text)
}

// errStage labels an item failure for metrics by the stage that produced it.
func errStage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrSummarization):
		return "summarize"
	case errors.Is(err, apperrors.ErrSchemaValidation):
		return "validate"
	case errors.Is(err, apperrors.ErrDimensionMismatch):
		return "embed"
	default:
		return "store"
	}
}
