// Package app wires the application together and exposes its operational
// modes:
//
//   - Serve mode: HTTP surface plus the scheduled ingestion and rescore loops
//   - Ingest mode: one ingestion run, then exit
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/riskwire/riskwire/internal/answer"
	"github.com/riskwire/riskwire/internal/api"
	"github.com/riskwire/riskwire/internal/core/embeddings"
	"github.com/riskwire/riskwire/internal/core/llm"
	"github.com/riskwire/riskwire/internal/ingest/extract"
	"github.com/riskwire/riskwire/internal/ingest/feeds"
	"github.com/riskwire/riskwire/internal/platform/config"
	"github.com/riskwire/riskwire/internal/platform/observability"
	"github.com/riskwire/riskwire/internal/platform/worker"
	"github.com/riskwire/riskwire/internal/process/brief"
	"github.com/riskwire/riskwire/internal/process/pipeline"
	db "github.com/riskwire/riskwire/internal/storage"
)

const llmAPIKeyMock = "mock"

// The pgx-backed store satisfies every consumer-side repository interface.
var (
	_ pipeline.Repository        = (*db.DB)(nil)
	_ pipeline.RescoreRepository = (*db.DB)(nil)
	_ answer.Repository          = (*db.DB)(nil)
	_ api.EngagementRecorder     = (*db.DB)(nil)
	_ observability.Pinger       = (*db.DB)(nil)
)

// App holds the application dependencies and provides its run modes.
type App struct {
	cfg      *config.Config
	database *db.DB
	logger   *zerolog.Logger

	orchestrator *pipeline.Orchestrator
	rescorer     *pipeline.Rescorer
	answers      *answer.Service
}

// New builds the full dependency graph. Clients are constructed once here
// and injected; nothing holds ambient singletons.
func New(cfg *config.Config, database *db.DB, logger *zerolog.Logger) (*App, error) {
	feedList, err := cfg.ParseFeeds()
	if err != nil {
		return nil, fmt.Errorf("parse feeds: %w", err)
	}

	var (
		llmClient llm.Client
		embedder  embeddings.Client
	)

	if cfg.LLM.APIKey == llmAPIKeyMock {
		logger.Warn().Msg("Using mock LLM and embedding clients")

		llmClient = llm.NewMock()
		embedder = embeddings.NewMock(cfg.LLM.EmbeddingDimensions)
	} else {
		llmClient = llm.NewOpenAI(cfg, logger)
		embedder = embeddings.NewOpenAI(cfg, logger)
	}

	fetcher := extract.NewWebFetcher(cfg.Ingest.WebFetchRPS, cfg.Ingest.WebFetchTimeout)
	generator := brief.NewGenerator(cfg, llmClient, logger)

	orchestrator := pipeline.NewOrchestrator(
		cfg, database, feeds.New(), extract.New(fetcher), generator, embedder, feedList, logger)

	return &App{
		cfg:          cfg,
		database:     database,
		logger:       logger,
		orchestrator: orchestrator,
		rescorer:     pipeline.NewRescorer(database, cfg.Ingest.RescoreWindow, logger),
		answers:      answer.NewService(cfg, database, embedder, llmClient, logger),
	}, nil
}

// RunServe starts the HTTP surface and the scheduled loops, blocking until
// the context is canceled.
func (a *App) RunServe(ctx context.Context) error {
	handler := api.NewHandler(a.orchestrator, a.answers, a.database, a.logger)
	server := observability.NewServer(a.database, a.cfg.HTTPPort, handler, a.logger)

	go func() {
		if err := server.Start(ctx); err != nil {
			a.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	return worker.SingleTickerLoop(ctx, worker.SingleTickerConfig{
		Name:       "ingest",
		Interval:   a.cfg.Ingest.Interval,
		RunOnStart: a.cfg.Ingest.RunOnStart,
		OnTick: func(ctx context.Context) {
			if _, err := a.orchestrator.Run(ctx); err != nil {
				a.logger.Error().Err(err).Msg("Scheduled ingestion run failed")
			}
		},
		SecondaryInterval: a.cfg.Ingest.RescoreInterval,
		OnSecondaryTick: func(ctx context.Context) {
			if err := a.rescorer.Run(ctx); err != nil {
				a.logger.Error().Err(err).Msg("Rescore pass failed")
			}
		},
		Logger: a.logger,
	})
}

// RunIngestOnce executes a single ingestion pass.
func (a *App) RunIngestOnce(ctx context.Context) error {
	run, err := a.orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	a.logger.Info().
		Int("processed", run.Processed).
		Int("skipped", run.Skipped).
		Int("errors", run.Errors).
		Str("status", run.Status).
		Msg("One-shot ingestion finished")

	return nil
}
