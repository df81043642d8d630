package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItemsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskwire_items_ingested_total",
		Help: "The total number of feed items converted into stored articles",
	}, []string{"feed"})

	ItemsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskwire_items_skipped_total",
		Help: "The total number of feed items skipped by reason",
	}, []string{"reason"})

	ItemErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskwire_item_errors_total",
		Help: "The total number of per-item failures by stage",
	}, []string{"stage"})

	FeedErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskwire_feed_errors_total",
		Help: "The total number of whole-feed fetch failures",
	}, []string{"feed"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "riskwire_llm_request_duration_seconds",
		Help:    "Duration of LLM and embedding requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	BriefAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskwire_brief_attempts",
		Help:    "Number of attempts needed to obtain a schema-valid brief",
		Buckets: []float64{1, 2, 3, 4, 5},
	})

	BatchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskwire_batch_duration_seconds",
		Help:    "Duration in seconds of one orchestrator run",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
	})

	BatchRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskwire_batch_runs_total",
		Help: "The total number of orchestrator runs by status",
	}, []string{"status"})

	CoherenceWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riskwire_brief_coherence_warnings_total",
		Help: "Briefs whose impact breakdown diverged from the overall impact score",
	})

	SmartScoreDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskwire_smartscore",
		Help:    "Distribution of SmartScore values at persist time",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	QuestionsAnswered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskwire_questions_answered_total",
		Help: "The total number of answered questions by status",
	}, []string{"status"})

	ArticlesRescored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riskwire_articles_rescored_total",
		Help: "The total number of articles whose SmartScore was recomputed",
	})
)
