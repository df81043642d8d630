package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	PostgresDSN       string        `env:"POSTGRES_DSN,required"`
	MaxConnections    int32         `env:"DB_MAX_CONNECTIONS" envDefault:"25"`
	MinConnections    int32         `env:"DB_MIN_CONNECTIONS" envDefault:"5"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
}

// LLMConfig holds settings for the chat-completion and embedding clients.
type LLMConfig struct {
	APIKey              string        `env:"OPENAI_API_KEY,required"`
	Model               string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel      string        `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	EmbeddingDimensions int           `env:"EMBEDDING_DIMENSIONS" envDefault:"512"`
	RateLimitRPS        float64       `env:"LLM_RATE_LIMIT_RPS" envDefault:"2"`
	BriefMaxAttempts    int           `env:"BRIEF_MAX_ATTEMPTS" envDefault:"5"`
	BriefRetryBase      time.Duration `env:"BRIEF_RETRY_BASE" envDefault:"1s"`
	EmbedTimeout        time.Duration `env:"EMBED_TIMEOUT" envDefault:"10s"`
	EmbedMaxAttempts    int           `env:"EMBED_MAX_ATTEMPTS" envDefault:"3"`
	ContentCharBudget   int           `env:"CONTENT_CHAR_BUDGET" envDefault:"14000"`
}

// IngestConfig holds batch orchestrator settings.
type IngestConfig struct {
	Feeds           []string      `env:"FEEDS" envSeparator:";"`
	BatchSize       int           `env:"INGEST_BATCH_SIZE" envDefault:"50"`
	Interval        time.Duration `env:"INGEST_INTERVAL" envDefault:"1h"`
	RunOnStart      bool          `env:"INGEST_RUN_ON_START" envDefault:"true"`
	RescoreInterval time.Duration `env:"RESCORE_INTERVAL" envDefault:"6h"`
	RescoreWindow   time.Duration `env:"RESCORE_WINDOW" envDefault:"168h"`
	WebFetchRPS     float64       `env:"WEB_FETCH_RPS" envDefault:"2"`
	WebFetchTimeout time.Duration `env:"WEB_FETCH_TIMEOUT" envDefault:"30s"`
}

// AnswerConfig holds retrieval settings for the question endpoint.
type AnswerConfig struct {
	RecentLimit int `env:"ANSWER_RECENT_LIMIT" envDefault:"500"`
	TopK        int `env:"ANSWER_TOP_K" envDefault:"8"`
}

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	HTTPPort int    `env:"HTTP_PORT" envDefault:"8080"`

	Database DatabaseConfig
	LLM      LLMConfig
	Ingest   IngestConfig
	Answer   AnswerConfig
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	return cfg, nil
}
