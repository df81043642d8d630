package domain

import "time"

// Feed is a configured RSS source.
type Feed struct {
	Name       string
	URL        string
	Category   string
	Regulatory bool
}

// FeedItem represents a single entry fetched from an RSS feed. Ephemeral:
// discarded once converted to a StoredArticle or rejected.
type FeedItem struct {
	FeedName     string
	FeedCategory string
	Regulatory   bool
	Title        string
	Link         string
	Content      string
	PublishedAt  time.Time
}

// ExtractedContent is the normalized body produced by the content extractor.
// Text is the canonical body used for all downstream hashing and scoring.
type ExtractedContent struct {
	URL       string
	Title     string
	Text      string
	HTML      string
	Author    string
	MainImage string
}

// Risk pulse levels.
const (
	RiskPulseLow    = "LOW"
	RiskPulseMedium = "MEDIUM"
	RiskPulseHigh   = "HIGH"
)

// Sentiment labels.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// Tags groups the controlled-vocabulary labels attached to a brief.
type Tags struct {
	LinesOfBusiness []string `json:"lob"`
	Perils          []string `json:"perils"`
	Regions         []string `json:"regions"`
	Companies       []string `json:"companies"`
	Trends          []string `json:"trends"`
	Regulations     []string `json:"regulations"`
}

// RoleImpact holds the per-role "why it matters" notes.
type RoleImpact struct {
	Underwriting string `json:"underwriting"`
	Claims       string `json:"claims"`
	Brokerage    string `json:"brokerage"`
	Actuarial    string `json:"actuarial"`
}

// ImpactBreakdown splits the overall impact score into four dimensions,
// each in [0,100].
type ImpactBreakdown struct {
	Market      float64 `json:"market"`
	Regulatory  float64 `json:"regulatory"`
	Catastrophe float64 `json:"catastrophe"`
	Technology  float64 `json:"technology"`
}

// IsZero reports whether no dimension has been set.
func (b ImpactBreakdown) IsZero() bool {
	return b == ImpactBreakdown{}
}

// ArticleBrief is the schema-validated LLM output describing one article.
// Every field is required; a response violating the schema is a hard failure
// of that LLM call.
type ArticleBrief struct {
	Title               string          `json:"title"`
	URL                 string          `json:"url"`
	Source              string          `json:"source"`
	Bullets             []string        `json:"bullets5"`
	WhyItMatters        RoleImpact      `json:"whyItMatters"`
	Tags                Tags            `json:"tags"`
	RiskPulse           string          `json:"riskPulse"`
	Sentiment           string          `json:"sentiment"`
	Confidence          float64         `json:"confidence"`
	Citations           []string        `json:"citations"`
	ImpactScore         float64         `json:"impactScore"`
	ImpactBreakdown     ImpactBreakdown `json:"impactBreakdown"`
	ConfidenceRationale string          `json:"confidenceRationale"`
	LeadQuote           string          `json:"leadQuote"`
	Disclosure          string          `json:"disclosure"`
}

// StoredArticle is an ArticleBrief plus the derived fields owned by the
// pipeline. ID (hash of the URL) is the only primary key; ContentHash and
// CanonicalURL are secondary dedup keys for syndicated copies.
type StoredArticle struct {
	ArticleBrief

	ID           string
	ContentHash  string
	CanonicalURL string
	SmartScore   float64
	StormName    string
	Regulatory   bool
	Processed    bool
	PublishedAt  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Engagement holds per-article reader signals used by the scoring boost.
type Engagement struct {
	Clicks       int
	Saves        int
	Shares       int
	TimeSpentSec float64
}

// Embedding associates a fixed-length vector with a stored article.
// Stored independently; the relationship is a back-reference by ArticleID.
type Embedding struct {
	ArticleID string
	Vector    []float32
	CreatedAt time.Time
}

// ArticleWithVector pairs a stored article with its embedding for the
// in-memory similarity scan.
type ArticleWithVector struct {
	Article *StoredArticle
	Vector  []float32
}

// Batch run statuses.
const (
	RunStatusSuccess = "success"
	RunStatusPartial = "partial"
	RunStatusFailed  = "failed"
)

// BatchRunLog is the append-only audit record for one orchestrator run.
type BatchRunLog struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Processed int
	Skipped   int
	Errors    int
	Status    string
}
