package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riskwire/riskwire/internal/core/domain"
)

var scoreNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func baseArticle(age time.Duration) *domain.StoredArticle {
	return &domain.StoredArticle{
		ArticleBrief: domain.ArticleBrief{
			RiskPulse:   domain.RiskPulseLow,
			ImpactScore: 40,
			ImpactBreakdown: domain.ImpactBreakdown{
				Market: 40, Regulatory: 40, Catastrophe: 40, Technology: 40,
			},
		},
		PublishedAt: scoreNow.Add(-age),
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		article *domain.StoredArticle
		want    ContentClass
	}{
		{
			name:    "named storm is catastrophe",
			article: &domain.StoredArticle{StormName: "Hurricane Milton"},
			want:    ClassCatastrophe,
		},
		{
			name: "high catastrophe breakdown is catastrophe",
			article: &domain.StoredArticle{ArticleBrief: domain.ArticleBrief{
				ImpactBreakdown: domain.ImpactBreakdown{Catastrophe: 80},
			}},
			want: ClassCatastrophe,
		},
		{
			name:    "regulatory flag",
			article: &domain.StoredArticle{Regulatory: true},
			want:    ClassRegulatory,
		},
		{
			name: "regulation tags",
			article: &domain.StoredArticle{ArticleBrief: domain.ArticleBrief{
				Tags: domain.Tags{Regulations: []string{"NAIC model law"}},
			}},
			want: ClassRegulatory,
		},
		{
			name: "catastrophe beats regulatory",
			article: &domain.StoredArticle{
				StormName:  "Hurricane Milton",
				Regulatory: true,
			},
			want: ClassCatastrophe,
		},
		{
			name: "trend tags are evergreen",
			article: &domain.StoredArticle{ArticleBrief: domain.ArticleBrief{
				Tags: domain.Tags{Trends: []string{"social inflation"}},
			}},
			want: ClassEvergreen,
		},
		{
			name:    "nothing special is general",
			article: &domain.StoredArticle{},
			want:    ClassGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.article))
		})
	}
}

func TestCalculate_Bounded(t *testing.T) {
	ages := []time.Duration{0, time.Hour, 24 * time.Hour, 10 * 24 * time.Hour, 90 * 24 * time.Hour}

	for _, age := range ages {
		a := baseArticle(age)
		a.RiskPulse = domain.RiskPulseHigh
		a.Regulatory = true
		a.StormName = "Hurricane Milton"
		a.Tags.Trends = []string{"social inflation"}
		a.Tags.LinesOfBusiness = []string{"property", "casualty", "auto"}
		a.ImpactScore = 100
		a.ImpactBreakdown = domain.ImpactBreakdown{Market: 100, Regulatory: 100, Catastrophe: 100, Technology: 100}

		eng := &domain.Engagement{Clicks: 1000, Saves: 500, Shares: 200, TimeSpentSec: 3000}

		got := Calculate(a, eng, scoreNow)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestCalculate_RecencyMonotonic(t *testing.T) {
	shape := []struct {
		name  string
		setup func(a *domain.StoredArticle)
	}{
		{"general", func(*domain.StoredArticle) {}},
		{"regulatory", func(a *domain.StoredArticle) { a.Regulatory = true }},
		{"evergreen", func(a *domain.StoredArticle) { a.Tags.Trends = []string{"telematics"} }},
		{"catastrophe", func(a *domain.StoredArticle) { a.StormName = "Hurricane Milton" }},
	}

	for _, tt := range shape {
		t.Run(tt.name, func(t *testing.T) {
			fresh := baseArticle(2 * time.Hour)
			stale := baseArticle(48 * time.Hour)
			tt.setup(fresh)
			tt.setup(stale)

			assert.GreaterOrEqual(t, Calculate(fresh, nil, scoreNow), Calculate(stale, nil, scoreNow))
		})
	}
}

func TestCalculate_BoostMonotonic(t *testing.T) {
	t.Run("risk pulse", func(t *testing.T) {
		high := baseArticle(6 * time.Hour)
		high.RiskPulse = domain.RiskPulseHigh

		low := baseArticle(6 * time.Hour)
		low.RiskPulse = domain.RiskPulseLow

		assert.Greater(t, Calculate(high, nil, scoreNow), Calculate(low, nil, scoreNow))
	})

	t.Run("regulatory", func(t *testing.T) {
		reg := baseArticle(6 * time.Hour)
		reg.Regulatory = true

		assert.Greater(t, Calculate(reg, nil, scoreNow), Calculate(baseArticle(6*time.Hour), nil, scoreNow))
	})

	t.Run("named storm", func(t *testing.T) {
		storm := baseArticle(6 * time.Hour)
		storm.StormName = "Hurricane Milton"

		assert.Greater(t, Calculate(storm, nil, scoreNow), Calculate(baseArticle(6*time.Hour), nil, scoreNow))
	})

	t.Run("storm beats peril tag", func(t *testing.T) {
		storm := baseArticle(6 * time.Hour)
		storm.StormName = "Hurricane Milton"

		peril := baseArticle(6 * time.Hour)
		peril.ImpactBreakdown.Catastrophe = 60
		peril.Tags.Perils = []string{"wildfire"}
		storm.ImpactBreakdown.Catastrophe = 60

		assert.Greater(t, Calculate(storm, nil, scoreNow), Calculate(peril, nil, scoreNow))
	})

	t.Run("engagement", func(t *testing.T) {
		a := baseArticle(6 * time.Hour)
		eng := &domain.Engagement{Clicks: 50, Saves: 25, Shares: 10, TimeSpentSec: 150}

		assert.Greater(t, Calculate(a, eng, scoreNow), Calculate(a, nil, scoreNow))
	})

	t.Run("lob breadth", func(t *testing.T) {
		broad := baseArticle(6 * time.Hour)
		broad.Tags.LinesOfBusiness = []string{"property", "casualty", "auto"}

		two := baseArticle(6 * time.Hour)
		two.Tags.LinesOfBusiness = []string{"property", "casualty"}

		one := baseArticle(6 * time.Hour)
		one.Tags.LinesOfBusiness = []string{"property"}

		assert.Greater(t, Calculate(broad, nil, scoreNow), Calculate(two, nil, scoreNow))
		assert.Greater(t, Calculate(two, nil, scoreNow), Calculate(one, nil, scoreNow))
	})
}

func TestCalculate_EvenSplitFallback(t *testing.T) {
	withBreakdown := baseArticle(6 * time.Hour)

	fallback := baseArticle(6 * time.Hour)
	fallback.ImpactBreakdown = domain.ImpactBreakdown{}

	// An even split of the overall score weights back to the same number as
	// an explicit uniform breakdown.
	assert.Equal(t, Calculate(withBreakdown, nil, scoreNow), Calculate(fallback, nil, scoreNow))
}

func TestCalculate_FutureTimestampClamped(t *testing.T) {
	future := baseArticle(-2 * time.Hour)
	present := baseArticle(0)

	assert.Equal(t, Calculate(present, nil, scoreNow), Calculate(future, nil, scoreNow))
}

func TestCalculate_OneDecimal(t *testing.T) {
	got := Calculate(baseArticle(5*time.Hour), nil, scoreNow)

	assert.Equal(t, got, round1(got))
}

func TestEngagementMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, engagementMultiplier(nil))
	assert.Equal(t, 1.0, engagementMultiplier(&domain.Engagement{}))

	saturated := engagementMultiplier(&domain.Engagement{
		Clicks: 10000, Saves: 10000, Shares: 10000, TimeSpentSec: 10000,
	})
	assert.InDelta(t, 1.15, saturated, 1e-9)
}

func TestAgeWeights(t *testing.T) {
	tests := []struct {
		days        float64
		wantRecency float64
		wantImpact  float64
	}{
		{0.5, 0.50, 0.50},
		{3, 0.35, 0.65},
		{10, 0.25, 0.75},
	}

	for _, tt := range tests {
		recency, impact := ageWeights(tt.days)
		assert.Equal(t, tt.wantRecency, recency)
		assert.Equal(t, tt.wantImpact, impact)
	}
}
