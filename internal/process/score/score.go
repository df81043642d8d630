// Package score implements the SmartScore ranking model: a pure function
// from one article plus optional engagement counters to a 0-100 score.
// The stored score is a cache of this function, never a source of truth,
// so it can be recomputed at any time with a fresh clock.
package score

import (
	"math"
	"strings"
	"time"

	"github.com/riskwire/riskwire/internal/core/domain"
)

// ContentClass selects the recency decay curve. Classification priority is
// catastrophe > regulatory > evergreen > general; Classify encodes that
// order, the decay table below holds one curve per class.
type ContentClass int

const (
	ClassGeneral ContentClass = iota
	ClassEvergreen
	ClassRegulatory
	ClassCatastrophe
)

func (c ContentClass) String() string {
	switch c {
	case ClassCatastrophe:
		return "catastrophe"
	case ClassRegulatory:
		return "regulatory"
	case ClassEvergreen:
		return "evergreen"
	default:
		return "general"
	}
}

// decayTable maps each content class to its recency curve over age in
// hours. Every curve returns a value in [0,100] for non-negative ages.
var decayTable = map[ContentClass]func(hours float64) float64{
	ClassCatastrophe: func(h float64) float64 { return 100 * math.Exp(-math.Pow(h, 1.2)/100) },
	ClassRegulatory:  func(h float64) float64 { return 100 * math.Exp(-math.Pow(h, 1.1)/80) },
	ClassEvergreen:   func(h float64) float64 { return 100 * math.Exp(-h/240) },
	ClassGeneral:     func(h float64) float64 { return 100 * math.Exp(-h/24) },
}

// Impact breakdown weights. Regulatory and market developments move books
// of business more than technology stories do.
const (
	weightMarket      = 0.30
	weightRegulatory  = 0.35
	weightCatastrophe = 0.25
	weightTechnology  = 0.10
)

// Engagement normalization ceilings and weights. Each counter saturates at
// its ceiling; the combined signal adds at most 15% to the base score.
const (
	clicksCeiling    = 100
	savesCeiling     = 50
	sharesCeiling    = 20
	timeSpentCeiling = 300

	weightClicks    = 0.40
	weightSaves     = 0.35
	weightShares    = 0.15
	weightTimeSpent = 0.10

	engagementCap = 0.15
)

const (
	boostPulseHigh       = 1.25
	boostPulseMedium     = 1.10
	boostRegulatory      = 1.20
	boostNamedStorm      = 1.30
	boostCatastrophePerl = 1.15
	boostTrend           = 1.10
	boostBroadLOB        = 1.08
	boostMultiLOB        = 1.04
)

// catastrophePerils is the fixed peril list that earns the catastrophe tag
// boost when no named storm is present.
var catastrophePerils = map[string]struct{}{
	"hurricane":      {},
	"wildfire":       {},
	"flood":          {},
	"earthquake":     {},
	"tornado":        {},
	"hail":           {},
	"winter storm":   {},
	"severe storm":   {},
	"storm surge":    {},
	"tropical storm": {},
}

// highValueTrends is the controlled vocabulary of market-moving trends.
var highValueTrends = map[string]struct{}{
	"social inflation":     {},
	"nuclear verdicts":     {},
	"climate risk":         {},
	"cyber":                {},
	"rate adequacy":        {},
	"hard market":          {},
	"reinsurance capacity": {},
	"litigation funding":   {},
	"catastrophe bonds":    {},
	"parametric":           {},
}

// Classify picks the content class for an article. When several hold the
// highest-priority one wins.
func Classify(a *domain.StoredArticle) ContentClass {
	switch {
	case a.StormName != "" || a.ImpactBreakdown.Catastrophe > 50:
		return ClassCatastrophe
	case a.Regulatory || len(a.Tags.Regulations) > 0:
		return ClassRegulatory
	case len(a.Tags.Trends) > 0:
		return ClassEvergreen
	default:
		return ClassGeneral
	}
}

// Calculate returns the SmartScore for an article at the given instant,
// rounded to one decimal. eng may be nil when no engagement counters exist
// yet. Deterministic for a fixed (article, engagement, now).
func Calculate(a *domain.StoredArticle, eng *domain.Engagement, now time.Time) float64 {
	class := Classify(a)

	hours := now.Sub(a.PublishedAt).Hours()
	if hours < 0 {
		hours = 0
	}

	recency := decayTable[class](hours)
	impact := weightedImpact(a)

	wRecency, wImpact := ageWeights(hours / 24)
	base := recency*wRecency + impact*wImpact

	final := base *
		engagementMultiplier(eng) *
		riskPulseBoost(a.RiskPulse) *
		regulatoryBoost(a) *
		catastropheBoost(a) *
		trendBoost(a.Tags.Trends) *
		lobBoost(a.Tags.LinesOfBusiness)

	return round1(math.Min(100, final))
}

// weightedImpact collapses the four-dimensional breakdown into one number.
// An absent breakdown falls back to an even split of the overall score, which
// makes the weighted sum equal the overall score.
func weightedImpact(a *domain.StoredArticle) float64 {
	b := a.ImpactBreakdown
	if b.IsZero() {
		even := a.ImpactScore
		b = domain.ImpactBreakdown{Market: even, Regulatory: even, Catastrophe: even, Technology: even}
	}

	return b.Market*weightMarket +
		b.Regulatory*weightRegulatory +
		b.Catastrophe*weightCatastrophe +
		b.Technology*weightTechnology
}

// ageWeights returns the recency:impact blend for an age in days. Fresh news
// leans on recency; after a week the impact dimensions dominate.
func ageWeights(days float64) (recency, impact float64) {
	switch {
	case days < 1:
		return 0.50, 0.50
	case days > 7:
		return 0.25, 0.75
	default:
		return 0.35, 0.65
	}
}

func engagementMultiplier(eng *domain.Engagement) float64 {
	if eng == nil {
		return 1.0
	}

	signal := normalize(float64(eng.Clicks), clicksCeiling)*weightClicks +
		normalize(float64(eng.Saves), savesCeiling)*weightSaves +
		normalize(float64(eng.Shares), sharesCeiling)*weightShares +
		normalize(eng.TimeSpentSec, timeSpentCeiling)*weightTimeSpent

	return 1.0 + signal*engagementCap
}

func normalize(v, ceiling float64) float64 {
	return math.Min(1, v/ceiling)
}

func riskPulseBoost(pulse string) float64 {
	switch pulse {
	case domain.RiskPulseHigh:
		return boostPulseHigh
	case domain.RiskPulseMedium:
		return boostPulseMedium
	default:
		return 1.0
	}
}

func regulatoryBoost(a *domain.StoredArticle) float64 {
	if a.Regulatory || len(a.Tags.Regulations) > 0 {
		return boostRegulatory
	}

	return 1.0
}

func catastropheBoost(a *domain.StoredArticle) float64 {
	if a.StormName != "" {
		return boostNamedStorm
	}

	for _, peril := range a.Tags.Perils {
		if _, ok := catastrophePerils[strings.ToLower(strings.TrimSpace(peril))]; ok {
			return boostCatastrophePerl
		}
	}

	return 1.0
}

func trendBoost(trends []string) float64 {
	for _, trend := range trends {
		if _, ok := highValueTrends[strings.ToLower(strings.TrimSpace(trend))]; ok {
			return boostTrend
		}
	}

	return 1.0
}

func lobBoost(lobs []string) float64 {
	switch {
	case len(lobs) >= 3:
		return boostBroadLOB
	case len(lobs) >= 2:
		return boostMultiLOB
	default:
		return 1.0
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
