package brief

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/riskwire/riskwire/internal/core/domain"
)

const (
	scoreMin = 0
	scoreMax = 100

	// coherenceTolerance is how far the breakdown average may drift from the
	// overall impact score before it is flagged as a data-quality signal.
	coherenceTolerance = 20

	breakdownDimensions = 4
)

var (
	markerRegex     = regexp.MustCompile(`\[(\d+)\]`)
	doubleSpaceFix  = regexp.MustCompile(`  +`)
	spaceBeforeStop = regexp.MustCompile(` ([.,;:])`)
)

// Clean returns a repaired copy of the brief plus any non-fatal data-quality
// warnings. Pure and idempotent; the input is never mutated.
func Clean(in domain.ArticleBrief) (domain.ArticleBrief, []string) {
	out := in

	out = cleanCitations(out)

	out, warnings := checkImpactCoherence(out)

	return out, warnings
}

// cleanCitations de-duplicates citations case-insensitively (first-seen
// casing wins), drops entries that fail URL parsing, and strips bullet
// markers that no longer point into the citation list.
func cleanCitations(in domain.ArticleBrief) domain.ArticleBrief {
	out := in

	citations := make([]string, 0, len(in.Citations))
	seen := make(map[string]struct{}, len(in.Citations))

	for _, citation := range in.Citations {
		citation = strings.TrimSpace(citation)
		if !isValidURL(citation) {
			continue
		}

		key := strings.ToLower(citation)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		citations = append(citations, citation)
	}

	out.Citations = citations
	out.Bullets = cleanMarkers(in.Bullets, len(citations))

	return out
}

func isValidURL(s string) bool {
	if s == "" {
		return false
	}

	u, err := url.Parse(s)

	return err == nil && u.Scheme != "" && u.Host != ""
}

// cleanMarkers strips [n] markers from bullets: all of them when no valid
// citations remain, otherwise only those whose n falls outside
// [1, citationCount].
func cleanMarkers(bullets []string, citationCount int) []string {
	out := make([]string, len(bullets))

	for i, bullet := range bullets {
		cleaned := markerRegex.ReplaceAllStringFunc(bullet, func(marker string) string {
			if citationCount == 0 {
				return ""
			}

			n, err := strconv.Atoi(markerRegex.FindStringSubmatch(marker)[1])
			if err != nil || n < 1 || n > citationCount {
				return ""
			}

			return marker
		})

		cleaned = doubleSpaceFix.ReplaceAllString(cleaned, " ")
		cleaned = spaceBeforeStop.ReplaceAllString(cleaned, "$1")
		out[i] = strings.TrimSpace(cleaned)
	}

	return out
}

// checkImpactCoherence clamps the impact score and its breakdown to [0,100]
// and flags (without rejecting) a breakdown whose average diverges from the
// overall score.
func checkImpactCoherence(in domain.ArticleBrief) (domain.ArticleBrief, []string) {
	out := in

	out.ImpactScore = clamp(in.ImpactScore)
	out.ImpactBreakdown = domain.ImpactBreakdown{
		Market:      clamp(in.ImpactBreakdown.Market),
		Regulatory:  clamp(in.ImpactBreakdown.Regulatory),
		Catastrophe: clamp(in.ImpactBreakdown.Catastrophe),
		Technology:  clamp(in.ImpactBreakdown.Technology),
	}

	avg := (out.ImpactBreakdown.Market + out.ImpactBreakdown.Regulatory +
		out.ImpactBreakdown.Catastrophe + out.ImpactBreakdown.Technology) / breakdownDimensions

	var warnings []string

	if math.Abs(avg-out.ImpactScore) > coherenceTolerance {
		warnings = append(warnings, fmt.Sprintf(
			"impact breakdown average %.1f diverges from impact score %.1f", avg, out.ImpactScore))
	}

	return out, warnings
}

func clamp(v float64) float64 {
	return math.Min(scoreMax, math.Max(scoreMin, v))
}
