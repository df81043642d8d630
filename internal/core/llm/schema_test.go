package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/riskwire/riskwire/internal/core/errors"
)

func validBriefMap() map[string]interface{} {
	return map[string]interface{}{
		"title":  "Florida reinsurance renewals firm up",
		"url":    "https://example.com/article",
		"source": "Insurance Journal",
		"bullets5": []string{
			"June renewals priced risk-adjusted rates up 10% [1]",
			"Capacity returned after two quiet wind seasons",
			"Retentions held at 2023 levels for most cedents",
		},
		"whyItMatters": map[string]string{
			"underwriting": "Property cat pricing pressure eases for Florida-exposed books this season.",
			"claims":       "Higher retentions keep more hurricane losses net to primary carriers.",
			"brokerage":    "Placement leverage shifts back toward cedents at mid-year renewals.",
			"actuarial":    "Rate adequacy assumptions for cat loads need a mid-year refresh.",
		},
		"tags": map[string][]string{
			"lob":         {"Commercial Property", "Homeowners"},
			"perils":      {"hurricane"},
			"regions":     {"US-FL"},
			"companies":   {"Swiss Re"},
			"trends":      {"reinsurance capacity"},
			"regulations": {},
		},
		"riskPulse":   "MEDIUM",
		"sentiment":   "NEUTRAL",
		"confidence":  0.8,
		"citations":   []string{"https://example.com/article"},
		"impactScore": 60,
		"impactBreakdown": map[string]float64{
			"market":      70,
			"regulatory":  40,
			"catastrophe": 75,
			"technology":  20,
		},
		"confidenceRationale": "Single trade-press source, consistent with renewal reports.",
		"leadQuote":           "",
		"disclosure":          "",
	}
}

func marshalBrief(t *testing.T, m map[string]interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(m)
	require.NoError(t, err)

	return data
}

func TestValidateBriefJSON_Valid(t *testing.T) {
	require.NoError(t, ValidateBriefJSON(marshalBrief(t, validBriefMap())))
}

func TestValidateBriefJSON_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]interface{})
	}{
		{
			name:   "missing field",
			mutate: func(m map[string]interface{}) { delete(m, "riskPulse") },
		},
		{
			name:   "too few bullets",
			mutate: func(m map[string]interface{}) { m["bullets5"] = []string{"only one"} },
		},
		{
			name:   "bad risk pulse enum",
			mutate: func(m map[string]interface{}) { m["riskPulse"] = "SEVERE" },
		},
		{
			name:   "confidence out of range",
			mutate: func(m map[string]interface{}) { m["confidence"] = 1.5 },
		},
		{
			name:   "impact score out of range",
			mutate: func(m map[string]interface{}) { m["impactScore"] = 120 },
		},
		{
			name: "why it matters too short",
			mutate: func(m map[string]interface{}) {
				m["whyItMatters"].(map[string]string)["claims"] = "short"
			},
		},
		{
			name: "too many citations",
			mutate: func(m map[string]interface{}) {
				urls := make([]string, 11)
				for i := range urls {
					urls[i] = "https://example.com/a"
				}
				m["citations"] = urls
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validBriefMap()
			tt.mutate(m)

			err := ValidateBriefJSON(marshalBrief(t, m))
			require.ErrorIs(t, err, apperrors.ErrSchemaValidation)
		})
	}
}

func TestValidateBriefJSON_MalformedJSON(t *testing.T) {
	err := ValidateBriefJSON([]byte("{not json"))
	require.ErrorIs(t, err, apperrors.ErrSchemaValidation)
}
