package llm

import (
	"context"
	"fmt"

	"github.com/riskwire/riskwire/internal/core/domain"
)

// MockClient returns canned briefs and answers. For local development
// without an API key.
type MockClient struct{}

func NewMock() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GenerateBrief(_ context.Context, in BriefInput) (*domain.ArticleBrief, error) {
	return &domain.ArticleBrief{
		Title:  in.Title,
		URL:    in.URL,
		Source: in.Source,
		Bullets: []string{
			"Mock summary of the article lead.",
			"Mock detail on market impact.",
			"Mock note on affected lines of business.",
		},
		WhyItMatters: domain.RoleImpact{
			Underwriting: "Mock underwriting impact for local development runs.",
			Claims:       "Mock claims impact for local development runs.",
			Brokerage:    "Mock brokerage impact for local development runs.",
			Actuarial:    "Mock actuarial impact for local development runs.",
		},
		RiskPulse:           domain.RiskPulseMedium,
		Sentiment:           domain.SentimentNeutral,
		Confidence:          0.5,
		Citations:           []string{in.URL},
		ImpactScore:         50,
		ImpactBreakdown:     domain.ImpactBreakdown{Market: 50, Regulatory: 50, Catastrophe: 50, Technology: 50},
		ConfidenceRationale: "Mock response, no model was consulted.",
		Disclosure:          "Generated by the mock client.",
	}, nil
}

func (m *MockClient) AnswerQuestion(_ context.Context, question, _ string) (*AnswerResult, error) {
	return &AnswerResult{
		Answer:  fmt.Sprintf("Mock answer to: %s", question),
		Sources: []string{},
	}, nil
}
