package llm

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/riskwire/riskwire/internal/core/errors"
)

// BriefSchema is the JSON-schema contract for ArticleBrief. It is sent to the
// model as a structured-output constraint AND enforced client-side on every
// response; both passes must succeed.
const BriefSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": [
    "title", "url", "source", "bullets5", "whyItMatters", "tags",
    "riskPulse", "sentiment", "confidence", "citations",
    "impactScore", "impactBreakdown", "confidenceRationale",
    "leadQuote", "disclosure"
  ],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "url": {"type": "string", "minLength": 1},
    "source": {"type": "string", "minLength": 1},
    "bullets5": {
      "type": "array",
      "items": {"type": "string", "minLength": 1},
      "minItems": 3,
      "maxItems": 5
    },
    "whyItMatters": {
      "type": "object",
      "additionalProperties": false,
      "required": ["underwriting", "claims", "brokerage", "actuarial"],
      "properties": {
        "underwriting": {"type": "string", "minLength": 20, "maxLength": 200},
        "claims": {"type": "string", "minLength": 20, "maxLength": 200},
        "brokerage": {"type": "string", "minLength": 20, "maxLength": 200},
        "actuarial": {"type": "string", "minLength": 20, "maxLength": 200}
      }
    },
    "tags": {
      "type": "object",
      "additionalProperties": false,
      "required": ["lob", "perils", "regions", "companies", "trends", "regulations"],
      "properties": {
        "lob": {"type": "array", "items": {"type": "string"}},
        "perils": {"type": "array", "items": {"type": "string"}},
        "regions": {"type": "array", "items": {"type": "string"}},
        "companies": {"type": "array", "items": {"type": "string"}},
        "trends": {"type": "array", "items": {"type": "string"}},
        "regulations": {"type": "array", "items": {"type": "string"}}
      }
    },
    "riskPulse": {"type": "string", "enum": ["LOW", "MEDIUM", "HIGH"]},
    "sentiment": {"type": "string", "enum": ["POSITIVE", "NEGATIVE", "NEUTRAL"]},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "citations": {
      "type": "array",
      "items": {"type": "string"},
      "maxItems": 10
    },
    "impactScore": {"type": "number", "minimum": 0, "maximum": 100},
    "impactBreakdown": {
      "type": "object",
      "additionalProperties": false,
      "required": ["market", "regulatory", "catastrophe", "technology"],
      "properties": {
        "market": {"type": "number", "minimum": 0, "maximum": 100},
        "regulatory": {"type": "number", "minimum": 0, "maximum": 100},
        "catastrophe": {"type": "number", "minimum": 0, "maximum": 100},
        "technology": {"type": "number", "minimum": 0, "maximum": 100}
      }
    },
    "confidenceRationale": {"type": "string", "maxLength": 200},
    "leadQuote": {"type": "string", "maxLength": 300},
    "disclosure": {"type": "string", "maxLength": 200}
  }
}`

var briefSchemaLoader = gojsonschema.NewStringLoader(BriefSchema)

// ValidateBriefJSON validates a raw LLM response against BriefSchema.
// Returns ErrSchemaValidation (wrapped with the violation list) on failure,
// including malformed JSON.
func ValidateBriefJSON(data []byte) error {
	result, err := gojsonschema.Validate(briefSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSchemaValidation, err)
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}

	return fmt.Errorf("%w: %s", apperrors.ErrSchemaValidation, strings.Join(violations, "; "))
}
