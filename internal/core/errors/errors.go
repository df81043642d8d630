// Package errors provides centralized error definitions for the application.
// Errors are organized by pipeline stage to avoid duplication and provide
// consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Extraction errors. Extraction failure is recoverable: callers fall back to
// feed-supplied title and snippet instead of discarding the item.
var (
	// ErrExtraction indicates the content extractor could not produce a usable body.
	ErrExtraction = errors.New("content extraction failed")

	// ErrShortContent indicates the extracted body is below the minimum length
	// required before an LLM call is allowed.
	ErrShortContent = errors.New("content too short")
)

// Summarization errors.
var (
	// ErrSchemaValidation indicates the LLM response did not conform to the
	// brief schema. Retryable within the generator's retry budget.
	ErrSchemaValidation = errors.New("brief schema validation failed")

	// ErrSummarization indicates the retry budget for a brief was exhausted.
	// The caller must skip the item, never insert a partial document.
	ErrSummarization = errors.New("summarization failed")

	// ErrEmptyResponse indicates an empty response was received from the LLM.
	ErrEmptyResponse = errors.New("empty response")
)

// Dedup errors.
var (
	// ErrDuplicate indicates the item was already ingested, either under the
	// same URL or as a syndicated copy with the same content fingerprint.
	// Expected during normal operation; skipped silently, not logged as failure.
	ErrDuplicate = errors.New("duplicate article")
)

// Embedding errors.
var (
	// ErrDimensionMismatch indicates a vector whose length differs from the
	// configured embedding dimension. Always a hard configuration error.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// Generic errors.
var (
	// ErrNotFound is a generic not found error.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
