package models

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the only error surfaced to callers: a request with a
// missing team name. Everything else degrades to a fallback result.
var ErrInvalidInput = errors.New("invalid input")

// InferenceErrorKind classifies a failed provider call
type InferenceErrorKind string

const (
	InferenceRateLimited     InferenceErrorKind = "RateLimited"
	InferenceProviderError   InferenceErrorKind = "ProviderError"
	InferenceMalformedOutput InferenceErrorKind = "MalformedOutput"
)

// InferenceError wraps a generative-provider failure with its class.
// All three kinds are eligible for fallback routing.
type InferenceError struct {
	Kind InferenceErrorKind
	Err  error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference %s: %v", e.Kind, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// NewInferenceError creates a classified inference error
func NewInferenceError(kind InferenceErrorKind, err error) *InferenceError {
	return &InferenceError{Kind: kind, Err: err}
}

// InferenceKind extracts the classification from an error chain, or ""
func InferenceKind(err error) InferenceErrorKind {
	var ie *InferenceError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}
