package core

import (
	"errors"
	"fmt"
)

// FailureKind identifies the pipeline stage a failure came from.
type FailureKind string

const (
	FailureConfig     FailureKind = "config"
	FailureFetch      FailureKind = "fetch"
	FailureGeneration FailureKind = "generation"
	FailureParse      FailureKind = "parse"
	FailureCanceled   FailureKind = "canceled"
)

// ErrMissingCredential is returned by generators that have no API key configured.
var ErrMissingCredential = errors.New("missing generator credential")

// Failure is a tagged stage failure. The planner inspects Kind to decide
// between surfacing the error and falling back.
type Failure struct {
	Kind       FailureKind
	StatusCode int // upstream HTTP status for fetch failures, 0 otherwise
	Err        error
}

func (f *Failure) Error() string {
	switch {
	case f.Kind == FailureFetch && f.StatusCode != 0:
		return fmt.Sprintf("fetch failed with status %d", f.StatusCode)
	case f.Err != nil:
		return fmt.Sprintf("%s failed: %v", f.Kind, f.Err)
	default:
		return fmt.Sprintf("%s failed", f.Kind)
	}
}

func (f *Failure) Unwrap() error { return f.Err }

// Surfaced reports whether the failure must reach the caller instead of
// being absorbed by the fallback itinerary.
func (f *Failure) Surfaced() bool {
	switch f.Kind {
	case FailureGeneration, FailureParse:
		return false
	default:
		return true
	}
}

func ConfigFailure(err error) *Failure {
	return &Failure{Kind: FailureConfig, Err: err}
}

func FetchFailure(statusCode int, err error) *Failure {
	return &Failure{Kind: FailureFetch, StatusCode: statusCode, Err: err}
}

func GenerationFailure(err error) *Failure {
	return &Failure{Kind: FailureGeneration, Err: err}
}

func ParseFailure(err error) *Failure {
	return &Failure{Kind: FailureParse, Err: err}
}

func CanceledFailure(err error) *Failure {
	return &Failure{Kind: FailureCanceled, Err: err}
}

// AsFailure unwraps err into a *Failure if it is (or wraps) one.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
