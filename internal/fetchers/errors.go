package fetchers

import (
	"errors"
	"fmt"
)

// FailureKind separates unreachable upstreams from schema mismatches. An
// empty result set is not a failure and never produces a FetchError.
type FailureKind int

const (
	NetworkFailure FailureKind = iota
	DecodeFailure
)

// String returns the kind name.
func (k FailureKind) String() string {
	switch k {
	case NetworkFailure:
		return "network"
	case DecodeFailure:
		return "decode"
	default:
		return "unknown"
	}
}

// FetchError wraps an upstream failure with its source and kind so the
// aggregator can decide what, if anything, to surface to the user.
type FetchError struct {
	Kind   FailureKind
	Source string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s failure: %v", e.Source, e.Kind, e.Err)
}

// Unwrap exposes the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

func networkErr(source string, err error) *FetchError {
	return &FetchError{Kind: NetworkFailure, Source: source, Err: err}
}

func decodeErr(source string, err error) *FetchError {
	return &FetchError{Kind: DecodeFailure, Source: source, Err: err}
}

// IsDecodeFailure reports whether err is a FetchError of kind DecodeFailure.
func IsDecodeFailure(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == DecodeFailure
}
