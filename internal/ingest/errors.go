package ingest

import (
	"errors"
	"fmt"
)

// Kind classifies a load failure.
type Kind int

const (
	// KindSourceUnavailable: the raw source could not be fetched.
	KindSourceUnavailable Kind = iota + 1
	// KindMalformedSource: the content could not be parsed as a header-keyed table.
	KindMalformedSource
)

func (k Kind) String() string {
	switch k {
	case KindSourceUnavailable:
		return "source unavailable"
	case KindMalformedSource:
		return "malformed source"
	default:
		return "ingest error"
	}
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrMalformedSource   = errors.New("malformed source")
)

// ErrTooLarge is wrapped when a source exceeds the configured size limit.
var ErrTooLarge = errors.New("content exceeds size limit")

// Error is a load failure. Row-level rejections are never reported as errors.
type Error struct {
	Kind   Kind
	Source string
	Err    error
}

func (e *Error) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrSourceUnavailable:
		return e.Kind == KindSourceUnavailable
	case ErrMalformedSource:
		return e.Kind == KindMalformedSource
	}
	return false
}

func unavailable(source string, err error) error {
	return &Error{Kind: KindSourceUnavailable, Source: source, Err: err}
}

func malformed(source string, err error) error {
	return &Error{Kind: KindMalformedSource, Source: source, Err: err}
}
