package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrHint matches every *HintError via errors.Is.
	ErrHint = errors.New("invalid hint")
	// ErrEngine matches every *EngineError via errors.Is.
	ErrEngine = errors.New("detection engine failure")
)

type HintErrorKind int

const (
	UnknownLanguage HintErrorKind = iota + 1
	UnknownEncoding
	UnsupportedHintCombination
)

func (k HintErrorKind) String() string {
	switch k {
	case UnknownLanguage:
		return "unknown_language"
	case UnknownEncoding:
		return "unknown_encoding"
	case UnsupportedHintCombination:
		return "unsupported_hint_combination"
	default:
		return fmt.Sprintf("HintErrorKind(%d)", int(k))
	}
}

// HintError reports a caller-input problem found before any engine call. The
// same request succeeds once the named field is corrected.
type HintError struct {
	Kind   HintErrorKind
	Field  string
	Value  string
	Detail string
}

func (e *HintError) Error() string {
	msg := fmt.Sprintf("%s hint %q: %s", e.Field, e.Value, e.Kind)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *HintError) Is(target error) bool { return target == ErrHint }

// Retryable is true: a corrected hint is a valid recovery path.
func (e *HintError) Retryable() bool { return true }

type EngineErrorKind int

const (
	Internal EngineErrorKind = iota + 1
)

func (k EngineErrorKind) String() string {
	if k == Internal {
		return "internal"
	}
	return fmt.Sprintf("EngineErrorKind(%d)", int(k))
}

// EngineError is a failure reported by the detection engine. Detection is
// deterministic, so retrying the same input never helps.
type EngineError struct {
	Kind   EngineErrorKind
	Engine string
	Hints  Hints
	Flags  uint32
	cause  error
}

// NewEngineError wraps cause with the context needed to reproduce it.
func NewEngineError(engine string, hints Hints, flags uint32, cause error) *EngineError {
	return &EngineError{Kind: Internal, Engine: engine, Hints: hints, Flags: flags, cause: cause}
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine %s: %s (language hint %s, encoding hint %s, tld %q, flags %#x): %v",
		e.Engine, e.Kind, e.Hints.Language, e.Hints.Encoding, e.Hints.TopLevelDomain, e.Flags, e.cause)
}

func (e *EngineError) Unwrap() error { return e.cause }

func (e *EngineError) Is(target error) bool { return target == ErrEngine }

func (e *EngineError) Retryable() bool { return false }
