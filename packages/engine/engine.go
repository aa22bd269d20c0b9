// Package engine adapts statistical language detectors to the fixed-arity
// detection contract: up to three ranked languages with percent of text and
// normalized score, a reliability flag, the number of text bytes scored and an
// optional byte-range segmentation.
//
// Detect is synchronous, CPU-bound and performs no I/O. Engines hold only
// read-only state after construction and are safe for concurrent use.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"langid/packages/domain"
	"langid/packages/registry"
)

// Flags is the diagnostic bit mask. Values match the historical CLD flags.
type Flags uint32

const (
	FlagScoreAsQuads Flags = 0x0100
	FlagHTML         Flags = 0x0200
	FlagCR           Flags = 0x0400
	FlagVerbose      Flags = 0x0800
	FlagQuiet        Flags = 0x1000
	FlagEcho         Flags = 0x2000
	FlagBestEffort   Flags = 0x4000
)

// Slots is the fixed number of ranked languages an engine reports.
const Slots = 3

type Request struct {
	Text            []byte
	PlainText       bool
	IncludeExtended bool
	PickSummary     bool
	RemoveWeak      bool
	Hints           domain.Hints
	Flags           Flags
	WantChunks      bool
}

// Slot is one ranked language. Unfilled slots hold registry.Unknown.
type Slot struct {
	Language registry.Language
	Percent  int
	Score    float64
}

// Chunk is a byte range of the original input.
type Chunk struct {
	Offset   int
	Length   int
	Language registry.Language
}

type Result struct {
	Slots    [Slots]Slot
	Summary  registry.Language
	Reliable bool
	// TextBytes counts the input bytes classified as text.
	TextBytes int
	// WeakThreshold is the engine's own weak-match cutoff for Slot.Score.
	WeakThreshold float64
	Chunks        []Chunk
}

// Engine is the narrow synchronous interface into a detection backend.
type Engine interface {
	Name() string
	// Languages lists every language Detect can report.
	Languages() []registry.Language
	// CheckHints reports hints the engine declines to honor, without
	// running detection.
	CheckHints(domain.Hints) error
	Detect(Request) (Result, error)
}

// ErrInvalidUTF8 is returned for input that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// New builds the engine registered under name ("whatlang" or "lingua").
func New(name string, logger *slog.Logger) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "whatlang", "whatlanggo":
		return NewWhatlang(logger), nil
	case "lingua":
		return NewLingua(logger), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}
