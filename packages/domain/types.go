// Package domain
package domain

import "langid/packages/registry"

// RawHints are caller-supplied hint strings. Empty means absent.
type RawHints struct {
	Language        string `json:"language,omitempty"`
	Encoding        string `json:"encoding,omitempty"`
	TopLevelDomain  string `json:"tld,omitempty"`
	ContentLanguage string `json:"content_language,omitempty"`
}

// Hints are resolved hints. Unset fields hold registry.Unknown,
// registry.UnknownEncoding or "".
type Hints struct {
	Language        registry.Language
	Encoding        registry.Encoding
	TopLevelDomain  string
	ContentLanguage string
}

// Diagnostics are the named diagnostic switches forwarded to the engine as an
// opaque bit mask.
type Diagnostics struct {
	ScoreAsQuads bool
	HTMLTrace    bool
	CRTrace      bool
	Verbose      bool
	Quiet        bool
	Echo         bool
	BestEffort   bool
}

// Options are orthogonal detection switches; any combination is legal.
type Options struct {
	// IsPlainText false means the input is markup whose tags and entities
	// are stripped before scoring.
	IsPlainText              bool
	IncludeExtendedLanguages bool
	PickSummaryLanguage      bool
	RemoveWeakMatches        bool
	Diagnostics              Diagnostics
}

// DefaultOptions mirrors the long-standing binding defaults: markup input,
// extended languages on, summary picking off, weak matches removed.
func DefaultOptions() Options {
	return Options{
		IsPlainText:              false,
		IncludeExtendedLanguages: true,
		PickSummaryLanguage:      false,
		RemoveWeakMatches:        true,
	}
}

// Request is one detection request.
type Request struct {
	Text       []byte
	Options    Options
	Hints      RawHints
	WantChunks bool
}

type Candidate struct {
	Language        registry.Language `json:"language"`
	Percent         uint8             `json:"percent"`
	NormalizedScore float64           `json:"normalized_score"`
}

// Chunk is a contiguous byte range of the input tagged with one language.
type Chunk struct {
	Offset   uint32            `json:"offset"`
	Length   uint32            `json:"length"`
	Language registry.Language `json:"language"`
}

// Result is built once per request and owned by the caller.
type Result struct {
	// Language is the primary language: the summary language when summary
	// picking is on, otherwise the first candidate.
	Language       registry.Language `json:"language"`
	IsReliable     bool              `json:"is_reliable"`
	TextBytesFound uint32            `json:"text_bytes_found"`
	// Candidates holds at most three entries ordered by descending
	// prevalence, never containing registry.Unknown.
	Candidates []Candidate `json:"candidates"`
	// Chunks is nil unless segmentation was requested.
	Chunks []Chunk `json:"chunks,omitempty"`
}
