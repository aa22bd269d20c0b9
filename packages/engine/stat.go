package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"unicode/utf8"

	"langid/packages/domain"
	"langid/packages/registry"
)

// Score is one classifier candidate for a segment.
type Score struct {
	Language   registry.Language
	Confidence float64
}

// Classifier ranks the languages of a single segment of text.
type Classifier interface {
	Name() string
	Languages() []registry.Language
	// Classify returns at most n candidates, best first. An empty result
	// means the text could not be classified.
	Classify(text string, n int) []Score
	// ReliableConfidence is the single-segment confidence that counts as
	// reliable on its own.
	ReliableConfidence() float64
	// WeakScore is the normalized score below which a language is a weak match.
	WeakScore() float64
}

const (
	reliablePercent      = 70
	summaryRunnerUpShare = 20
	minLetters           = 4
)

// statEngine turns per-segment classifications into byte tallies.
type statEngine struct {
	classifier Classifier
	languages  []registry.Language
	detectable map[registry.Language]bool
	logger     *slog.Logger
}

func newStatEngine(c Classifier, logger *slog.Logger) *statEngine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &statEngine{
		classifier: c,
		detectable: make(map[registry.Language]bool),
		logger:     logger.With("engine", c.Name()),
	}
	for _, l := range c.Languages() {
		e.detectable[l] = true
	}
	for _, s := range extendedScripts {
		e.detectable[s.lang] = true
	}
	for l := range e.detectable {
		e.languages = append(e.languages, l)
	}
	sort.Slice(e.languages, func(i, j int) bool { return e.languages[i] < e.languages[j] })
	return e
}

func (e *statEngine) Name() string { return e.classifier.Name() }

func (e *statEngine) Languages() []registry.Language {
	out := make([]registry.Language, len(e.languages))
	copy(out, e.languages)
	return out
}

// CheckHints declines hints the scorer cannot act on: binary and unused
// encodings, and language hints naming a language it can never report.
func (e *statEngine) CheckHints(h domain.Hints) error {
	switch h.Encoding {
	case registry.BinaryEnc, registry.UnicodeUnused:
		return &domain.HintError{
			Kind:   domain.UnsupportedHintCombination,
			Field:  "encoding",
			Value:  h.Encoding.Name(),
			Detail: "encoding carries no text",
		}
	}
	if h.Language != registry.Unknown && !e.detectable[h.Language] {
		return &domain.HintError{
			Kind:   domain.UnsupportedHintCombination,
			Field:  "language",
			Value:  h.Language.Name(),
			Detail: fmt.Sprintf("engine %s cannot detect this language", e.Name()),
		}
	}
	return nil
}

type tally struct {
	lang     registry.Language
	bytes    int
	weighted float64
	segments int
}

type classified struct {
	seg  segment
	lang registry.Language
	conf float64
}

func (e *statEngine) Detect(req Request) (Result, error) {
	res := Result{WeakThreshold: e.classifier.WeakScore()}
	if !utf8.Valid(req.Text) {
		return res, ErrInvalidUTF8
	}

	quiet := req.Flags&FlagQuiet != 0
	trace := func(flag Flags) func(string, ...any) {
		if quiet || req.Flags&(flag|FlagVerbose) == 0 {
			return func(string, ...any) {}
		}
		return func(msg string, args ...any) { e.logger.Debug(msg, args...) }
	}
	htmlTrace, crTrace, verbose := trace(FlagHTML), trace(FlagCR), trace(FlagVerbose)
	if req.Flags&FlagEcho != 0 && !quiet {
		e.logger.Debug("scoring input", "bytes", len(req.Text), "text", string(req.Text))
	}

	var pieces []piece
	if req.PlainText {
		pieces = plainPieces(req.Text)
	} else {
		pieces = markupPieces(req.Text, htmlTrace)
	}
	segs := group(pieces)

	boosts := priors(req.Hints)
	n := 1
	if len(boosts) > 0 {
		n = Slots
	}
	floor := minLetters
	if req.Flags&FlagBestEffort != 0 {
		floor = 1
	}

	results := make([]classified, 0, len(segs))
	tallies := make(map[registry.Language]*tally)
	for _, seg := range segs {
		res.TextBytes += seg.bytes
		c := classified{seg: seg}
		if seg.letters >= floor {
			c.lang, c.conf = e.classify(seg.text(), req, boosts, n)
		}
		crTrace("segment", "offset", seg.pieces[0].start, "bytes", seg.bytes, "language", c.lang, "confidence", c.conf)
		results = append(results, c)
		if c.lang == registry.Unknown {
			continue
		}
		t := tallies[c.lang]
		if t == nil {
			t = &tally{lang: c.lang}
			tallies[c.lang] = t
		}
		t.bytes += seg.bytes
		t.weighted += c.conf * float64(seg.bytes)
		t.segments++
	}

	ranked := make([]*tally, 0, len(tallies))
	for _, t := range tallies {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.bytes != b.bytes {
			return a.bytes > b.bytes
		}
		if a.weighted != b.weighted {
			return a.weighted > b.weighted
		}
		return a.lang < b.lang
	})

	slots := make([]Slot, 0, len(ranked))
	for _, t := range ranked {
		s := Slot{
			Language: t.lang,
			Percent:  t.bytes * 100 / res.TextBytes,
			Score:    t.weighted / float64(t.bytes),
		}
		if req.RemoveWeak && s.Score < res.WeakThreshold {
			verbose("dropping weak match", "language", s.Language, "score", s.Score)
			continue
		}
		slots = append(slots, s)
	}
	for i := 0; i < Slots && i < len(slots); i++ {
		res.Slots[i] = slots[i]
	}

	if len(slots) > 0 {
		top := slots[0]
		res.Summary = top.Language
		if req.PickSummary && top.Language == registry.English && top.Percent < reliablePercent &&
			len(slots) > 1 && slots[1].Percent >= summaryRunnerUpShare {
			res.Summary = slots[1].Language
		}
		res.Reliable = top.Percent >= reliablePercent &&
			(tallies[top.Language].segments >= 2 || top.Score >= e.classifier.ReliableConfidence())
	}

	if req.WantChunks {
		res.Chunks = chunks(req.Text, results)
	}
	verbose("detection complete", "summary", res.Summary, "reliable", res.Reliable, "text_bytes", res.TextBytes)
	return res, nil
}

// classify picks a segment language. Extended scripts are recognized before
// the statistical classifier runs; hint priors may reorder its candidates.
func (e *statEngine) classify(text string, req Request, boosts map[registry.Language]float64, n int) (registry.Language, float64) {
	if req.Flags&FlagScoreAsQuads == 0 {
		if l, conf, ok := extendedScript(text); ok && req.IncludeExtended {
			return l, conf
		}
	}

	var best Score
	for _, s := range e.classifier.Classify(text, n) {
		if s.Language.IsExtended() && !req.IncludeExtended {
			continue
		}
		conf := s.Confidence * (1 + boosts[s.Language])
		if conf > best.Confidence {
			best = Score{Language: s.Language, Confidence: conf}
		}
	}
	if best.Confidence > 1 {
		best.Confidence = 1
	}
	return best.Language, best.Confidence
}

// chunks lays classified pieces out in input order, merging neighbors of the
// same language separated only by whitespace.
func chunks(buf []byte, results []classified) []Chunk {
	var out []Chunk
	for _, c := range results {
		if c.lang == registry.Unknown {
			continue
		}
		for _, p := range c.seg.pieces {
			if n := len(out); n > 0 {
				last := &out[n-1]
				end := last.Offset + last.Length
				if last.Language == c.lang && end <= p.start && onlySpace(buf[end:p.start]) {
					last.Length = p.end - last.Offset
					continue
				}
			}
			out = append(out, Chunk{Offset: p.start, Length: p.end - p.start, Language: c.lang})
		}
	}
	return out
}
