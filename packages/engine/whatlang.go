package engine

import (
	"log/slog"
	"sort"

	"github.com/abadojack/whatlanggo"

	"langid/packages/registry"
)

// whatlang's confidence is the margin between the two best trigram scores.
const (
	whatlangReliable = 0.8
	whatlangWeak     = 0.02
)

type whatlangClassifier struct {
	languages []registry.Language
}

// NewWhatlang returns an engine backed by whatlanggo trigram profiles.
func NewWhatlang(logger *slog.Logger) Engine {
	c := &whatlangClassifier{}
	seen := make(map[registry.Language]bool)
	for lang := range whatlanggo.Langs {
		if l, ok := registry.LanguageFromISO6393(lang.Iso6393()); ok && !seen[l] {
			seen[l] = true
			c.languages = append(c.languages, l)
		}
	}
	sort.Slice(c.languages, func(i, j int) bool { return c.languages[i] < c.languages[j] })
	return newStatEngine(c, logger)
}

func (c *whatlangClassifier) Name() string { return "whatlang" }

func (c *whatlangClassifier) Languages() []registry.Language { return c.languages }

func (c *whatlangClassifier) ReliableConfidence() float64 { return whatlangReliable }

func (c *whatlangClassifier) WeakScore() float64 { return whatlangWeak }

// Classify ranks by repeated detection, blacklisting each winner in turn.
func (c *whatlangClassifier) Classify(text string, n int) []Score {
	blacklist := make(map[whatlanggo.Lang]bool)
	out := make([]Score, 0, n)
	for len(out) < n {
		info := whatlanggo.DetectWithOptions(text, whatlanggo.Options{Blacklist: blacklist})
		if info.Lang < 0 || blacklist[info.Lang] {
			break
		}
		blacklist[info.Lang] = true
		l, ok := registry.LanguageFromISO6393(info.Lang.Iso6393())
		if !ok {
			continue
		}
		out = append(out, Score{Language: l, Confidence: info.Confidence})
	}
	return out
}
