package engine

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"

	"langid/packages/registry"
)

// Lingua confidences are probabilities over all candidate languages.
const (
	linguaReliable = 0.9
	linguaWeak     = 0.1
)

var (
	linguaOnce     sync.Once
	linguaDetector lingua.LanguageDetector
)

// sharedLingua builds the all-languages detector once per process; its
// models are large and read-only.
func sharedLingua() lingua.LanguageDetector {
	linguaOnce.Do(func() {
		linguaDetector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build()
	})
	return linguaDetector
}

type linguaClassifier struct {
	detector  lingua.LanguageDetector
	byLingua  map[lingua.Language]registry.Language
	languages []registry.Language
}

// NewLingua returns an engine backed by lingua-go n-gram models.
func NewLingua(logger *slog.Logger) Engine {
	c := &linguaClassifier{
		detector: sharedLingua(),
		byLingua: make(map[lingua.Language]registry.Language),
	}
	for _, ll := range lingua.AllLanguages() {
		l, ok := registry.LanguageFromISO6393(strings.ToLower(ll.IsoCode639_3().String()))
		if !ok {
			continue
		}
		c.byLingua[ll] = l
		c.languages = append(c.languages, l)
	}
	sort.Slice(c.languages, func(i, j int) bool { return c.languages[i] < c.languages[j] })
	return newStatEngine(c, logger)
}

func (c *linguaClassifier) Name() string { return "lingua" }

func (c *linguaClassifier) Languages() []registry.Language { return c.languages }

func (c *linguaClassifier) ReliableConfidence() float64 { return linguaReliable }

func (c *linguaClassifier) WeakScore() float64 { return linguaWeak }

func (c *linguaClassifier) Classify(text string, n int) []Score {
	out := make([]Score, 0, n)
	for _, cv := range c.detector.ComputeLanguageConfidenceValues(text) {
		if len(out) == n || cv.Value() <= 0 {
			break
		}
		if l, ok := c.byLingua[cv.Language()]; ok {
			out = append(out, Score{Language: l, Confidence: cv.Value()})
		}
	}
	return out
}
