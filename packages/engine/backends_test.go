package engine

import (
	"testing"

	"langid/packages/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const englishParagraph = `The history of the printing press begins in the middle of the fifteenth century,
when a goldsmith from Mainz combined movable metal type with an oil based ink and a
wooden screw press adapted from the ones used by winemakers. Before his invention,
books were copied by hand or printed from carved wooden blocks, and both methods were
slow and expensive. Within a few decades printing shops had opened in more than two
hundred cities across Europe, and millions of volumes were circulating among scholars,
merchants and ordinary readers. The new technology made it possible to spread ideas
quickly and cheaply, which changed the way people learned about science, religion and
politics. Many historians believe that the reformation, the scientific revolution and
the growth of literacy would have been impossible without it. Printers also helped to
standardize spelling and grammar, because they needed consistent rules for setting
type. Today we take printed books for granted, but for most of human history the
written word was a rare and precious thing that only a small number of people could
read or own. The story of the press reminds us that a single practical improvement
can reshape the whole of society in ways that its inventor could never have imagined.`

func TestWhatlangDetectsEnglishParagraph(t *testing.T) {
	e := NewWhatlang(nil)
	res, err := e.Detect(Request{Text: []byte(englishParagraph), PlainText: true, WantChunks: true})
	require.NoError(t, err)

	assert.Equal(t, registry.English, res.Summary)
	assert.Equal(t, registry.English, res.Slots[0].Language)
	assert.True(t, res.Reliable)
	assert.Greater(t, res.TextBytes, 1000)
	require.NotEmpty(t, res.Chunks)

	prevEnd := 0
	for _, c := range res.Chunks {
		assert.Greater(t, c.Length, 0)
		assert.GreaterOrEqual(t, c.Offset, prevEnd)
		prevEnd = c.Offset + c.Length
	}
	assert.LessOrEqual(t, prevEnd, len(englishParagraph))
}

func TestWhatlangLanguagesMapIntoRegistry(t *testing.T) {
	e := NewWhatlang(nil)
	langs := e.Languages()
	assert.Contains(t, langs, registry.English)
	assert.Contains(t, langs, registry.Chinese)
	assert.Contains(t, langs, registry.Russian)
	for _, l := range langs {
		assert.True(t, l.Valid())
	}
}

func TestWhatlangClassifyRanksDistinctCandidates(t *testing.T) {
	c := &whatlangClassifier{}
	scores := c.Classify("Der schnelle braune Fuchs springt über den faulen Hund und läuft weiter.", 3)
	require.NotEmpty(t, scores)
	assert.Equal(t, registry.German, scores[0].Language)

	seen := make(map[registry.Language]bool)
	for _, s := range scores {
		assert.False(t, seen[s.Language])
		seen[s.Language] = true
	}
}

func TestLinguaDetectsEnglishParagraph(t *testing.T) {
	if testing.Short() {
		t.Skip("lingua loads its full model set")
	}
	e := NewLingua(nil)
	res, err := e.Detect(Request{Text: []byte(englishParagraph), PlainText: true})
	require.NoError(t, err)
	assert.Equal(t, registry.English, res.Summary)
	assert.True(t, res.Reliable)
	assert.Contains(t, e.Languages(), registry.Maori)
}
