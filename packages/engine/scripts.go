package engine

import (
	"unicode"

	"langid/packages/registry"
)

// Extended-only languages are recognized by script alone. None of the
// statistical backends model them.
var extendedScripts = []struct {
	table *unicode.RangeTable
	lang  registry.Language
}{
	{unicode.Cherokee, registry.Cherokee},
	{unicode.Thaana, registry.Dhivehi},
	{unicode.Syriac, registry.Syriac},
	{unicode.Tibetan, registry.Tibetan},
	{unicode.Canadian_Aboriginal, registry.Inuktitut},
	{unicode.Vai, registry.Vai},
	{unicode.Ol_Chiki, registry.Santali},
	{unicode.Nko, registry.NKo},
}

// extendedScript returns the extended-only language whose script covers at
// least half the letters of text, with that share as confidence.
func extendedScript(text string) (registry.Language, float64, bool) {
	counts := make([]int, len(extendedScripts))
	letters := 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		for i, s := range extendedScripts {
			if unicode.Is(s.table, r) {
				counts[i]++
				break
			}
		}
	}
	if letters == 0 {
		return registry.Unknown, 0, false
	}
	best := -1
	for i, n := range counts {
		if n > 0 && (best < 0 || n > counts[best]) {
			best = i
		}
	}
	if best < 0 || counts[best]*2 < letters {
		return registry.Unknown, 0, false
	}
	return extendedScripts[best].lang, float64(counts[best]) / float64(letters), true
}
