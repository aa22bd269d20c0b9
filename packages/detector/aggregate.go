package detector

import (
	"langid/packages/domain"
	"langid/packages/engine"
	"langid/packages/registry"
)

// Aggregate shapes the engine's fixed-slot output into a domain.Result.
// Slots keep engine order; weak slots are dropped when requested and the
// list ends at the first empty slot.
func Aggregate(raw engine.Result, opts domain.Options, wantChunks bool) domain.Result {
	res := domain.Result{
		IsReliable:     raw.Reliable,
		TextBytesFound: uint32(raw.TextBytes),
		Candidates:     make([]domain.Candidate, 0, engine.Slots),
	}

	for _, s := range raw.Slots {
		if s.Language == registry.Unknown {
			break
		}
		if opts.RemoveWeakMatches && s.Score < raw.WeakThreshold {
			continue
		}
		res.Candidates = append(res.Candidates, domain.Candidate{
			Language:        s.Language,
			Percent:         clampPercent(s.Percent),
			NormalizedScore: s.Score,
		})
	}

	switch {
	case opts.PickSummaryLanguage:
		res.Language = raw.Summary
		if opts.RemoveWeakMatches && !retained(res.Candidates, raw.Summary) {
			res.Language = registry.Unknown
		}
	case len(res.Candidates) > 0:
		res.Language = res.Candidates[0].Language
	}

	if wantChunks {
		res.Chunks = make([]domain.Chunk, len(raw.Chunks))
		for i, c := range raw.Chunks {
			res.Chunks[i] = domain.Chunk{
				Offset:   uint32(c.Offset),
				Length:   uint32(c.Length),
				Language: c.Language,
			}
		}
	}
	return res
}

func retained(cands []domain.Candidate, l registry.Language) bool {
	for _, c := range cands {
		if c.Language == l {
			return true
		}
	}
	return false
}

func clampPercent(p int) uint8 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return uint8(p)
}
