package detector

import (
	"langid/packages/domain"
	"langid/packages/engine"
)

// Flags assembles the engine's diagnostic bit mask.
func Flags(d domain.Diagnostics) engine.Flags {
	var f engine.Flags
	set := func(on bool, bit engine.Flags) {
		if on {
			f |= bit
		}
	}
	set(d.ScoreAsQuads, engine.FlagScoreAsQuads)
	set(d.HTMLTrace, engine.FlagHTML)
	set(d.CRTrace, engine.FlagCR)
	set(d.Verbose, engine.FlagVerbose)
	set(d.Quiet, engine.FlagQuiet)
	set(d.Echo, engine.FlagEcho)
	set(d.BestEffort, engine.FlagBestEffort)
	return f
}

func engineRequest(req domain.Request, h domain.Hints, flags engine.Flags) engine.Request {
	return engine.Request{
		Text:            req.Text,
		PlainText:       req.Options.IsPlainText,
		IncludeExtended: req.Options.IncludeExtendedLanguages,
		PickSummary:     req.Options.PickSummaryLanguage,
		RemoveWeak:      req.Options.RemoveWeakMatches,
		Hints:           h,
		Flags:           flags,
		WantChunks:      req.WantChunks,
	}
}

// emptyResult is the answer for zero-length input.
func emptyResult(wantChunks bool) domain.Result {
	res := domain.Result{Candidates: []domain.Candidate{}}
	if wantChunks {
		res.Chunks = []domain.Chunk{}
	}
	return res
}
