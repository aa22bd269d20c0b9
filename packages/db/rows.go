package db

import "langid/packages/domain"

var (
	resultColumns    = []string{"job_id", "engine", "language", "is_reliable", "text_bytes_found", "detected_at"}
	candidateColumns = []string{"job_id", "rank", "language", "percent", "normalized_score"}
	chunkColumns     = []string{"job_id", "offset", "length", "language"}
)

type copyRows struct {
	jobIDs     []int64
	results    [][]any
	candidates [][]any
	chunks     [][]any
}

// buildRows flattens results into COPY rows. When a job appears more than
// once, the last result wins.
func buildRows(results []domain.StoredResult) copyRows {
	latest := make(map[int64]int, len(results))
	for i, r := range results {
		latest[r.JobID] = i
	}

	var rows copyRows
	for i, r := range results {
		if latest[r.JobID] != i {
			continue
		}
		rows.jobIDs = append(rows.jobIDs, r.JobID)
		rows.results = append(rows.results, []any{
			r.JobID, r.Engine, r.Result.Language.Code(), r.Result.IsReliable,
			int32(r.Result.TextBytesFound), r.DetectedAt,
		})
		for rank, c := range r.Result.Candidates {
			rows.candidates = append(rows.candidates, []any{
				r.JobID, int16(rank + 1), c.Language.Code(), int16(c.Percent), c.NormalizedScore,
			})
		}
		for _, c := range r.Result.Chunks {
			rows.chunks = append(rows.chunks, []any{
				r.JobID, int32(c.Offset), int32(c.Length), c.Language.Code(),
			})
		}
	}
	return rows
}
