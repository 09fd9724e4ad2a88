package domain

// SummaryResult is the output of the transcript condensation pipeline.
// The summary is paragraph-only text with no leading bullet or
// numbering markers.
type SummaryResult struct {
	Summary    string   `json:"summary"`
	ChunkCount int      `json:"chunkCount"`
	Provider   Provider `json:"provider"`
}
