package dto

// SummarizeRequest is the request body for transcript condensation
type SummarizeRequest struct {
	Transcript string `json:"transcript"`
	MaxWords   int    `json:"maxWords"`
}

// SummarizeResponse carries the condensed transcript
type SummarizeResponse struct {
	Status     string `json:"status"`
	Summary    string `json:"summary"`
	ChunkCount int    `json:"chunkCount"`
	Provider   string `json:"provider"`
}
