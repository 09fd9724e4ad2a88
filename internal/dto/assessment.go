package dto

import "learnbyte/internal/domain"

// GenerateAssessmentRequest is the request body for quiz generation.
// Source text plus the number of questions wanted.
type GenerateAssessmentRequest struct {
	Text         string `json:"text"`
	NumQuestions int    `json:"numQuestions"`
}

// GenerateAssessmentResponse carries the validated item batch
type GenerateAssessmentResponse struct {
	Status   string                  `json:"status"`
	Provider string                  `json:"provider"`
	Items    []domain.AssessmentItem `json:"items"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
