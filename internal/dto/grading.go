package dto

import "learnbyte/internal/domain"

// SubmitRequest is the request body for grading a completed quiz.
// Answers maps item IDs to the chosen option index.
type SubmitRequest struct {
	SessionID string                  `json:"sessionId"`
	QuizTitle string                  `json:"quizTitle"`
	Questions []domain.AssessmentItem `json:"questions"`
	Answers   map[string]int          `json:"answers"`
}

// SubmitResponse reports per-item correctness and the overall score
type SubmitResponse struct {
	Status    string                 `json:"status"`
	Results   []domain.ItemResult    `json:"results"`
	Score     domain.SubmissionScore `json:"score"`
	SessionID string                 `json:"sessionId"`
	ScoreID   string                 `json:"quizScoreId,omitempty"`
}

// ScoreSummary is one persisted score in a session's history
type ScoreSummary struct {
	ID              string  `json:"id"`
	QuizTitle       string  `json:"quizTitle"`
	TotalQuestions  int     `json:"totalQuestions"`
	CorrectAnswers  int     `json:"correctAnswers"`
	ScorePercentage float64 `json:"scorePercentage"`
	CreatedAt       string  `json:"createdAt"`
}

// ScoreHistoryResponse lists persisted scores for one session
type ScoreHistoryResponse struct {
	Status string         `json:"status"`
	Count  int            `json:"count"`
	Scores []ScoreSummary `json:"scores"`
}

// OverallStatsResponse is the process-wide mastery snapshot
type OverallStatsResponse struct {
	Status            string `json:"status"`
	QuizzesSubmitted  int    `json:"quizzesSubmitted"`
	QuestionsAnswered int    `json:"questionsAnswered"`
	CorrectAnswers    int    `json:"correctAnswers"`
}

// TopicStats tallies correctness for one topic
type TopicStats struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// UserStatsResponse is the per-session mastery snapshot
type UserStatsResponse struct {
	Status            string                `json:"status"`
	SessionID         string                `json:"sessionId"`
	QuizzesSubmitted  int                   `json:"quizzesSubmitted"`
	QuestionsAnswered int                   `json:"questionsAnswered"`
	CorrectAnswers    int                   `json:"correctAnswers"`
	LastScore         float64               `json:"lastScore"`
	Topics            map[string]TopicStats `json:"topics"`
}
