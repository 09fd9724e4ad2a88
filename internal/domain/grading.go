package domain

// TopicOutcome is one graded answer reduced to the pair a mastery
// aggregator consumes.
type TopicOutcome struct {
	Topic   string
	Correct bool
}

// ItemResult reports correctness for a single submitted answer.
// UserAnswer is nil when the item was left unanswered.
type ItemResult struct {
	ItemID       string   `json:"questionId"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	UserAnswer   *int     `json:"userAnswer"`
	CorrectIndex int      `json:"correctAnswer"`
	IsCorrect    bool     `json:"isCorrect"`
	Topic        string   `json:"topic"`
}

// SubmissionScore summarizes one graded submission.
type SubmissionScore struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// MasteryAggregator consumes streams of topic outcomes from graded
// submissions. Its lifecycle is owned by the host process, not by the
// grading service that feeds it.
type MasteryAggregator interface {
	RecordSubmission(sessionID string, score SubmissionScore, outcomes []TopicOutcome)
}
