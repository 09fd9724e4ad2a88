package models

import (
	"database/sql"
	"time"
)

// ScoreRecord is the persisted form of one graded submission. The
// answer breakdown is stored as a JSON document; the pipelines never
// read it back, it exists for downstream reporting.
type ScoreRecord struct {
	ID              string       `db:"id"`
	SessionID       string       `db:"session_id"`
	QuizTitle       string       `db:"quiz_title"`
	TotalQuestions  int          `db:"total_questions"`
	CorrectAnswers  int          `db:"correct_answers"`
	ScorePercentage float64      `db:"score_percentage"`
	AnswersData     string       `db:"answers_data"`
	CreatedAt       time.Time    `db:"created_at"`
	DeletedAt       sql.NullTime `db:"deleted_at"`
}
