package repository

import (
	"context"
	"fmt"
	"time"

	"learnbyte/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// ScoreRepository persists graded submissions. It is a pure sink for
// pipeline output; nothing in the generation path depends on it.
type ScoreRepository interface {
	Save(ctx context.Context, record *models.ScoreRecord) error
	GetBySession(ctx context.Context, sessionID string, limit int) ([]models.ScoreRecord, error)
}

// ScoreDatabaseAdapter implements ScoreRepository using sqlx.DB
type ScoreDatabaseAdapter struct {
	db *sqlx.DB
}

// NewScoreDatabaseAdapter creates a new instance of ScoreDatabaseAdapter
func NewScoreDatabaseAdapter(db *sqlx.DB) ScoreRepository {
	return &ScoreDatabaseAdapter{db: db}
}

// Save implements ScoreRepository
func (a *ScoreDatabaseAdapter) Save(ctx context.Context, record *models.ScoreRecord) error {
	if record == nil {
		return fmt.Errorf("score record cannot be nil")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := `INSERT INTO quiz_scores (
		id, session_id, quiz_title, total_questions, correct_answers, score_percentage, answers_data, created_at
	) VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`

	_, err := a.db.ExecContext(ctx, query,
		record.ID,
		record.SessionID,
		record.QuizTitle,
		record.TotalQuestions,
		record.CorrectAnswers,
		record.ScorePercentage,
		record.AnswersData,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz score: %w", err)
	}
	return nil
}

// GetBySession implements ScoreRepository
func (a *ScoreDatabaseAdapter) GetBySession(ctx context.Context, sessionID string, limit int) ([]models.ScoreRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT
		id "id",
		session_id "session_id",
		quiz_title "quiz_title",
		total_questions "total_questions",
		correct_answers "correct_answers",
		score_percentage "score_percentage",
		answers_data "answers_data",
		created_at "created_at",
		deleted_at "deleted_at"
	FROM quiz_scores
	WHERE session_id = :1
	AND deleted_at IS NULL
	ORDER BY created_at DESC
	FETCH FIRST :2 ROWS ONLY`

	var records []models.ScoreRecord
	if err := a.db.SelectContext(ctx, &records, query, sessionID, limit); err != nil {
		return nil, fmt.Errorf("failed to get scores for session %s: %w", sessionID, err)
	}
	return records, nil
}
