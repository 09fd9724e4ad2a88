package repository

import (
	"context"
	"testing"
	"time"

	"learnbyte/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestScoreDatabaseAdapter_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScoreDatabaseAdapter(db)

	record := &models.ScoreRecord{
		ID:              "01HZXA",
		SessionID:       "sess-1",
		QuizTitle:       "Cell Biology",
		TotalQuestions:  5,
		CorrectAnswers:  4,
		ScorePercentage: 80.0,
		AnswersData:     `[{"itemId":"q1"}]`,
	}

	mock.ExpectExec("INSERT INTO quiz_scores").
		WithArgs(record.ID, record.SessionID, record.QuizTitle, record.TotalQuestions,
			record.CorrectAnswers, record.ScorePercentage, record.AnswersData, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), record)
	require.NoError(t, err)
	assert.False(t, record.CreatedAt.IsZero(), "a zero creation time should be stamped on save")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreDatabaseAdapter_SaveNilRecord(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewScoreDatabaseAdapter(db)

	err := repo.Save(context.Background(), nil)
	assert.Error(t, err)
}

func TestScoreDatabaseAdapter_GetBySession(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScoreDatabaseAdapter(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "session_id", "quiz_title", "total_questions",
		"correct_answers", "score_percentage", "answers_data", "created_at", "deleted_at",
	}).AddRow("01HZXA", "sess-1", "Cell Biology", 5, 4, 80.0, "[]", now, nil)

	mock.ExpectQuery("SELECT(.|\n)+FROM quiz_scores").
		WithArgs("sess-1", 20).
		WillReturnRows(rows)

	records, err := repo.GetBySession(context.Background(), "sess-1", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "01HZXA", records[0].ID)
	assert.Equal(t, 80.0, records[0].ScorePercentage)
	assert.False(t, records[0].DeletedAt.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreDatabaseAdapter_GetBySessionQueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScoreDatabaseAdapter(db)

	mock.ExpectQuery("SELECT(.|\n)+FROM quiz_scores").
		WithArgs("sess-1", 5).
		WillReturnError(assert.AnError)

	_, err := repo.GetBySession(context.Background(), "sess-1", 5)
	assert.Error(t, err)
}
