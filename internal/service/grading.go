package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"learnbyte/internal/domain"
	"learnbyte/internal/dto"
	"learnbyte/internal/logger"
	"learnbyte/internal/repository"
	"learnbyte/internal/repository/models"
	"learnbyte/internal/util"

	"go.uber.org/zap"
)

// GradingService compares submitted answer indexes against the
// correct index per item and reports per-item correctness plus a
// topic tag for downstream mastery aggregation.
type GradingService interface {
	GradeSubmission(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmitResponse, error)
	GetSessionScores(ctx context.Context, sessionID string, limit int) (*dto.ScoreHistoryResponse, error)
}

type gradingService struct {
	aggregator domain.MasteryAggregator
	scores     repository.ScoreRepository
}

// NewGradingService wires the grader to its consumers. Both the
// aggregator and the score repository are optional sinks: grading
// succeeds even when neither is configured.
func NewGradingService(aggregator domain.MasteryAggregator, scores repository.ScoreRepository) GradingService {
	return &gradingService{aggregator: aggregator, scores: scores}
}

// GradeSubmission implements GradingService.
func (s *gradingService) GradeSubmission(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	if req == nil || len(req.Questions) == 0 {
		return nil, domain.NewInvalidInputError("missing answers or questions data")
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = "anonymous"
	}
	quizTitle := req.QuizTitle
	if quizTitle == "" {
		quizTitle = "Untitled Quiz"
	}

	results := make([]domain.ItemResult, 0, len(req.Questions))
	outcomes := make([]domain.TopicOutcome, 0, len(req.Questions))
	correctCount := 0

	for _, q := range req.Questions {
		topic := strings.ToLower(strings.TrimSpace(q.Topic))
		if topic == "" {
			topic = "general"
		}

		var userAnswer *int
		if idx, answered := req.Answers[q.ID]; answered {
			v := idx
			userAnswer = &v
		}
		isCorrect := userAnswer != nil && *userAnswer == q.CorrectIndex
		if isCorrect {
			correctCount++
		}

		results = append(results, domain.ItemResult{
			ItemID:       q.ID,
			Question:     q.Question,
			Options:      q.Options,
			UserAnswer:   userAnswer,
			CorrectIndex: q.CorrectIndex,
			IsCorrect:    isCorrect,
			Topic:        topic,
		})
		outcomes = append(outcomes, domain.TopicOutcome{Topic: topic, Correct: isCorrect})
	}

	total := len(req.Questions)
	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(correctCount)/float64(total)*1000) / 10
	}
	score := domain.SubmissionScore{
		Correct:    correctCount,
		Total:      total,
		Percentage: percentage,
	}

	if s.aggregator != nil {
		s.aggregator.RecordSubmission(sessionID, score, outcomes)
	}

	scoreID := s.persist(ctx, sessionID, quizTitle, score, results)

	return &dto.SubmitResponse{
		Status:    "success",
		Results:   results,
		Score:     score,
		SessionID: sessionID,
		ScoreID:   scoreID,
	}, nil
}

// GetSessionScores implements GradingService. With no score sink
// configured the history is simply empty.
func (s *gradingService) GetSessionScores(ctx context.Context, sessionID string, limit int) (*dto.ScoreHistoryResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, domain.NewInvalidInputError("session_id is required")
	}

	resp := &dto.ScoreHistoryResponse{Status: "success", Scores: []dto.ScoreSummary{}}
	if s.scores == nil {
		return resp, nil
	}

	records, err := s.scores.GetBySession(ctx, sessionID, limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to load score history", err)
	}
	for _, r := range records {
		resp.Scores = append(resp.Scores, dto.ScoreSummary{
			ID:              r.ID,
			QuizTitle:       r.QuizTitle,
			TotalQuestions:  r.TotalQuestions,
			CorrectAnswers:  r.CorrectAnswers,
			ScorePercentage: r.ScorePercentage,
			CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		})
	}
	resp.Count = len(resp.Scores)
	return resp, nil
}

// persist writes the graded submission to the score sink. Storage is a
// pure consumer of pipeline output; failures are logged and swallowed.
func (s *gradingService) persist(ctx context.Context, sessionID, quizTitle string, score domain.SubmissionScore, results []domain.ItemResult) string {
	if s.scores == nil {
		return ""
	}

	answersData, err := json.Marshal(results)
	if err != nil {
		logger.Get().Error("Failed to encode answers data", zap.Error(err))
		return ""
	}

	record := &models.ScoreRecord{
		ID:              util.NewULID(),
		SessionID:       sessionID,
		QuizTitle:       quizTitle,
		TotalQuestions:  score.Total,
		CorrectAnswers:  score.Correct,
		ScorePercentage: score.Percentage,
		AnswersData:     string(answersData),
	}
	if err := s.scores.Save(ctx, record); err != nil {
		logger.Get().Error("Failed to save quiz score", zap.Error(err), zap.String("session_id", sessionID))
		return ""
	}
	return record.ID
}
