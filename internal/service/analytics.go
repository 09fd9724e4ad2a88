package service

import (
	"sync"

	"learnbyte/internal/domain"
	"learnbyte/internal/dto"
)

// MasteryService is the aggregation collaborator consuming graded
// topic outcomes. It is an explicit service object owned by the host
// process and passed into the request-handling boundary, not a set of
// process globals.
type MasteryService struct {
	mu sync.RWMutex

	overall  overallStats
	sessions map[string]*sessionStats
}

type overallStats struct {
	quizzesSubmitted  int
	questionsAnswered int
	correctAnswers    int
}

type sessionStats struct {
	quizzesSubmitted  int
	questionsAnswered int
	correctAnswers    int
	lastScore         float64
	topics            map[string]*dto.TopicStats
}

func NewMasteryService() *MasteryService {
	return &MasteryService{sessions: make(map[string]*sessionStats)}
}

// RecordSubmission implements domain.MasteryAggregator.
func (m *MasteryService) RecordSubmission(sessionID string, score domain.SubmissionScore, outcomes []domain.TopicOutcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.overall.quizzesSubmitted++
	m.overall.questionsAnswered += score.Total
	m.overall.correctAnswers += score.Correct

	sess, ok := m.sessions[sessionID]
	if !ok {
		sess = &sessionStats{topics: make(map[string]*dto.TopicStats)}
		m.sessions[sessionID] = sess
	}
	sess.quizzesSubmitted++
	sess.questionsAnswered += score.Total
	sess.correctAnswers += score.Correct
	sess.lastScore = score.Percentage

	for _, o := range outcomes {
		t, ok := sess.topics[o.Topic]
		if !ok {
			t = &dto.TopicStats{}
			sess.topics[o.Topic] = t
		}
		t.Total++
		if o.Correct {
			t.Correct++
		}
	}
}

// OverallSnapshot returns the process-wide tallies.
func (m *MasteryService) OverallSnapshot() dto.OverallStatsResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return dto.OverallStatsResponse{
		Status:            "success",
		QuizzesSubmitted:  m.overall.quizzesSubmitted,
		QuestionsAnswered: m.overall.questionsAnswered,
		CorrectAnswers:    m.overall.correctAnswers,
	}
}

// UserSnapshot returns per-session tallies, reporting found=false for
// sessions that never submitted.
func (m *MasteryService) UserSnapshot(sessionID string) (dto.UserStatsResponse, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return dto.UserStatsResponse{}, false
	}

	topics := make(map[string]dto.TopicStats, len(sess.topics))
	for name, t := range sess.topics {
		topics[name] = *t
	}
	return dto.UserStatsResponse{
		Status:            "success",
		SessionID:         sessionID,
		QuizzesSubmitted:  sess.quizzesSubmitted,
		QuestionsAnswered: sess.questionsAnswered,
		CorrectAnswers:    sess.correctAnswers,
		LastScore:         sess.lastScore,
		Topics:            topics,
	}, true
}

var _ domain.MasteryAggregator = (*MasteryService)(nil)
