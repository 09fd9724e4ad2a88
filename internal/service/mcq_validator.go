package service

import (
	"fmt"
	"strings"

	"learnbyte/internal/domain"
	"learnbyte/internal/util"
)

// MCQCandidate is the untyped shape of one generated item before
// validation. The generator's declared shape is never trusted: fields
// arrive as loose JSON values and only ValidateItem turns a candidate
// into a typed AssessmentItem.
type MCQCandidate struct {
	ID            string        `json:"id"`
	Question      string        `json:"question"`
	Options       []interface{} `json:"options"`
	CorrectAnswer interface{}   `json:"correctAnswer"`
	Topic         string        `json:"topic"`
}

// MCQValidator enforces the output contract for single assessment
// items and for whole batches. Items failing any check are dropped,
// never repaired.
type MCQValidator struct{}

func NewMCQValidator() *MCQValidator {
	return &MCQValidator{}
}

// ValidateItem checks one candidate: non-empty question, exactly four
// pairwise-distinct options after string coercion and trimming, and an
// integer answer index in [0,3]. A fresh ID is assigned when the
// candidate carries none.
func (v *MCQValidator) ValidateItem(c MCQCandidate) (*domain.AssessmentItem, error) {
	question := strings.TrimSpace(c.Question)
	if question == "" {
		return nil, domain.NewInvalidGenerationError("candidate has empty question")
	}

	if len(c.Options) != domain.OptionCount {
		return nil, domain.NewInvalidGenerationError(
			fmt.Sprintf("candidate has %d options, expected %d", len(c.Options), domain.OptionCount))
	}
	options := make([]string, 0, domain.OptionCount)
	for _, raw := range c.Options {
		opt := strings.TrimSpace(fmt.Sprint(raw))
		if opt == "" {
			return nil, domain.NewInvalidGenerationError("candidate has an empty option")
		}
		options = append(options, opt)
	}
	seen := make(map[string]struct{}, domain.OptionCount)
	for _, opt := range options {
		if _, dup := seen[opt]; dup {
			return nil, domain.NewInvalidGenerationError("candidate options are not pairwise distinct")
		}
		seen[opt] = struct{}{}
	}

	idx, ok := answerIndex(c.CorrectAnswer)
	if !ok || idx < 0 || idx >= domain.OptionCount {
		return nil, domain.NewInvalidGenerationError("candidate answer index missing or out of range")
	}

	id := c.ID
	if id == "" {
		id = util.NewULID()
	}

	return &domain.AssessmentItem{
		ID:           id,
		Question:     question,
		Options:      options,
		CorrectIndex: idx,
		Topic:        strings.TrimSpace(c.Topic),
	}, nil
}

// ValidateBatch validates every candidate, drops duplicates by
// lowercase question text (first occurrence wins) and truncates the
// result to requestedCount. An empty result is a rejection that
// advances the pipeline to its next stage.
func (v *MCQValidator) ValidateBatch(candidates []MCQCandidate, requestedCount int) ([]domain.AssessmentItem, error) {
	if requestedCount <= 0 {
		return nil, domain.NewInvalidInputError("requested count must be positive")
	}

	seen := make(map[string]struct{})
	items := make([]domain.AssessmentItem, 0, requestedCount)
	for _, c := range candidates {
		item, err := v.ValidateItem(c)
		if err != nil {
			continue
		}
		key := item.QuestionKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, *item)
		if len(items) == requestedCount {
			break
		}
	}

	if len(items) == 0 {
		return nil, domain.NewInvalidGenerationError("no valid items after normalization")
	}
	return items, nil
}

// answerIndex coerces the loosely-typed correctAnswer field to an
// integer index. JSON numbers arrive as float64; only integral values
// are accepted.
func answerIndex(raw interface{}) (int, bool) {
	switch n := raw.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
