package domain

import (
	"fmt"
	"strings"
)

// Provider identifies which pipeline stage produced a result.
type Provider string

const (
	// ProviderGenerated marks output produced by the external generation
	// service (primary or repair stage).
	ProviderGenerated Provider = "generated"
	// ProviderFallback marks a degraded result produced locally without
	// the external service.
	ProviderFallback Provider = "fallback"
)

// OptionCount is the fixed number of answer options per assessment item.
const OptionCount = 4

// AssessmentItem is one validated multiple-choice question. Items are
// immutable once returned; the ID is freshly generated by whichever
// stage produced the item and never reused across stages.
type AssessmentItem struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswer"`
	Topic        string   `json:"topic,omitempty"`
}

// Validate enforces the per-item output contract: non-empty question,
// exactly four pairwise-distinct options, correct index in range.
func (it *AssessmentItem) Validate() error {
	if strings.TrimSpace(it.Question) == "" {
		return NewInvalidGenerationError("question must not be empty")
	}
	if len(it.Options) != OptionCount {
		return NewInvalidGenerationError(fmt.Sprintf("expected %d options, got %d", OptionCount, len(it.Options)))
	}
	seen := make(map[string]struct{}, OptionCount)
	for _, opt := range it.Options {
		if strings.TrimSpace(opt) == "" {
			return NewInvalidGenerationError("options must not be empty")
		}
		if _, dup := seen[opt]; dup {
			return NewInvalidGenerationError("options must be pairwise distinct")
		}
		seen[opt] = struct{}{}
	}
	if it.CorrectIndex < 0 || it.CorrectIndex >= OptionCount {
		return NewInvalidGenerationError(fmt.Sprintf("correct answer index %d out of range", it.CorrectIndex))
	}
	return nil
}

// QuestionKey returns the normalized key used for batch-level
// duplicate detection.
func (it *AssessmentItem) QuestionKey() string {
	return strings.ToLower(strings.TrimSpace(it.Question))
}

// AssessmentBatch is an ordered set of validated assessment items plus
// the provenance of the stage that produced it. Len may be below the
// requested count only for fallback-produced batches.
type AssessmentBatch struct {
	Items    []AssessmentItem `json:"items"`
	Provider Provider         `json:"provider"`
}

// Validate enforces the batch contract: every item valid, no two items
// sharing a normalized question, and at most requestedCount items.
func (b *AssessmentBatch) Validate(requestedCount int) error {
	if len(b.Items) == 0 {
		return NewInvalidGenerationError("batch contains no items")
	}
	if len(b.Items) > requestedCount {
		return NewInvalidGenerationError(fmt.Sprintf("batch has %d items, requested %d", len(b.Items), requestedCount))
	}
	seen := make(map[string]struct{}, len(b.Items))
	for i := range b.Items {
		if err := b.Items[i].Validate(); err != nil {
			return err
		}
		key := b.Items[i].QuestionKey()
		if _, dup := seen[key]; dup {
			return NewInvalidGenerationError("batch contains duplicate questions")
		}
		seen[key] = struct{}{}
	}
	return nil
}
