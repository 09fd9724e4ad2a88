package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"learnbyte/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clientFunc adapts a plain function to domain.GenerationClient.
type clientFunc func(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error)

func (f clientFunc) Complete(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
	return f(ctx, messages, temperature, maxTokens)
}

// scriptedClient returns one canned reply per call, repeating the last.
type scriptedClient struct {
	replies []string
	errs    []error
	calls   int
}

func (c *scriptedClient) Complete(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
	i := c.calls
	c.calls++
	if i >= len(c.replies) {
		i = len(c.replies) - 1
	}
	var err error
	if i < len(c.errs) {
		err = c.errs[i]
	}
	return c.replies[i], err
}

func newTestAssessmentService(client domain.GenerationClient) AssessmentService {
	return NewAssessmentService(client, NewMCQValidator(), NewFallbackSynthesizer(rand.New(rand.NewSource(1))))
}

const photosynthesisText = `Photosynthesis is the process by which green plants convert sunlight into chemical energy. ` +
	`The chlorophyll molecules inside chloroplasts absorb light energy from the sun. ` +
	`Photosynthesis produces glucose and oxygen from carbon dioxide and water. ` +
	`Plants store the resulting glucose as starch for later use during dark periods.`

const twoItemCompletion = `Here are your questions:
{"items":[
  {"question":"What does photosynthesis produce?","options":["Glucose and oxygen","Nitrogen and water","Starch only","Carbon dioxide"],"correctAnswer":0,"topic":"photosynthesis"},
  {"question":"Where are chlorophyll molecules found?","options":["Chloroplasts","Mitochondria","Ribosomes","The nucleus"],"correctAnswer":0,"topic":"chlorophyll"}
]}`

func TestGenerateAssessment_PrimarySuccess(t *testing.T) {
	client := &scriptedClient{replies: []string{twoItemCompletion}}
	svc := newTestAssessmentService(client)

	batch, err := svc.GenerateAssessment(context.Background(), photosynthesisText, 2)

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGenerated, batch.Provider)
	require.Len(t, batch.Items, 2)
	assert.Equal(t, 1, client.calls, "primary success should not trigger a repair call")
	assert.NoError(t, batch.Validate(2))
}

func TestGenerateAssessment_RepairRecoversFromGarbage(t *testing.T) {
	client := &scriptedClient{replies: []string{"no json here at all", twoItemCompletion}}
	svc := newTestAssessmentService(client)

	batch, err := svc.GenerateAssessment(context.Background(), photosynthesisText, 2)

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGenerated, batch.Provider)
	assert.Len(t, batch.Items, 2)
	assert.Equal(t, 2, client.calls, "garbage primary output should trigger exactly one repair call")
}

func TestGenerateAssessment_ShortBatchAdvancesStage(t *testing.T) {
	// Both generated stages return one item for a two-item request; the
	// pipeline must fall through to heuristic synthesis.
	short := `{"items":[{"question":"Only one?","options":["A","B","C","D"],"correctAnswer":0}]}`
	client := &scriptedClient{replies: []string{short, short}}
	svc := newTestAssessmentService(client)

	batch, err := svc.GenerateAssessment(context.Background(), photosynthesisText, 2)

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderFallback, batch.Provider)
	assert.Equal(t, 2, client.calls)
}

func TestGenerateAssessment_ServiceDownFallsBackToHeuristics(t *testing.T) {
	client := clientFunc(func(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
		return "", errors.New("connection refused")
	})
	svc := newTestAssessmentService(client)

	batch, err := svc.GenerateAssessment(context.Background(), photosynthesisText, 5)

	require.NoError(t, err, "a dead generation service must never surface as a request failure")
	assert.Equal(t, domain.ProviderFallback, batch.Provider)
	require.NotEmpty(t, batch.Items)
	assert.LessOrEqual(t, len(batch.Items), 5)

	referencesSource := false
	for _, item := range batch.Items {
		assert.NoError(t, item.Validate())
		if strings.Contains(strings.ToLower(item.Question), "photosynthesis") ||
			strings.Contains(strings.ToLower(item.Topic), "photosynthesis") {
			referencesSource = true
		}
	}
	assert.True(t, referencesSource, "fallback items should reference terms from the source text")
}

func TestGenerateAssessment_EmptySourceIsFatal(t *testing.T) {
	svc := newTestAssessmentService(&scriptedClient{replies: []string{twoItemCompletion}})

	_, err := svc.GenerateAssessment(context.Background(), "   \n\t  ", 5)

	require.Error(t, err)
	assert.True(t, domain.IsEmptySource(err))
}

func TestGenerateAssessment_NonPositiveCount(t *testing.T) {
	svc := newTestAssessmentService(&scriptedClient{replies: []string{twoItemCompletion}})
	_, err := svc.GenerateAssessment(context.Background(), photosynthesisText, 0)
	assert.Error(t, err)
}

func TestNextStage_Transitions(t *testing.T) {
	tests := []struct {
		stage   PipelineStage
		outcome StageOutcome
		want    PipelineStage
	}{
		{StagePrimaryGenerate, OutcomeFailure, StageRepairRetry},
		{StageRepairRetry, OutcomeFailure, StageHeuristicFallback},
		{StageHeuristicFallback, OutcomeFailure, StageLastResort},
		{StageLastResort, OutcomeFailure, stageExhausted},
		{StagePrimaryGenerate, OutcomeSuccess, stageExhausted},
		{StageHeuristicFallback, OutcomeSuccess, stageExhausted},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextStage(tt.stage, tt.outcome),
			"from %s on outcome %d", tt.stage, tt.outcome)
	}
}

func TestExtractCandidates(t *testing.T) {
	t.Run("json embedded in prose", func(t *testing.T) {
		raw := "Sure! " + `{"items":[{"question":"Q?","options":["A","B","C","D"],"correctAnswer":1}]}` + " Hope this helps."
		candidates, err := extractCandidates(raw)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Q?", candidates[0].Question)
	})

	t.Run("no braces", func(t *testing.T) {
		_, err := extractCandidates("plain refusal text")
		assert.Error(t, err)
	})

	t.Run("empty items", func(t *testing.T) {
		_, err := extractCandidates(`{"items":[]}`)
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := extractCandidates(`{"items":[{]}`)
		assert.Error(t, err)
	})
}
