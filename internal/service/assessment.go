package service

import (
	"context"
	"encoding/json"
	"strings"

	"learnbyte/internal/analysis"
	"learnbyte/internal/domain"
	"learnbyte/internal/logger"

	"go.uber.org/zap"
)

// PipelineStage names one stage of the assessment degradation order.
// The order is a first-class artifact: transitions happen only through
// NextStage so tests can pin the exact fallback sequence.
type PipelineStage int

const (
	StagePrimaryGenerate PipelineStage = iota
	StageRepairRetry
	StageHeuristicFallback
	StageLastResort
	stageExhausted
)

func (s PipelineStage) String() string {
	switch s {
	case StagePrimaryGenerate:
		return "primary_generate"
	case StageRepairRetry:
		return "repair_retry"
	case StageHeuristicFallback:
		return "heuristic_fallback"
	case StageLastResort:
		return "last_resort"
	default:
		return "exhausted"
	}
}

// StageOutcome is the result of running one pipeline stage.
type StageOutcome int

const (
	OutcomeSuccess StageOutcome = iota
	OutcomeFailure
)

// NextStage is the pure transition function of the pipeline state
// machine: success terminates, failure advances one stage.
func NextStage(stage PipelineStage, outcome StageOutcome) PipelineStage {
	if outcome == OutcomeSuccess {
		return stageExhausted
	}
	switch stage {
	case StagePrimaryGenerate:
		return StageRepairRetry
	case StageRepairRetry:
		return StageHeuristicFallback
	case StageHeuristicFallback:
		return StageLastResort
	default:
		return stageExhausted
	}
}

// AssessmentService turns source text into a validated batch of
// multiple-choice items, degrading from external generation through
// heuristic synthesis without ever surfacing a service failure.
type AssessmentService interface {
	GenerateAssessment(ctx context.Context, sourceText string, requestedCount int) (*domain.AssessmentBatch, error)
}

type assessmentService struct {
	client    domain.GenerationClient
	validator *MCQValidator
	synth     *FallbackSynthesizer
}

func NewAssessmentService(client domain.GenerationClient, validator *MCQValidator, synth *FallbackSynthesizer) AssessmentService {
	return &assessmentService{
		client:    client,
		validator: validator,
		synth:     synth,
	}
}

const (
	primaryTemperature = 0.8
	primaryMaxTokens   = 1500
	repairTemperature  = 0.5
	repairMaxTokens    = 1000
)

// GenerateAssessment implements AssessmentService. The only fatal
// error is genuinely empty input; every generation or validation
// failure silently advances to the next stage.
func (s *assessmentService) GenerateAssessment(ctx context.Context, sourceText string, requestedCount int) (*domain.AssessmentBatch, error) {
	if requestedCount <= 0 {
		return nil, domain.NewInvalidInputError("requested count must be positive")
	}

	sentences := analysis.SplitSentences(sourceText)
	terms := analysis.KeyTerms(sourceText, 20)
	if len(sentences) == 0 && len(terms) == 0 {
		return nil, domain.NewEmptySourceError()
	}

	l := logger.Get()
	systemPrompt := assessmentSystemPrompt(requestedCount, analysis.BuildContentAnalysis(sourceText))
	userContent := truncateForPrompt(sourceText, promptSourceLimit)

	stage := StagePrimaryGenerate
	for stage != stageExhausted {
		var batch *domain.AssessmentBatch

		switch stage {
		case StagePrimaryGenerate:
			batch = s.tryGenerated(ctx, systemPrompt, userContent, primaryTemperature, primaryMaxTokens, requestedCount)
		case StageRepairRetry:
			repairSystem := systemPrompt + "\n" + assessmentRepairPrompt
			batch = s.tryGenerated(ctx, repairSystem, userContent, repairTemperature, repairMaxTokens, requestedCount)
		case StageHeuristicFallback:
			items := s.synth.Synthesize(terms, sentences, requestedCount)
			if len(items) > 0 {
				batch = &domain.AssessmentBatch{Items: items, Provider: domain.ProviderFallback}
			}
		case StageLastResort:
			items := s.synth.LastResort(sentences, requestedCount)
			if len(items) > 0 {
				batch = &domain.AssessmentBatch{Items: items, Provider: domain.ProviderFallback}
			}
		}

		if batch != nil {
			if len(batch.Items) < requestedCount {
				l.Warn("Assessment batch below requested count",
					zap.String("stage", stage.String()),
					zap.Int("requested", requestedCount),
					zap.Int("produced", len(batch.Items)))
			}
			l.Info("Assessment generated",
				zap.String("stage", stage.String()),
				zap.String("provider", string(batch.Provider)),
				zap.Int("items", len(batch.Items)))
			return batch, nil
		}

		l.Warn("Assessment stage failed, advancing", zap.String("stage", stage.String()))
		stage = NextStage(stage, OutcomeFailure)
	}

	// Unreachable for non-empty input: with at least one key term the
	// heuristic stage produces an item, and with at least one sentence
	// the last resort does.
	return nil, domain.NewInternalError("all assessment stages exhausted", nil)
}

// tryGenerated runs one external-generation stage and returns nil on
// any transport, parse or validation failure. Generated stages must
// yield exactly requestedCount items; short batches advance the
// machine instead of shipping a silently partial result.
func (s *assessmentService) tryGenerated(ctx context.Context, systemPrompt, userContent string, temperature float64, maxTokens, requestedCount int) *domain.AssessmentBatch {
	raw, err := s.client.Complete(ctx, []domain.ChatMessage{
		domain.SystemMessage(systemPrompt),
		domain.UserMessage(userContent),
	}, temperature, maxTokens)
	if err != nil {
		logger.Get().Warn("Generation call failed", zap.Error(err))
		return nil
	}

	candidates, err := extractCandidates(raw)
	if err != nil {
		logger.Get().Warn("Could not parse generated items", zap.Error(err))
		return nil
	}

	items, err := s.validator.ValidateBatch(candidates, requestedCount)
	if err != nil || len(items) != requestedCount {
		logger.Get().Warn("Generated batch rejected",
			zap.Error(err),
			zap.Int("valid_items", len(items)),
			zap.Int("requested", requestedCount))
		return nil
	}

	return &domain.AssessmentBatch{Items: items, Provider: domain.ProviderGenerated}
}

// extractCandidates locates the first balanced-looking JSON block in
// the raw completion (first '{' through last '}') and decodes its
// "items" array into untyped candidates.
func extractCandidates(raw string) ([]MCQCandidate, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, domain.NewUpstreamError(errInvalidJSONBlock)
	}

	var parsed struct {
		Items []MCQCandidate `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, domain.NewUpstreamError(err)
	}
	if len(parsed.Items) == 0 {
		return nil, domain.NewUpstreamError(errNoItems)
	}
	return parsed.Items, nil
}

var (
	errInvalidJSONBlock = jsonError("no JSON block found in completion")
	errNoItems          = jsonError("completion JSON has no items")
)

type jsonError string

func (e jsonError) Error() string { return string(e) }
