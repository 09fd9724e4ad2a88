package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"learnbyte/internal/cache"
	"learnbyte/internal/domain"
	"learnbyte/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// chunkSize bounds each transcript slice sent upstream.
	chunkSize = 3500
	// chunkBoundaryFloor is how far into a chunk window a period must
	// fall before it is taken as the cut point.
	chunkBoundaryFloor = 100
	// chunkFallbackLen is how much raw chunk text stands in for a
	// failed per-chunk summary.
	chunkFallbackLen = 500
	// combinedCap bounds the concatenated partial summaries fed to the
	// meta-summarization call.
	combinedCap = 6000

	chunkTemperature = 0.3
	chunkMaxTokens   = 500
	metaTemperature  = 0.3
	metaMaxTokens    = 700
)

// SummaryService condenses long transcripts: chunk, summarize each
// chunk, then meta-summarize the concatenation, with a verbatim
// truncation fallback at every step.
type SummaryService interface {
	Summarize(ctx context.Context, sourceText string, wordBudget int) (*domain.SummaryResult, error)
}

type summaryService struct {
	client  domain.GenerationClient
	cache   domain.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewSummaryService creates the summarization pipeline. cache may be
// nil; caching is an optimization, never a correctness requirement.
func NewSummaryService(client domain.GenerationClient, resultCache domain.Cache, ttl time.Duration) SummaryService {
	return &summaryService{
		client: client,
		cache:  resultCache,
		ttl:    ttl,
	}
}

// Summarize implements SummaryService.
func (s *summaryService) Summarize(ctx context.Context, sourceText string, wordBudget int) (*domain.SummaryResult, error) {
	if wordBudget <= 0 {
		return nil, domain.NewInvalidInputError("word budget must be positive")
	}
	sourceText = strings.TrimSpace(sourceText)
	if sourceText == "" {
		return nil, domain.NewEmptySourceError()
	}

	cacheKey := cache.GenerateCacheKey("summary", "result", cache.HashString(sourceText), strconv.Itoa(wordBudget))
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		result := s.run(ctx, sourceText, wordBudget)
		s.toCache(ctx, cacheKey, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.SummaryResult), nil
}

func (s *summaryService) run(ctx context.Context, sourceText string, wordBudget int) *domain.SummaryResult {
	l := logger.Get()
	chunks := ChunkText(sourceText, chunkSize)
	if len(chunks) == 0 {
		chunks = []string{sourceText}
	}

	degraded := false
	partials := make([]string, 0, len(chunks))
	for i, segment := range chunks {
		text, err := s.client.Complete(ctx, []domain.ChatMessage{
			domain.SystemMessage(chunkSummaryPrompt),
			domain.UserMessage(truncateForPrompt(segment, combinedCap)),
		}, chunkTemperature, chunkMaxTokens)
		if err != nil {
			// Service down or misbehaving: the raw head of the chunk
			// stands in as its partial summary.
			l.Warn("Chunk summarization failed, using raw text",
				zap.Int("chunk", i),
				zap.Error(err))
			degraded = true
			text = truncateForPrompt(segment, chunkFallbackLen)
		}
		partials = append(partials, strings.TrimSpace(text))
	}

	combined := strings.Join(partials, "\n\n")
	if len(combined) > combinedCap {
		combined = combined[:combinedCap]
	}

	finalText, err := s.client.Complete(ctx, []domain.ChatMessage{
		domain.SystemMessage(metaSummaryPrompt(wordBudget)),
		domain.UserMessage(combined),
	}, metaTemperature, metaMaxTokens)
	if err != nil {
		l.Warn("Meta-summarization failed, truncating partials", zap.Error(err))
		degraded = true
		limit := wordBudget * 6
		if limit > len(combined) {
			limit = len(combined)
		}
		finalText = combined[:limit]
	}

	provider := domain.ProviderGenerated
	if degraded {
		provider = domain.ProviderFallback
	}

	return &domain.SummaryResult{
		Summary:    FormatParagraphs(finalText),
		ChunkCount: len(chunks),
		Provider:   provider,
	}
}

func (s *summaryService) fromCache(ctx context.Context, key string) *domain.SummaryResult {
	if s.cache == nil {
		return nil
	}
	val, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Summary cache read failed", zap.Error(err))
		}
		return nil
	}
	var result domain.SummaryResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		logger.Get().Warn("Corrupt summary cache entry", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &result
}

func (s *summaryService) toCache(ctx context.Context, key string, result *domain.SummaryResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Warn("Summary cache write failed", zap.Error(err))
	}
}

// ChunkText slices text into pieces of at most maxChunkChars,
// preferring to end a piece at a period when one falls past the first
// 100 characters of the window. Empty pieces are dropped.
func ChunkText(text string, maxChunkChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + maxChunkChars
		if end > len(text) {
			end = len(text)
		}
		if period := strings.LastIndex(text[start:end], "."); period != -1 && period > chunkBoundaryFloor {
			end = start + period + 1
		}
		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		start = end
	}
	return chunks
}

var (
	bulletPrefix  = regexp.MustCompile(`^\s*(?:[-*•]\s*|\d+\.\s*)`)
	blankLineRuns = regexp.MustCompile(`\n{3,}`)
)

// FormatParagraphs normalizes generator output into plain paragraphs:
// leading bullet and numbering markers are stripped line by line, long
// blank-line runs collapse to one blank line, and a single wall of
// text over 400 characters gets paragraph breaks after sentences.
func FormatParagraphs(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = bulletPrefix.ReplaceAllString(line, "")
	}
	out := strings.Join(lines, "\n")
	out = blankLineRuns.ReplaceAllString(out, "\n\n")
	if !strings.Contains(out, "\n\n") && len(out) > 400 {
		out = strings.ReplaceAll(out, ". ", ".\n\n")
	}
	return strings.TrimSpace(out)
}

