package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"learnbyte/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	store map[string]string
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.store[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.store[key] = value
	c.sets++
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

func TestSummarize_SingleChunkHappyPath(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"The lecture explains thermodynamics.",
		"A final condensed summary of the lecture.",
	}}
	svc := NewSummaryService(client, nil, time.Hour)

	result, err := svc.Summarize(context.Background(), "A short lecture transcript about thermodynamics and heat transfer.", 100)

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGenerated, result.Provider)
	assert.Equal(t, 1, result.ChunkCount)
	assert.Equal(t, "A final condensed summary of the lecture.", result.Summary)
	assert.Equal(t, 2, client.calls, "one chunk call plus one meta call")
}

func TestSummarize_ServiceDownDegradesToTruncation(t *testing.T) {
	client := clientFunc(func(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
		return "", errors.New("upstream timeout")
	})
	svc := NewSummaryService(client, nil, time.Hour)
	transcript := strings.Repeat("The lecture covered the fundamentals of thermodynamics in great detail. ", 150)

	result, err := svc.Summarize(context.Background(), transcript, 100)

	require.NoError(t, err, "a dead generation service must never surface as a request failure")
	assert.Equal(t, domain.ProviderFallback, result.Provider)
	assert.GreaterOrEqual(t, result.ChunkCount, 3)
	assert.NotEmpty(t, result.Summary)
}

func TestSummarize_PartialChunkFailureIsDegraded(t *testing.T) {
	// Chunk call fails, meta call succeeds: the result is still marked
	// as fallback because raw text stood in for a partial summary.
	client := &scriptedClient{
		replies: []string{"", "A meta summary."},
		errs:    []error{errors.New("boom"), nil},
	}
	svc := NewSummaryService(client, nil, time.Hour)

	result, err := svc.Summarize(context.Background(), "A short transcript that fits a single chunk.", 50)

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderFallback, result.Provider)
	assert.Equal(t, "A meta summary.", result.Summary)
}

func TestSummarize_EmptyTranscriptIsFatal(t *testing.T) {
	svc := NewSummaryService(&scriptedClient{replies: []string{"x"}}, nil, time.Hour)

	_, err := svc.Summarize(context.Background(), "   ", 100)

	require.Error(t, err)
	assert.True(t, domain.IsEmptySource(err))
}

func TestSummarize_NonPositiveBudget(t *testing.T) {
	svc := NewSummaryService(&scriptedClient{replies: []string{"x"}}, nil, time.Hour)
	_, err := svc.Summarize(context.Background(), "some transcript", 0)
	assert.Error(t, err)
}

func TestSummarize_CachesResult(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"Partial summary.",
		"Final summary.",
	}}
	cache := newFakeCache()
	svc := NewSummaryService(client, cache, time.Hour)
	transcript := "A transcript worth caching for repeat requests."

	first, err := svc.Summarize(context.Background(), transcript, 100)
	require.NoError(t, err)
	callsAfterFirst := client.calls

	second, err := svc.Summarize(context.Background(), transcript, 100)
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, callsAfterFirst, client.calls, "second request should be served from cache")
	assert.Equal(t, 1, cache.sets)
}

func TestSummarize_DifferentBudgetsUseDifferentCacheKeys(t *testing.T) {
	client := &scriptedClient{replies: []string{"Partial.", "Final."}}
	cache := newFakeCache()
	svc := NewSummaryService(client, cache, time.Hour)

	_, err := svc.Summarize(context.Background(), "the same transcript", 100)
	require.NoError(t, err)
	_, err = svc.Summarize(context.Background(), "the same transcript", 200)
	require.NoError(t, err)

	assert.Equal(t, 2, cache.sets)
}

func TestChunkText(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, ChunkText("   ", 3500))
	})

	t.Run("short text is one chunk", func(t *testing.T) {
		chunks := ChunkText("A short sentence.", 3500)
		require.Len(t, chunks, 1)
		assert.Equal(t, "A short sentence.", chunks[0])
	})

	t.Run("no periods splits at window size", func(t *testing.T) {
		chunks := ChunkText(strings.Repeat("a", 8000), 3500)
		require.Len(t, chunks, 3)
		assert.Len(t, chunks[0], 3500)
		assert.Len(t, chunks[1], 3500)
		assert.Len(t, chunks[2], 1000)
	})

	t.Run("prefers sentence boundary past the floor", func(t *testing.T) {
		text := strings.Repeat("x", 200) + ". " + strings.Repeat("y", 400)
		chunks := ChunkText(text, 350)
		require.GreaterOrEqual(t, len(chunks), 2)
		assert.True(t, strings.HasSuffix(chunks[0], "."), "first chunk should end at the period")
	})

	t.Run("reassembles to the original content", func(t *testing.T) {
		text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 200)
		chunks := ChunkText(text, 3500)
		joined := strings.Join(chunks, " ")
		assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(strings.Fields(joined), " "))
	})
}

func TestFormatParagraphs(t *testing.T) {
	t.Run("strips bullet markers", func(t *testing.T) {
		got := FormatParagraphs("- first point\n* second point\n• third point\n1. fourth point")
		assert.Equal(t, "first point\nsecond point\nthird point\nfourth point", got)
	})

	t.Run("collapses blank line runs", func(t *testing.T) {
		got := FormatParagraphs("first paragraph\n\n\n\nsecond paragraph")
		assert.Equal(t, "first paragraph\n\nsecond paragraph", got)
	})

	t.Run("breaks up a long wall of text", func(t *testing.T) {
		wall := strings.Repeat("This sentence fills the wall of text with content. ", 12)
		got := FormatParagraphs(wall)
		assert.Contains(t, got, "\n\n")
	})

	t.Run("idempotent on formatted output", func(t *testing.T) {
		input := "- first\n- second\n\n\n\nthird"
		once := FormatParagraphs(input)
		assert.Equal(t, once, FormatParagraphs(once))
	})
}
