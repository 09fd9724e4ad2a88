package analysis

import (
	"math"
	"regexp"
	"strings"
)

const (
	minSentenceLen = 30
	maxSentences   = 200
)

var (
	sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// SplitSentences splits text on sentence-ending punctuation followed by
// whitespace, drops sentences shorter than 30 characters, deduplicates
// case-insensitively (earliest occurrence kept) and caps the result at
// 200 entries.
func SplitSentences(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var raw []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(trimmed, -1) {
		// Keep the punctuation, drop the trailing whitespace.
		raw = append(raw, trimmed[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(trimmed) {
		raw = append(raw, trimmed[start:])
	}

	seen := make(map[string]struct{})
	var sentences []string
	for _, s := range raw {
		ss := strings.TrimSpace(s)
		if len(ss) < minSentenceLen {
			continue
		}
		key := whitespaceRun.ReplaceAllString(strings.ToLower(ss), " ")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		sentences = append(sentences, ss)
		if len(sentences) == maxSentences {
			break
		}
	}
	return sentences
}

// BestSentenceForTerm picks the sentence with the most occurrences of
// term, penalized for deviating from a readable length of ~120 chars.
// Returns the empty string when no sentence contains the term.
func BestSentenceForTerm(term string, sentences []string) string {
	lowTerm := strings.ToLower(term)
	best := ""
	bestScore := math.Inf(-1)
	for _, s := range sentences {
		count := strings.Count(strings.ToLower(s), lowTerm)
		if count == 0 {
			continue
		}
		penalty := math.Abs(float64(len(s)-120)) / 120.0
		score := float64(count) - 0.3*penalty
		if score > bestScore {
			bestScore = score
			best = s
		}
	}
	return best
}
