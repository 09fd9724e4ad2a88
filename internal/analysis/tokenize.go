package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches lowercase alphabetic tokens of length >= 3,
// permitting interior hyphens.
var tokenPattern = regexp.MustCompile(`[a-z][a-z\-]{2,}`)

// stopwords is the fixed set of common English function words excluded
// from key-term extraction.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "that", "with", "from", "this", "have", "will", "were", "been", "they", "them", "then", "than", "into", "over", "under", "between", "among",
		"your", "you", "our", "their", "there", "about", "also", "such", "most", "more", "very", "just", "some", "what", "when", "where", "which", "who", "whom", "whose",
		"because", "although", "while", "before", "after", "since", "until", "against", "within", "without", "across", "through", "during", "above", "below", "each",
		"can", "could", "would", "should", "may", "might", "must", "is", "are", "was", "be", "being", "of", "in", "on", "to", "a", "an", "as", "it", "its",
	} {
		stopwords[w] = struct{}{}
	}
}

// Tokenize lowercases text and returns alphabetic tokens of length >= 3.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// KeyTerms returns the topK most frequent non-stopword tokens,
// most frequent first. Ties are broken by first-seen order; the result
// is deterministic for a given input and contains no duplicates.
func KeyTerms(text string, topK int) []string {
	if topK <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range Tokenize(text) {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	// order holds each term once, in first-seen order; a stable sort by
	// count preserves that order for ties.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topK {
		order = order[:topK]
	}
	return order
}
