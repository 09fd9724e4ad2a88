package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	numberPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?%?\b`)
	yearPattern   = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	namePattern   = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
)

// BuildContentAnalysis assembles a structured plain-text summary of the
// source material: content type, top topics, key terms, detected
// numeric/date/proper-noun mentions, sentence and character counts.
// It is consumed only as prompt context for the generation client.
func BuildContentAnalysis(text string) string {
	if len(strings.TrimSpace(text)) < 100 {
		return "Content too short for meaningful analysis."
	}

	sentences := SplitSentences(text)
	keyTerms := KeyTerms(text, 15)
	contentType := IdentifyContentType(text)
	topics := MainTopics(text, keyTerms)

	numbers := uniqueHead(numberPattern.FindAllString(text, -1), 5)
	dates := uniqueHead(yearPattern.FindAllString(text, -1), 3)
	names := uniqueHead(namePattern.FindAllString(text, -1), 3)

	parts := []string{
		fmt.Sprintf("CONTENT TYPE: %s", contentType),
		fmt.Sprintf("MAIN TOPICS: %s", strings.Join(head(topics, 5), ", ")),
		fmt.Sprintf("KEY TERMS: %s", strings.Join(head(keyTerms, 8), ", ")),
	}
	if len(numbers) > 0 {
		parts = append(parts, fmt.Sprintf("NUMERICAL DATA: %s", strings.Join(numbers, ", ")))
	}
	if len(dates) > 0 {
		parts = append(parts, fmt.Sprintf("DATES MENTIONED: %s", strings.Join(dates, ", ")))
	}
	if len(names) > 0 {
		parts = append(parts, fmt.Sprintf("PEOPLE/ENTITIES: %s", strings.Join(names, ", ")))
	}
	parts = append(parts,
		fmt.Sprintf("TOTAL SENTENCES: %d", len(sentences)),
		fmt.Sprintf("CONTENT LENGTH: %d characters", len(text)),
	)

	return strings.Join(parts, " | ")
}

// uniqueHead deduplicates matches preserving first occurrence and caps
// the result at n entries.
func uniqueHead(matches []string, n int) []string {
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
		if len(out) == n {
			break
		}
	}
	return out
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
