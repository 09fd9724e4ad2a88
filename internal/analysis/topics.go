package analysis

import (
	"sort"
	"strings"
)

// Content type labels assigned by IdentifyContentType.
const (
	ContentTechnical   = "Technical/Programming"
	ContentTheoretical = "Theoretical/Academic"
	ContentHistorical  = "Historical"
	ContentBusiness    = "Business/Economic"
	ContentScientific  = "Scientific/Research"
	ContentProcedural  = "Procedural/How-to"
	ContentGeneral     = "General Educational"
)

// contentTypeRules pairs each label with its marker keywords; the first
// rule with any marker present wins.
var contentTypeRules = []struct {
	label    string
	keywords []string
}{
	{ContentTechnical, []string{"algorithm", "programming", "code", "function", "variable"}},
	{ContentTheoretical, []string{"theory", "concept", "principle", "framework"}},
	{ContentHistorical, []string{"history", "timeline", "chronological", "century"}},
	{ContentBusiness, []string{"business", "market", "economy", "financial"}},
	{ContentScientific, []string{"science", "research", "experiment", "study"}},
	{ContentProcedural, []string{"step", "process", "procedure", "method"}},
}

var (
	definitionVerbs = []string{"is", "are", "means", "refers", "defined"}
	emphasisWords   = []string{"important", "key", "main", "primary"}
)

const maxTopics = 8

// IdentifyContentType classifies text into one of the fixed content
// type labels, defaulting to General Educational.
func IdentifyContentType(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range contentTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label
			}
		}
	}
	return ContentGeneral
}

// MainTopics scores each key term by the sentences that mention it:
// +3 when the sentence carries a definition verb, +2 for an emphasis
// word, +1 otherwise. Terms scoring zero are dropped; the rest are
// returned highest first (input order preserved on ties), capped at 8.
func MainTopics(text string, keyTerms []string) []string {
	sentences := SplitSentences(text)

	type scored struct {
		term  string
		score int
	}
	candidates := make([]scored, 0, len(keyTerms))
	for _, term := range keyTerms {
		lowTerm := strings.ToLower(term)
		score := 0
		for _, sentence := range sentences {
			lowSentence := strings.ToLower(sentence)
			if !strings.Contains(lowSentence, lowTerm) {
				continue
			}
			switch {
			case containsAnyWord(lowSentence, definitionVerbs):
				score += 3
			case containsAnyWord(lowSentence, emphasisWords):
				score += 2
			default:
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{term, score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	topics := make([]string, 0, len(candidates))
	for _, c := range candidates {
		topics = append(topics, c.term)
		if len(topics) == maxTopics {
			break
		}
	}
	return topics
}

func containsAnyWord(haystack string, words []string) bool {
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}
