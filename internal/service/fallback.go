package service

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode"

	"learnbyte/internal/analysis"
	"learnbyte/internal/domain"
	"learnbyte/internal/util"
)

// FallbackSynthesizer builds assessment items directly from text
// analysis output when the generation service is unavailable or its
// output failed validation. It needs no network access at all.
//
// The random source is injectable so option shuffling is reproducible
// in tests while staying unbiased in production.
type FallbackSynthesizer struct {
	rng *rand.Rand
}

func NewFallbackSynthesizer(rng *rand.Rand) *FallbackSynthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FallbackSynthesizer{rng: rng}
}

var conceptFillers = []string{
	"Presents background information without defining the idea",
	"Describes an example case but not the concept itself",
	"Highlights a tangential point rather than the main concept",
}

var lastResortDistractors = []string{
	"Paraphrase unrelated to topic",
	"Irrelevant detail",
	"Contradictory statement",
}

// Synthesize walks the ranked key terms, rotating through three item
// archetypes (direct-concept, fill-in-the-blank, short-answer-as-choice)
// until requestedCount items are produced or terms run out. Candidates
// that fail the option or index invariants are skipped without
// consuming a slot; duplicates by question text are dropped.
func (f *FallbackSynthesizer) Synthesize(terms, sentences []string, requestedCount int) []domain.AssessmentItem {
	usedQuestions := make(map[string]struct{})
	var items []domain.AssessmentItem

	for _, term := range terms {
		if len(items) >= requestedCount {
			break
		}
		ctx := analysis.BestSentenceForTerm(term, sentences)

		var item *domain.AssessmentItem
		switch len(items) % 3 {
		case 0:
			item = f.directConcept(term, ctx, terms)
		case 1:
			item = f.fillInBlank(term, ctx, terms)
		default:
			item = f.shortAnswer(term, ctx, terms)
		}
		if item == nil {
			continue
		}

		key := item.QuestionKey()
		if _, dup := usedQuestions[key]; dup {
			continue
		}
		if item.Validate() != nil {
			continue
		}
		usedQuestions[key] = struct{}{}
		items = append(items, *item)
	}

	return items
}

// LastResort synthesizes one item per leading sentence when no
// term-based candidate could be built. Stems are numbered so a batch
// never carries two identical questions.
func (f *FallbackSynthesizer) LastResort(sentences []string, requestedCount int) []domain.AssessmentItem {
	var items []domain.AssessmentItem
	for i, s := range sentences {
		if len(items) >= requestedCount {
			break
		}
		correct := ellipsize(s, 120)
		options := []string{correct}
		options = append(options, lastResortDistractors...)
		shuffled, idx := f.shuffleWithAnswer(options, correct)

		item := domain.AssessmentItem{
			ID:           util.NewULID(),
			Question:     fmt.Sprintf("Which option best captures a main idea from the text? (%d)", i+1),
			Options:      shuffled,
			CorrectIndex: idx,
			Topic:        "general",
		}
		if item.Validate() != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// directConcept asks which statement best describes the term; the
// correct option is the best matching sentence, distractors are built
// from other high-frequency terms.
func (f *FallbackSynthesizer) directConcept(term, contextSentence string, pool []string) *domain.AssessmentItem {
	correct := ellipsize(strings.TrimSpace(contextSentence), 120)
	if correct == "" {
		correct = fmt.Sprintf("%s refers to a key concept discussed in the material.", titleCase(term))
	}

	var distractors []string
	for _, t := range pool {
		if t == term {
			continue
		}
		distractors = append(distractors, fmt.Sprintf("Focuses primarily on %s and unrelated details", t))
		if len(distractors) >= 3 {
			break
		}
	}
	for len(distractors) < 3 {
		distractors = append(distractors, conceptFillers[len(distractors)%len(conceptFillers)])
	}

	options := append([]string{correct}, distractors[:3]...)
	shuffled, idx := f.shuffleWithAnswer(options, correct)
	return &domain.AssessmentItem{
		ID:           util.NewULID(),
		Question:     fmt.Sprintf("Which statement best describes %s?", term),
		Options:      shuffled,
		CorrectIndex: idx,
		Topic:        term,
	}
}

// fillInBlank blanks the term out of its best sentence; the term
// itself (title-cased) is the correct option among other title-cased
// key terms.
func (f *FallbackSynthesizer) fillInBlank(term, contextSentence string, pool []string) *domain.AssessmentItem {
	base := contextSentence
	if base == "" {
		base = fmt.Sprintf("%s is an important concept in the text.", titleCase(term))
	}

	blankPattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	blanked := base
	if err == nil {
		blanked = blankPattern.ReplaceAllString(base, "____")
	}
	if blanked == base || len(blanked) < 30 {
		blanked = "____ relates to a key concept discussed in the material."
	}

	correct := titleCase(term)
	var distractors []string
	for _, t := range pool {
		if t == term {
			continue
		}
		distractors = append(distractors, titleCase(t))
		if len(distractors) >= 3 {
			break
		}
	}
	for len(distractors) < 3 {
		distractors = append(distractors, "Context")
	}

	options := append([]string{correct}, distractors[:3]...)
	shuffled, idx := f.shuffleWithAnswer(options, correct)
	return &domain.AssessmentItem{
		ID:           util.NewULID(),
		Question:     fmt.Sprintf("Fill in the blank: %s", blanked),
		Options:      shuffled,
		CorrectIndex: idx,
		Topic:        term,
	}
}

// shortAnswer phrases a short-answer question as a choice so it stays
// gradable; distractors are fixed templates referencing another term.
func (f *FallbackSynthesizer) shortAnswer(term, contextSentence string, pool []string) *domain.AssessmentItem {
	correct := contextSentence
	if correct == "" {
		correct = fmt.Sprintf("%s is a core concept described in the text.", titleCase(term))
	}
	correct = ellipsize(correct, 100)

	otherTopic := "another topic"
	for _, t := range pool {
		if t != term {
			otherTopic = t
			break
		}
	}
	distractors := []string{
		fmt.Sprintf("A tangential note about %s", otherTopic),
		"A general background statement with no definition",
		"An example unrelated to the definition",
	}

	options := append([]string{correct}, distractors...)
	shuffled, idx := f.shuffleWithAnswer(options, correct)
	return &domain.AssessmentItem{
		ID:           util.NewULID(),
		Question:     fmt.Sprintf("Briefly, what is %s? Choose the best answer.", term),
		Options:      shuffled,
		CorrectIndex: idx,
		Topic:        term,
	}
}

// shuffleWithAnswer shuffles options uniformly and returns the new
// index of the correct option, so the right answer carries no
// positional bias toward option A.
func (f *FallbackSynthesizer) shuffleWithAnswer(options []string, correct string) ([]string, int) {
	shuffled := make([]string, len(options))
	copy(shuffled, options)
	f.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	idx := 0
	for i, opt := range shuffled {
		if opt == correct {
			idx = i
			break
		}
	}
	return shuffled, idx
}

// ellipsize trims s to at most max characters, appending an ellipsis
// when it had to cut.
func ellipsize(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// titleCase uppercases the first letter of each word, like the display
// casing used for term-derived options.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
