// Package ingest holds the quality pre-pass applied to already-extracted
// text before it reaches the pipelines. Extraction itself (PDF, audio)
// happens upstream; the pipelines only need its noisy output tidied.
package ingest

import (
	"regexp"
	"strings"
)

var (
	cidArtifact   = regexp.MustCompile(`\(cid:\d+\)`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// LooksMangled reports whether text resembles a poor extraction:
// almost no spaces, leftover cid artifacts, or very long unbroken runs.
func LooksMangled(text string) bool {
	if text == "" {
		return true
	}
	noSpace := len(strings.ReplaceAll(text, " ", ""))
	total := len(text)
	if total < 1 {
		total = 1
	}
	noSpaceRatio := float64(noSpace) / float64(total)
	if noSpaceRatio > 0.97 {
		return true
	}
	if strings.Contains(text, "(cid:") {
		return true
	}
	for _, tok := range strings.Fields(text) {
		if len(tok) > 40 {
			return true
		}
	}
	return false
}

// NormalizeExtracted strips extraction artifacts and collapses
// whitespace so the analyzers see one clean line of text.
func NormalizeExtracted(text string) string {
	text = cidArtifact.ReplaceAllString(text, " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
