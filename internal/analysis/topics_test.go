package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifyContentType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"programming", "This algorithm sorts the array using a helper function.", ContentTechnical},
		{"academic", "The underlying theory rests on a single principle.", ContentTheoretical},
		{"historical", "The nineteenth century saw a timeline of upheaval.", ContentHistorical},
		{"business", "Market forces shaped the economy last quarter.", ContentBusiness},
		{"scientific", "The experiment confirmed the research hypothesis.", ContentScientific},
		{"procedural", "Follow each step of the procedure carefully.", ContentProcedural},
		{"default", "Cats enjoy sleeping in warm sunlit corners.", ContentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IdentifyContentType(tt.text))
		})
	}
}

func TestIdentifyContentTypeFirstMatchWins(t *testing.T) {
	// Contains both programming and business markers; the technical rule
	// is checked first.
	text := "The algorithm priced the market efficiently."
	assert.Equal(t, ContentTechnical, IdentifyContentType(text))
}

func TestMainTopicsScoring(t *testing.T) {
	text := "Osmosis is the movement of water across a membrane barrier. " +
		"The membrane barrier appeared in the lab diagrams repeatedly this week. " +
		"Diffusion happens alongside other transport processes in cells."
	topics := MainTopics(text, []string{"osmosis", "membrane", "diffusion", "unrelated"})

	// osmosis and membrane both hit the definition-verb sentence (+3);
	// membrane additionally appears in a plain sentence (+1).
	assert.Equal(t, []string{"membrane", "osmosis", "diffusion"}, topics)
}

func TestMainTopicsDropsZeroScores(t *testing.T) {
	text := "Volcanoes erupt when magma pressure builds beneath the crust."
	topics := MainTopics(text, []string{"glacier"})
	assert.Empty(t, topics)
}

func TestMainTopicsCap(t *testing.T) {
	text := "Alpha beta gamma delta epsilon zeta eta theta iota kappa are all mentioned here in one sentence."
	terms := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota", "kappa"}
	assert.Len(t, MainTopics(text, terms), 8)
}
