package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermHeal(t *testing.T) {
	healed := Term{Term: "GraphQL", Definition: "Linguagem de consulta."}.Heal("graphql")

	assert.Equal(t, "graphql", healed.ID)
	assert.Equal(t, "GraphQL", healed.FullTerm)
	assert.NotNil(t, healed.Examples)
	assert.Empty(t, healed.Examples)
	assert.NotNil(t, healed.Analogies)
	assert.NotNil(t, healed.RelatedTerms)
	assert.Equal(t, DefaultUsageTitle, healed.PracticalUsage.Title)
	assert.Equal(t, DefaultUsageContent, healed.PracticalUsage.Content)
}

func TestTermHealKeepsGeneratedContent(t *testing.T) {
	in := Term{
		ID:             "modelo-inventou",
		Term:           "API",
		FullTerm:       "Application Programming Interface",
		PracticalUsage: PracticalUsage{Title: "Na daily", Content: "A API caiu."},
		RelatedTerms:   []string{"a", "b", "a", "c", "d", "e", "f", "g"},
	}
	healed := in.Heal("api")

	assert.Equal(t, "api", healed.ID)
	assert.Equal(t, "Application Programming Interface", healed.FullTerm)
	assert.Equal(t, "Na daily", healed.PracticalUsage.Title)
	assert.Equal(t, []string{"a", "b", "a", "c", "d", "e"}, healed.RelatedTerms)
}

func TestTermValid(t *testing.T) {
	assert.False(t, Term{}.Valid())
	assert.False(t, Term{Definition: "   "}.Valid())
	assert.True(t, Term{Definition: "algo"}.Valid())
}

func TestTermCloneIsIndependent(t *testing.T) {
	orig := Term{RelatedTerms: []string{"REST"}, Examples: []Example{{Title: "x"}}}
	cp := orig.Clone()
	cp.RelatedTerms[0] = "SOAP"
	cp.Examples[0].Title = "y"

	assert.Equal(t, "REST", orig.RelatedTerms[0])
	assert.Equal(t, "x", orig.Examples[0].Title)
}

func TestKnownCategory(t *testing.T) {
	assert.True(t, KnownCategory("Dados & IA"))
	assert.False(t, KnownCategory("Culinária"))
}

func TestPersonaOrDefault(t *testing.T) {
	assert.Equal(t, "Rick", PersonaOrDefault("rick").Name)
	assert.Equal(t, "Jessica", PersonaOrDefault("ninguem").Name)
	assert.Len(t, Personas(), 6)
}
