package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desbuguei/internal/domain"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  \n```json {\"a\":1}```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestParseTermPayload(t *testing.T) {
	text := "```json\n" + `{
  "id": "qualquer",
  "term": "GraphQL",
  "fullTerm": "Graph Query Language",
  "category": "Desenvolvimento",
  "definition": "Linguagem de consulta.",
  "phonetic": "Grafi-quiu-él",
  "slang": null,
  "translation": "LINGUAGEM DE CONSULTA EM GRAFO",
  "examples": [{"title": "BFF", "description": "Uma chamada só."}],
  "analogies": [{"title": "CARDÁPIO", "description": "Você escolhe os itens."}],
  "practicalUsage": {"title": "Na daily", "content": "Ajustei o resolver."},
  "relatedTerms": ["REST", "API"]
}` + "\n```"

	term, err := parseTermPayload(text)
	require.NoError(t, err)

	assert.Equal(t, "GraphQL", term.Term)
	assert.Equal(t, "", term.Slang)
	assert.Equal(t, []domain.Example{{Title: "BFF", Description: "Uma chamada só."}}, term.Examples)
	assert.Equal(t, "Ajustei o resolver.", term.PracticalUsage.Content)
	assert.Equal(t, []string{"REST", "API"}, term.RelatedTerms)
}

func TestParseTermPayloadDropsMalformedFields(t *testing.T) {
	text := `{
  "term": "Redis",
  "definition": "Banco em memória.",
  "examples": "nenhum",
  "analogies": [1, {"title": "CADERNO", "description": "Anotações rápidas."}],
  "practicalUsage": "sem uso",
  "relatedTerms": ["Cache", 42, ""]
}`
	term, err := parseTermPayload(text)
	require.NoError(t, err)

	assert.Nil(t, term.Examples)
	assert.Equal(t, []domain.Example{{Title: "CADERNO", Description: "Anotações rápidas."}}, term.Analogies)
	assert.Equal(t, domain.PracticalUsage{}, term.PracticalUsage)
	assert.Equal(t, []string{"Cache"}, term.RelatedTerms)

	healed := term.Heal("redis")
	assert.Equal(t, []domain.Example{}, healed.Examples)
	assert.Equal(t, domain.DefaultUsageTitle, healed.PracticalUsage.Title)
}

func TestParseTermPayloadRepairsJSON(t *testing.T) {
	term, err := parseTermPayload(`{"term": "VPN", "definition": "Túnel seguro.", "relatedTerms": ["IPSec",],}`)
	require.NoError(t, err)
	assert.Equal(t, "VPN", term.Term)
	assert.Equal(t, []string{"IPSec"}, term.RelatedTerms)
}

func TestParseTermPayloadErrors(t *testing.T) {
	for name, text := range map[string]string{
		"empty":         "",
		"only fences":   "```json\n```",
		"array":         `[1, 2]`,
		"null":          `null`,
		"no definition": `{"term": "X"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseTermPayload(text)
			assert.ErrorIs(t, err, domain.ErrGeneration)
		})
	}
}

func TestTermSchemaConvertsToGemini(t *testing.T) {
	gs := geminiConvSchema(TermSchema())

	require.NotNil(t, gs)
	assert.Equal(t, "OBJECT", string(gs.Type))
	assert.ElementsMatch(t, []string{"term", "category", "definition"}, gs.Required)
	assert.Equal(t, domain.Categories, gs.Properties["category"].Enum)
	assert.Equal(t, "ARRAY", string(gs.Properties["examples"].Type))
	assert.Equal(t, "OBJECT", string(gs.Properties["examples"].Items.Type))
	require.NotNil(t, gs.Properties["slang"].Nullable)
	assert.True(t, *gs.Properties["slang"].Nullable)
	assert.Equal(t, "STRING", string(gs.Properties["slang"].Type))
}

func TestBuildDefinitionPrompt(t *testing.T) {
	p := buildDefinitionPrompt("Kubernetes")
	assert.Contains(t, p, `"Kubernetes"`)
	assert.Contains(t, p, "Dados & IA")
	assert.Contains(t, p, "Up to 6")
}
