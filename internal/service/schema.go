package service

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/genai"

	"desbuguei/internal/domain"
)

// TermSchema descreve o JSON que o modelo precisa devolver para um termo.
func TermSchema() *jsonschema.Schema {
	str := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", Description: desc}
	}
	pairs := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{
			Type:        "array",
			Description: desc,
			Items: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"title":       str("Título curto em maiúsculas."),
					"description": str("Descrição em português."),
				},
			},
		}
	}

	categories := make([]any, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		categories = append(categories, c)
	}

	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":          str("Identificador sugerido (ignorado)."),
			"term":        str("Nome curto do termo."),
			"fullTerm":    str("Nome completo ou expansão em inglês."),
			"category":    {Type: "string", Format: "enum", Enum: categories},
			"definition":  str("Definição clara, focada em negócios, em português."),
			"phonetic":    str("Dica de pronúncia em português."),
			"slang":       {Types: []string{"string", "null"}, Description: "Gíria comum, se houver."},
			"translation": str("A essência do termo traduzida para o português."),
			"examples":    pairs("Dois contextos de negócio."),
			"analogies":   pairs("Duas analogias simples."),
			"practicalUsage": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"title":   str("Onde a frase é dita."),
					"content": str("Frase realista usada por desenvolvedores."),
				},
			},
			"relatedTerms": {
				Type:        "array",
				Description: fmt.Sprintf("Até %d termos relacionados.", domain.MaxRelatedTerms),
				Items:       str(""),
			},
		},
		Required: []string{"term", "category", "definition"},
	}
}

func geminiConvSchema(schema *jsonschema.Schema) *genai.Schema {
	if schema == nil {
		return nil
	}

	enums := make([]string, 0, len(schema.Enum))
	for _, v := range schema.Enum {
		enums = append(enums, fmt.Sprintf("%v", v))
	}

	gs := genai.Schema{
		Format:      schema.Format,
		Description: schema.Description,
		Enum:        enums,
		Items:       geminiConvSchema(schema.Items),
		Required:    schema.Required,
	}

	if n := len(schema.Properties); n > 0 {
		gs.Properties = make(map[string]*genai.Schema, n)
		for k, prop := range schema.Properties {
			gs.Properties[k] = geminiConvSchema(prop)
		}
	}

	typ := schema.Type
	for _, t := range schema.Types {
		if t == "null" {
			gs.Nullable = genai.Ptr(true)
			continue
		}
		typ = t
	}
	switch typ {
	case "object":
		gs.Type = genai.TypeObject
	case "array":
		gs.Type = genai.TypeArray
	case "string":
		gs.Type = genai.TypeString
	case "number":
		gs.Type = genai.TypeNumber
	case "integer":
		gs.Type = genai.TypeInteger
	case "boolean":
		gs.Type = genai.TypeBoolean
	}
	return &gs
}
