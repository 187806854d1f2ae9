package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"desbuguei/internal/domain"
)

// stripCodeFences remove cercas ``` (com ou sem "json") em volta do texto.
func stripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = strings.TrimPrefix(s, "```json")
	case strings.HasPrefix(s, "```"):
		s = strings.TrimPrefix(s, "```")
	default:
		return s
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// unmarshalJSON tenta de novo com jsonrepair quando o JSON vem quebrado.
func unmarshalJSON(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, err := jsonrepair.JSONRepair(string(data))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}
	return err
}

// parseTermPayload converte a resposta do modelo num termo. Campos com tipo
// errado sao descartados e ficam para domain.Term.Heal; so falha quando nao
// ha objeto JSON ou definicao.
func parseTermPayload(text string) (domain.Term, error) {
	body := stripCodeFences(text)
	if body == "" {
		return domain.Term{}, fmt.Errorf("%w: resposta vazia", domain.ErrGeneration)
	}

	var fields map[string]json.RawMessage
	if err := unmarshalJSON([]byte(body), &fields); err != nil {
		return domain.Term{}, fmt.Errorf("%w: JSON invalido: %w", domain.ErrGeneration, err)
	}
	if fields == nil {
		return domain.Term{}, fmt.Errorf("%w: resposta nao e um objeto", domain.ErrGeneration)
	}

	term := domain.Term{
		ID:           rawString(fields["id"]),
		Term:         rawString(fields["term"]),
		FullTerm:     rawString(fields["fullTerm"]),
		Category:     rawString(fields["category"]),
		Definition:   rawString(fields["definition"]),
		Phonetic:     rawString(fields["phonetic"]),
		Slang:        rawString(fields["slang"]),
		Translation:  rawString(fields["translation"]),
		Examples:     rawPairs(fields["examples"]),
		Analogies:    rawPairs(fields["analogies"]),
		RelatedTerms: rawStrings(fields["relatedTerms"]),
	}

	var usage struct {
		Title   json.RawMessage `json:"title"`
		Content json.RawMessage `json:"content"`
	}
	if json.Unmarshal(fields["practicalUsage"], &usage) == nil {
		term.PracticalUsage = domain.PracticalUsage{
			Title:   rawString(usage.Title),
			Content: rawString(usage.Content),
		}
	}

	if !term.Valid() {
		return domain.Term{}, fmt.Errorf("%w: resposta sem definicao", domain.ErrGeneration)
	}
	return term, nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func rawPairs(raw json.RawMessage) []domain.Example {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	out := make([]domain.Example, 0, len(items))
	for _, item := range items {
		var pair struct {
			Title       json.RawMessage `json:"title"`
			Description json.RawMessage `json:"description"`
		}
		if json.Unmarshal(item, &pair) != nil {
			continue
		}
		out = append(out, domain.Example{
			Title:       rawString(pair.Title),
			Description: rawString(pair.Description),
		})
	}
	return out
}

func rawStrings(raw json.RawMessage) []string {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := rawString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
