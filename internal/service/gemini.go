package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"desbuguei/config"
	"desbuguei/internal/domain"
)

var _ DefinitionGenerator = (*GeminiGenerator)(nil)

// GeminiGenerator gera termos do glossario com a Gemini em modo JSON.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	schema *genai.Schema
	logger zerolog.Logger
}

// NewGeminiGenerator cria o cliente da Gemini a partir da configuracao.
func NewGeminiGenerator(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*GeminiGenerator, error) {
	if err := cfg.RequireGeminiKey(); err != nil {
		return nil, err
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente da Gemini: %w", err)
	}
	return &GeminiGenerator{
		client: client,
		model:  cfg.GeminiModel,
		schema: geminiConvSchema(TermSchema()),
		logger: logger.With().Str("component", "gemini").Logger(),
	}, nil
}

// Generate pede ao modelo o registro estruturado do termo.
func (g *GeminiGenerator) Generate(ctx context.Context, term string) (domain.Term, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildDefinitionPrompt(term)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   g.schema,
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			g.logger.Error().Int("code", apiErr.Code).Str("status", apiErr.Status).Msg("Erro da API Gemini.")
		}
		return domain.Term{}, fmt.Errorf("%w: erro ao chamar a Gemini: %w", domain.ErrGeneration, err)
	}

	text := responseText(resp)
	if text == "" {
		g.logger.Warn().Str("term", term).Msg("Resposta da Gemini não contém candidatos ou partes válidas.")
		return domain.Term{}, fmt.Errorf("%w: resposta da Gemini vazia", domain.ErrGeneration)
	}
	g.logger.Debug().Str("term", term).Str("text", text).Msg("Texto recebido da Gemini (esperado JSON).")

	return parseTermPayload(text)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.Text != "" {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

func buildDefinitionPrompt(term string) string {
	return fmt.Sprintf(`You are a technical glossary for business executives. Define the term "%s".

Requirements:
1. 'fullTerm': The full English name or expansion.
2. 'translation': Translate the essence to Portuguese.
3. 'definition': A clear, business-focused definition in Portuguese.
4. 'phonetic': Portuguese pronunciation hint.
5. 'slang': Common slang (or null).
6. 'examples': 2 business contexts.
7. 'analogies': 2 simple analogies.
8. 'practicalUsage': Realistic sentence in Portuguese used by developers.
9. 'relatedTerms': Up to %d related keywords.
10. 'category': Pick one: %s.

Responda APENAS com o objeto JSON.`, term, domain.MaxRelatedTerms, strings.Join(domain.Categories, ", "))
}
