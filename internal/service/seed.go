package service

import (
	"context"
	"fmt"
	"time"

	"desbuguei/internal/domain"
	"desbuguei/internal/store"
	"desbuguei/internal/utils"
)

// DefaultSeedTerms e a lista de termos conhecidos usada na carga inicial.
var DefaultSeedTerms = []string{
	"Kubernetes", "Docker", "CI/CD", "Microservices", "Serverless",
	"React", "Node.js", "Python", "Machine Learning", "LLM",
	"Cybersecurity", "Zero Trust", "Firewall", "VPN", "Encryption",
	"Agile", "Scrum", "Kanban", "MVP", "Product Market Fit",
}

// Seed resolve cada termo em sequencia, com pausa fixa entre eles para nao
// sobrecarregar a Gemini. Falha num item nao interrompe os demais.
func (s *TermService) Seed(ctx context.Context, terms []string, onProgress func(string)) error {
	report := func(line string) {
		s.logger.Info().Str("seed", line).Send()
		if onProgress != nil {
			onProgress(line)
		}
	}

	if !store.Configured(s.store) {
		report(utils.BuildSeedStoreMissing())
		return fmt.Errorf("%w: carga exige um banco configurado", domain.ErrStoreUnavailable)
	}

	report(utils.BuildSeedStart(len(terms)))
	for i, term := range terms {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.seedDelay):
			}
		}

		report(utils.BuildSeedChecking(term))
		if _, err := s.Resolve(ctx, term); err != nil {
			s.logger.Error().Err(err).Str("term", term).Msg("Erro na carga.")
			report(utils.BuildSeedFailed(term))
			continue
		}
		report(utils.BuildSeedDone(term))
	}
	report(utils.BuildSeedFinished())
	return nil
}
