package service

import "desbuguei/internal/domain"

// localTerms responde mesmo sem banco e sem Gemini (demos e modo offline).
// A chave e a busca em minusculas, sem normalizacao.
var localTerms = map[string]domain.Term{
	"api": {
		ID:          "api",
		Term:        "API",
		FullTerm:    "Application Programming Interface",
		Category:    domain.CategoryDevelopment,
		Definition:  "APIs permitem que diferentes sistemas de software conversem entre si automaticamente, eliminando tarefas manuais e conectando sua empresa ao mercado digital.",
		Phonetic:    "Ei-pi-ai",
		Translation: "INTERFACE DE PROGRAMAÇÃO DE APLICATIVOS",
		Examples: []domain.Example{
			{Title: "AUTOMAÇÃO DE FLUXOS", Description: "Elimina a intervenção humana ao conectar processos operacionais críticos."},
			{Title: "SINCRONIZAÇÃO DE DADOS", Description: "Mantém Vendas, RH e Financeiro atualizados em todas as plataformas."},
		},
		Analogies: []domain.Example{
			{Title: "O GARÇOM NO RESTAURANTE", Description: "Você (cliente) pede ao garçom (API), que leva o pedido à cozinha (sistema) e traz o prato."},
			{Title: "TOMADA UNIVERSAL", Description: "Interface padrão para conectar qualquer aparelho à energia sem saber como a rede funciona."},
		},
		PracticalUsage: domain.PracticalUsage{
			Title:   "Na reunião de alinhamento (Daily)",
			Content: "Pessoal, a API de pagamentos caiu porque o gateway mudou a autenticação. Vou precisar refatorar a integração hoje à tarde pra gente voltar a vender.",
		},
		RelatedTerms: []string{"Endpoint", "JSON", "REST", "Webhook", "Gateway", "SDK"},
	},
}
