package voice

import (
	"fmt"

	"desbuguei/internal/domain"
)

// Frases de controle. Precisam sair identicas, seja qual for a persona.
const (
	GreetingLine      = "Oi, o que quer saber?"
	CodeRequestLine   = "Me desculpe, mas sou especialista em programação e algumas coisa de tecnologia. Essa duvida pode perguntar ao ChatGPT."
	OffTopicLine      = "Me desculpe, mas sou especialista em programação e algumas coisa de tecnologia. Essa duvida pode perguntar ao Google."
	ConfirmationLine  = "É isso que quer saber? Posso responder?"
	ClarificationLine = "Ok, refaça a pergunta ou explique melhor?"

	// Linhas locais do painel de transcricao.
	ServiceUnavailableLine = "Serviço indisponível no momento."
	StartFailedLine        = "Erro ao iniciar microfone ou IA."
)

const (
	SearchTermTool = "search_term"
	SearchTermArg  = "term"
)

// SearchTermDeclaration e a unica ferramenta oferecida ao modelo.
var SearchTermDeclaration = ToolDeclaration{
	Name:        SearchTermTool,
	Description: "Navigate to the definition of a technical term.",
	Parameters: map[string]ToolParameter{
		SearchTermArg: {
			Type:        "string",
			Description: "The technical term to search for (e.g., Kubernetes, API, React).",
			Required:    true,
		},
	},
}

// BuildInstructions embrulha o estilo da persona no roteiro fixo de dialogo.
func BuildInstructions(p domain.Persona) string {
	return fmt.Sprintf(`VOCÊ É O ASSISTENTE DE NAVEGAÇÃO DO APP 'DESBUGUEI'.
SEU NOME É: %[1]s.
SUA PERSONALIDADE BASE: %[2]s

ATENÇÃO: VOCÊ DEVE SEGUIR RIGOROSAMENTE O FLUXO DE ESTADOS ABAIXO. NÃO SAIA DO ROTEIRO.

--- FLUXO DE ESTADOS ---

ESTADO 1: INÍCIO (Ao conectar)
- Ação: Assim que conectar, diga IMEDIATAMENTE e EXATAMENTE: "%[3]s"
- Aguarde a fala do usuário.

ESTADO 2: ANÁLISE DA PERGUNTA DO USUÁRIO
- O usuário vai falar algo. Analise o conteúdo:

CASO A (Geração de Código/Prompts): O usuário pede para criar códigos, scripts, prompts ou comandos.
   -> Resposta OBRIGATÓRIA: "%[4]s"
   -> Fim da interação (aguarde nova pergunta).

CASO B (Assunto Aleatório): O usuário fala sobre esportes, receitas, política, ou qualquer coisa que NÃO seja tecnologia/programação.
   -> Resposta OBRIGATÓRIA: "%[5]s"
   -> Fim da interação (aguarde nova pergunta).

CASO C (Dúvida Técnica Válida): O usuário pergunta "O que é React?", "Defina API", ou apenas diz um termo técnico.
   -> Ação: Identifique o termo.
   -> Resposta OBRIGATÓRIA: "%[6]s"
   -> Vá para o ESTADO 3.

ESTADO 3: CONFIRMAÇÃO
- Aguarde a resposta do usuário sobre a pergunta "Posso responder?".

CASO CONFIRMAÇÃO (Sim, claro, pode, isso mesmo, aham, vai):
   -> Ação: CHAME A TOOL/FUNÇÃO '%[8]s' com o termo identificado no ESTADO 2.
   -> Não fale mais nada após chamar a função.

CASO NEGAÇÃO OU DÚVIDA (Não, espera, não é isso, errou):
   -> Resposta OBRIGATÓRIA: "%[7]s"
   -> Volte para o ESTADO 2 (Análise).

--- REGRAS GERAIS ---
1. NÃO explique o termo antes da confirmação.
2. Mantenha as frases de controle ("%[3]s", "%[6]s") EXATAS, independente da sua personalidade, mas use o tom de voz do personagem.
`, p.Name, p.SystemInstruction, GreetingLine, CodeRequestLine, OffTopicLine, ConfirmationLine, ClarificationLine, SearchTermTool)
}

// NewSessionConfig monta a configuracao enviada ao modelo em toda abertura.
func NewSessionConfig(model string, p domain.Persona) SessionConfig {
	return SessionConfig{
		Model:               model,
		SystemInstruction:   BuildInstructions(p),
		VoiceName:           p.VoiceName,
		ResponseModality:    ModalityAudio,
		InputTranscription:  true,
		OutputTranscription: true,
		Tools:               []ToolDeclaration{SearchTermDeclaration},
	}
}
