package domain

import "strings"

// Categorias aceitas para um termo do glossario.
const (
	CategoryDevelopment    = "Desenvolvimento"
	CategoryInfrastructure = "Infraestrutura"
	CategoryDataAI         = "Dados & IA"
	CategorySecurity       = "Segurança"
	CategoryAgileProduct   = "Agile & Produto"
)

// Categories lista as categorias na ordem de exibicao.
var Categories = []string{
	CategoryDevelopment,
	CategoryInfrastructure,
	CategoryDataAI,
	CategorySecurity,
	CategoryAgileProduct,
}

// MaxRelatedTerms limita a quantidade de termos relacionados.
const MaxRelatedTerms = 6

// Placeholder usado quando o modelo nao devolve um uso pratico.
const (
	DefaultUsageTitle   = "Contexto Geral"
	DefaultUsageContent = "Termo usado frequentemente em reuniões de tecnologia."
)

// Term representa uma entrada do glossario.
type Term struct {
	ID             string         `json:"id"`
	Term           string         `json:"term"`
	FullTerm       string         `json:"fullTerm"`
	Category       string         `json:"category"`
	Definition     string         `json:"definition"`
	Phonetic       string         `json:"phonetic"`
	Slang          string         `json:"slang,omitempty"`
	Translation    string         `json:"translation"`
	Examples       []Example      `json:"examples"`
	Analogies      []Example      `json:"analogies"`
	PracticalUsage PracticalUsage `json:"practicalUsage"`
	RelatedTerms   []string       `json:"relatedTerms"`
}

// Example e usado tanto para exemplos quanto para analogias.
type Example struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type PracticalUsage struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Valid indica se o termo tem definicao, requisito para ser servido do cache.
func (t Term) Valid() bool {
	return strings.TrimSpace(t.Definition) != ""
}

// KnownCategory informa se a categoria pertence a enumeracao fixa.
func KnownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Heal completa um termo gerado: fixa o id, troca listas ausentes por listas
// vazias e preenche fullTerm e practicalUsage.
func (t Term) Heal(id string) Term {
	t.ID = id
	if t.Examples == nil {
		t.Examples = []Example{}
	}
	if t.Analogies == nil {
		t.Analogies = []Example{}
	}
	if t.RelatedTerms == nil {
		t.RelatedTerms = []string{}
	}
	if len(t.RelatedTerms) > MaxRelatedTerms {
		t.RelatedTerms = t.RelatedTerms[:MaxRelatedTerms]
	}
	if strings.TrimSpace(t.FullTerm) == "" {
		t.FullTerm = t.Term
	}
	if t.PracticalUsage == (PracticalUsage{}) {
		t.PracticalUsage = PracticalUsage{Title: DefaultUsageTitle, Content: DefaultUsageContent}
	}
	return t
}

// Clone devolve uma copia que nao compartilha slices com o original.
func (t Term) Clone() Term {
	if t.Examples != nil {
		t.Examples = append([]Example{}, t.Examples...)
	}
	if t.Analogies != nil {
		t.Analogies = append([]Example{}, t.Analogies...)
	}
	if t.RelatedTerms != nil {
		t.RelatedTerms = append([]string{}, t.RelatedTerms...)
	}
	return t
}
