package domain

import "errors"

var (
	// ErrInvalidQuery: a busca normaliza para um id vazio.
	ErrInvalidQuery = errors.New("busca invalida")
	// ErrGeneration: o modelo falhou ou devolveu conteudo ilegivel.
	ErrGeneration = errors.New("falha ao gerar definicao")
	// ErrNotFound: nenhum caminho produziu um termo.
	ErrNotFound = errors.New("termo não encontrado")
	// ErrTermNotFound: o store nao tem o id pedido (cache miss).
	ErrTermNotFound = errors.New("termo ausente no banco")
	// ErrStoreUnavailable: o store falhou. Nunca chega ao chamador de Resolve.
	ErrStoreUnavailable = errors.New("banco de termos indisponivel")
	// ErrSession: falha no transporte da sessao de voz.
	ErrSession = errors.New("falha na sessao de voz")
	// ErrToolArgument: argumentos invalidos numa chamada de ferramenta.
	ErrToolArgument = errors.New("argumentos invalidos na chamada de ferramenta")
)
