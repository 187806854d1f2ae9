package store

import (
	"context"

	"desbuguei/internal/domain"
)

// NopTermStore e usado quando nenhum banco foi configurado: toda busca e miss
// e todo upsert e descartado.
type NopTermStore struct{}

func (NopTermStore) Get(context.Context, string) (domain.Term, error) {
	return domain.Term{}, domain.ErrTermNotFound
}

func (NopTermStore) Upsert(context.Context, domain.Term) error {
	return nil
}
