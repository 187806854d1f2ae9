package sessions

import (
	"sort"
	"sync"
)

// Session e o minimo que o registro precisa de uma sessao de voz.
type Session interface {
	ID() string
	Close()
}

// Registry guarda as sessoes de voz vivas do processo, indexadas pelo id.
type Registry struct {
	mu       sync.RWMutex // protege o mapa
	sessions map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

// Set registra uma sessao. Um id repetido substitui o anterior.
func (r *Registry) Set(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

// Get recupera uma sessao. Retorna a sessao e um booleano indicando se foi encontrada.
func (r *Registry) Get(id string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete remove uma sessao sem fecha-la.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IDs devolve os ids registrados em ordem.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CloseAll esvazia o registro e fecha cada sessao fora do lock.
func (r *Registry) CloseAll() int {
	r.mu.Lock()
	all := make([]Session, 0, len(r.sessions))
	for id, s := range r.sessions {
		all = append(all, s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
	return len(all)
}
