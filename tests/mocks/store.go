package mocks

import (
	"sync"

	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
)

// MemStore es un almacén en memoria indexado por UUID, base de los repos falsos.
type MemStore[T any] struct {
	mu    sync.RWMutex
	order []uuid.UUID
	items map[uuid.UUID]T
	id    func(T) uuid.UUID
}

func NewMemStore[T any](id func(T) uuid.UUID) *MemStore[T] {
	return &MemStore[T]{items: make(map[uuid.UUID]T), id: id}
}

func (s *MemStore[T]) Put(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id(item)
	if _, ok := s.items[id]; !ok {
		s.order = append(s.order, id)
	}
	s.items[id] = item
}

func (s *MemStore[T]) Get(id uuid.UUID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

func (s *MemStore[T]) Has(id uuid.UUID) bool {
	_, ok := s.Get(id)
	return ok
}

func (s *MemStore[T]) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *MemStore[T]) Clear() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.items))
	s.items = make(map[uuid.UUID]T)
	s.order = nil
	return n
}

func (s *MemStore[T]) Len() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items))
}

// All devuelve los elementos en orden de inserción.
func (s *MemStore[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Find ejecuta un MemQuery sobre el almacén.
func (s *MemStore[T]) Find(q sharedQuery.Descriptor) ([]T, error) {
	return Run(q, s.All())
}

// Match devuelve los elementos que cumplen pred, en orden de inserción.
func (s *MemStore[T]) Match(pred func(T) bool) []T {
	var out []T
	for _, item := range s.All() {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
