package mocks

import (
	"context"

	adDomain "github.com/davicafu/storefront/internal/ad/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
)

// InMemoryAdRepo implementa adDomain.AdRepository.
type InMemoryAdRepo struct {
	*MemStore[*adDomain.Ad]
}

var _ adDomain.AdRepository = (*InMemoryAdRepo)(nil)

func NewInMemoryAdRepo(ads ...*adDomain.Ad) *InMemoryAdRepo {
	r := &InMemoryAdRepo{MemStore: NewMemStore(func(a *adDomain.Ad) uuid.UUID { return a.ID })}
	for _, a := range ads {
		r.Put(a)
	}
	return r
}

func (r *InMemoryAdRepo) NewQuery() sharedQuery.Descriptor { return NewMemQuery() }

func (r *InMemoryAdRepo) List(ctx context.Context, q sharedQuery.Descriptor) ([]*adDomain.Ad, error) {
	return r.Find(q)
}

func (r *InMemoryAdRepo) Count(ctx context.Context) (int64, error) { return r.Len(), nil }

func (r *InMemoryAdRepo) GetByID(ctx context.Context, id uuid.UUID) (*adDomain.Ad, error) {
	a, ok := r.Get(id)
	if !ok {
		return nil, adDomain.ErrAdNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *InMemoryAdRepo) Create(ctx context.Context, a *adDomain.Ad) error {
	r.Put(a)
	return nil
}

func (r *InMemoryAdRepo) Update(ctx context.Context, a *adDomain.Ad) error {
	if !r.Has(a.ID) {
		return adDomain.ErrAdNotFound
	}
	r.Put(a)
	return nil
}

func (r *InMemoryAdRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if !r.Delete(id) {
		return adDomain.ErrAdNotFound
	}
	return nil
}
