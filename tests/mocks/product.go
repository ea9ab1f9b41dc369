package mocks

import (
	"context"

	productDomain "github.com/davicafu/storefront/internal/product/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
)

// InMemoryProductRepo implementa productDomain.ProductRepository.
type InMemoryProductRepo struct {
	*MemStore[*productDomain.Product]
	// GetCalls cuenta las lecturas por id, para comprobar la caché.
	GetCalls int
}

var _ productDomain.ProductRepository = (*InMemoryProductRepo)(nil)

func NewInMemoryProductRepo(products ...*productDomain.Product) *InMemoryProductRepo {
	r := &InMemoryProductRepo{
		MemStore: NewMemStore(func(p *productDomain.Product) uuid.UUID { return p.ID }),
	}
	for _, p := range products {
		r.Put(p)
	}
	return r
}

func (r *InMemoryProductRepo) NewQuery() sharedQuery.Descriptor { return NewMemQuery() }

func (r *InMemoryProductRepo) List(ctx context.Context, q sharedQuery.Descriptor) ([]*productDomain.Product, error) {
	return r.Find(q)
}

func (r *InMemoryProductRepo) Count(ctx context.Context) (int64, error) { return r.Len(), nil }

func (r *InMemoryProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	r.GetCalls++
	p, ok := r.Get(id)
	if !ok {
		return nil, productDomain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *InMemoryProductRepo) Create(ctx context.Context, p *productDomain.Product) error {
	r.Put(p)
	return nil
}

func (r *InMemoryProductRepo) Update(ctx context.Context, p *productDomain.Product) error {
	if !r.Has(p.ID) {
		return productDomain.ErrProductNotFound
	}
	r.Put(p)
	return nil
}

func (r *InMemoryProductRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if !r.Delete(id) {
		return productDomain.ErrProductNotFound
	}
	return nil
}

func (r *InMemoryProductRepo) DeleteAll(ctx context.Context) (int64, error) { return r.Clear(), nil }

func (r *InMemoryProductRepo) InsertMany(ctx context.Context, products []*productDomain.Product) error {
	for _, p := range products {
		r.Put(p)
	}
	return nil
}
