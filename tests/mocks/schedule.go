package mocks

import (
	"context"

	scheduleDomain "github.com/davicafu/storefront/internal/schedule/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
)

// InMemoryScheduleRepo implementa scheduleDomain.ScheduleRepository.
type InMemoryScheduleRepo struct {
	*MemStore[*scheduleDomain.Schedule]
}

var _ scheduleDomain.ScheduleRepository = (*InMemoryScheduleRepo)(nil)

func NewInMemoryScheduleRepo(schedules ...*scheduleDomain.Schedule) *InMemoryScheduleRepo {
	r := &InMemoryScheduleRepo{MemStore: NewMemStore(func(s *scheduleDomain.Schedule) uuid.UUID { return s.ID })}
	for _, s := range schedules {
		r.Put(s)
	}
	return r
}

func (r *InMemoryScheduleRepo) NewQuery() sharedQuery.Descriptor { return NewMemQuery() }

func (r *InMemoryScheduleRepo) List(ctx context.Context, q sharedQuery.Descriptor) ([]*scheduleDomain.Schedule, error) {
	return r.Find(q)
}

func (r *InMemoryScheduleRepo) Count(ctx context.Context) (int64, error) { return r.Len(), nil }

func (r *InMemoryScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*scheduleDomain.Schedule, error) {
	s, ok := r.Get(id)
	if !ok {
		return nil, scheduleDomain.ErrScheduleNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *InMemoryScheduleRepo) Create(ctx context.Context, s *scheduleDomain.Schedule) error {
	r.Put(s)
	return nil
}

func (r *InMemoryScheduleRepo) Update(ctx context.Context, s *scheduleDomain.Schedule) error {
	if !r.Has(s.ID) {
		return scheduleDomain.ErrScheduleNotFound
	}
	r.Put(s)
	return nil
}

func (r *InMemoryScheduleRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if !r.Delete(id) {
		return scheduleDomain.ErrScheduleNotFound
	}
	return nil
}
