package mocks

import (
	"context"
	"sync"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	userDomain "github.com/davicafu/storefront/internal/user/domain"
	"github.com/google/uuid"
)

// InMemoryUserRepo implementa userDomain.UserRepository con email único.
type InMemoryUserRepo struct {
	*MemStore[*userDomain.User]
	mu     sync.Mutex
	Outbox []sharedDomain.OutboxEvent
}

var _ userDomain.UserRepository = (*InMemoryUserRepo)(nil)

func NewInMemoryUserRepo(users ...*userDomain.User) *InMemoryUserRepo {
	r := &InMemoryUserRepo{MemStore: NewMemStore(func(u *userDomain.User) uuid.UUID { return u.ID })}
	for _, u := range users {
		r.Put(u)
	}
	return r
}

func (r *InMemoryUserRepo) addOutbox(evt sharedDomain.OutboxEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Outbox = append(r.Outbox, evt)
}

// EventTypes devuelve los tipos de evento escritos, en orden.
func (r *InMemoryUserRepo) EventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.Outbox))
	for _, evt := range r.Outbox {
		types = append(types, evt.EventType)
	}
	return types
}

func (r *InMemoryUserRepo) NewQuery() sharedQuery.Descriptor { return NewMemQuery() }

func (r *InMemoryUserRepo) List(ctx context.Context, q sharedQuery.Descriptor) ([]*userDomain.User, error) {
	return r.Find(q)
}

func (r *InMemoryUserRepo) first(pred func(*userDomain.User) bool) (*userDomain.User, error) {
	found := r.Match(pred)
	if len(found) == 0 {
		return nil, userDomain.ErrUserNotFound
	}
	cp := *found[0]
	return &cp, nil
}

func (r *InMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return r.first(func(u *userDomain.User) bool { return u.ID == id })
}

func (r *InMemoryUserRepo) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	return r.first(func(u *userDomain.User) bool { return u.Email == email })
}

func (r *InMemoryUserRepo) GetByResetToken(ctx context.Context, hashed string, now time.Time) (*userDomain.User, error) {
	return r.first(func(u *userDomain.User) bool { return u.ResetTokenValid(hashed, now) })
}

func (r *InMemoryUserRepo) emailTaken(u *userDomain.User) bool {
	return len(r.Match(func(other *userDomain.User) bool {
		return other.ID != u.ID && other.Email == u.Email
	})) > 0
}

func (r *InMemoryUserRepo) Create(ctx context.Context, u *userDomain.User, evt sharedDomain.OutboxEvent) error {
	if r.emailTaken(u) {
		return userDomain.ErrUserAlreadyExists
	}
	r.Put(u)
	r.addOutbox(evt)
	return nil
}

func (r *InMemoryUserRepo) Update(ctx context.Context, u *userDomain.User) error {
	if !r.Has(u.ID) {
		return userDomain.ErrUserNotFound
	}
	if r.emailTaken(u) {
		return userDomain.ErrUserAlreadyExists
	}
	cp := *u
	r.Put(&cp)
	return nil
}

func (r *InMemoryUserRepo) UpdateWithEvent(ctx context.Context, u *userDomain.User, evt sharedDomain.OutboxEvent) error {
	if err := r.Update(ctx, u); err != nil {
		return err
	}
	r.addOutbox(evt)
	return nil
}

func (r *InMemoryUserRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if !r.MemStore.Delete(id) {
		return userDomain.ErrUserNotFound
	}
	return nil
}
