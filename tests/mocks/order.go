package mocks

import (
	"context"
	"sync"
	"time"

	orderDomain "github.com/davicafu/storefront/internal/order/domain"
	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// InMemoryOrderRepo implementa orderDomain.OrderRepository y guarda los
// eventos de outbox que acompañan a cada escritura.
type InMemoryOrderRepo struct {
	*MemStore[*orderDomain.Order]
	mu     sync.Mutex
	Outbox []sharedDomain.OutboxEvent
}

var _ orderDomain.OrderRepository = (*InMemoryOrderRepo)(nil)

func NewInMemoryOrderRepo(orders ...*orderDomain.Order) *InMemoryOrderRepo {
	r := &InMemoryOrderRepo{MemStore: NewMemStore(func(o *orderDomain.Order) uuid.UUID { return o.ID })}
	for _, o := range orders {
		r.Put(o)
	}
	return r
}

func (r *InMemoryOrderRepo) addOutbox(evt sharedDomain.OutboxEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Outbox = append(r.Outbox, evt)
}

// EventTypes devuelve los tipos de evento escritos, en orden.
func (r *InMemoryOrderRepo) EventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.Outbox))
	for _, evt := range r.Outbox {
		types = append(types, evt.EventType)
	}
	return types
}

func (r *InMemoryOrderRepo) NewQuery() sharedQuery.Descriptor { return NewMemQuery() }

func (r *InMemoryOrderRepo) List(ctx context.Context, q sharedQuery.Descriptor) ([]*orderDomain.Order, error) {
	return r.Find(q)
}

func (r *InMemoryOrderRepo) ListByUser(ctx context.Context, user uuid.UUID) ([]*orderDomain.Order, error) {
	return r.Match(func(o *orderDomain.Order) bool { return o.User == user }), nil
}

func (r *InMemoryOrderRepo) TotalAmount(ctx context.Context) (float64, error) {
	total := 0.0
	for _, o := range r.All() {
		total += o.TotalPrice
	}
	return total, nil
}

func (r *InMemoryOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*orderDomain.Order, error) {
	o, ok := r.Get(id)
	if !ok {
		return nil, orderDomain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *InMemoryOrderRepo) Create(ctx context.Context, o *orderDomain.Order, evt sharedDomain.OutboxEvent) error {
	r.Put(o)
	r.addOutbox(evt)
	return nil
}

func (r *InMemoryOrderRepo) Update(ctx context.Context, o *orderDomain.Order, evt sharedDomain.OutboxEvent) error {
	if !r.Has(o.ID) {
		return orderDomain.ErrOrderNotFound
	}
	r.Put(o)
	r.addOutbox(evt)
	return nil
}

func (r *InMemoryOrderRepo) Delete(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	if !r.MemStore.Delete(id) {
		return orderDomain.ErrOrderNotFound
	}
	r.addOutbox(evt)
	return nil
}

// MockOrderAnalytics simula el histórico analítico.
type MockOrderAnalytics struct {
	mock.Mock
}

func (m *MockOrderAnalytics) LogBatch(ctx context.Context, entries []orderDomain.OrderLogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockOrderAnalytics) GetDailyRevenue(ctx context.Context, from, to time.Time) ([]orderDomain.DailyRevenue, error) {
	args := m.Called(ctx, from, to)
	if v := args.Get(0); v != nil {
		return v.([]orderDomain.DailyRevenue), args.Error(1)
	}
	return nil, args.Error(1)
}
