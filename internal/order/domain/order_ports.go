package domain

import (
	"context"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
)

const AdminPageSize = 100

var Schema = sharedQuery.Schema{
	"createdAt":   sharedQuery.Time,
	"paidAt":      sharedQuery.Time,
	"deliveredAt": sharedQuery.Time,
	"totalPrice":  sharedQuery.Number,
}

// OrderRepository persiste pedidos. Las escrituras guardan el evento de outbox
// en la misma transacción que el pedido.
type OrderRepository interface {
	NewQuery() sharedQuery.Descriptor
	List(ctx context.Context, q sharedQuery.Descriptor) ([]*Order, error)
	ListByUser(ctx context.Context, user uuid.UUID) ([]*Order, error)
	// TotalAmount suma totalPrice de todos los pedidos.
	TotalAmount(ctx context.Context) (float64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	Create(ctx context.Context, o *Order, evt sharedDomain.OutboxEvent) error
	Update(ctx context.Context, o *Order, evt sharedDomain.OutboxEvent) error
	Delete(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error
}

// OrderLogEntry es una fila del histórico analítico de pedidos.
type OrderLogEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	EventType   string
	OrderStatus string
	TotalPrice  float64
	Items       int
	CreatedAt   time.Time
	EventTime   time.Time
}

// DailyRevenue agrega los pedidos creados en un día.
type DailyRevenue struct {
	Day     time.Time `json:"day"`
	Orders  uint64    `json:"orders"`
	Revenue float64   `json:"revenue"`
}

type OrderAnalyticsRepository interface {
	LogBatch(ctx context.Context, entries []OrderLogEntry) error
	GetDailyRevenue(ctx context.Context, from, to time.Time) ([]DailyRevenue, error)
}
