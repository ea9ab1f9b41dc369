package application

import (
	"context"
	"net/http"
	"net/url"
	"time"

	orderDomain "github.com/davicafu/storefront/internal/order/domain"
	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedEvents "github.com/davicafu/storefront/internal/shared/domain/events"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAnalyticsDisabled se devuelve cuando no hay ClickHouse configurado.
var ErrAnalyticsDisabled = sharedDomain.NewError(http.StatusServiceUnavailable, "Order analytics is not configured")

// NewOrderInput son los datos que envía el comprador.
type NewOrderInput struct {
	OrderItems    []orderDomain.OrderItem
	ShippingInfo  orderDomain.ShippingInfo
	PaymentInfo   orderDomain.PaymentInfo
	ItemsPrice    float64
	TaxPrice      float64
	ShippingPrice float64
	TotalPrice    float64
}

// OrderView es un pedido con los datos de su comprador.
type OrderView struct {
	*orderDomain.Order
	Customer *orderDomain.Customer `json:"customer,omitempty"`
}

// AdminPage es el listado de pedidos del panel de administración.
type AdminPage struct {
	Orders      []*orderDomain.Order
	TotalAmount float64
}

type OrderService struct {
	repo       orderDomain.OrderRepository
	principals sharedDomain.PrincipalLoader
	analytics  orderDomain.OrderAnalyticsRepository
	log        *zap.Logger
}

// analytics puede ser nil.
func NewOrderService(
	repo orderDomain.OrderRepository,
	principals sharedDomain.PrincipalLoader,
	analytics orderDomain.OrderAnalyticsRepository,
	log *zap.Logger,
) *OrderService {
	return &OrderService{repo: repo, principals: principals, analytics: analytics, log: log}
}

func (s *OrderService) CreateOrder(ctx context.Context, user uuid.UUID, in NewOrderInput) (*orderDomain.Order, error) {
	if len(in.OrderItems) == 0 {
		return nil, orderDomain.ErrNoOrderItems
	}

	order := orderDomain.NewOrder(user, in.OrderItems, in.ShippingInfo, in.PaymentInfo)
	order.ItemsPrice = in.ItemsPrice
	order.TaxPrice = in.TaxPrice
	order.ShippingPrice = in.ShippingPrice
	order.TotalPrice = in.TotalPrice

	evt := sharedDomain.NewOutboxEvent(orderDomain.AggregateType, order.ID.String(), orderDomain.OrderCreated, orderDomain.ChangedEvent(order))
	if err := s.repo.Create(ctx, order, evt); err != nil {
		return nil, err
	}

	s.log.Info("Order created",
		zap.String("id", order.ID.String()),
		zap.String("user", user.String()),
		zap.Float64("totalPrice", order.TotalPrice),
	)
	return order, nil
}

// GetOrder devuelve el pedido con nombre y email del comprador.
// Si el comprador ya no existe el pedido se devuelve sin él.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &OrderView{Order: order}
	principal, err := s.principals.LoadPrincipal(ctx, order.User)
	if err != nil {
		s.log.Warn("Order customer not found", zap.String("order", id.String()), zap.Error(err))
		return view, nil
	}
	view.Customer = &orderDomain.Customer{ID: principal.ID, Name: principal.Name, Email: principal.Email}
	return view, nil
}

func (s *OrderService) MyOrders(ctx context.Context, user uuid.UUID) ([]*orderDomain.Order, error) {
	return s.repo.ListByUser(ctx, user)
}

// AllOrders filtra y pagina de 100 en 100; totalAmount cubre todos los pedidos.
func (s *OrderService) AllOrders(ctx context.Context, params url.Values) (*AdminPage, error) {
	total, err := s.repo.TotalAmount(ctx)
	if err != nil {
		return nil, err
	}

	f := sharedQuery.NewFeatures(s.repo.NewQuery(), params, sharedQuery.WithSchema(orderDomain.Schema)).
		Filter().
		Sort(sharedQuery.Desc("createdAt")).
		Pagination(orderDomain.AdminPageSize)
	orders, err := s.repo.List(ctx, f.Query())
	if err != nil {
		return nil, err
	}
	return &AdminPage{Orders: orders, TotalAmount: total}, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, status, notes string) (*orderDomain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.Process(status, notes)
	evt := sharedDomain.NewOutboxEvent(orderDomain.AggregateType, order.ID.String(), orderDomain.OrderUpdated, orderDomain.ChangedEvent(order))
	if err := s.repo.Update(ctx, order, evt); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	evt := sharedDomain.NewOutboxEvent(orderDomain.AggregateType, id.String(), orderDomain.OrderDeleted, sharedEvents.OrderDeleted{ID: id})
	return s.repo.Delete(ctx, id, evt)
}

// DailyRevenue consulta el histórico analítico entre from y to.
func (s *OrderService) DailyRevenue(ctx context.Context, from, to time.Time) ([]orderDomain.DailyRevenue, error) {
	if s.analytics == nil {
		return nil, ErrAnalyticsDisabled
	}
	return s.analytics.GetDailyRevenue(ctx, from, to)
}
