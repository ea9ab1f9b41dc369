package application

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	orderDomain "github.com/davicafu/storefront/internal/order/domain"
	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedEvents "github.com/davicafu/storefront/internal/shared/domain/events"
	"github.com/davicafu/storefront/tests/mocks"
)

func sampleInput(total float64) NewOrderInput {
	return NewOrderInput{
		OrderItems: []orderDomain.OrderItem{
			{Name: "Lamb leg", Quantity: 2, Price: 100, Product: uuid.New()},
			{Name: "Chicken", Quantity: 1, Price: 50, Product: uuid.New()},
		},
		ShippingInfo: orderDomain.ShippingInfo{Address: "Street 1", City: "Mashhad", PhoneNo: "0915", PostalCode: "91"},
		PaymentInfo:  orderDomain.PaymentInfo{ID: "pay_1", Status: "succeeded"},
		ItemsPrice:   total,
		TotalPrice:   total,
	}
}

func TestCreateOrder_PendingWithOutboxEvent(t *testing.T) {
	// Arrange
	repo := mocks.NewInMemoryOrderRepo()
	svc := NewOrderService(repo, mocks.Principals{}, nil, zap.NewNop())
	buyer := uuid.New()

	// Act
	order, err := svc.CreateOrder(context.Background(), buyer, sampleInput(250))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, orderDomain.StatusPending, order.OrderStatus)
	assert.Equal(t, buyer, order.User)
	assert.WithinDuration(t, time.Now(), order.PaidAt, time.Second)
	assert.Nil(t, order.DeliveredAt)

	require.Len(t, repo.Outbox, 1)
	evt := repo.Outbox[0]
	assert.Equal(t, orderDomain.OrderCreated, evt.EventType)
	assert.Equal(t, order.ID.String(), evt.AggregateID)
	payload, ok := evt.Payload.(sharedEvents.OrderChanged)
	require.True(t, ok)
	assert.Equal(t, 3, payload.Items)
	assert.Equal(t, 250.0, payload.TotalPrice)
}

func TestCreateOrder_RequiresItems(t *testing.T) {
	repo := mocks.NewInMemoryOrderRepo()
	svc := NewOrderService(repo, mocks.Principals{}, nil, zap.NewNop())

	_, err := svc.CreateOrder(context.Background(), uuid.New(), NewOrderInput{})

	assert.ErrorIs(t, err, orderDomain.ErrNoOrderItems)
	assert.Empty(t, repo.Outbox)
}

func TestGetOrder_WithCustomer(t *testing.T) {
	buyer := &sharedDomain.Principal{ID: uuid.New(), Name: "Sara", Email: "sara@example.com", Role: sharedDomain.RoleUser}
	order := orderDomain.NewOrder(buyer.ID, nil, orderDomain.ShippingInfo{}, orderDomain.PaymentInfo{})
	svc := NewOrderService(mocks.NewInMemoryOrderRepo(order), mocks.Principals{buyer.ID: buyer}, nil, zap.NewNop())

	view, err := svc.GetOrder(context.Background(), order.ID)

	require.NoError(t, err)
	require.NotNil(t, view.Customer)
	assert.Equal(t, "Sara", view.Customer.Name)
	assert.Equal(t, "sara@example.com", view.Customer.Email)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"orderStatus":"Pending"`)
	assert.Contains(t, string(raw), `"customer":{`)
}

func TestGetOrder_MissingCustomerStillReturnsOrder(t *testing.T) {
	order := orderDomain.NewOrder(uuid.New(), nil, orderDomain.ShippingInfo{}, orderDomain.PaymentInfo{})
	svc := NewOrderService(mocks.NewInMemoryOrderRepo(order), mocks.Principals{}, nil, zap.NewNop())

	view, err := svc.GetOrder(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Nil(t, view.Customer)
}

func TestMyOrders_OnlyCallerOrders(t *testing.T) {
	me, other := uuid.New(), uuid.New()
	repo := mocks.NewInMemoryOrderRepo(
		orderDomain.NewOrder(me, nil, orderDomain.ShippingInfo{}, orderDomain.PaymentInfo{}),
		orderDomain.NewOrder(other, nil, orderDomain.ShippingInfo{}, orderDomain.PaymentInfo{}),
		orderDomain.NewOrder(me, nil, orderDomain.ShippingInfo{}, orderDomain.PaymentInfo{}),
	)
	svc := NewOrderService(repo, mocks.Principals{}, nil, zap.NewNop())

	orders, err := svc.MyOrders(context.Background(), me)

	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestAllOrders_FilterAndTotalAmount(t *testing.T) {
	pending := orderDomain.NewOrder(uuid.New(), nil, orderDomain.ShippingInfo{}, orderDomain.PaymentInfo{})
	pending.TotalPrice = 100
	delivered := orderDomain.NewOrder(uuid.New(), nil, orderDomain.ShippingInfo{}, orderDomain.PaymentInfo{})
	delivered.TotalPrice = 300
	delivered.OrderStatus = orderDomain.StatusDelivered
	svc := NewOrderService(mocks.NewInMemoryOrderRepo(pending, delivered), mocks.Principals{}, nil, zap.NewNop())

	page, err := svc.AllOrders(context.Background(), url.Values{"orderStatus": {"Delivered"}})

	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, delivered.ID, page.Orders[0].ID)
	assert.Equal(t, 400.0, page.TotalAmount)
}

func TestAllOrders_TotalPriceRange(t *testing.T) {
	var orders []*orderDomain.Order
	for _, total := range []float64{50, 150, 250} {
		o := orderDomain.NewOrder(uuid.New(), nil, orderDomain.ShippingInfo{}, orderDomain.PaymentInfo{})
		o.TotalPrice = total
		orders = append(orders, o)
	}
	svc := NewOrderService(mocks.NewInMemoryOrderRepo(orders...), mocks.Principals{}, nil, zap.NewNop())

	page, err := svc.AllOrders(context.Background(), url.Values{"totalPrice[gte]": {"100"}, "totalPrice[lt]": {"250"}})

	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, 150.0, page.Orders[0].TotalPrice)
}

func TestUpdateOrder_SetsDeliveryAndEmits(t *testing.T) {
	order := orderDomain.NewOrder(uuid.New(), nil, orderDomain.ShippingInfo{}, orderDomain.PaymentInfo{})
	repo := mocks.NewInMemoryOrderRepo(order)
	svc := NewOrderService(repo, mocks.Principals{}, nil, zap.NewNop())

	updated, err := svc.UpdateOrder(context.Background(), order.ID, orderDomain.StatusDelivered, "ring twice")

	require.NoError(t, err)
	assert.Equal(t, orderDomain.StatusDelivered, updated.OrderStatus)
	assert.Equal(t, "ring twice", updated.OrderNotes)
	require.NotNil(t, updated.DeliveredAt)
	assert.Equal(t, []string{orderDomain.OrderUpdated}, repo.EventTypes())
}

func TestDeleteOrder(t *testing.T) {
	order := orderDomain.NewOrder(uuid.New(), nil, orderDomain.ShippingInfo{}, orderDomain.PaymentInfo{})
	repo := mocks.NewInMemoryOrderRepo(order)
	svc := NewOrderService(repo, mocks.Principals{}, nil, zap.NewNop())

	require.NoError(t, svc.DeleteOrder(context.Background(), order.ID))
	assert.Equal(t, []string{orderDomain.OrderDeleted}, repo.EventTypes())

	err := svc.DeleteOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, orderDomain.ErrOrderNotFound)
	assert.Len(t, repo.Outbox, 1)
}

func TestDailyRevenue(t *testing.T) {
	from, to := time.Now().Add(-48*time.Hour), time.Now()

	t.Run("sin analítica", func(t *testing.T) {
		svc := NewOrderService(mocks.NewInMemoryOrderRepo(), mocks.Principals{}, nil, zap.NewNop())

		_, err := svc.DailyRevenue(context.Background(), from, to)

		assert.ErrorIs(t, err, ErrAnalyticsDisabled)
	})

	t.Run("con analítica", func(t *testing.T) {
		analytics := new(mocks.MockOrderAnalytics)
		expected := []orderDomain.DailyRevenue{{Day: from, Orders: 2, Revenue: 300}}
		analytics.On("GetDailyRevenue", mock.Anything, from, to).Return(expected, nil)
		svc := NewOrderService(mocks.NewInMemoryOrderRepo(), mocks.Principals{}, analytics, zap.NewNop())

		got, err := svc.DailyRevenue(context.Background(), from, to)

		require.NoError(t, err)
		assert.Equal(t, expected, got)
		analytics.AssertExpectations(t)
	})
}
