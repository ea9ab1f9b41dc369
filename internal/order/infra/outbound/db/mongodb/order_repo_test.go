package mongodb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	orderDomain "github.com/davicafu/storefront/internal/order/domain"
)

func TestOrderMapping_RoundTrip(t *testing.T) {
	order := orderDomain.NewOrder(uuid.New(),
		[]orderDomain.OrderItem{{Name: "Lamb leg", Quantity: 2, Price: 150000, Product: uuid.New()}},
		orderDomain.ShippingInfo{Address: "Street 1", City: "Mashhad", PhoneNo: "0915", PostalCode: "91"},
		orderDomain.PaymentInfo{ID: "pay_1", Status: "succeeded"},
	)
	order.TotalPrice = 300000

	back := fromMongoOrder(toMongoOrder(order))

	assert.Equal(t, order, back)
}

func TestOrderMapping_DeliveredAt(t *testing.T) {
	order := orderDomain.NewOrder(uuid.New(), nil, orderDomain.ShippingInfo{}, orderDomain.PaymentInfo{})
	order.Process(orderDomain.StatusDelivered, "left at the door")

	mo := toMongoOrder(order)
	back := fromMongoOrder(mo)

	if assert.NotNil(t, back.DeliveredAt) {
		assert.WithinDuration(t, time.Now().UTC(), *back.DeliveredAt, time.Second)
	}
	assert.Equal(t, "left at the door", back.OrderNotes)
}
