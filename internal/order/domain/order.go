package domain

import (
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/google/uuid"
)

// Estados habituales; orderStatus es texto libre fijado por el admin.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusDelivered  = "Delivered"
)

type OrderItem struct {
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Image    string    `json:"image"`
	Price    float64   `json:"price"`
	Product  uuid.UUID `json:"product"`
}

type ShippingInfo struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PhoneNo    string `json:"phoneNo"`
	PostalCode string `json:"postalCode"`
}

type PaymentInfo struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Customer es la vista del comprador que acompaña a un pedido.
type Customer struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type Order struct {
	ID            uuid.UUID    `json:"_id"`
	OrderItems    []OrderItem  `json:"orderItems"`
	ShippingInfo  ShippingInfo `json:"shippingInfo"`
	ItemsPrice    float64      `json:"itemsPrice"`
	TaxPrice      float64      `json:"taxPrice"`
	ShippingPrice float64      `json:"shippingPrice"`
	TotalPrice    float64      `json:"totalPrice"`
	PaymentInfo   PaymentInfo  `json:"paymentInfo"`
	OrderStatus   string       `json:"orderStatus"`
	OrderNotes    string       `json:"orderNotes"`
	PaidAt        time.Time    `json:"paidAt"`
	DeliveredAt   *time.Time   `json:"deliveredAt,omitempty"`
	User          uuid.UUID    `json:"user"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// NewOrder crea un pedido pendiente y pagado ahora, cuyo comprador es user.
func NewOrder(user uuid.UUID, items []OrderItem, shipping ShippingInfo, payment PaymentInfo) *Order {
	now := time.Now().UTC()
	if items == nil {
		items = []OrderItem{}
	}
	return &Order{
		ID:           uuid.New(),
		OrderItems:   items,
		ShippingInfo: shipping,
		PaymentInfo:  payment,
		OrderStatus:  StatusPending,
		PaidAt:       now,
		User:         user,
		CreatedAt:    now,
	}
}

// Process aplica la actualización del admin y marca la entrega ahora.
func (o *Order) Process(status, notes string) {
	now := time.Now().UTC()
	o.OrderStatus = status
	o.OrderNotes = notes
	o.DeliveredAt = &now
}

// Quantity es el número total de unidades del pedido.
func (o *Order) Quantity() int {
	n := 0
	for _, item := range o.OrderItems {
		n += item.Quantity
	}
	return n
}

var (
	ErrOrderNotFound = sharedDomain.NotFound("No Order found with this ID")
	ErrNoOrderItems  = sharedDomain.BadRequest("Please add at least one order item")
)
