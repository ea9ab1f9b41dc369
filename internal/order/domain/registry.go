package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/storefront/internal/shared/domain/events"
)

const (
	OrderCreated = "order.created"
	OrderUpdated = "order.updated"
	OrderDeleted = "order.deleted"
)

const AggregateType = "order"

// NewEventRegistry asocia cada evento de pedido con su payload y topic.
func NewEventRegistry(topic string) map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		OrderCreated: {Type: reflect.TypeOf(sharedEvents.OrderChanged{}), Topic: topic},
		OrderUpdated: {Type: reflect.TypeOf(sharedEvents.OrderChanged{}), Topic: topic},
		OrderDeleted: {Type: reflect.TypeOf(sharedEvents.OrderDeleted{}), Topic: topic},
	}
}

// ChangedEvent construye el payload de integración de o.
func ChangedEvent(o *Order) sharedEvents.OrderChanged {
	return sharedEvents.OrderChanged{
		ID:          o.ID,
		UserID:      o.User,
		OrderStatus: o.OrderStatus,
		TotalPrice:  o.TotalPrice,
		Items:       o.Quantity(),
		CreatedAt:   o.CreatedAt,
	}
}
