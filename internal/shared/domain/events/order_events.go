package events

import (
	"time"

	"github.com/google/uuid"
)

// OrderChanged se emite al crear o actualizar un pedido.
type OrderChanged struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user"`
	OrderStatus string    `json:"orderStatus"`
	TotalPrice  float64   `json:"totalPrice"`
	Items       int       `json:"items"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OrderDeleted se emite al eliminar un pedido.
type OrderDeleted struct {
	ID uuid.UUID `json:"id"`
}
