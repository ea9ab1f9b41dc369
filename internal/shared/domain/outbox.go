package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent representa un evento pendiente de publicar en el broker.
type OutboxEvent struct {
	ID            uuid.UUID   `json:"id"`
	AggregateType string      `json:"aggregate_type"` // ej. "order", "user"
	AggregateID   string      `json:"aggregate_id"`
	EventType     string      `json:"event_type"` // ej. "order.created"
	Payload       interface{} `json:"payload"`    // JSON serializable
	CreatedAt     time.Time   `json:"created_at"`
	Processed     bool        `json:"processed"` // si ya se publicó
}

// NewOutboxEvent prepara un evento sin procesar para un agregado.
func NewOutboxEvent(aggregateType, aggregateID, eventType string, payload interface{}) OutboxEvent {
	return OutboxEvent{
		ID:            uuid.New(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}
}

// OutboxRepository define el contrato para acceder a la colección outbox.
// Contiene solo los métodos que el worker necesita.
type OutboxRepository interface {
	FetchPendingOutbox(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error
}
