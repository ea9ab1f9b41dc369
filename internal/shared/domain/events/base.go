package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"` // contenido específico del evento
	Key       string          `json:"-"`
}

// PartitionKey keeps every event of one aggregate on the same partition.
func (e IntegrationEvent) PartitionKey() string {
	return e.Key
}

// EventMetadata describe el tipo de payload y el topic de un tipo de evento.
type EventMetadata struct {
	Type  reflect.Type
	Topic string
}
