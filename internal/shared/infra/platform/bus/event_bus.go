package bus

import "context"

// Keyer lo implementan los eventos que deben conservar el orden por agregado.
type Keyer interface {
	PartitionKey() string
}

// EventBus publica en un único topic.
// La semántica de topic y el formato del payload la deciden los adapters.
type EventBus interface {
	Publish(ctx context.Context, event interface{}) error
}

// Topics agrupa un EventBus por topic.
type Topics map[string]EventBus

// For devuelve el bus de topic, o nil si no está configurado.
func (t Topics) For(topic string) EventBus {
	if t == nil {
		return nil
	}
	return t[topic]
}
