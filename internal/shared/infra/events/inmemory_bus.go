package events

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/davicafu/storefront/internal/shared/infra/platform/bus"
	"go.uber.org/zap"
)

// Message es lo que reciben los suscriptores del bus en memoria.
type Message struct {
	Key   string
	Value []byte
}

// InMemoryEventBus implementa un bus de eventos para UN solo topic.
// Se usa cuando Kafka no está habilitado.
type InMemoryEventBus struct {
	topic       string
	subscribers []chan Message
	mu          sync.RWMutex
	log         *zap.Logger
}

// Verifica en tiempo de compilación que cumple la interfaz
var _ sharedBus.EventBus = (*InMemoryEventBus)(nil)

func NewInMemoryEventBus(topic string, log *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{topic: topic, log: log}
}

// Publish serializa el evento y lo entrega a todos los suscriptores.
// Un suscriptor con el buffer lleno pierde el mensaje.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := Message{Value: data}
	if keyer, ok := event.(sharedBus.Keyer); ok {
		msg.Key = keyer.PartitionKey()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subscribers {
		select {
		case sub <- msg:
		default:
			b.log.Warn("Subscriber buffer full, message dropped", zap.String("topic", b.topic))
		}
	}
	return nil
}

// Subscribe registra un nuevo oyente.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Message, bufferSize)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Consume entrega los mensajes al handler hasta que ctx se cancela.
func (b *InMemoryEventBus) Consume(ctx context.Context, bufferSize int, handler MessageHandler) {
	ch := b.Subscribe(bufferSize)
	b.log.Info("🎧 Iniciando consumidor en memoria", zap.String("topic", b.topic))

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-ch:
				handler.HandleMessage(ctx, msg.Key, msg.Value)
			}
		}
	}()
}
