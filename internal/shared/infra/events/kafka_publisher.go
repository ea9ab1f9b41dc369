package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	sharedBus "github.com/davicafu/storefront/internal/shared/infra/platform/bus"
)

// KafkaPublisher escribe cada evento como un mensaje JSON en el topic del writer.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewKafkaPublisher(writer *kafka.Writer, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, log: log}
}

// NewKafkaWriter crea un writer balanceado por clave para topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var key []byte
	if keyer, ok := event.(sharedBus.Keyer); ok {
		key = []byte(keyer.PartitionKey())
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: data}); err != nil {
		p.log.Error("Error publishing to Kafka", zap.String("topic", p.writer.Topic), zap.Error(err))
		return err
	}

	p.log.Debug("Event published", zap.String("topic", p.writer.Topic), zap.ByteString("key", key))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Verificación estática
var _ sharedBus.EventBus = (*KafkaPublisher)(nil)
