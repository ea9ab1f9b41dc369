package events

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler lo cumple cualquier consumidor de eventos (OrderConsumer, UserConsumer).
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}

// ConsumerAdapter lee un topic de Kafka y entrega cada mensaje al handler.
type ConsumerAdapter struct {
	reader  *kafka.Reader
	handler MessageHandler
	log     *zap.Logger
}

func NewConsumerAdapter(reader *kafka.Reader, handler MessageHandler, log *zap.Logger) *ConsumerAdapter {
	return &ConsumerAdapter{
		reader:  reader,
		handler: handler,
		log:     log,
	}
}

// NewKafkaReader crea un reader de grupo para topic.
func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
}

// Start lanza el bucle de consumo en una goroutine; termina al cancelar ctx.
func (c *ConsumerAdapter) Start(ctx context.Context) {
	topic := c.reader.Config().Topic
	c.log.Info("🎧 Iniciando consumidor de Kafka",
		zap.String("topic", topic),
		zap.Strings("brokers", c.reader.Config().Brokers),
	)

	go func() {
		defer c.reader.Close()
		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					c.log.Info("Consumidor de Kafka detenido", zap.String("topic", topic))
					return
				}
				c.log.Error("Error al leer mensaje de Kafka", zap.String("topic", topic), zap.Error(err))
				continue
			}
			c.handler.HandleMessage(ctx, string(msg.Key), msg.Value)
		}
	}()
}
