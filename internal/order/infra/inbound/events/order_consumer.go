package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	orderDomain "github.com/davicafu/storefront/internal/order/domain"
	sharedEvents "github.com/davicafu/storefront/internal/shared/domain/events"
	sharedUtils "github.com/davicafu/storefront/internal/shared/infra/utils"
)

// OrderConsumer vuelca los eventos de pedidos en el histórico analítico.
type OrderConsumer struct {
	analytics orderDomain.OrderAnalyticsRepository
	log       *zap.Logger
}

func NewOrderConsumer(analytics orderDomain.OrderAnalyticsRepository, logger *zap.Logger) *OrderConsumer {
	return &OrderConsumer{analytics: analytics, log: logger}
}

// HandleMessage es el punto de entrada para un nuevo mensaje/evento.
func (c *OrderConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event for order", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case orderDomain.OrderCreated, orderDomain.OrderUpdated:
		sharedUtils.UnmarshalAndHandle[sharedEvents.OrderChanged](c.log, base.Data, func(evt sharedEvents.OrderChanged) {
			c.record(ctx, orderDomain.OrderLogEntry{
				ID:          evt.ID,
				UserID:      evt.UserID,
				EventType:   base.Type,
				OrderStatus: evt.OrderStatus,
				TotalPrice:  evt.TotalPrice,
				Items:       evt.Items,
				CreatedAt:   evt.CreatedAt,
				EventTime:   base.Timestamp,
			})
		})

	case orderDomain.OrderDeleted:
		sharedUtils.UnmarshalAndHandle[sharedEvents.OrderDeleted](c.log, base.Data, func(evt sharedEvents.OrderDeleted) {
			c.record(ctx, orderDomain.OrderLogEntry{
				ID:        evt.ID,
				EventType: base.Type,
				EventTime: base.Timestamp,
			})
		})

	default:
		c.log.Warn("Unknown order event type", zap.String("type", base.Type), zap.String("key", key))
	}
}

func (c *OrderConsumer) record(ctx context.Context, entry orderDomain.OrderLogEntry) {
	ctxLog, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	if err := c.analytics.LogBatch(ctxLog, []orderDomain.OrderLogEntry{entry}); err != nil {
		c.log.Warn("Failed to log order event",
			zap.String("order_id", entry.ID.String()),
			zap.String("type", entry.EventType),
			zap.Error(err),
		)
		return
	}
	c.log.Debug("Order event logged", zap.String("order_id", entry.ID.String()), zap.String("type", entry.EventType))
}
