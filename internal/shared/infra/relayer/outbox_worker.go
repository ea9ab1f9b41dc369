package relayer

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedDomainEvents "github.com/davicafu/storefront/internal/shared/domain/events"
	sharedBus "github.com/davicafu/storefront/internal/shared/infra/platform/bus"
	"go.uber.org/zap"
)

// Worker procesa eventos pendientes de la colección outbox de forma genérica.
// Cada evento se valida contra su tipo registrado, se envuelve en un
// IntegrationEvent y se publica en el bus de su topic.
type Worker struct {
	repo          sharedDomain.OutboxRepository
	publishers    sharedBus.Topics
	eventRegistry map[string]sharedDomainEvents.EventMetadata
	interval      time.Duration
	batchSize     int
	log           *zap.Logger
}

func NewOutboxWorker(
	repo sharedDomain.OutboxRepository,
	publishers sharedBus.Topics,
	registry map[string]sharedDomainEvents.EventMetadata,
	interval time.Duration,
	batchSize int,
	log *zap.Logger,
) *Worker {
	return &Worker{
		repo:          repo,
		publishers:    publishers,
		eventRegistry: registry,
		interval:      interval,
		batchSize:     batchSize,
		log:           log,
	}
}

// Start inicia el bucle de polling del worker.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("🚀 Outbox worker iniciado", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("🛑 Outbox worker detenido.")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch publica hasta batchSize eventos pendientes, en orden de creación.
func (w *Worker) ProcessBatch(ctx context.Context) {
	events, err := w.repo.FetchPendingOutbox(ctx, w.batchSize)
	if err != nil {
		w.log.Warn("⚠️ Error al obtener eventos pendientes", zap.Error(err))
		return
	}
	if len(events) > 0 {
		w.log.Debug(fmt.Sprintf("📬 %d eventos encontrados para procesar", len(events)))
	}

	for _, evt := range events {
		w.publishAndMark(ctx, evt)
	}
}

func (w *Worker) publishAndMark(ctx context.Context, evt sharedDomain.OutboxEvent) {
	metadata, ok := w.eventRegistry[evt.EventType]
	if !ok {
		// Se queda pendiente hasta que algún despliegue lo registre.
		w.log.Error("Tipo de evento desconocido en registro", zap.String("event_type", evt.EventType))
		return
	}

	publisher := w.publishers.For(metadata.Topic)
	if publisher == nil {
		w.log.Error("No hay publisher para el topic", zap.String("topic", metadata.Topic))
		return
	}

	integrationEvent, err := w.toIntegrationEvent(evt, metadata)
	if err != nil {
		w.log.Error("Error al decodificar payload del evento", zap.String("event_id", evt.ID.String()), zap.Error(err))
		return
	}

	if err := publisher.Publish(ctx, integrationEvent); err != nil {
		w.log.Warn("⚠️ No se pudo publicar evento",
			zap.String("event_id", evt.ID.String()),
			zap.Error(err),
		)
		return // No lo marcamos como procesado para que se reintente
	}

	if err := w.repo.MarkOutboxProcessed(ctx, evt.ID); err != nil {
		w.log.Warn("⚠️ No se pudo marcar evento como procesado",
			zap.String("event_id", evt.ID.String()),
			zap.Error(err),
		)
		return
	}
	w.log.Info("✅ Evento publicado y marcado",
		zap.String("event_id", evt.ID.String()),
		zap.String("event_type", evt.EventType),
	)
}

// toIntegrationEvent decodifica el payload al tipo registrado y lo vuelve a
// serializar, descartando campos que el contrato no conoce.
func (w *Worker) toIntegrationEvent(evt sharedDomain.OutboxEvent, metadata sharedDomainEvents.EventMetadata) (sharedDomainEvents.IntegrationEvent, error) {
	typed := reflect.New(metadata.Type).Interface()

	raw, err := json.Marshal(evt.Payload)
	if err != nil {
		return sharedDomainEvents.IntegrationEvent{}, err
	}
	if err := json.Unmarshal(raw, typed); err != nil {
		return sharedDomainEvents.IntegrationEvent{}, err
	}
	data, err := json.Marshal(typed)
	if err != nil {
		return sharedDomainEvents.IntegrationEvent{}, err
	}

	return sharedDomainEvents.IntegrationEvent{
		Type:      evt.EventType,
		Timestamp: evt.CreatedAt,
		Data:      data,
		Key:       evt.AggregateID,
	}, nil
}
