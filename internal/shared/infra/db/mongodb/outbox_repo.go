package mongodb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OutboxCollection es la colección compartida por todos los agregados.
const OutboxCollection = "outbox"

// OutboxRepoMongoDB implementa la interfaz sharedDomain.OutboxRepository.
type OutboxRepoMongoDB struct {
	outboxColl *mongo.Collection
}

func NewOutboxRepoMongoDB(db *mongo.Database) *OutboxRepoMongoDB {
	return &OutboxRepoMongoDB{outboxColl: db.Collection(OutboxCollection)}
}

// mongoOutboxEvent mapea los documentos de la colección outbox.
// El payload se guarda como JSON para que el worker lo lea con las mismas
// etiquetas con las que se publica.
type mongoOutboxEvent struct {
	ID            string    `bson:"_id"`
	AggregateType string    `bson:"aggregateType"`
	AggregateID   string    `bson:"aggregateId"`
	EventType     string    `bson:"eventType"`
	Payload       string    `bson:"payload"`
	CreatedAt     time.Time `bson:"createdAt"`
	Processed     bool      `bson:"processed"`
}

// InsertOutboxEvent guarda evt dentro de la sesión (o contexto) recibida.
func InsertOutboxEvent(ctx context.Context, db *mongo.Database, evt sharedDomain.OutboxEvent) error {
	mo, err := toMongoOutboxEvent(evt)
	if err != nil {
		return err
	}
	_, err = db.Collection(OutboxCollection).InsertOne(ctx, mo)
	return err
}

// FetchPendingOutbox obtiene los eventos no procesados, los más antiguos primero.
func (r *OutboxRepoMongoDB) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	filter := bson.M{"processed": false}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(int64(limit))

	cursor, err := r.outboxColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []sharedDomain.OutboxEvent
	for cursor.Next(ctx) {
		var mo mongoOutboxEvent
		if err := cursor.Decode(&mo); err != nil {
			return nil, err
		}
		evt, err := fromMongoOutboxEvent(&mo)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	return events, cursor.Err()
}

// MarkOutboxProcessed marca un evento como procesado.
func (r *OutboxRepoMongoDB) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	filter := bson.M{"_id": id.String()}
	update := bson.M{"$set": bson.M{"processed": true}}

	res, err := r.outboxColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("outbox event not found: %s", id)
	}
	return nil
}

func toMongoOutboxEvent(evt sharedDomain.OutboxEvent) (*mongoOutboxEvent, error) {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("could not encode outbox payload: %w", err)
	}
	return &mongoOutboxEvent{
		ID:            evt.ID.String(),
		AggregateType: evt.AggregateType,
		AggregateID:   evt.AggregateID,
		EventType:     evt.EventType,
		Payload:       string(payload),
		CreatedAt:     evt.CreatedAt,
		Processed:     false,
	}, nil
}

func fromMongoOutboxEvent(mo *mongoOutboxEvent) (sharedDomain.OutboxEvent, error) {
	id, err := uuid.Parse(mo.ID)
	if err != nil {
		return sharedDomain.OutboxEvent{}, fmt.Errorf("invalid outbox id %q: %w", mo.ID, err)
	}
	return sharedDomain.OutboxEvent{
		ID:            id,
		AggregateType: mo.AggregateType,
		AggregateID:   mo.AggregateID,
		EventType:     mo.EventType,
		Payload:       json.RawMessage(mo.Payload),
		CreatedAt:     mo.CreatedAt,
		Processed:     mo.Processed,
	}, nil
}

// Verificación en tiempo de compilación.
var _ sharedDomain.OutboxRepository = (*OutboxRepoMongoDB)(nil)
