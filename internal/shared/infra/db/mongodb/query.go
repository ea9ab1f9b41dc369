package mongodb

import (
	"context"
	"errors"
	"reflect"

	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUnsupportedQuery se devuelve al ejecutar un descriptor que no creó este adaptador.
var ErrUnsupportedQuery = errors.New("query descriptor was not built by the mongodb adapter")

// FindQuery implementa sharedQuery.Descriptor sobre un Find de MongoDB.
// Los predicados se combinan con $and; un predicado ya presente no se repite.
type FindQuery struct {
	predicates []bson.M
	opts       *options.FindOptions
}

// Verificación estática de la interfaz.
var _ sharedQuery.Descriptor = (*FindQuery)(nil)

// NewFindQuery crea una consulta "find all".
func NewFindQuery() *FindQuery {
	return &FindQuery{opts: options.Find()}
}

func (q *FindQuery) Where(predicate bson.M) sharedQuery.Descriptor {
	if len(predicate) == 0 {
		return q
	}
	for _, existing := range q.predicates {
		if reflect.DeepEqual(existing, predicate) {
			return q
		}
	}
	q.predicates = append(q.predicates, predicate)
	return q
}

func (q *FindQuery) Skip(n int64) sharedQuery.Descriptor {
	q.opts.SetSkip(n)
	return q
}

func (q *FindQuery) Limit(n int64) sharedQuery.Descriptor {
	q.opts.SetLimit(n)
	return q
}

func (q *FindQuery) Sort(keys ...sharedQuery.Sort) sharedQuery.Descriptor {
	sort := bson.D{}
	for _, k := range keys {
		dir := 1 // Ascendente por defecto
		if k.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: k.Field, Value: dir})
	}
	q.opts.SetSort(sort)
	return q
}

// Filter devuelve el documento de filtro final.
func (q *FindQuery) Filter() bson.M {
	switch len(q.predicates) {
	case 0:
		return bson.M{}
	case 1:
		return q.predicates[0]
	default:
		and := make(bson.A, 0, len(q.predicates))
		for _, p := range q.predicates {
			and = append(and, p)
		}
		return bson.M{"$and": and}
	}
}

// Options devuelve skip, limit y sort acumulados.
func (q *FindQuery) Options() *options.FindOptions {
	return q.opts
}

// FindAll ejecuta el descriptor sobre coll y decodifica cada documento en D.
func FindAll[D any](ctx context.Context, coll *mongo.Collection, d sharedQuery.Descriptor) ([]D, error) {
	q, ok := d.(*FindQuery)
	if !ok {
		return nil, ErrUnsupportedQuery
	}

	cursor, err := coll.Find(ctx, q.Filter(), q.Options())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []D
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, cursor.Err()
}

// FindByID busca un documento por _id y devuelve notFound si no existe.
func FindByID[D any](ctx context.Context, coll *mongo.Collection, id string, notFound error) (*D, error) {
	var doc D
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, err
	}
	return &doc, nil
}
