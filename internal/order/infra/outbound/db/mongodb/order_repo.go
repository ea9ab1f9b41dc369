package mongodb

import (
	"context"
	"time"

	orderDomain "github.com/davicafu/storefront/internal/order/domain"
	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedMongo "github.com/davicafu/storefront/internal/shared/infra/db/mongodb"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepoMongoDB implementa OrderRepository. Cada escritura inserta su evento
// en la colección outbox dentro de la misma transacción.
type OrderRepoMongoDB struct {
	client *mongo.Client
	db     *mongo.Database
	coll   *mongo.Collection
}

func NewOrderRepoMongoDB(client *mongo.Client, dbName string) *OrderRepoMongoDB {
	db := client.Database(dbName)
	return &OrderRepoMongoDB{client: client, db: db, coll: db.Collection("orders")}
}

var _ orderDomain.OrderRepository = (*OrderRepoMongoDB)(nil)

// --- Structs de BSON ---

type mongoOrderItem struct {
	Name     string  `bson:"name"`
	Quantity int     `bson:"quantity"`
	Image    string  `bson:"image"`
	Price    float64 `bson:"price"`
	Product  string  `bson:"product"`
}

type mongoShippingInfo struct {
	Address    string `bson:"address"`
	City       string `bson:"city"`
	PhoneNo    string `bson:"phoneNo"`
	PostalCode string `bson:"postalCode"`
}

type mongoPaymentInfo struct {
	ID     string `bson:"id"`
	Status string `bson:"status"`
}

type mongoOrder struct {
	ID            string            `bson:"_id"`
	OrderItems    []mongoOrderItem  `bson:"orderItems"`
	ShippingInfo  mongoShippingInfo `bson:"shippingInfo"`
	ItemsPrice    float64           `bson:"itemsPrice"`
	TaxPrice      float64           `bson:"taxPrice"`
	ShippingPrice float64           `bson:"shippingPrice"`
	TotalPrice    float64           `bson:"totalPrice"`
	PaymentInfo   mongoPaymentInfo  `bson:"paymentInfo"`
	OrderStatus   string            `bson:"orderStatus"`
	OrderNotes    string            `bson:"orderNotes"`
	PaidAt        time.Time         `bson:"paidAt"`
	DeliveredAt   *time.Time        `bson:"deliveredAt,omitempty"`
	User          string            `bson:"user"`
	CreatedAt     time.Time         `bson:"createdAt"`
}

func (r *OrderRepoMongoDB) NewQuery() sharedQuery.Descriptor {
	return sharedMongo.NewFindQuery()
}

func (r *OrderRepoMongoDB) List(ctx context.Context, q sharedQuery.Descriptor) ([]*orderDomain.Order, error) {
	docs, err := sharedMongo.FindAll[mongoOrder](ctx, r.coll, q)
	if err != nil {
		return nil, err
	}
	return fromMongoOrders(docs), nil
}

func (r *OrderRepoMongoDB) ListByUser(ctx context.Context, user uuid.UUID) ([]*orderDomain.Order, error) {
	q := r.NewQuery().Where(bson.M{"user": user.String()}).Sort(sharedQuery.Desc("createdAt"))
	return r.List(ctx, q)
}

func (r *OrderRepoMongoDB) TotalAmount(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}

func (r *OrderRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*orderDomain.Order, error) {
	doc, err := sharedMongo.FindByID[mongoOrder](ctx, r.coll, id.String(), orderDomain.ErrOrderNotFound)
	if err != nil {
		return nil, err
	}
	return fromMongoOrder(doc), nil
}

// --- CRUD Transaccional ---

func (r *OrderRepoMongoDB) Create(ctx context.Context, o *orderDomain.Order, evt sharedDomain.OutboxEvent) error {
	return sharedMongo.WithTransaction(ctx, r.client, func(sessCtx mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sessCtx, toMongoOrder(o)); err != nil {
			return sharedMongo.TranslateError(err)
		}
		return sharedMongo.InsertOutboxEvent(sessCtx, r.db, evt)
	})
}

func (r *OrderRepoMongoDB) Update(ctx context.Context, o *orderDomain.Order, evt sharedDomain.OutboxEvent) error {
	return sharedMongo.WithTransaction(ctx, r.client, func(sessCtx mongo.SessionContext) error {
		res, err := r.coll.ReplaceOne(sessCtx, bson.M{"_id": o.ID.String()}, toMongoOrder(o), options.Replace())
		if err != nil {
			return sharedMongo.TranslateError(err)
		}
		if res.MatchedCount == 0 {
			return orderDomain.ErrOrderNotFound
		}
		return sharedMongo.InsertOutboxEvent(sessCtx, r.db, evt)
	})
}

func (r *OrderRepoMongoDB) Delete(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	return sharedMongo.WithTransaction(ctx, r.client, func(sessCtx mongo.SessionContext) error {
		res, err := r.coll.DeleteOne(sessCtx, bson.M{"_id": id.String()})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return orderDomain.ErrOrderNotFound
		}
		return sharedMongo.InsertOutboxEvent(sessCtx, r.db, evt)
	})
}

// --- Mapeo ---

func toMongoOrder(o *orderDomain.Order) *mongoOrder {
	items := make([]mongoOrderItem, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, mongoOrderItem{
			Name: it.Name, Quantity: it.Quantity, Image: it.Image, Price: it.Price, Product: it.Product.String(),
		})
	}
	return &mongoOrder{
		ID:         o.ID.String(),
		OrderItems: items,
		ShippingInfo: mongoShippingInfo{
			Address:    o.ShippingInfo.Address,
			City:       o.ShippingInfo.City,
			PhoneNo:    o.ShippingInfo.PhoneNo,
			PostalCode: o.ShippingInfo.PostalCode,
		},
		ItemsPrice:    o.ItemsPrice,
		TaxPrice:      o.TaxPrice,
		ShippingPrice: o.ShippingPrice,
		TotalPrice:    o.TotalPrice,
		PaymentInfo:   mongoPaymentInfo{ID: o.PaymentInfo.ID, Status: o.PaymentInfo.Status},
		OrderStatus:   o.OrderStatus,
		OrderNotes:    o.OrderNotes,
		PaidAt:        o.PaidAt,
		DeliveredAt:   o.DeliveredAt,
		User:          o.User.String(),
		CreatedAt:     o.CreatedAt,
	}
}

func fromMongoOrder(mo *mongoOrder) *orderDomain.Order {
	id, _ := uuid.Parse(mo.ID)
	user, _ := uuid.Parse(mo.User)

	items := make([]orderDomain.OrderItem, 0, len(mo.OrderItems))
	for _, it := range mo.OrderItems {
		product, _ := uuid.Parse(it.Product)
		items = append(items, orderDomain.OrderItem{
			Name: it.Name, Quantity: it.Quantity, Image: it.Image, Price: it.Price, Product: product,
		})
	}

	var delivered *time.Time
	if mo.DeliveredAt != nil {
		t := mo.DeliveredAt.UTC()
		delivered = &t
	}

	return &orderDomain.Order{
		ID:         id,
		OrderItems: items,
		ShippingInfo: orderDomain.ShippingInfo{
			Address:    mo.ShippingInfo.Address,
			City:       mo.ShippingInfo.City,
			PhoneNo:    mo.ShippingInfo.PhoneNo,
			PostalCode: mo.ShippingInfo.PostalCode,
		},
		ItemsPrice:    mo.ItemsPrice,
		TaxPrice:      mo.TaxPrice,
		ShippingPrice: mo.ShippingPrice,
		TotalPrice:    mo.TotalPrice,
		PaymentInfo:   orderDomain.PaymentInfo{ID: mo.PaymentInfo.ID, Status: mo.PaymentInfo.Status},
		OrderStatus:   mo.OrderStatus,
		OrderNotes:    mo.OrderNotes,
		PaidAt:        mo.PaidAt.UTC(),
		DeliveredAt:   delivered,
		User:          user,
		CreatedAt:     mo.CreatedAt.UTC(),
	}
}

func fromMongoOrders(docs []mongoOrder) []*orderDomain.Order {
	orders := make([]*orderDomain.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, fromMongoOrder(&docs[i]))
	}
	return orders
}
