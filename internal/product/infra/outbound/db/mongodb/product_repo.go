package mongodb

import (
	"context"
	"time"

	productDomain "github.com/davicafu/storefront/internal/product/domain"
	sharedMongo "github.com/davicafu/storefront/internal/shared/infra/db/mongodb"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductRepoMongoDB implementa la interfaz ProductRepository para MongoDB.
type ProductRepoMongoDB struct {
	coll *mongo.Collection
}

func NewProductRepoMongoDB(db *mongo.Database) *ProductRepoMongoDB {
	return &ProductRepoMongoDB{coll: db.Collection("products")}
}

var _ productDomain.ProductRepository = (*ProductRepoMongoDB)(nil)

// --- Structs de BSON para el mapeo ---

type mongoImage struct {
	PublicID string `bson:"public_id"`
	URL      string `bson:"url"`
}

type mongoProduct struct {
	ID        string       `bson:"_id"`
	Name      string       `bson:"name"`
	Price     float64      `bson:"price"`
	NewPrice  float64      `bson:"new_price"`
	Ratings   float64      `bson:"ratings"`
	Images    []mongoImage `bson:"images"`
	Category  string       `bson:"category"`
	Stock     int          `bson:"stock"`
	User      string       `bson:"user"`
	CreatedAt time.Time    `bson:"createdAt"`
	Enable    string       `bson:"enable"`
}

func (r *ProductRepoMongoDB) NewQuery() sharedQuery.Descriptor {
	return sharedMongo.NewFindQuery()
}

func (r *ProductRepoMongoDB) List(ctx context.Context, q sharedQuery.Descriptor) ([]*productDomain.Product, error) {
	docs, err := sharedMongo.FindAll[mongoProduct](ctx, r.coll, q)
	if err != nil {
		return nil, err
	}
	products := make([]*productDomain.Product, 0, len(docs))
	for i := range docs {
		products = append(products, fromMongoProduct(&docs[i]))
	}
	return products, nil
}

func (r *ProductRepoMongoDB) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *ProductRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	doc, err := sharedMongo.FindByID[mongoProduct](ctx, r.coll, id.String(), productDomain.ErrProductNotFound)
	if err != nil {
		return nil, err
	}
	return fromMongoProduct(doc), nil
}

func (r *ProductRepoMongoDB) Create(ctx context.Context, p *productDomain.Product) error {
	_, err := r.coll.InsertOne(ctx, toMongoProduct(p))
	return sharedMongo.TranslateError(err)
}

func (r *ProductRepoMongoDB) Update(ctx context.Context, p *productDomain.Product) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID.String()}, toMongoProduct(p))
	if err != nil {
		return sharedMongo.TranslateError(err)
	}
	if res.MatchedCount == 0 {
		return productDomain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepoMongoDB) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return productDomain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepoMongoDB) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *ProductRepoMongoDB) InsertMany(ctx context.Context, products []*productDomain.Product) error {
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(products))
	for _, p := range products {
		docs = append(docs, toMongoProduct(p))
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return sharedMongo.TranslateError(err)
}

// --- Helpers de mapeo ---

func toMongoProduct(p *productDomain.Product) *mongoProduct {
	images := make([]mongoImage, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, mongoImage{PublicID: img.PublicID, URL: img.URL})
	}
	return &mongoProduct{
		ID: p.ID.String(), Name: p.Name, Price: p.Price, NewPrice: p.NewPrice, Ratings: p.Ratings,
		Images: images, Category: p.Category, Stock: p.Stock, User: p.User.String(),
		CreatedAt: p.CreatedAt, Enable: p.Enable,
	}
}

func fromMongoProduct(mp *mongoProduct) *productDomain.Product {
	images := make([]productDomain.Image, 0, len(mp.Images))
	for _, img := range mp.Images {
		images = append(images, productDomain.Image{PublicID: img.PublicID, URL: img.URL})
	}
	// Los ids mal formados (datos heredados) se dejan en uuid.Nil.
	id, _ := uuid.Parse(mp.ID)
	user, _ := uuid.Parse(mp.User)
	return &productDomain.Product{
		ID: id, Name: mp.Name, Price: mp.Price, NewPrice: mp.NewPrice, Ratings: mp.Ratings,
		Images: images, Category: mp.Category, Stock: mp.Stock, User: user,
		CreatedAt: mp.CreatedAt.UTC(), Enable: mp.Enable,
	}
}
