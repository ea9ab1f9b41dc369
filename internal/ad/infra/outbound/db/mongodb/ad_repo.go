package mongodb

import (
	"context"
	"time"

	adDomain "github.com/davicafu/storefront/internal/ad/domain"
	sharedMongo "github.com/davicafu/storefront/internal/shared/infra/db/mongodb"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdRepoMongoDB implementa la interfaz AdRepository para MongoDB.
type AdRepoMongoDB struct {
	coll *mongo.Collection
}

func NewAdRepoMongoDB(db *mongo.Database) *AdRepoMongoDB {
	return &AdRepoMongoDB{coll: db.Collection("ads")}
}

var _ adDomain.AdRepository = (*AdRepoMongoDB)(nil)

type mongoAd struct {
	ID          string    `bson:"_id"`
	User        string    `bson:"user"`
	Image       string    `bson:"image"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"createdAt"`
	Enable      string    `bson:"enable"`
}

func (r *AdRepoMongoDB) NewQuery() sharedQuery.Descriptor {
	return sharedMongo.NewFindQuery()
}

func (r *AdRepoMongoDB) List(ctx context.Context, q sharedQuery.Descriptor) ([]*adDomain.Ad, error) {
	docs, err := sharedMongo.FindAll[mongoAd](ctx, r.coll, q)
	if err != nil {
		return nil, err
	}
	ads := make([]*adDomain.Ad, 0, len(docs))
	for i := range docs {
		ads = append(ads, fromMongoAd(&docs[i]))
	}
	return ads, nil
}

func (r *AdRepoMongoDB) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *AdRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*adDomain.Ad, error) {
	doc, err := sharedMongo.FindByID[mongoAd](ctx, r.coll, id.String(), adDomain.ErrAdNotFound)
	if err != nil {
		return nil, err
	}
	return fromMongoAd(doc), nil
}

func (r *AdRepoMongoDB) Create(ctx context.Context, a *adDomain.Ad) error {
	_, err := r.coll.InsertOne(ctx, toMongoAd(a))
	return sharedMongo.TranslateError(err)
}

func (r *AdRepoMongoDB) Update(ctx context.Context, a *adDomain.Ad) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": a.ID.String()}, toMongoAd(a))
	if err != nil {
		return sharedMongo.TranslateError(err)
	}
	if res.MatchedCount == 0 {
		return adDomain.ErrAdNotFound
	}
	return nil
}

func (r *AdRepoMongoDB) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return adDomain.ErrAdNotFound
	}
	return nil
}

func toMongoAd(a *adDomain.Ad) *mongoAd {
	return &mongoAd{
		ID: a.ID.String(), User: a.User.String(), Image: a.Image,
		Description: a.Description, CreatedAt: a.CreatedAt, Enable: a.Enable,
	}
}

func fromMongoAd(ma *mongoAd) *adDomain.Ad {
	id, _ := uuid.Parse(ma.ID)
	user, _ := uuid.Parse(ma.User)
	return &adDomain.Ad{
		ID: id, User: user, Image: ma.Image,
		Description: ma.Description, CreatedAt: ma.CreatedAt.UTC(), Enable: ma.Enable,
	}
}
