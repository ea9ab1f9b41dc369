package mongodb

import (
	"context"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedMongo "github.com/davicafu/storefront/internal/shared/infra/db/mongodb"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	userDomain "github.com/davicafu/storefront/internal/user/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepoMongoDB implementa la interfaz UserRepository para MongoDB.
type UserRepoMongoDB struct {
	client *mongo.Client
	db     *mongo.Database
	coll   *mongo.Collection
}

func NewUserRepoMongoDB(client *mongo.Client, dbName string) *UserRepoMongoDB {
	db := client.Database(dbName)
	return &UserRepoMongoDB{client: client, db: db, coll: db.Collection("users")}
}

var _ userDomain.UserRepository = (*UserRepoMongoDB)(nil)

type mongoUser struct {
	ID                  string     `bson:"_id"`
	Name                string     `bson:"name"`
	Email               string     `bson:"email"`
	Tel                 string     `bson:"tel"`
	Address             string     `bson:"address"`
	City                string     `bson:"city"`
	PostalCode          string     `bson:"postalCode"`
	Password            string     `bson:"password"`
	Image               string     `bson:"image"`
	Role                string     `bson:"role"`
	CreatedAt           time.Time  `bson:"createdAt"`
	ResetPasswordToken  string     `bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpire *time.Time `bson:"resetPasswordExpire,omitempty"`
}

// EnsureIndexes crea los índices únicos de email y teléfono.
func (r *UserRepoMongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "tel", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"tel": bson.M{"$gt": ""}}),
		},
		{
			Keys:    bson.D{{Key: "resetPasswordToken", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
	return err
}

func (r *UserRepoMongoDB) NewQuery() sharedQuery.Descriptor {
	return sharedMongo.NewFindQuery()
}

func (r *UserRepoMongoDB) List(ctx context.Context, q sharedQuery.Descriptor) ([]*userDomain.User, error) {
	docs, err := sharedMongo.FindAll[mongoUser](ctx, r.coll, q)
	if err != nil {
		return nil, err
	}
	users := make([]*userDomain.User, 0, len(docs))
	for i := range docs {
		users = append(users, fromMongoUser(&docs[i]))
	}
	return users, nil
}

func (r *UserRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	doc, err := sharedMongo.FindByID[mongoUser](ctx, r.coll, id.String(), userDomain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return fromMongoUser(doc), nil
}

func (r *UserRepoMongoDB) findOne(ctx context.Context, filter bson.M) (*userDomain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, userDomain.ErrUserNotFound
		}
		return nil, err
	}
	return fromMongoUser(&mu), nil
}

func (r *UserRepoMongoDB) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepoMongoDB) GetByResetToken(ctx context.Context, hashed string, now time.Time) (*userDomain.User, error) {
	return r.findOne(ctx, bson.M{
		"resetPasswordToken":  hashed,
		"resetPasswordExpire": bson.M{"$gt": now},
	})
}

// --- CRUD ---

func (r *UserRepoMongoDB) Create(ctx context.Context, u *userDomain.User, evt sharedDomain.OutboxEvent) error {
	return sharedMongo.WithTransaction(ctx, r.client, func(sessCtx mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sessCtx, toMongoUser(u)); err != nil {
			return sharedMongo.TranslateError(err)
		}
		return sharedMongo.InsertOutboxEvent(sessCtx, r.db, evt)
	})
}

func (r *UserRepoMongoDB) replace(ctx context.Context, u *userDomain.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": u.ID.String()}, toMongoUser(u))
	if err != nil {
		return sharedMongo.TranslateError(err)
	}
	if res.MatchedCount == 0 {
		return userDomain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepoMongoDB) Update(ctx context.Context, u *userDomain.User) error {
	return r.replace(ctx, u)
}

func (r *UserRepoMongoDB) UpdateWithEvent(ctx context.Context, u *userDomain.User, evt sharedDomain.OutboxEvent) error {
	return sharedMongo.WithTransaction(ctx, r.client, func(sessCtx mongo.SessionContext) error {
		if err := r.replace(sessCtx, u); err != nil {
			return err
		}
		return sharedMongo.InsertOutboxEvent(sessCtx, r.db, evt)
	})
}

func (r *UserRepoMongoDB) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return userDomain.ErrUserNotFound
	}
	return nil
}

// --- Mapeo ---

func toMongoUser(u *userDomain.User) *mongoUser {
	return &mongoUser{
		ID:                  u.ID.String(),
		Name:                u.Name,
		Email:               u.Email,
		Tel:                 u.Tel,
		Address:             u.Address,
		City:                u.City,
		PostalCode:          u.PostalCode,
		Password:            u.Password,
		Image:               u.Image,
		Role:                u.Role,
		CreatedAt:           u.CreatedAt,
		ResetPasswordToken:  u.ResetPasswordToken,
		ResetPasswordExpire: u.ResetPasswordExpire,
	}
}

func fromMongoUser(mu *mongoUser) *userDomain.User {
	id, _ := uuid.Parse(mu.ID)
	var expire *time.Time
	if mu.ResetPasswordExpire != nil {
		t := mu.ResetPasswordExpire.UTC()
		expire = &t
	}
	return &userDomain.User{
		ID:                  id,
		Name:                mu.Name,
		Email:               mu.Email,
		Tel:                 mu.Tel,
		Address:             mu.Address,
		City:                mu.City,
		PostalCode:          mu.PostalCode,
		Password:            mu.Password,
		Image:               mu.Image,
		Role:                mu.Role,
		CreatedAt:           mu.CreatedAt.UTC(),
		ResetPasswordToken:  mu.ResetPasswordToken,
		ResetPasswordExpire: expire,
	}
}
