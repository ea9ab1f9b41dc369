package mongodb

import (
	"context"
	"time"

	scheduleDomain "github.com/davicafu/storefront/internal/schedule/domain"
	sharedMongo "github.com/davicafu/storefront/internal/shared/infra/db/mongodb"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ScheduleRepoMongoDB struct {
	coll *mongo.Collection
}

func NewScheduleRepoMongoDB(db *mongo.Database) *ScheduleRepoMongoDB {
	return &ScheduleRepoMongoDB{coll: db.Collection("schedules")}
}

var _ scheduleDomain.ScheduleRepository = (*ScheduleRepoMongoDB)(nil)

type mongoSchedule struct {
	ID            string    `bson:"_id"`
	User          string    `bson:"user"`
	Description   string    `bson:"description"`
	Date          string    `bson:"date"`
	CreatedAt     time.Time `bson:"createdAt"`
	Enable        string    `bson:"enable"`
	Canceled      string    `bson:"canceled"`
	FullDayBooked string    `bson:"fullDayBooked"`
}

func (r *ScheduleRepoMongoDB) NewQuery() sharedQuery.Descriptor {
	return sharedMongo.NewFindQuery()
}

func (r *ScheduleRepoMongoDB) List(ctx context.Context, q sharedQuery.Descriptor) ([]*scheduleDomain.Schedule, error) {
	docs, err := sharedMongo.FindAll[mongoSchedule](ctx, r.coll, q)
	if err != nil {
		return nil, err
	}
	schedules := make([]*scheduleDomain.Schedule, 0, len(docs))
	for i := range docs {
		schedules = append(schedules, fromMongoSchedule(&docs[i]))
	}
	return schedules, nil
}

func (r *ScheduleRepoMongoDB) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *ScheduleRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*scheduleDomain.Schedule, error) {
	doc, err := sharedMongo.FindByID[mongoSchedule](ctx, r.coll, id.String(), scheduleDomain.ErrScheduleNotFound)
	if err != nil {
		return nil, err
	}
	return fromMongoSchedule(doc), nil
}

func (r *ScheduleRepoMongoDB) Create(ctx context.Context, s *scheduleDomain.Schedule) error {
	_, err := r.coll.InsertOne(ctx, toMongoSchedule(s))
	return sharedMongo.TranslateError(err)
}

func (r *ScheduleRepoMongoDB) Update(ctx context.Context, s *scheduleDomain.Schedule) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": s.ID.String()}, toMongoSchedule(s))
	if err != nil {
		return sharedMongo.TranslateError(err)
	}
	if res.MatchedCount == 0 {
		return scheduleDomain.ErrScheduleNotFound
	}
	return nil
}

func (r *ScheduleRepoMongoDB) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return scheduleDomain.ErrScheduleNotFound
	}
	return nil
}

func toMongoSchedule(s *scheduleDomain.Schedule) *mongoSchedule {
	return &mongoSchedule{
		ID:            s.ID.String(),
		User:          s.User.String(),
		Description:   s.Description,
		Date:          s.Date,
		CreatedAt:     s.CreatedAt,
		Enable:        s.Enable,
		Canceled:      s.Canceled,
		FullDayBooked: s.FullDayBooked,
	}
}

func fromMongoSchedule(ms *mongoSchedule) *scheduleDomain.Schedule {
	id, _ := uuid.Parse(ms.ID)
	user, _ := uuid.Parse(ms.User)
	return &scheduleDomain.Schedule{
		ID:            id,
		User:          user,
		Description:   ms.Description,
		Date:          ms.Date,
		CreatedAt:     ms.CreatedAt.UTC(),
		Enable:        ms.Enable,
		Canceled:      ms.Canceled,
		FullDayBooked: ms.FullDayBooked,
	}
}
