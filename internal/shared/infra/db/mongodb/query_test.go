package mongodb

import (
	"context"
	"net/url"
	"testing"

	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFindQuery_FilterShapes(t *testing.T) {
	q := NewFindQuery()
	assert.Equal(t, bson.M{}, q.Filter())

	q.Where(bson.M{"category": "Cow"})
	assert.Equal(t, bson.M{"category": "Cow"}, q.Filter())

	q.Where(bson.M{"price": bson.M{"$gt": 10.0}})
	assert.Equal(t, bson.M{"$and": bson.A{
		bson.M{"category": "Cow"},
		bson.M{"price": bson.M{"$gt": 10.0}},
	}}, q.Filter())
}

func TestFindQuery_IgnoresEmptyAndRepeatedPredicates(t *testing.T) {
	q := NewFindQuery()
	q.Where(bson.M{})
	q.Where(bson.M{"category": "Cow"})
	q.Where(bson.M{"category": "Cow"})

	assert.Equal(t, bson.M{"category": "Cow"}, q.Filter())
}

func TestFindQuery_Options(t *testing.T) {
	q := NewFindQuery()
	q.Sort(sharedQuery.Desc("createdAt"), sharedQuery.Asc("price")).Skip(8).Limit(4)

	opts := q.Options()
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(8), *opts.Skip)
	assert.Equal(t, int64(4), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "price", Value: 1}}, opts.Sort)
}

func TestFindQuery_WithFeatures(t *testing.T) {
	params, _ := url.ParseQuery("keyword=beef&price[gte]=10&page=3")

	f := sharedQuery.NewFeatures(NewFindQuery(), params).Search().Filter().Pagination(4)
	q := f.Query().(*FindQuery)

	assert.Equal(t, bson.M{"$and": bson.A{
		bson.M{"name": bson.M{"$regex": "beef", "$options": "i"}},
		bson.M{"price": bson.M{"$gte": 10.0}},
	}}, q.Filter())
	assert.Equal(t, int64(8), *q.Options().Skip)
}

type foreignQuery struct{ sharedQuery.Descriptor }

func TestFindAll_RejectsForeignDescriptor(t *testing.T) {
	_, err := FindAll[bson.M](context.Background(), nil, foreignQuery{})
	assert.ErrorIs(t, err, ErrUnsupportedQuery)
}
