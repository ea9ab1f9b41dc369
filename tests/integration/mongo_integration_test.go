//go:build integration

package integration

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	productDomain "github.com/davicafu/storefront/internal/product/domain"
	productRepo "github.com/davicafu/storefront/internal/product/infra/outbound/db/mongodb"
	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedMongo "github.com/davicafu/storefront/internal/shared/infra/db/mongodb"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	userDomain "github.com/davicafu/storefront/internal/user/domain"
	userRepo "github.com/davicafu/storefront/internal/user/infra/outbound/db/mongodb"
)

// Requiere un replica set (las transacciones de outbox no funcionan en un mongod suelto):
//
//	MONGODB_URI="mongodb://localhost:27017/?replicaSet=rs0" go test -tags integration ./tests/integration/...
func setupMongo(t *testing.T) (*mongo.Client, string) {
	t.Helper()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}

	client, err := sharedMongo.Connect(context.Background(), uri, 5*time.Second)
	require.NoError(t, err)

	dbName := fmt.Sprintf("storefront_it_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		_ = client.Database(dbName).Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return client, dbName
}

func TestProductQueryFeatures_Mongo(t *testing.T) {
	// Arrange
	client, dbName := setupMongo(t)
	ctx := context.Background()
	repo := productRepo.NewProductRepoMongoDB(client.Database(dbName))
	owner := uuid.New()

	names := []string{"Beef steak", "Minced BEEF", "Lamb leg", "Chicken wings", "Salmon", "Beef ribs"}
	prices := []float64{250000, 180000, 320000, 90000, 400000, 60000}
	var products []*productDomain.Product
	for i, name := range names {
		p := productDomain.NewProduct(owner, name, productDomain.CategoryCow)
		p.Price = prices[i]
		p.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute).Truncate(time.Millisecond)
		products = append(products, p)
	}
	require.NoError(t, repo.InsertMany(ctx, products))

	// Act
	params := url.Values{"keyword": {"beef"}, "price[gte]": {"100000"}}
	f := sharedQuery.NewFeatures(repo.NewQuery(), params, sharedQuery.WithSchema(productDomain.Schema)).
		Search().
		Filter().
		Sort(sharedQuery.Asc("price"))
	got, err := repo.List(ctx, f.Query())

	// Assert
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Minced BEEF", got[0].Name)
	assert.Equal(t, "Beef steak", got[1].Name)

	page := sharedQuery.NewFeatures(repo.NewQuery(), url.Values{"page": {"2"}}).
		Sort(sharedQuery.Asc("createdAt")).
		Pagination(4)
	second, err := repo.List(ctx, page.Query())
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "Salmon", second[0].Name)

	past := sharedQuery.NewFeatures(repo.NewQuery(), url.Values{"page": {"10"}}).Pagination(4)
	none, err := repo.List(ctx, past.Query())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserRepo_Mongo(t *testing.T) {
	// Arrange
	client, dbName := setupMongo(t)
	ctx := context.Background()
	repo := userRepo.NewUserRepoMongoDB(client, dbName)
	require.NoError(t, repo.EnsureIndexes(ctx))

	user := userDomain.NewUser("Ana", "ana@example.com", "0915", "$2a$10$hash")
	evt := sharedDomain.NewOutboxEvent(userDomain.AggregateType, user.ID.String(), userDomain.UserRegistered, map[string]string{"email": user.Email})

	// Act & Assert
	require.NoError(t, repo.Create(ctx, user, evt))

	outbox, err := sharedMongo.NewOutboxRepoMongoDB(client.Database(dbName)).FetchPendingOutbox(ctx, 10)
	require.NoError(t, err)
	require.Len(t, outbox, 1)
	assert.Equal(t, userDomain.UserRegistered, outbox[0].EventType)

	dup := userDomain.NewUser("Other", "ana@example.com", "0916", "x")
	err = repo.Create(ctx, dup, sharedDomain.NewOutboxEvent(userDomain.AggregateType, dup.ID.String(), userDomain.UserRegistered, nil))
	var appErr *sharedDomain.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Duplicate email entered", appErr.Message)

	now := time.Now().UTC()
	user.SetResetToken("hashed-token", now)
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.GetByResetToken(ctx, "hashed-token", now)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetByResetToken(ctx, "hashed-token", now.Add(userDomain.ResetTokenTTL+time.Second))
	assert.ErrorIs(t, err, userDomain.ErrUserNotFound)

	count, err := client.Database(dbName).Collection("users").CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
