package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewProduct_Defaults(t *testing.T) {
	owner := uuid.New()
	p := NewProduct(owner, "Beef", CategoryCow)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, owner, p.User)
	assert.Equal(t, EnableDefault, p.Enable)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NotNil(t, p.Images)
}

func TestProduct_ApplyOnlyPresentFields(t *testing.T) {
	p := &Product{Name: "Beef", Price: 10, Stock: 3, Category: CategoryCow}
	price := 12.5
	category := CategorySheep

	p.Apply(Patch{Price: &price, Category: &category})

	assert.Equal(t, "Beef", p.Name)
	assert.Equal(t, 12.5, p.Price)
	assert.Equal(t, 3, p.Stock)
	assert.Equal(t, CategorySheep, p.Category)
}

func TestCacheKeyByID(t *testing.T) {
	id := uuid.MustParse("5b0c1d8e-0000-4000-8000-000000000001")
	assert.Equal(t, "product:id:5b0c1d8e-0000-4000-8000-000000000001", CacheKeyByID(id))
}
