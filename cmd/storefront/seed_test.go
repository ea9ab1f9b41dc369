package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productDomain "github.com/davicafu/storefront/internal/product/domain"
)

func TestReadSeedFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"_id": "5d725a1b7b292f5f8ceff788", "name": "Beef steak", "price": 250000, "category": "Cow", "stock": 10,
		 "images": [{"public_id": "p1", "url": "upload/beef.png"}]},
		{"name": "Whole chicken", "price": 90000, "category": "Chicken", "enable": "disabled"}
	]`), 0o600))
	owner := uuid.New()

	// Act
	products, err := readSeedFile(path, owner)

	// Assert
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Beef steak", products[0].Name)
	assert.Equal(t, owner, products[0].User)
	assert.NotEqual(t, uuid.Nil, products[0].ID)
	assert.Len(t, products[0].Images, 1)
	assert.Equal(t, productDomain.EnableDefault, products[0].Enable)
	assert.Equal(t, "disabled", products[1].Enable)
	assert.Empty(t, products[1].Images)
}

func TestReadSeedFile_Errors(t *testing.T) {
	_, err := readSeedFile(filepath.Join(t.TempDir(), "missing.json"), uuid.New())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0o600))
	_, err = readSeedFile(path, uuid.New())
	assert.Error(t, err)
}
