package mocks

import (
	"context"
	"encoding/json"
	"sync"

	sharedCache "github.com/davicafu/storefront/internal/shared/infra/platform/cache"
)

// DummyCache es un mock de caché en memoria, genérico y seguro para concurrencia.
// Puede almacenar cualquier tipo de objeto serializable a JSON.
type DummyCache struct {
	store map[string][]byte
	mu    sync.RWMutex
	// Fail hace que todas las operaciones devuelvan este error.
	Fail error
}

// Verificación estática para asegurar que implementa la interfaz compartida.
var _ sharedCache.Cache = (*DummyCache)(nil)

func NewDummyCache() *DummyCache {
	return &DummyCache{
		store: make(map[string][]byte),
	}
}

func (c *DummyCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Fail != nil {
		return false, c.Fail
	}

	data, ok := c.store[key]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *DummyCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail != nil {
		return c.Fail
	}

	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	c.store[key] = data
	return nil
}

func (c *DummyCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// Has indica si key está en la caché.
func (c *DummyCache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.store[key]
	return ok
}
