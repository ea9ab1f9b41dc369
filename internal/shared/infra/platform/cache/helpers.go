package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const asyncTimeout = 200 * time.Millisecond

// AsyncCacheSet actualiza la caché en background sin bloquear la petición.
// Usa context.Background(): la escritura debe completarse aunque la petición
// original ya se haya cancelado.
func AsyncCacheSet(cache Cache, key string, value interface{}, ttl int, log *zap.Logger) {
	if cache == nil {
		return
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		if err := cache.Set(cacheCtx, key, value, ttl); err != nil {
			log.Warn("Cache update failed", zap.String("key", key), zap.Error(err))
		}
	}()
}

// AsyncCacheDelete elimina de caché en background.
func AsyncCacheDelete(cache Cache, key string, log *zap.Logger) {
	if cache == nil {
		return
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		if err := cache.Delete(cacheCtx, key); err != nil {
			log.Warn("Cache deletion failed", zap.String("key", key), zap.Error(err))
		}
	}()
}

// CacheSet escribe en caché antes de devolver. No hereda la cancelación de ctx,
// solo sus valores; el fallo se registra y no se propaga.
func CacheSet(ctx context.Context, cache Cache, key string, value interface{}, ttl int, log *zap.Logger) {
	if cache == nil {
		return
	}

	cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncTimeout)
	defer cancel()

	if err := cache.Set(cacheCtx, key, value, ttl); err != nil {
		log.Warn("Cache update failed", zap.String("key", key), zap.Error(err))
	}
}

// CacheDelete invalida la clave antes de devolver, de modo que la siguiente
// lectura ya no la ve.
func CacheDelete(ctx context.Context, cache Cache, key string, log *zap.Logger) {
	if cache == nil {
		return
	}

	cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncTimeout)
	defer cancel()

	if err := cache.Delete(cacheCtx, key); err != nil {
		log.Warn("Cache deletion failed", zap.String("key", key), zap.Error(err))
	}
}
