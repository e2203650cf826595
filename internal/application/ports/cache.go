package ports

import (
	"context"
	"time"
)

// Cache caché clave/valor de bytes. Get devuelve (nil, false, nil) si la clave no existe.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
