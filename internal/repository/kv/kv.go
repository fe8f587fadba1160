package kv

import "context"

// Store — простое key-value хранилище по образу браузерного localStorage:
// один ключ — один сериализованный blob.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
