package repository

import "context"

// KVRepo is a durable string key-value surface.
type KVRepo interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
