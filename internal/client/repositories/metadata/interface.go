// Package metadata stores the key/value rows backing the client session:
// the access token and the serialized user profile.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Repository is a small key/value store. Get returns common.ErrorNotFound
// for absent keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
