package ports

import (
	"context"
	"errors"
)

// ErrStateNotFound is returned by a StateStore when the key holds no value.
var ErrStateNotFound = errors.New("state not found")

// StateStore persists small pieces of client state, such as the session token,
// under fixed keys.
type StateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
