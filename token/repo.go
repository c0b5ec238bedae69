package token

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("token record not found")

// Repo persists one StoredRecord per key. Upsert must replace the whole
// record in a single write.
type Repo interface {
	Upsert(ctx context.Context, key string, record StoredRecord) error
	Get(ctx context.Context, key string) (*StoredRecord, error)
	Delete(ctx context.Context, key string) error
}
