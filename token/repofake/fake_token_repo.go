package tokenfakerepo

import (
	"context"
	"sort"
	"sync"

	"github.com/jrsteele09/go-rider-auth/token"
)

var _ token.Repo = (*FakeTokenRepo)(nil)

// FakeTokenRepo keeps records in memory. A record is replaced with a single
// map assignment under the write lock.
type FakeTokenRepo struct {
	records map[string]token.StoredRecord
	lock    sync.RWMutex
}

func NewFakeTokensRepo() *FakeTokenRepo {
	return &FakeTokenRepo{
		records: make(map[string]token.StoredRecord),
	}
}

func (tr *FakeTokenRepo) Upsert(_ context.Context, key string, record token.StoredRecord) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	scopes := make([]string, len(record.Scopes))
	copy(scopes, record.Scopes)
	record.Scopes = scopes
	tr.records[key] = record
	return nil
}

func (tr *FakeTokenRepo) Delete(_ context.Context, key string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.records[key]; !ok {
		return token.ErrNotFound
	}
	delete(tr.records, key)
	return nil
}

func (tr *FakeTokenRepo) Get(_ context.Context, key string) (*token.StoredRecord, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	rec, ok := tr.records[key]
	if !ok {
		return nil, token.ErrNotFound
	}
	return &rec, nil
}

// Keys lists the stored keys in order.
func (tr *FakeTokenRepo) Keys() []string {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	keys := make([]string, 0, len(tr.records))
	for k := range tr.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
