package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcachedStore keeps entries without expiry. Memcached may still evict them
// under memory pressure, so it suits throwaway demo profiles only.
type MemcachedStore struct {
	client *memcache.Client
}

func NewMemcachedStore(hosts ...string) (*MemcachedStore, error) {
	if len(hosts) == 0 {
		return nil, fmt.Errorf("memcached: no hosts configured")
	}
	client := memcache.New(hosts...)
	if err := client.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to memcached: %w", err)
	}
	return &MemcachedStore{client: client}, nil
}

func (m *MemcachedStore) Get(_ context.Context, key string) (string, error) {
	item, err := m.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(item.Value), nil
}

func (m *MemcachedStore) Set(_ context.Context, key, value string) error {
	return m.client.Set(&memcache.Item{Key: key, Value: []byte(value)})
}

func (m *MemcachedStore) Remove(_ context.Context, key string) error {
	err := m.client.Delete(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}

// Close is a no-op; the client keeps a small idle pool that dies with the process.
func (m *MemcachedStore) Close() error { return nil }
