// Package storage is the key-value string store that stands in for browser
// local storage. Values are opaque strings; the JSON helpers layer typed
// collections on top.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/diagnosis/luxstay/pkg/logger"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// Persisted keys.
const (
	KeyUsers               = "users"
	KeyCurrentUser         = "currentUser"
	KeyAuthToken           = "authToken"
	KeyBookings            = "bookings"
	KeyRecentlyViewed      = "recentlyViewed"
	KeyFavorites           = "favorites"
	KeyLastLoginIdentifier = "lastLoginIdentifier"
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// GetJSON decodes the value at key into v. It reports false when the key is
// absent or holds malformed JSON; malformed values are logged and treated as
// absent so callers fall back to defaults.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logger.WarnContext(ctx, "Discarding malformed stored value", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// LoadList reads a JSON array; absent or malformed data yields an empty slice.
func LoadList[T any](ctx context.Context, s Store, key string) ([]T, error) {
	var items []T
	ok, err := GetJSON(ctx, s, key, &items)
	if err != nil {
		return nil, err
	}
	if !ok || items == nil {
		return []T{}, nil
	}
	return items, nil
}

// Prefixed namespaces every key of the wrapped store.
func Prefixed(s Store, namespace string) Store {
	if namespace == "" {
		return s
	}
	return &prefixedStore{inner: s, prefix: namespace + ":"}
}

type prefixedStore struct {
	inner  Store
	prefix string
}

func (p *prefixedStore) Get(ctx context.Context, key string) (string, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixedStore) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixedStore) Remove(ctx context.Context, key string) error {
	return p.inner.Remove(ctx, p.prefix+key)
}

func (p *prefixedStore) Close() error {
	return p.inner.Close()
}
