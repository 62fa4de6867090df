package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/diagnosis/luxstay/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// exerciseStore runs the contract every backend must satisfy.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "authToken", "tok-1"))
	got, err := s.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	require.NoError(t, s.Set(ctx, "authToken", "tok-2"))
	got, err = s.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, s.Remove(ctx, "authToken"))
	_, err = s.Get(ctx, "authToken")
	assert.ErrorIs(t, err, ErrNotFound)

	// removing an absent key is not an error
	require.NoError(t, s.Remove(ctx, "authToken"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, SetJSON(ctx, s, KeyBookings, []record{{ID: 1, Name: "Taj"}}))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	items, err := LoadList[record](ctx, reopened, KeyBookings)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: 1, Name: "Taj"}}, items)
}

func TestFileStore_CorruptedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = s.Get(context.Background(), KeyUsers)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	exerciseStore(t, s)
}

func TestLoadList_MalformedJSONIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, KeyUsers, `[{"id": 1,`))

	items, err := LoadList[record](ctx, s, KeyUsers)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLoadList_AbsentAndNullAreEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	items, err := LoadList[record](ctx, s, KeyFavorites)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, s.Set(ctx, KeyFavorites, "null"))
	items, err = LoadList[record](ctx, s, KeyFavorites)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetJSON_RoundTripsStruct(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, SetJSON(ctx, s, KeyCurrentUser, record{ID: 7, Name: "alice"}))

	var got record
	ok, err := GetJSON(ctx, s, KeyCurrentUser, &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, record{ID: 7, Name: "alice"}, got)
}

func TestPrefixed_IsolatesNamespaces(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryStore()
	a := Prefixed(shared, "tab-a")
	b := Prefixed(shared, "tab-b")

	require.NoError(t, a.Set(ctx, KeyAuthToken, "a-token"))
	_, err := b.Get(ctx, KeyAuthToken)
	assert.ErrorIs(t, err, ErrNotFound)

	raw, err := shared.Get(ctx, "tab-a:"+KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "a-token", raw)

	assert.Same(t, shared, Prefixed(shared, ""))
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := config.Load()
	cfg.Storage.Driver = "indexeddb"

	_, err := Open(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestOpen_Memory(t *testing.T) {
	cfg := config.Load()
	cfg.Storage.Driver = "memory"
	cfg.Storage.Namespace = "profile"

	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	exerciseStore(t, s)
}
