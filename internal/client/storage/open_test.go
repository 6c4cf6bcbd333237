package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	b, err := Open(context.Background(), Options{Path: path})
	require.NoError(t, err)
	defer b.Close()

	assert.IsType(t, &SQLiteRepository{}, b.Repository)
	assert.IsType(t, &FileWatcher{}, b.Watcher)
	require.NoError(t, b.Repository.Set(context.Background(), "k", []byte("v")))
}

func TestOpen_SQLiteRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: BackendSQLite})
	require.Error(t, err)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := Open(context.Background(), Options{Backend: BackendRedis, RedisAddr: mr.Addr(), RedisPrefix: "p"})
	require.NoError(t, err)
	defer b.Close()

	assert.IsType(t, &RedisRepository{}, b.Repository)
	assert.IsType(t, &RedisWatcher{}, b.Watcher)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Open(context.Background(), Options{Backend: BackendRedis, RedisAddr: addr})
	require.Error(t, err)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "etcd"})
	require.ErrorContains(t, err, "unknown storage backend")
}

func TestBackend_CloseWithoutCloser(t *testing.T) {
	require.NoError(t, (&Backend{}).Close())
}
