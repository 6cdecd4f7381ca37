package repositoryImp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrimanage/database"
	"agrimanage/pkg/apperr"
	"agrimanage/pkg/slot/repository"
)

func exerciseSlot(t *testing.T, s repository.SlotRepository) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrSlotEmpty))

	require.NoError(t, s.Put(ctx, repository.KeyCrops, []byte(`[{"id":1}]`)))
	got, err := s.Get(ctx, repository.KeyCrops)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	require.NoError(t, s.Put(ctx, repository.KeyCrops, []byte(`[]`)))
	got, err = s.Get(ctx, repository.KeyCrops)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Put(ctx, repository.KeyDarkMode, []byte(`true`)))
	got, err = s.Get(ctx, repository.KeyDarkMode)
	require.NoError(t, err)
	assert.Equal(t, `true`, string(got))

	assert.NoError(t, s.Ping(ctx))
}

func TestMemorySlot(t *testing.T) {
	m := NewMemory()
	exerciseSlot(t, m)
	assert.Equal(t, "memory", m.Driver())
}

func TestMemorySlotFailPut(t *testing.T) {
	m := NewMemory()
	boom := errors.New("disk full")
	m.SetFailPut(boom)
	assert.ErrorIs(t, m.Put(context.Background(), "k", []byte("v")), boom)

	m.SetFailPut(nil)
	assert.NoError(t, m.Put(context.Background(), "k", []byte("v")))
}

func TestMemorySlotCopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Put(context.Background(), "k", buf))
	buf[0] = 'x'
	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteSlot(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "slot.db"))
	require.NoError(t, err)
	s := NewSQLite(db)
	exerciseSlot(t, s)
	assert.Equal(t, "sqlite", s.Driver())
}

func TestSQLiteSlotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot.db")
	db, err := database.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, NewSQLite(db).Put(context.Background(), "crops", []byte(`[1]`)))
	sqlDB, _ := db.DB()
	require.NoError(t, sqlDB.Close())

	db2, err := database.OpenSQLite(path)
	require.NoError(t, err)
	got, err := NewSQLite(db2).Get(context.Background(), "crops")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
}

// Runs against a live server only when REDIS_ADDR is set.
func TestRedisSlot(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	prefix := "agrimanage-test:" + t.Name() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		rdb.Del(ctx, prefix+"crops", prefix+"darkMode")
	})
	exerciseSlot(t, NewRedis(rdb, prefix))
}
