package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"innovia-cms/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Slots {
	t.Helper()

	files, err := NewFileSlots(t.TempDir())
	require.NoError(t, err)

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Slots{
		"memory": NewMemory(),
		"file":   files,
		"sqlite": db,
	}
}

func TestSlotRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "articles")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "articles", `[{"id":"a"}]`))
			got, err := s.Get(ctx, "articles")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"a"}]`, got)

			require.NoError(t, s.Set(ctx, "articles", `[]`))
			got, err = s.Get(ctx, "articles")
			require.NoError(t, err)
			assert.Equal(t, `[]`, got)

			require.NoError(t, s.Remove(ctx, "articles"))
			_, err = s.Get(ctx, "articles")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Remove(ctx, "articles"), "removing a missing key is not an error")
		})
	}
}

func TestSlotsHonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, s.Set(ctx, "k", "v"))
		})
	}
}

func TestFileSlotsRejectsPathKeys(t *testing.T) {
	s, err := NewFileSlots(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../escape", "a/b", "", ".."} {
		assert.Error(t, s.Set(context.Background(), key, "v"), key)
	}
}

func TestFileSlotsLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSlots(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "articles", "[]"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "articles.json", entries[0].Name())
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "slots.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Set(context.Background(), "articles", "[1]"))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Get(context.Background(), "articles")
	require.NoError(t, err)
	assert.Equal(t, "[1]", got)
}

func TestNetworkBackendsReportUnavailable(t *testing.T) {
	ctx := context.Background()

	r := NewRedis("127.0.0.1:1", "", 0)
	defer r.Close()
	_, err := r.Get(ctx, "articles")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	m := NewMemcached("127.0.0.1:1")
	_, err = m.Get(ctx, "articles")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	for _, driver := range []string{config.DriverMemory, config.DriverFile, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			s, err := Open(&config.Config{StorageDriver: driver, StoragePath: dir})
			require.NoError(t, err)
			assert.NoError(t, s.Close())
		})
	}

	_, err := Open(&config.Config{StorageDriver: "etcd"})
	assert.Error(t, err)
}
