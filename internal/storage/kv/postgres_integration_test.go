package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestPostgres поднимает контейнер PostgreSQL и создаёт таблицу коллекций.
func setupTestPostgres(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := NewPostgres(connStr)
	require.NoError(t, err)

	_, err = store.DB.Exec(`
		CREATE TABLE IF NOT EXISTS kv_collections (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL
		)`)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
		_ = container.Terminate(ctx)
	})
	return store
}

func TestPostgres_GetPutUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	store := setupTestPostgres(t)
	ctx := context.Background()

	value, err := store.Get(ctx, KeySubscriptions)
	require.NoError(t, err)
	assert.Nil(t, value, "missing key should read as empty collection")

	require.NoError(t, store.Put(ctx, KeySubscriptions, []byte(`["a"]`)))
	require.NoError(t, store.Put(ctx, KeySubscriptions, []byte(`["b"]`)))

	value, err = store.Get(ctx, KeySubscriptions)
	require.NoError(t, err)
	assert.JSONEq(t, `["b"]`, string(value), "put must replace the whole value")

	err = store.Update(ctx, KeyMpesaCodes, func(old []byte) ([]byte, error) {
		assert.Nil(t, old)
		return []byte(`[{"code":"ABC1234567"}]`), nil
	})
	require.NoError(t, err)

	value, err = store.Get(ctx, KeyMpesaCodes)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"code":"ABC1234567"}]`, string(value))
}
