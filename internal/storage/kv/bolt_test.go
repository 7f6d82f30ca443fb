package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBolt(t *testing.T) *Bolt {
	t.Helper()
	store, err := NewBolt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestBolt_GetMissingKey(t *testing.T) {
	store := newTestBolt(t)

	value, err := store.Get(context.Background(), KeySubscriptions)
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestBolt_PutThenGet(t *testing.T) {
	store := newTestBolt(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, KeyMpesaCodes, []byte(`[{"code":"ABC1234567"}]`)))

	value, err := store.Get(ctx, KeyMpesaCodes)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"code":"ABC1234567"}]`, string(value))
}

func TestBolt_PutReplacesWholeValue(t *testing.T) {
	store := newTestBolt(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, KeySubscriptions, []byte(`["a","b"]`)))
	require.NoError(t, store.Put(ctx, KeySubscriptions, []byte(`["c"]`)))

	value, err := store.Get(ctx, KeySubscriptions)
	require.NoError(t, err)
	assert.JSONEq(t, `["c"]`, string(value))
}

func TestBolt_Update(t *testing.T) {
	store := newTestBolt(t)
	ctx := context.Background()

	err := store.Update(ctx, KeyMpesaCodes, func(old []byte) ([]byte, error) {
		assert.Nil(t, old)
		return []byte(`["first"]`), nil
	})
	require.NoError(t, err)

	err = store.Update(ctx, KeyMpesaCodes, func(old []byte) ([]byte, error) {
		assert.JSONEq(t, `["first"]`, string(old))
		return []byte(`["first","second"]`), nil
	})
	require.NoError(t, err)

	value, err := store.Get(ctx, KeyMpesaCodes)
	require.NoError(t, err)
	assert.JSONEq(t, `["first","second"]`, string(value))
}

func TestBolt_UpdateError_LeavesValueUntouched(t *testing.T) {
	store := newTestBolt(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, KeySubscriptions, []byte(`["keep"]`)))

	wantErr := errors.New("modify failed")
	err := store.Update(ctx, KeySubscriptions, func(_ []byte) ([]byte, error) {
		return nil, wantErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)

	value, err := store.Get(ctx, KeySubscriptions)
	require.NoError(t, err)
	assert.JSONEq(t, `["keep"]`, string(value))
}

func TestBolt_KeysAreIndependent(t *testing.T) {
	store := newTestBolt(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, KeySubscriptions, []byte(`["sub"]`)))
	require.NoError(t, store.Put(ctx, KeyMpesaCodes, []byte(`["code"]`)))

	subs, err := store.Get(ctx, KeySubscriptions)
	require.NoError(t, err)
	codes, err := store.Get(ctx, KeyMpesaCodes)
	require.NoError(t, err)

	assert.JSONEq(t, `["sub"]`, string(subs))
	assert.JSONEq(t, `["code"]`, string(codes))
}

func TestBolt_CanceledContext(t *testing.T) {
	store := newTestBolt(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, KeySubscriptions)
	assert.ErrorIs(t, err, context.Canceled)

	err = store.Put(ctx, KeySubscriptions, []byte(`[]`))
	assert.ErrorIs(t, err, context.Canceled)
}
