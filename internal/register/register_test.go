package register

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictonicTechnologies/thegurutips/internal/storage/kv"
)

func newTestRegister(t *testing.T) *Register {
	t.Helper()
	store, err := kv.NewBolt(filepath.Join(t.TempDir(), "register.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, log)
}

func TestRegister_Active_Empty(t *testing.T) {
	r := newTestRegister(t)

	active, err := r.Active(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestRegister_Grant_ExpiresAtNextMidnight(t *testing.T) {
	r := newTestRegister(t)
	ctx := context.Background()

	granted := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	r.now = func() time.Time { return granted }

	id, err := r.Grant(ctx, "Elite Insight")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	active, err := r.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, id, active[0].ID)
	assert.Equal(t, "Elite Insight", active[0].PlanName)
	assert.True(t, active[0].ExpiresAt.Equal(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)))
}

func TestRegister_IsActive_AroundMidnight(t *testing.T) {
	r := newTestRegister(t)
	ctx := context.Background()

	// выдача в 23:59
	now := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	_, err := r.Grant(ctx, "Elite")
	require.NoError(t, err)

	// 23:59:30 того же дня — подписка действует
	now = time.Date(2025, 6, 10, 23, 59, 30, 0, time.UTC)
	active, err := r.IsActive(ctx, "Elite")
	require.NoError(t, err)
	assert.True(t, active)

	// 00:00:30 следующего дня — уже нет
	now = time.Date(2025, 6, 11, 0, 0, 30, 0, time.UTC)
	active, err = r.IsActive(ctx, "Elite")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestRegister_IsActive_CaseSensitivePlanName(t *testing.T) {
	r := newTestRegister(t)
	ctx := context.Background()

	_, err := r.Grant(ctx, "Elite")
	require.NoError(t, err)

	active, err := r.IsActive(ctx, "elite")
	require.NoError(t, err)
	assert.False(t, active)

	active, err = r.IsActive(ctx, "Elite")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestRegister_OverlappingGrantsAllowed(t *testing.T) {
	r := newTestRegister(t)
	ctx := context.Background()

	first, err := r.Grant(ctx, "Pro")
	require.NoError(t, err)
	second, err := r.Grant(ctx, "Pro")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	active, err := r.Active(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestRegister_PurgeOnRead_Persisted(t *testing.T) {
	r := newTestRegister(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	_, err := r.Grant(ctx, "Pro")
	require.NoError(t, err)

	// после полуночи чтение вычищает запись
	now = time.Date(2025, 6, 11, 0, 0, 30, 0, time.UTC)
	active, err := r.Active(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	// вычищенная коллекция сохранена: сырое значение больше не содержит записи
	raw, err := r.store.Get(ctx, kv.KeySubscriptions)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestRegister_GrantSweepsExpiredFirst(t *testing.T) {
	r := newTestRegister(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	_, err := r.Grant(ctx, "Pro")
	require.NoError(t, err)

	// на следующий день выдаём новую: старая должна исчезнуть тем же проходом
	now = time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	_, err = r.Grant(ctx, "Elite")
	require.NoError(t, err)

	active, err := r.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Elite", active[0].PlanName)
}
