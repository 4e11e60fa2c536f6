package prefs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symphogen/mimer-admin/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaults(t *testing.T) {
	p := New(NewMemoryKV(), testLogger())
	s := p.Snapshot()

	assert.Equal(t, domain.EnvTestData, s.Environment)
	assert.False(t, s.RemoveInvalidDataAutomatically)
	assert.Equal(t, 100, s.Users.Count)
	assert.Equal(t, 10, s.Teams.Count)
	assert.Equal(t, 35, s.WorkflowConfigurations.Count)
	assert.Zero(t, s.Users.GetDelay)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("reads stored values under their storage keys", func(t *testing.T) {
		kv := NewMemoryKV()
		require.NoError(t, kv.Set(ctx, KeyEnvironment, "qa"))
		require.NoError(t, kv.Set(ctx, KeyUsersCount, "250"))
		require.NoError(t, kv.Set(ctx, KeyTeamsGetDelay, "1500"))
		require.NoError(t, kv.Set(ctx, KeyTeamsDuplicateSuperUsers, "true"))

		p := New(kv, testLogger())
		require.NoError(t, p.Load(ctx))

		s := p.Snapshot()
		assert.Equal(t, domain.EnvQA, s.Environment)
		assert.Equal(t, 250, s.Users.Count)
		assert.Equal(t, 1500*time.Millisecond, s.Teams.GetDelay)
		assert.True(t, s.Teams.DuplicateSuperUsers)
	})

	t.Run("malformed stored value keeps the default", func(t *testing.T) {
		kv := NewMemoryKV()
		require.NoError(t, kv.Set(ctx, KeyUsersCount, "plenty"))

		p := New(kv, testLogger())
		require.NoError(t, p.Load(ctx))
		assert.Equal(t, 100, p.Snapshot().Users.Count)
	})

	t.Run("load is idempotent", func(t *testing.T) {
		kv := NewMemoryKV()
		p := New(kv, testLogger())
		require.NoError(t, p.Load(ctx))
		require.NoError(t, kv.Set(ctx, KeyUsersCount, "7"))
		require.NoError(t, p.Load(ctx))
		assert.Equal(t, 100, p.Snapshot().Users.Count)
		assert.True(t, p.Loaded())
	})
}

func TestSet(t *testing.T) {
	ctx := context.Background()

	t.Run("writes through to the store", func(t *testing.T) {
		kv := NewMemoryKV()
		p := New(kv, testLogger())

		require.NoError(t, p.Set(ctx, "Environment", "sb1"))
		assert.Equal(t, domain.EnvSB1, p.Environment())

		raw, ok, err := kv.Get(ctx, KeyEnvironment)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "sb1", raw)
	})

	t.Run("durations persist as integer milliseconds", func(t *testing.T) {
		kv := NewMemoryKV()
		p := New(kv, testLogger())

		require.NoError(t, p.Set(ctx, "Users.SaveDelay", "2000"))
		assert.Equal(t, 2*time.Second, p.Snapshot().Users.SaveDelay)

		raw, ok, err := kv.Get(ctx, KeyUsersSaveDelay)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "2000", raw)
	})

	t.Run("unknown property name is an error", func(t *testing.T) {
		p := New(NewMemoryKV(), testLogger())
		err := p.Set(ctx, "Users.FavoriteColor", "blue")
		assert.ErrorIs(t, err, domain.ErrUnknownPreference)
	})

	t.Run("unparseable value is an error and leaves the setting alone", func(t *testing.T) {
		p := New(NewMemoryKV(), testLogger())
		err := p.Set(ctx, "Teams.Count", "several")
		require.Error(t, err)
		assert.Equal(t, 10, p.Snapshot().Teams.Count)
	})

	t.Run("invalid environment name is rejected", func(t *testing.T) {
		p := New(NewMemoryKV(), testLogger())
		err := p.Set(ctx, "Environment", "production")
		require.Error(t, err)
		assert.Equal(t, domain.EnvTestData, p.Environment())
	})
}
