package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "user:a@b.com", []byte(`{"role":"pegawai"}`), time.Minute))

	val, ok, err := s.Get(ctx, "user:a@b.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"role":"pegawai"}`, string(val))

	t.Run("kedaluwarsa", func(t *testing.T) {
		now = now.Add(time.Minute)
		_, ok, err := s.Get(ctx, "user:a@b.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("tanpa TTL", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
		now = now.Add(24 * time.Hour)
		_, ok, _ := s.Get(ctx, "k")
		assert.True(t, ok)
	})

	t.Run("hapus", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "k"))
		_, ok, _ := s.Get(ctx, "k")
		assert.False(t, ok)
	})
}
