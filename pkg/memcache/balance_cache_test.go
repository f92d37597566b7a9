package mem

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceCache_AuthoritativeRoundTrip(t *testing.T) {
	cache := NewBalanceCache(time.Minute)
	id := uuid.New()

	cache.SetAuthoritative(id, 12)

	balance, authoritative, ok := cache.Get(id)
	require.True(t, ok)
	assert.True(t, authoritative)
	assert.Equal(t, int64(12), balance)
}

func TestBalanceCache_BumpDowngradesToOptimistic(t *testing.T) {
	cache := NewBalanceCache(time.Minute)
	id := uuid.New()

	cache.SetAuthoritative(id, 10)
	cache.Bump(id, -2)

	balance, authoritative, ok := cache.Get(id)
	require.True(t, ok)
	assert.False(t, authoritative)
	assert.Equal(t, int64(8), balance)
}

func TestBalanceCache_BumpWithoutEntryIsNoop(t *testing.T) {
	cache := NewBalanceCache(time.Minute)
	id := uuid.New()

	cache.Bump(id, 5)

	_, _, ok := cache.Get(id)
	assert.False(t, ok)
}

func TestBalanceCache_Expiry(t *testing.T) {
	cache := NewBalanceCache(10 * time.Millisecond)
	id := uuid.New()

	cache.SetAuthoritative(id, 3)
	time.Sleep(25 * time.Millisecond)

	_, _, ok := cache.Get(id)
	assert.False(t, ok)
}

func TestBalanceCache_Invalidate(t *testing.T) {
	cache := NewBalanceCache(time.Minute)
	id := uuid.New()

	cache.SetAuthoritative(id, 3)
	cache.Invalidate(id)

	_, _, ok := cache.Get(id)
	assert.False(t, ok)
}
