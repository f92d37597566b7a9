// pkg/memcache/balance_cache.go
package mem

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// BalanceStore shadows the account token balance for display reads. The
// backend row stays the source of truth: entries here are either
// authoritative (just read back from the DB) or optimistic (bumped locally
// after a mutation). Spend decisions must never consult this store.
type BalanceStore interface {
	SetAuthoritative(accountID uuid.UUID, balance int64)
	// Bump adjusts the shadow by delta and downgrades it to optimistic.
	Bump(accountID uuid.UUID, delta int64)
	// Get returns the shadow balance and whether it is authoritative.
	Get(accountID uuid.UUID) (balance int64, authoritative bool, ok bool)
	Invalidate(accountID uuid.UUID)
}

type balanceEntry struct {
	balance       int64
	authoritative bool
	updatedAt     time.Time
}

type BalanceCache struct {
	mu   sync.RWMutex
	data map[uuid.UUID]balanceEntry
	ttl  time.Duration
}

func NewBalanceCache(ttl time.Duration) *BalanceCache {
	return &BalanceCache{
		data: make(map[uuid.UUID]balanceEntry),
		ttl:  ttl,
	}
}

func (s *BalanceCache) SetAuthoritative(accountID uuid.UUID, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[accountID] = balanceEntry{
		balance:       balance,
		authoritative: true,
		updatedAt:     time.Now(),
	}
}

func (s *BalanceCache) Bump(accountID uuid.UUID, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[accountID]
	if !ok {
		return
	}
	e.balance += delta
	e.authoritative = false
	e.updatedAt = time.Now()
	s.data[accountID] = e
}

func (s *BalanceCache) Get(accountID uuid.UUID) (int64, bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[accountID]
	if !ok {
		return 0, false, false
	}
	if s.ttl > 0 && time.Since(e.updatedAt) > s.ttl {
		return 0, false, false
	}
	return e.balance, e.authoritative, true
}

func (s *BalanceCache) Invalidate(accountID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, accountID)
}
