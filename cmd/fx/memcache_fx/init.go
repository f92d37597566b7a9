package memcache_fx

import (
	"time"

	"go.uber.org/fx"

	mem "github.com/pawcz12345-dotcom/ironpact/pkg/memcache"
)

var Module = fx.Provide(
	provideBalanceCache)

func provideBalanceCache() mem.BalanceStore {
	return mem.NewBalanceCache(5 * time.Minute)
}
