package filters

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/tgrouter/tgrouter/pkg/domain"
)

// Throttle passes at most one update per chat within d. Later updates
// from the same chat are rejected until the window expires. Updates
// without a chat are never throttled.
//
// Expiry is lazy: Get treats expired entries as missing and Set
// overwrites them, so no background eviction goroutine is needed and
// the filter holds at most one entry per chat ever seen.
func Throttle(d time.Duration) Filter {
	cache := ttlcache.New[int64, time.Time](
		ttlcache.WithTTL[int64, time.Time](d),
		ttlcache.WithDisableTouchOnHit[int64, time.Time](),
	)

	return New("throttle", func(_ context.Context, e *domain.Event) (bool, error) {
		chatID := e.ChatID()
		if chatID == 0 {
			return true, nil
		}
		if item := cache.Get(chatID); item != nil {
			return false, nil
		}
		cache.Set(chatID, time.Now(), ttlcache.DefaultTTL)
		return true, nil
	})
}
