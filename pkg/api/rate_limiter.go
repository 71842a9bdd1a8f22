package api

import (
	"github.com/pkg/errors"
	"github.com/throttled/throttled/v2"
	"github.com/throttled/throttled/v2/store/memstore"
)

// createRateLimiter builds a GCRA rate limiter keyed by remote address,
// backed by an in-memory LRU store.
func createRateLimiter(opts *RateLimiterOptions) (throttled.HTTPRateLimiter, error) {
	store, err := memstore.New(opts.MemoryCacheSize)
	if err != nil {
		return throttled.HTTPRateLimiter{},
			errors.Wrapf(err, "failed to create rate limiter store with capacity %d", opts.MemoryCacheSize)
	}

	quota := throttled.RateQuota{
		MaxRate:  throttled.PerSec(opts.MaxRequestsPerSecond),
		MaxBurst: opts.MaxBurst,
	}
	rateLimiter, err := throttled.NewGCRARateLimiter(store, quota)
	if err != nil {
		return throttled.HTTPRateLimiter{}, errors.Wrap(err, "failed to create rate limiter")
	}

	return throttled.HTTPRateLimiter{
		RateLimiter: rateLimiter,
		VaryBy: &throttled.VaryBy{
			RemoteAddr: true,
		},
	}, nil
}
