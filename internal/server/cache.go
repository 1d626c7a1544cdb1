package server

import (
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/draw-odds/internal/metrics"
	"github.com/yourusername/draw-odds/internal/models"
)

// defaultCacheTTL applies when no cache lifetime is configured.
const defaultCacheTTL = 5 * time.Minute

// EstimateCache memoizes estimation results per target so repeated queries
// between dataset refreshes skip the engine. Keys are normalized names, the
// same normalization the target search itself uses.
type EstimateCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewEstimateCache creates a cache with the given entry lifetime
func NewEstimateCache(ttl time.Duration) *EstimateCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &EstimateCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

func cacheKey(firstName, lastName string) string {
	return strings.ToLower(strings.TrimSpace(firstName)) + "|" + strings.ToLower(strings.TrimSpace(lastName))
}

// Get retrieves a cached result for the target, or nil on a miss
func (ec *EstimateCache) Get(firstName, lastName string) *models.EstimationResult {
	if entry, found := ec.cache.Get(cacheKey(firstName, lastName)); found {
		if result, ok := entry.(*models.EstimationResult); ok {
			metrics.RecordCacheHit()
			return result
		}
	}
	metrics.RecordCacheMiss()
	return nil
}

// Set stores a result for the target
func (ec *EstimateCache) Set(firstName, lastName string, result *models.EstimationResult) {
	ec.cache.Set(cacheKey(firstName, lastName), result, ec.ttl)
}

// Clear flushes every entry. Called when the dataset refreshes, since any
// cached result may now be stale.
func (ec *EstimateCache) Clear() {
	ec.cache.Flush()
}

// ItemCount returns the number of cached results
func (ec *EstimateCache) ItemCount() int {
	return ec.cache.ItemCount()
}
