package jobs

import (
	"log"

	"starter.GO/core/cache"
	"starter.GO/cron"
)

func init() {
	cron.Register("cacheprune", "@every 10m", CachePruneJob)
}

// CachePruneJob evicts expired in-process cache entries.
func CachePruneJob(args ...string) {
	n := cache.GetInstance().Prune()
	log.Printf("cacheprune: evicted %d expired entries", n)
}
