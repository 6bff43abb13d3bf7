package memo

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64 // lookups served from the cache
	Misses    int64 // lookups that required a load
	Loads     int64 // load computations executed
	Failures  int64 // load computations that returned an error
	Evictions int64 // entries removed by capacity eviction
	Entries   int   // entries currently cached
}

// Stats returns a snapshot of the cache counters. Counters are
// maintained atomically; the snapshot is not a consistent cut across
// all of them under concurrent use.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Loads:     c.loads.Load(),
		Failures:  c.failures.Load(),
		Evictions: c.evictions.Load(),
		Entries:   c.Len(),
	}
}
