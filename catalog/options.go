package catalog

import (
	"io"
	"log/slog"
	"time"
)

// CachingOption configures a CachingCatalog created by Wrap.
type CachingOption func(*cachingOptions)

type cachingOptions struct {
	capacity int           // maximum cached tables, 0 = unbounded
	ttl      time.Duration // expire-after-access window, 0 = never
	logger   *slog.Logger
}

func defaultCachingOptions() *cachingOptions {
	return &cachingOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithCapacity bounds the cache to n tables. When the bound is
// exceeded the least recently used entry is evicted. Zero or negative
// leaves the cache unbounded (the default).
func WithCapacity(n int) CachingOption {
	return func(o *cachingOptions) {
		o.capacity = n
	}
}

// WithExpireAfterAccess expires cached tables that have not been
// accessed within d. Expiry is checked lazily during cache access; no
// background goroutine runs. Zero or negative disables expiry (the
// default).
func WithExpireAfterAccess(d time.Duration) CachingOption {
	return func(o *cachingOptions) {
		o.ttl = d
	}
}

// WithLogger sets the logger for cache lifecycle events, which are
// emitted at debug level. The default logger discards everything.
func WithLogger(logger *slog.Logger) CachingOption {
	return func(o *cachingOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
