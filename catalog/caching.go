package catalog

import (
	"context"
	"log/slog"

	"github.com/jzhuge/incubator-iceberg/catalog/internal/memo"
)

// CachingCatalog wraps a Catalog and memoizes the tables resolved
// through it, keyed by identifier. See the package documentation for
// the caching semantics; construct instances with Wrap.
type CachingCatalog struct {
	inner  Catalog
	tables *memo.Cache[*Table]
	logger *slog.Logger
}

var _ Catalog = (*CachingCatalog)(nil)

// Wrap decorates a Catalog with table caching. The returned catalog is
// substitutable anywhere the wrapped one is; by default the cache is
// unbounded and entries never expire.
func Wrap(inner Catalog, opts ...CachingOption) *CachingCatalog {
	options := defaultCachingOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.capacity < 0 {
		options.capacity = 0
	}
	if options.ttl < 0 {
		options.ttl = 0
	}

	return &CachingCatalog{
		inner:  inner,
		tables: memo.New[*Table](options.capacity, options.ttl),
		logger: options.logger,
	}
}

// LoadTable returns the cached table for ident, resolving it through
// the wrapped catalog on a miss. Concurrent loads of the same uncached
// identifier collapse into a single call against the wrapped catalog,
// and every caller of a hit receives the identical *Table instance.
// A failed resolution is never cached.
func (c *CachingCatalog) LoadTable(ctx context.Context, ident TableIdentifier) (*Table, error) {
	table, _, err := c.tables.GetOrLoad(ident.Key(), func() (*Table, error) {
		return c.inner.LoadTable(ctx, ident)
	})
	if err != nil {
		return nil, propagateOrWrap(err, ident, "load")
	}
	return table, nil
}

// CreateTable creates the table through the wrapped catalog and caches
// the result. When the identifier is already cached, or a concurrent
// call wins the race to create it, CreateTable fails with an
// already-exists error instead of returning a table this call did not
// create.
func (c *CachingCatalog) CreateTable(ctx context.Context, ident TableIdentifier, opts CreateTableOptions) (*Table, error) {
	table, created, err := c.tables.GetOrLoad(ident.Key(), func() (*Table, error) {
		return c.inner.CreateTable(ctx, ident, opts)
	})
	if err != nil {
		return nil, propagateOrWrap(err, ident, "create")
	}
	if !created {
		return nil, NewTableAlreadyExistsError(ident)
	}
	return table, nil
}

// NewCreateTableTransaction passes straight through to the wrapped
// catalog without touching the cache. The table does not exist until
// the transaction commits: if it is created through another path
// first, any cached version is correct and the commit will fail; if
// the transaction commits first, there is no cache entry to
// invalidate.
func (c *CachingCatalog) NewCreateTableTransaction(ctx context.Context, ident TableIdentifier, opts CreateTableOptions) (Transaction, error) {
	return c.inner.NewCreateTableTransaction(ctx, ident, opts)
}

// NewReplaceTableTransaction returns the wrapped catalog's replace
// transaction, decorated so that a successful commit invalidates the
// cached entry for ident. The table does not change until the
// transaction commits, so the cache is left untouched before that
// point, and a failed commit leaves it untouched as well.
func (c *CachingCatalog) NewReplaceTableTransaction(ctx context.Context, ident TableIdentifier, opts ReplaceTableOptions) (Transaction, error) {
	txn, err := c.inner.NewReplaceTableTransaction(ctx, ident, opts)
	if err != nil {
		return nil, err
	}
	return WithCommitCallback(txn, func() {
		c.invalidate(ident)
	}), nil
}

// DropTable drops the table through the wrapped catalog and
// invalidates the cached entry unconditionally, even when the wrapped
// catalog reports that no table was dropped. The purge flag is
// accepted for interface compatibility but never forwarded: the
// wrapped catalog always receives a non-purging drop.
func (c *CachingCatalog) DropTable(ctx context.Context, ident TableIdentifier, purge bool) (bool, error) {
	dropped, err := c.inner.DropTable(ctx, ident, false)
	if err != nil {
		return false, err
	}
	c.invalidate(ident)
	return dropped, nil
}

// RenameTable renames the table through the wrapped catalog and
// invalidates the source identifier. The target is deliberately not
// pre-populated; the next load of it resolves fresh through the
// wrapped catalog.
func (c *CachingCatalog) RenameTable(ctx context.Context, from, to TableIdentifier) error {
	if err := c.inner.RenameTable(ctx, from, to); err != nil {
		return err
	}
	c.invalidate(from)
	return nil
}

// ListTables passes through to the wrapped catalog. Namespace-level
// listings are never cached.
func (c *CachingCatalog) ListTables(ctx context.Context, namespace []string) ([]TableIdentifier, error) {
	return c.inner.ListTables(ctx, namespace)
}

// TableExists passes through to the wrapped catalog without consulting
// the cache, so the answer reflects catalog truth rather than cache
// contents.
func (c *CachingCatalog) TableExists(ctx context.Context, ident TableIdentifier) (bool, error) {
	return c.inner.TableExists(ctx, ident)
}

// InvalidateTable removes any cached entry for ident. It is a manual
// eviction hook for callers that learn about mutations made outside
// this process; catalog operations invalidate on their own.
func (c *CachingCatalog) InvalidateTable(ident TableIdentifier) {
	c.invalidate(ident)
}

func (c *CachingCatalog) invalidate(ident TableIdentifier) {
	c.tables.Invalidate(ident.Key())
	c.logger.Debug("invalidated cached table", "table", ident.String())
}

// CacheStats is a point-in-time snapshot of CachingCatalog counters.
type CacheStats struct {
	Hits      int64 // loads served from the cache
	Misses    int64 // loads that had to consult the wrapped catalog
	Loads     int64 // load or create computations executed
	Failures  int64 // computations that returned an error
	Evictions int64 // entries removed by the capacity bound
	Entries   int   // tables currently cached
}

// Stats returns a snapshot of the cache counters.
func (c *CachingCatalog) Stats() CacheStats {
	stats := c.tables.Stats()
	return CacheStats{
		Hits:      stats.Hits,
		Misses:    stats.Misses,
		Loads:     stats.Loads,
		Failures:  stats.Failures,
		Evictions: stats.Evictions,
		Entries:   stats.Entries,
	}
}
