// Package catalog defines a table-catalog abstraction and a caching
// decorator over it.
//
// A Catalog resolves named tables: it loads, creates, replaces, drops,
// and renames them. Resolving a table is typically expensive (metadata
// reads against a remote store), so CachingCatalog wraps any Catalog
// and memoizes resolved tables by identifier while keeping the cache
// consistent with structural mutations made through it.
//
// # Caching semantics
//
// Loads populate the cache lazily with single-flight semantics:
// concurrent loads of the same uncached identifier collapse into one
// call against the wrapped catalog. Creates populate the cache the
// same way and fail with an already-exists error when the identifier
// was already resolvable, so a create can never silently return a
// table it did not create. Drops and renames invalidate eagerly.
// Replace transactions invalidate only when their commit succeeds,
// because the replacement is not visible before that point. Create
// transactions never touch the cache at all.
//
// The cache is per-process and best effort: it synchronizes with the
// wrapped catalog at known mutation points but does not provide
// distributed coherency, and entries may be evicted at any time.
// Eviction is always safe because the wrapped catalog can re-resolve
// any identifier.
//
// Basic usage:
//
//	inner := memory.New()
//	cat := catalog.Wrap(inner)
//
//	table, err := cat.CreateTable(ctx, ident, catalog.CreateTableOptions{
//	    Schema: schemaJSON,
//	})
//	if err != nil {
//	    return err
//	}
//
//	// Served from the cache, no call against inner.
//	table, err = cat.LoadTable(ctx, ident)
//
// Bounded caches are available through options:
//
//	cat := catalog.Wrap(inner,
//	    catalog.WithCapacity(1024),
//	    catalog.WithExpireAfterAccess(15*time.Minute),
//	)
//
// Reference Catalog implementations live in the memory, file, and
// sqldb subpackages.
package catalog
