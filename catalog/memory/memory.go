// Package memory provides an in-process Catalog implementation.
//
// State lives entirely in process memory and is lost on exit, which
// makes the package suitable for tests, examples, and local
// development rather than production catalogs. All operations are safe
// for concurrent use.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmgilman/go/errors"

	"github.com/jzhuge/incubator-iceberg/catalog"
)

// Catalog is an in-memory table catalog.
type Catalog struct {
	mu     sync.RWMutex
	tables map[string]*record
}

type record struct {
	table   catalog.Table
	version int
}

var _ catalog.Catalog = (*Catalog)(nil)

// New returns an empty in-memory catalog.
func New() *Catalog {
	return &Catalog{tables: make(map[string]*record)}
}

// snapshot returns a fresh caller-owned copy of the record's table.
func (r *record) snapshot() *catalog.Table {
	table := r.table
	table.Properties = maps.Clone(r.table.Properties)
	return &table
}

// LoadTable resolves a fresh handle for ident. Two loads of the same
// table return distinct instances.
func (c *Catalog) LoadTable(ctx context.Context, ident catalog.TableIdentifier) (*catalog.Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.tables[ident.Key()]
	if !ok {
		return nil, catalog.NewTableNotFoundError(ident)
	}
	return rec.snapshot(), nil
}

// CreateTable creates a new table and returns its handle.
func (c *Catalog) CreateTable(ctx context.Context, ident catalog.TableIdentifier, opts catalog.CreateTableOptions) (*catalog.Table, error) {
	if err := ident.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[ident.Key()]; ok {
		return nil, catalog.NewTableAlreadyExistsError(ident)
	}

	rec := newRecord(ident, opts.Schema, opts.PartitionSpec, opts.Location, opts.Properties)
	c.tables[ident.Key()] = rec
	return rec.snapshot(), nil
}

// NewCreateTableTransaction stages a table creation. Nothing is
// visible through the catalog until Commit; the existence check runs
// at commit time.
func (c *Catalog) NewCreateTableTransaction(ctx context.Context, ident catalog.TableIdentifier, opts catalog.CreateTableOptions) (catalog.Transaction, error) {
	if err := ident.Validate(); err != nil {
		return nil, err
	}
	staged := newRecord(ident, opts.Schema, opts.PartitionSpec, opts.Location, opts.Properties)
	return &createTransaction{cat: c, staged: staged}, nil
}

// NewReplaceTableTransaction stages a replacement of an existing
// table. Unless opts.OrCreate is set, the table must exist when the
// transaction is created and still exist at commit time. The
// replacement keeps the table's UUID.
func (c *Catalog) NewReplaceTableTransaction(ctx context.Context, ident catalog.TableIdentifier, opts catalog.ReplaceTableOptions) (catalog.Transaction, error) {
	if err := ident.Validate(); err != nil {
		return nil, err
	}

	var (
		exists       bool
		uid          string
		createdAt    time.Time
		version      int
		baseMetadata string
	)
	c.mu.RLock()
	if current, ok := c.tables[ident.Key()]; ok {
		exists = true
		uid = current.table.UUID
		createdAt = current.table.CreatedAt
		version = current.version + 1
		baseMetadata = current.table.MetadataLocation
	}
	c.mu.RUnlock()

	if !exists && !opts.OrCreate {
		return nil, catalog.NewTableNotFoundError(ident)
	}

	staged := newRecord(ident, opts.Schema, opts.PartitionSpec, opts.Location, opts.Properties)
	if exists {
		staged.table.UUID = uid
		staged.table.CreatedAt = createdAt
		staged.version = version
	}
	return &replaceTransaction{
		cat:          c,
		staged:       staged,
		orCreate:     opts.OrCreate,
		baseExists:   exists,
		baseMetadata: baseMetadata,
	}, nil
}

// DropTable removes the table and reports whether anything was
// removed. The purge flag is accepted for interface compatibility; an
// in-memory catalog has no external data files to remove.
func (c *Catalog) DropTable(ctx context.Context, ident catalog.TableIdentifier, purge bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := ident.Key()
	if _, ok := c.tables[key]; !ok {
		return false, nil
	}
	delete(c.tables, key)
	return true, nil
}

// RenameTable moves the table from one identifier to another. The
// table keeps its UUID and metadata location.
func (c *Catalog) RenameTable(ctx context.Context, from, to catalog.TableIdentifier) error {
	if err := to.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.tables[from.Key()]
	if !ok {
		return catalog.NewTableNotFoundError(from)
	}
	if _, ok := c.tables[to.Key()]; ok {
		return catalog.NewTableAlreadyExistsError(to)
	}

	rec.table.Ident = to
	rec.table.UpdatedAt = time.Now().UTC()
	c.tables[to.Key()] = rec
	delete(c.tables, from.Key())
	return nil
}

// ListTables returns the identifiers of all tables whose namespace
// equals namespace exactly, sorted by their dotted form.
func (c *Catalog) ListTables(ctx context.Context, namespace []string) ([]catalog.TableIdentifier, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var idents []catalog.TableIdentifier
	for _, rec := range c.tables {
		if sameNamespace(rec.table.Ident.Namespace, namespace) {
			idents = append(idents, rec.table.Ident)
		}
	}
	sort.Slice(idents, func(i, j int) bool {
		return idents[i].String() < idents[j].String()
	})
	return idents, nil
}

// TableExists reports whether the table exists.
func (c *Catalog) TableExists(ctx context.Context, ident catalog.TableIdentifier) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.tables[ident.Key()]
	return ok, nil
}

func sameNamespace(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i, level := range a {
		if b[i] != level {
			return false
		}
	}
	return true
}

// newRecord builds the canonical stored form of a fresh table.
func newRecord(ident catalog.TableIdentifier, schema, spec, location string, props map[string]string) *record {
	id := uuid.NewString()
	if location == "" {
		location = "memory://" + ident.String()
	}
	now := time.Now().UTC()
	return &record{
		table: catalog.Table{
			Ident:            ident,
			UUID:             id,
			Location:         location,
			MetadataLocation: metadataLocation(location, 0, id),
			Schema:           schema,
			PartitionSpec:    spec,
			Properties:       maps.Clone(props),
			CreatedAt:        now,
			UpdatedAt:        now,
		},
	}
}

// metadataLocation renders the metadata path for a table version, e.g.
// "memory://db.events/metadata/00001-<uuid>.metadata.json".
func metadataLocation(location string, version int, id string) string {
	return fmt.Sprintf("%s/metadata/%05d-%s.metadata.json", location, version, id)
}

// createTransaction stages a table until Commit installs it.
type createTransaction struct {
	cat *Catalog

	mu        sync.Mutex
	staged    *record
	committed bool
}

var _ catalog.Transaction = (*createTransaction)(nil)

// Table returns the staged table.
func (t *createTransaction) Table() *catalog.Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.staged.snapshot()
}

// SetProperties merges props into the staged table's properties.
func (t *createTransaction) SetProperties(props map[string]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}
	if t.staged.table.Properties == nil {
		t.staged.table.Properties = make(map[string]string, len(props))
	}
	maps.Copy(t.staged.table.Properties, props)
	return nil
}

// Commit installs the staged table. It fails with an already-exists
// error when the identifier was taken since the transaction began.
func (t *createTransaction) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}

	t.cat.mu.Lock()
	defer t.cat.mu.Unlock()

	key := t.staged.table.Ident.Key()
	if _, ok := t.cat.tables[key]; ok {
		return catalog.NewTableAlreadyExistsError(t.staged.table.Ident)
	}
	t.cat.tables[key] = t.staged
	t.committed = true
	return nil
}

// replaceTransaction stages a replacement until Commit swaps it in.
// baseMetadata is the metadata location current when the transaction
// was created; Commit refuses to overwrite a table that moved past it.
type replaceTransaction struct {
	cat          *Catalog
	orCreate     bool
	baseExists   bool
	baseMetadata string

	mu        sync.Mutex
	staged    *record
	committed bool
}

var _ catalog.Transaction = (*replaceTransaction)(nil)

// Table returns the staged replacement table.
func (t *replaceTransaction) Table() *catalog.Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.staged.snapshot()
}

// SetProperties merges props into the staged table's properties.
func (t *replaceTransaction) SetProperties(props map[string]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}
	if t.staged.table.Properties == nil {
		t.staged.table.Properties = make(map[string]string, len(props))
	}
	maps.Copy(t.staged.table.Properties, props)
	return nil
}

// Commit swaps the staged table in if the table has not moved past
// the transaction's base: a replacement or creation committed in
// between surfaces as a conflict instead of being overwritten.
// Without OrCreate the commit fails with a not-found error when the
// table was dropped since the transaction began.
func (t *replaceTransaction) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}

	t.cat.mu.Lock()
	defer t.cat.mu.Unlock()

	ident := t.staged.table.Ident
	key := ident.Key()
	current, ok := t.cat.tables[key]
	switch {
	case ok && !t.baseExists:
		return errors.Newf(errors.CodeConflict, "table %s was created concurrently", ident)
	case ok && current.table.MetadataLocation != t.baseMetadata:
		return errors.Newf(errors.CodeConflict, "table %s was modified concurrently", ident)
	case !ok && !t.orCreate:
		return catalog.NewTableNotFoundError(ident)
	}

	t.staged.table.MetadataLocation = metadataLocation(t.staged.table.Location, t.staged.version, t.staged.table.UUID)
	t.staged.table.UpdatedAt = time.Now().UTC()
	t.cat.tables[key] = t.staged
	t.committed = true
	return nil
}
