// Package file persists a table catalog as a single JSON document on a
// filesystem abstraction.
//
// The catalog document is written atomically (write to a temporary
// file, then rename) so that readers never observe a partially written
// catalog. The filesystem is accessed through core.FS, which allows
// the same catalog to run on a local disk or an in-memory filesystem
// in tests.
//
// A Catalog is safe for concurrent use within a single process. The
// document is not locked on disk; concurrent writers in separate
// processes are not supported.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fs/core"

	"github.com/jzhuge/incubator-iceberg/catalog"
)

const catalogVersion = "1"

// document is the persisted form of the catalog.
type document struct {
	Version string                  `json:"version"`
	Tables  map[string]*tableRecord `json:"tables"`
}

// tableRecord is the persisted form of a single table.
type tableRecord struct {
	Namespace                []string          `json:"namespace,omitempty"`
	Name                     string            `json:"name"`
	UUID                     string            `json:"uuid"`
	Location                 string            `json:"location"`
	MetadataLocation         string            `json:"metadata_location"`
	PreviousMetadataLocation string            `json:"previous_metadata_location,omitempty"`
	Schema                   string            `json:"schema,omitempty"`
	PartitionSpec            string            `json:"partition_spec,omitempty"`
	Properties               map[string]string `json:"properties,omitempty"`
	TableVersion             int               `json:"table_version"`
	CreatedAt                time.Time         `json:"created_at"`
	UpdatedAt                time.Time         `json:"updated_at"`
}

// Option configures a Catalog.
type Option func(*options)

type options struct {
	warehouse string
	logger    *slog.Logger
}

func defaultOptions() *options {
	return &options{
		warehouse: "file://warehouse",
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithWarehouseLocation sets the root location under which default
// table locations are allocated.
func WithWarehouseLocation(location string) Option {
	return func(o *options) {
		o.warehouse = strings.TrimRight(location, "/")
	}
}

// WithLogger sets the logger used for catalog persistence events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Catalog is a table catalog stored as a JSON document on a core.FS.
type Catalog struct {
	fsys      core.FS
	path      string
	warehouse string
	logger    *slog.Logger

	mu  sync.RWMutex
	doc *document
}

var _ catalog.Catalog = (*Catalog)(nil)

// New opens the catalog document at path on fsys, creating an empty
// catalog when the document does not exist yet. The parent directory
// is created as needed.
func New(fsys core.FS, path string, opts ...Option) (*Catalog, error) {
	if fsys == nil {
		return nil, errors.New(errors.CodeInvalidInput, "filesystem must not be nil")
	}
	if path == "" {
		return nil, errors.New(errors.CodeInvalidInput, "catalog path must not be empty")
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, errors.CodeInternal, "failed to create catalog directory %s", dir)
		}
	}

	c := &Catalog{
		fsys:      fsys,
		path:      path,
		warehouse: options.warehouse,
		logger:    options.logger,
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// load reads the catalog document, or initializes an empty one when no
// document exists yet.
func (c *Catalog) load() error {
	exists, err := c.fsys.Exists(c.path)
	if err != nil {
		return errors.Wrapf(err, errors.CodeInternal, "failed to check catalog file %s", c.path)
	}
	if !exists {
		c.doc = &document{Version: catalogVersion, Tables: make(map[string]*tableRecord)}
		return nil
	}

	data, err := c.fsys.ReadFile(c.path)
	if err != nil {
		return errors.Wrapf(err, errors.CodeInternal, "failed to read catalog file %s", c.path)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, errors.CodeInternal, "failed to parse catalog file %s", c.path)
	}
	if doc.Version != catalogVersion {
		return errors.Newf(errors.CodeSchemaVersionIncompatible, "unsupported catalog file version: %s (expected %s)", doc.Version, catalogVersion)
	}
	if doc.Tables == nil {
		doc.Tables = make(map[string]*tableRecord)
	}

	c.doc = &doc
	c.logger.Debug("loaded catalog file", "path", c.path, "tables", len(doc.Tables))
	return nil
}

// save writes the catalog document atomically. Callers must hold the
// write lock.
func (c *Catalog) save() error {
	data, err := json.MarshalIndent(c.doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to encode catalog file")
	}

	tmp := c.path + ".tmp"
	if err := c.fsys.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.CodeInternal, "failed to write catalog file %s", tmp)
	}
	if err := c.fsys.Rename(tmp, c.path); err != nil {
		_ = c.fsys.Remove(tmp)
		return errors.Wrapf(err, errors.CodeInternal, "failed to replace catalog file %s", c.path)
	}

	c.logger.Debug("wrote catalog file", "path", c.path, "tables", len(c.doc.Tables))
	return nil
}

// LoadTable resolves a fresh handle for ident from the catalog
// document.
func (c *Catalog) LoadTable(ctx context.Context, ident catalog.TableIdentifier) (*catalog.Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.doc.Tables[ident.Key()]
	if !ok {
		return nil, catalog.NewTableNotFoundError(ident)
	}
	return rec.toTable(), nil
}

// CreateTable creates the table and persists the catalog document.
func (c *Catalog) CreateTable(ctx context.Context, ident catalog.TableIdentifier, opts catalog.CreateTableOptions) (*catalog.Table, error) {
	if err := ident.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := ident.Key()
	if _, ok := c.doc.Tables[key]; ok {
		return nil, catalog.NewTableAlreadyExistsError(ident)
	}

	rec := c.newRecord(ident, opts.Schema, opts.PartitionSpec, opts.Location, opts.Properties)
	c.doc.Tables[key] = rec
	if err := c.save(); err != nil {
		delete(c.doc.Tables, key)
		return nil, err
	}
	return rec.toTable(), nil
}

// NewCreateTableTransaction stages a table creation that is persisted
// on Commit.
func (c *Catalog) NewCreateTableTransaction(ctx context.Context, ident catalog.TableIdentifier, opts catalog.CreateTableOptions) (catalog.Transaction, error) {
	if err := ident.Validate(); err != nil {
		return nil, err
	}
	staged := c.newRecord(ident, opts.Schema, opts.PartitionSpec, opts.Location, opts.Properties)
	return &createTransaction{cat: c, staged: staged}, nil
}

// NewReplaceTableTransaction stages a replacement of an existing
// table; the swap is persisted on Commit. Unless opts.OrCreate is set,
// the table must exist when the transaction is created. The
// transaction captures the table's current metadata location as its
// base; Commit applies the replacement only if the base is still
// current. The replacement keeps the table's UUID and records the
// replaced metadata location.
func (c *Catalog) NewReplaceTableTransaction(ctx context.Context, ident catalog.TableIdentifier, opts catalog.ReplaceTableOptions) (catalog.Transaction, error) {
	if err := ident.Validate(); err != nil {
		return nil, err
	}

	var (
		exists       bool
		baseMetadata string
	)
	c.mu.RLock()
	if current, ok := c.doc.Tables[ident.Key()]; ok {
		exists = true
		baseMetadata = current.MetadataLocation
	}
	c.mu.RUnlock()

	if !exists && !opts.OrCreate {
		return nil, catalog.NewTableNotFoundError(ident)
	}

	staged := c.newRecord(ident, opts.Schema, opts.PartitionSpec, opts.Location, opts.Properties)
	return &replaceTransaction{
		cat:          c,
		staged:       staged,
		orCreate:     opts.OrCreate,
		baseExists:   exists,
		baseMetadata: baseMetadata,
	}, nil
}

// DropTable removes the table from the catalog document and reports
// whether anything was removed. The purge flag requests removal of
// data files, which this catalog does not manage; it is accepted and
// ignored.
func (c *Catalog) DropTable(ctx context.Context, ident catalog.TableIdentifier, purge bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := ident.Key()
	rec, ok := c.doc.Tables[key]
	if !ok {
		return false, nil
	}

	delete(c.doc.Tables, key)
	if err := c.save(); err != nil {
		c.doc.Tables[key] = rec
		return false, err
	}
	return true, nil
}

// RenameTable moves the table to a new identifier and persists the
// catalog document. The table keeps its UUID and metadata location.
func (c *Catalog) RenameTable(ctx context.Context, from, to catalog.TableIdentifier) error {
	if err := to.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.doc.Tables[from.Key()]
	if !ok {
		return catalog.NewTableNotFoundError(from)
	}
	if _, ok := c.doc.Tables[to.Key()]; ok {
		return catalog.NewTableAlreadyExistsError(to)
	}

	prevNamespace, prevName, prevUpdated := rec.Namespace, rec.Name, rec.UpdatedAt
	rec.Namespace, rec.Name = to.Namespace, to.Name
	rec.UpdatedAt = time.Now().UTC()
	c.doc.Tables[to.Key()] = rec
	delete(c.doc.Tables, from.Key())

	if err := c.save(); err != nil {
		rec.Namespace, rec.Name, rec.UpdatedAt = prevNamespace, prevName, prevUpdated
		c.doc.Tables[from.Key()] = rec
		delete(c.doc.Tables, to.Key())
		return err
	}
	return nil
}

// ListTables returns the identifiers of all tables whose namespace
// equals namespace exactly, sorted by their dotted form.
func (c *Catalog) ListTables(ctx context.Context, namespace []string) ([]catalog.TableIdentifier, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var idents []catalog.TableIdentifier
	for _, rec := range c.doc.Tables {
		if !namespaceEqual(rec.Namespace, namespace) {
			continue
		}
		idents = append(idents, catalog.NewTableIdentifier(rec.Namespace, rec.Name))
	}
	sort.Slice(idents, func(i, j int) bool {
		return idents[i].String() < idents[j].String()
	})
	return idents, nil
}

// TableExists reports whether the table exists in the catalog
// document.
func (c *Catalog) TableExists(ctx context.Context, ident catalog.TableIdentifier) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.doc.Tables[ident.Key()]
	return ok, nil
}

func namespaceEqual(a, b []string) bool {
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

// newRecord builds the persisted form of a fresh table.
func (c *Catalog) newRecord(ident catalog.TableIdentifier, schema, spec, location string, props map[string]string) *tableRecord {
	id := uuid.NewString()
	if location == "" {
		location = c.warehouse + "/" + strings.Join(append(append([]string{}, ident.Namespace...), ident.Name), "/")
	}
	now := time.Now().UTC()
	return &tableRecord{
		Namespace:        ident.Namespace,
		Name:             ident.Name,
		UUID:             id,
		Location:         location,
		MetadataLocation: metadataLocation(location, 0, id),
		Schema:           schema,
		PartitionSpec:    spec,
		Properties:       maps.Clone(props),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func metadataLocation(location string, version int, id string) string {
	return fmt.Sprintf("%s/metadata/%05d-%s.metadata.json", location, version, id)
}

// toTable converts the persisted record into a caller-owned handle.
func (r *tableRecord) toTable() *catalog.Table {
	return &catalog.Table{
		Ident:            catalog.NewTableIdentifier(r.Namespace, r.Name),
		UUID:             r.UUID,
		Location:         r.Location,
		MetadataLocation: r.MetadataLocation,
		Schema:           r.Schema,
		PartitionSpec:    r.PartitionSpec,
		Properties:       maps.Clone(r.Properties),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
