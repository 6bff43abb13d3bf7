// Package sqldb provides a table catalog backed by a SQL database.
//
// The catalog stores one row per table in a catalog_tables table and
// supports SQLite (modernc.org/sqlite, driver name "sqlite") and
// PostgreSQL (github.com/jackc/pgx/v5/stdlib, driver name "pgx")
// through the Dialect passed to New. Uniqueness of table identifiers
// is enforced by the table's primary key, so concurrent creates race
// safely across processes sharing the same database.
//
// Namespaces are stored in dotted form, so namespace elements must not
// contain dots; write operations reject identifiers that do.
package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmgilman/go/errors"

	"github.com/jzhuge/incubator-iceberg/catalog"
)

// Dialect selects the SQL flavor used for placeholders and error
// classification.
type Dialect string

const (
	// DialectSQLite targets SQLite through modernc.org/sqlite.
	DialectSQLite Dialect = "sqlite"

	// DialectPostgres targets PostgreSQL through jackc/pgx.
	DialectPostgres Dialect = "postgres"
)

const createTablesDDL = `
CREATE TABLE IF NOT EXISTS catalog_tables (
	catalog_name               TEXT   NOT NULL,
	table_namespace            TEXT   NOT NULL,
	table_name                 TEXT   NOT NULL,
	table_uuid                 TEXT   NOT NULL,
	location                   TEXT   NOT NULL,
	metadata_location          TEXT   NOT NULL,
	previous_metadata_location TEXT,
	schema_json                TEXT,
	partition_spec_json        TEXT,
	properties_json            TEXT,
	table_version              BIGINT NOT NULL,
	created_at                 BIGINT NOT NULL,
	updated_at                 BIGINT NOT NULL,
	PRIMARY KEY (catalog_name, table_namespace, table_name)
)`

// Option configures a Catalog.
type Option func(*options)

type options struct {
	catalogName string
	warehouse   string
	logger      *slog.Logger
}

func defaultOptions() *options {
	return &options{
		catalogName: "iceberg",
		warehouse:   "file://warehouse",
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithCatalogName sets the catalog name under which rows are stored.
// Multiple catalogs can share one database by using distinct names.
func WithCatalogName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.catalogName = name
		}
	}
}

// WithWarehouseLocation sets the root location under which default
// table locations are allocated.
func WithWarehouseLocation(location string) Option {
	return func(o *options) {
		o.warehouse = strings.TrimRight(location, "/")
	}
}

// WithLogger sets the logger used for catalog events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Catalog is a table catalog stored in a SQL database. The caller owns
// the *sql.DB and is responsible for closing it.
type Catalog struct {
	db        *sql.DB
	dialect   Dialect
	name      string
	warehouse string
	logger    *slog.Logger
}

var _ catalog.Catalog = (*Catalog)(nil)

// New builds a catalog on db and ensures the catalog_tables schema
// exists.
func New(ctx context.Context, db *sql.DB, dialect Dialect, opts ...Option) (*Catalog, error) {
	if db == nil {
		return nil, errors.New(errors.CodeInvalidInput, "database handle must not be nil")
	}
	if dialect != DialectSQLite && dialect != DialectPostgres {
		return nil, errors.Newf(errors.CodeInvalidInput, "unsupported dialect: %q", dialect)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	c := &Catalog{
		db:        db,
		dialect:   dialect,
		name:      options.catalogName,
		warehouse: options.warehouse,
		logger:    options.logger,
	}
	if _, err := db.ExecContext(ctx, createTablesDDL); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to create catalog schema")
	}
	c.logger.Debug("catalog schema ready", "catalog", c.name, "dialect", string(dialect))
	return c, nil
}

// rebind rewrites ? placeholders into the dialect's native form.
func (c *Catalog) rebind(query string) string {
	if c.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isUniqueViolation reports whether err is a primary key conflict in
// either supported dialect.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}

// namespaceKey renders a namespace in its stored dotted form.
func namespaceKey(namespace []string) string {
	return strings.Join(namespace, ".")
}

// validateIdent extends the structural identifier checks with the
// provider's dotted-namespace storage constraint.
func validateIdent(ident catalog.TableIdentifier) error {
	if err := ident.Validate(); err != nil {
		return err
	}
	for _, level := range ident.Namespace {
		if strings.Contains(level, ".") {
			return errors.Newf(errors.CodeInvalidInput, "namespace element %q must not contain '.'", level)
		}
	}
	return nil
}

// row is the scanned form of a catalog_tables row.
type row struct {
	namespace        string
	name             string
	uuid             string
	location         string
	metadataLocation string
	previousMetadata sql.NullString
	schema           sql.NullString
	partitionSpec    sql.NullString
	properties       sql.NullString
	tableVersion     int64
	createdAt        int64
	updatedAt        int64
}

const tableColumns = `table_namespace, table_name, table_uuid, location, metadata_location,
	previous_metadata_location, schema_json, partition_spec_json, properties_json,
	table_version, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (*row, error) {
	var r row
	err := s.Scan(
		&r.namespace, &r.name, &r.uuid, &r.location, &r.metadataLocation,
		&r.previousMetadata, &r.schema, &r.partitionSpec, &r.properties,
		&r.tableVersion, &r.createdAt, &r.updatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// toTable converts a scanned row into a caller-owned handle.
func (r *row) toTable() (*catalog.Table, error) {
	var namespace []string
	if r.namespace != "" {
		namespace = strings.Split(r.namespace, ".")
	}

	var props map[string]string
	if r.properties.Valid && r.properties.String != "" {
		if err := json.Unmarshal([]byte(r.properties.String), &props); err != nil {
			return nil, errors.Wrapf(err, errors.CodeInternal, "failed to decode properties for table %s", r.name)
		}
	}

	return &catalog.Table{
		Ident:            catalog.NewTableIdentifier(namespace, r.name),
		UUID:             r.uuid,
		Location:         r.location,
		MetadataLocation: r.metadataLocation,
		Schema:           r.schema.String,
		PartitionSpec:    r.partitionSpec.String,
		Properties:       props,
		CreatedAt:        time.UnixMilli(r.createdAt).UTC(),
		UpdatedAt:        time.UnixMilli(r.updatedAt).UTC(),
	}, nil
}

// record is the insertable form of a table.
type record struct {
	ident            catalog.TableIdentifier
	uuid             string
	location         string
	metadataLocation string
	previousMetadata sql.NullString
	schema           string
	partitionSpec    string
	properties       map[string]string
	propertiesJSON   sql.NullString
	tableVersion     int64
	createdAt        time.Time
	updatedAt        time.Time
}

// toTable converts the record into a caller-owned handle.
func (r *record) toTable() *catalog.Table {
	return &catalog.Table{
		Ident:            r.ident,
		UUID:             r.uuid,
		Location:         r.location,
		MetadataLocation: r.metadataLocation,
		Schema:           r.schema,
		PartitionSpec:    r.partitionSpec,
		Properties:       maps.Clone(r.properties),
		CreatedAt:        r.createdAt,
		UpdatedAt:        r.updatedAt,
	}
}

// newRecord builds the insertable form of a fresh table.
func (c *Catalog) newRecord(ident catalog.TableIdentifier, schema, spec, location string, props map[string]string) (*record, error) {
	id := uuid.NewString()
	if location == "" {
		location = c.warehouse + "/" + strings.Join(append(append([]string{}, ident.Namespace...), ident.Name), "/")
	}

	var propsJSON sql.NullString
	if len(props) > 0 {
		data, err := json.Marshal(props)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to encode table properties")
		}
		propsJSON = sql.NullString{String: string(data), Valid: true}
	}

	now := time.Now().UTC()
	return &record{
		ident:            ident,
		uuid:             id,
		location:         location,
		metadataLocation: metadataLocation(location, 0, id),
		schema:           schema,
		partitionSpec:    spec,
		properties:       maps.Clone(props),
		propertiesJSON:   propsJSON,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func metadataLocation(location string, version int64, id string) string {
	return fmt.Sprintf("%s/metadata/%05d-%s.metadata.json", location, version, id)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insert writes rec as a new row through db, which is either the
// catalog's pool or an open transaction.
func (c *Catalog) insert(ctx context.Context, db execer, rec *record) error {
	query := c.rebind(`INSERT INTO catalog_tables (
		catalog_name, table_namespace, table_name, table_uuid, location, metadata_location,
		previous_metadata_location, schema_json, partition_spec_json, properties_json,
		table_version, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := db.ExecContext(ctx, query,
		c.name, namespaceKey(rec.ident.Namespace), rec.ident.Name, rec.uuid,
		rec.location, rec.metadataLocation, rec.previousMetadata,
		nullable(rec.schema), nullable(rec.partitionSpec), rec.propertiesJSON,
		rec.tableVersion, rec.createdAt.UnixMilli(), rec.updatedAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.NewTableAlreadyExistsError(rec.ident)
		}
		return errors.Wrapf(err, errors.CodeDatabase, "failed to insert table %s", rec.ident)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// LoadTable resolves a fresh handle for ident from the database.
func (c *Catalog) LoadTable(ctx context.Context, ident catalog.TableIdentifier) (*catalog.Table, error) {
	query := c.rebind(`SELECT ` + tableColumns + `
		FROM catalog_tables
		WHERE catalog_name = ? AND table_namespace = ? AND table_name = ?`)

	r, err := scanRow(c.db.QueryRowContext(ctx, query, c.name, namespaceKey(ident.Namespace), ident.Name))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, catalog.NewTableNotFoundError(ident)
		}
		return nil, errors.Wrapf(err, errors.CodeDatabase, "failed to load table %s", ident)
	}
	return r.toTable()
}

// CreateTable creates the table. Identifier uniqueness is enforced by
// the primary key, so racing creates across processes resolve to a
// single winner.
func (c *Catalog) CreateTable(ctx context.Context, ident catalog.TableIdentifier, opts catalog.CreateTableOptions) (*catalog.Table, error) {
	if err := validateIdent(ident); err != nil {
		return nil, err
	}

	rec, err := c.newRecord(ident, opts.Schema, opts.PartitionSpec, opts.Location, opts.Properties)
	if err != nil {
		return nil, err
	}
	if err := c.insert(ctx, c.db, rec); err != nil {
		return nil, err
	}
	c.logger.Debug("created table", "catalog", c.name, "table", ident.String())
	return rec.toTable(), nil
}

// NewCreateTableTransaction stages a table creation that is inserted
// on Commit.
func (c *Catalog) NewCreateTableTransaction(ctx context.Context, ident catalog.TableIdentifier, opts catalog.CreateTableOptions) (catalog.Transaction, error) {
	if err := validateIdent(ident); err != nil {
		return nil, err
	}
	rec, err := c.newRecord(ident, opts.Schema, opts.PartitionSpec, opts.Location, opts.Properties)
	if err != nil {
		return nil, err
	}
	return &createTransaction{cat: c, staged: rec}, nil
}

// NewReplaceTableTransaction stages a replacement that is applied on
// Commit. Unless opts.OrCreate is set, the table must exist when the
// transaction is created. The transaction captures the table's current
// metadata location as its base; Commit applies the replacement only
// if the base is still current, so a replacement committed in between
// surfaces as a conflict rather than being overwritten.
func (c *Catalog) NewReplaceTableTransaction(ctx context.Context, ident catalog.TableIdentifier, opts catalog.ReplaceTableOptions) (catalog.Transaction, error) {
	if err := validateIdent(ident); err != nil {
		return nil, err
	}

	query := c.rebind(`SELECT table_uuid, metadata_location, table_version, created_at
		FROM catalog_tables
		WHERE catalog_name = ? AND table_namespace = ? AND table_name = ?`)

	txn := &replaceTransaction{cat: c, orCreate: opts.OrCreate}
	var (
		baseUUID        string
		baseVersion     int64
		createdAtMillis int64
	)
	err := c.db.QueryRowContext(ctx, query, c.name, namespaceKey(ident.Namespace), ident.Name).
		Scan(&baseUUID, &txn.baseMetadata, &baseVersion, &createdAtMillis)
	switch {
	case stderrors.Is(err, sql.ErrNoRows):
		if !opts.OrCreate {
			return nil, catalog.NewTableNotFoundError(ident)
		}
	case err != nil:
		return nil, errors.Wrapf(err, errors.CodeDatabase, "failed to stage table replacement for %s", ident)
	default:
		txn.baseExists = true
	}

	rec, err := c.newRecord(ident, opts.Schema, opts.PartitionSpec, opts.Location, opts.Properties)
	if err != nil {
		return nil, err
	}
	if txn.baseExists {
		rec.uuid = baseUUID
		rec.createdAt = time.UnixMilli(createdAtMillis).UTC()
		rec.tableVersion = baseVersion + 1
		rec.previousMetadata = sql.NullString{String: txn.baseMetadata, Valid: true}
		rec.metadataLocation = metadataLocation(rec.location, rec.tableVersion, rec.uuid)
	}
	txn.staged = rec
	return txn, nil
}

// DropTable deletes the table's row and reports whether a row was
// deleted. The purge flag requests removal of data files, which this
// catalog does not manage; it is accepted and ignored.
func (c *Catalog) DropTable(ctx context.Context, ident catalog.TableIdentifier, purge bool) (bool, error) {
	query := c.rebind(`DELETE FROM catalog_tables
		WHERE catalog_name = ? AND table_namespace = ? AND table_name = ?`)

	res, err := c.db.ExecContext(ctx, query, c.name, namespaceKey(ident.Namespace), ident.Name)
	if err != nil {
		return false, errors.Wrapf(err, errors.CodeDatabase, "failed to drop table %s", ident)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, errors.CodeDatabase, "failed to drop table %s", ident)
	}
	if affected > 0 {
		c.logger.Debug("dropped table", "catalog", c.name, "table", ident.String())
	}
	return affected > 0, nil
}

// RenameTable moves the table to a new identifier. The single UPDATE
// relies on the primary key for conflict detection: zero affected rows
// means the source is missing, a unique violation means the target is
// taken.
func (c *Catalog) RenameTable(ctx context.Context, from, to catalog.TableIdentifier) error {
	if err := validateIdent(to); err != nil {
		return err
	}

	query := c.rebind(`UPDATE catalog_tables
		SET table_namespace = ?, table_name = ?, updated_at = ?
		WHERE catalog_name = ? AND table_namespace = ? AND table_name = ?`)

	res, err := c.db.ExecContext(ctx, query,
		namespaceKey(to.Namespace), to.Name, time.Now().UTC().UnixMilli(),
		c.name, namespaceKey(from.Namespace), from.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.NewTableAlreadyExistsError(to)
		}
		return errors.Wrapf(err, errors.CodeDatabase, "failed to rename table %s", from)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, errors.CodeDatabase, "failed to rename table %s", from)
	}
	if affected == 0 {
		return catalog.NewTableNotFoundError(from)
	}
	c.logger.Debug("renamed table", "catalog", c.name, "from", from.String(), "to", to.String())
	return nil
}

// ListTables returns the identifiers of all tables whose namespace
// equals namespace exactly, sorted by table name.
func (c *Catalog) ListTables(ctx context.Context, namespace []string) ([]catalog.TableIdentifier, error) {
	query := c.rebind(`SELECT table_name FROM catalog_tables
		WHERE catalog_name = ? AND table_namespace = ?
		ORDER BY table_name`)

	rows, err := c.db.QueryContext(ctx, query, c.name, namespaceKey(namespace))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to list tables")
	}
	defer rows.Close()

	var idents []catalog.TableIdentifier
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabase, "failed to list tables")
		}
		idents = append(idents, catalog.NewTableIdentifier(namespace, name))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to list tables")
	}
	return idents, nil
}

// TableExists reports whether the table has a row in the database.
func (c *Catalog) TableExists(ctx context.Context, ident catalog.TableIdentifier) (bool, error) {
	query := c.rebind(`SELECT 1 FROM catalog_tables
		WHERE catalog_name = ? AND table_namespace = ? AND table_name = ?`)

	var one int
	err := c.db.QueryRowContext(ctx, query, c.name, namespaceKey(ident.Namespace), ident.Name).Scan(&one)
	if stderrors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, errors.CodeDatabase, "failed to check table %s", ident)
	}
	return true, nil
}
