package sqldb_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/jzhuge/incubator-iceberg/catalog"
	"github.com/jzhuge/incubator-iceberg/catalog/sqldb"
)

var identEvents = catalog.NewTableIdentifier([]string{"db"}, "events")

// newTestDB opens an in-memory SQLite database. The pool is pinned to
// a single connection because every new :memory: connection starts a
// fresh database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestCatalog(t *testing.T, opts ...sqldb.Option) *sqldb.Catalog {
	t.Helper()
	cat, err := sqldb.New(context.Background(), newTestDB(t), sqldb.DialectSQLite, opts...)
	require.NoError(t, err)
	return cat
}

func TestNew_InvalidArguments(t *testing.T) {
	ctx := context.Background()

	_, err := sqldb.New(ctx, nil, sqldb.DialectSQLite)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = sqldb.New(ctx, newTestDB(t), sqldb.Dialect("oracle"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestCreateAndLoadTable(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	created, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{
		Schema:        `{"fields":[{"name":"id","type":"long"}]}`,
		PartitionSpec: `{"spec-id":0}`,
		Properties:    map[string]string{"owner": "ops", "retention": "30d"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.UUID)
	assert.Equal(t, "file://warehouse/db/events", created.Location)
	assert.Contains(t, created.MetadataLocation, "/metadata/00000-")

	loaded, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.Equal(t, identEvents, loaded.Ident)
	assert.Equal(t, created.UUID, loaded.UUID)
	assert.Equal(t, created.MetadataLocation, loaded.MetadataLocation)
	assert.Equal(t, `{"fields":[{"name":"id","type":"long"}]}`, loaded.Schema)
	assert.Equal(t, `{"spec-id":0}`, loaded.PartitionSpec)
	assert.Equal(t, map[string]string{"owner": "ops", "retention": "30d"}, loaded.Properties)
	assert.WithinDuration(t, created.CreatedAt, loaded.CreatedAt, time.Second)
}

func TestCreateTable_AlreadyExists(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	_, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	_, err = cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.Error(t, err)
	assert.True(t, catalog.IsTableAlreadyExists(err))
}

func TestCreateTable_DottedNamespaceRejected(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	_, err := cat.CreateTable(ctx, catalog.NewTableIdentifier([]string{"a.b"}, "events"), catalog.CreateTableOptions{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestLoadTable_NotFound(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	_, err := cat.LoadTable(ctx, identEvents)
	require.Error(t, err)
	assert.True(t, catalog.IsTableNotFound(err))
}

func TestDropTable(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	_, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	dropped, err := cat.DropTable(ctx, identEvents, false)
	require.NoError(t, err)
	assert.True(t, dropped)

	dropped, err = cat.DropTable(ctx, identEvents, false)
	require.NoError(t, err)
	assert.False(t, dropped)

	_, err = cat.LoadTable(ctx, identEvents)
	assert.True(t, catalog.IsTableNotFound(err))
}

func TestRenameTable(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)
	target := catalog.NewTableIdentifier([]string{"db"}, "events_v2")

	created, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	require.NoError(t, cat.RenameTable(ctx, identEvents, target))

	_, err = cat.LoadTable(ctx, identEvents)
	assert.True(t, catalog.IsTableNotFound(err))

	moved, err := cat.LoadTable(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, created.UUID, moved.UUID)
}

func TestRenameTable_SourceMissing(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	err := cat.RenameTable(ctx, identEvents, catalog.NewTableIdentifier([]string{"db"}, "events_v2"))
	require.Error(t, err)
	assert.True(t, catalog.IsTableNotFound(err))
}

func TestRenameTable_TargetExists(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)
	target := catalog.NewTableIdentifier([]string{"db"}, "orders")

	_, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)
	_, err = cat.CreateTable(ctx, target, catalog.CreateTableOptions{})
	require.NoError(t, err)

	err = cat.RenameTable(ctx, identEvents, target)
	require.Error(t, err)
	assert.True(t, catalog.IsTableAlreadyExists(err))
}

func TestListTables(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	for _, name := range []string{"users", "events", "orders"} {
		_, err := cat.CreateTable(ctx, catalog.NewTableIdentifier([]string{"db"}, name), catalog.CreateTableOptions{})
		require.NoError(t, err)
	}
	_, err := cat.CreateTable(ctx, catalog.NewTableIdentifier([]string{"other"}, "misc"), catalog.CreateTableOptions{})
	require.NoError(t, err)

	idents, err := cat.ListTables(ctx, []string{"db"})
	require.NoError(t, err)
	require.Len(t, idents, 3)
	assert.Equal(t, "db.events", idents[0].String())
	assert.Equal(t, "db.orders", idents[1].String())
	assert.Equal(t, "db.users", idents[2].String())

	empty, err := cat.ListTables(ctx, []string{"missing"})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTableExists(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	exists, err := cat.TableExists(ctx, identEvents)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	exists, err = cat.TableExists(ctx, identEvents)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWithCatalogName_IsolatesCatalogs(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	first, err := sqldb.New(ctx, db, sqldb.DialectSQLite, sqldb.WithCatalogName("first"))
	require.NoError(t, err)
	second, err := sqldb.New(ctx, db, sqldb.DialectSQLite, sqldb.WithCatalogName("second"))
	require.NoError(t, err)

	_, err = first.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	exists, err := second.TableExists(ctx, identEvents)
	require.NoError(t, err)
	assert.False(t, exists)

	// Same identifier can exist independently in the second catalog.
	_, err = second.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)
}

func TestWithWarehouseLocation(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t, sqldb.WithWarehouseLocation("s3://lake"))

	created, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)
	assert.Equal(t, "s3://lake/db/events", created.Location)
}

func TestCreateTableTransaction(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	txn, err := cat.NewCreateTableTransaction(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)
	require.NoError(t, txn.SetProperties(map[string]string{"owner": "ops"}))

	exists, err := cat.TableExists(ctx, identEvents)
	require.NoError(t, err)
	assert.False(t, exists, "staged table must not be visible before commit")

	require.NoError(t, txn.Commit(ctx))

	loaded, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.Equal(t, "ops", loaded.Properties["owner"])
}

func TestCreateTableTransaction_IdentifierTakenAtCommit(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	txn, err := cat.NewCreateTableTransaction(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	_, err = cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	err = txn.Commit(ctx)
	require.Error(t, err)
	assert.True(t, catalog.IsTableAlreadyExists(err))
}

func TestCreateTableTransaction_CommitTwice(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	txn, err := cat.NewCreateTableTransaction(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	require.NoError(t, txn.Commit(ctx))
	err = txn.Commit(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestReplaceTableTransaction(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	created, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{Schema: `{"v":1}`})
	require.NoError(t, err)

	txn, err := cat.NewReplaceTableTransaction(ctx, identEvents, catalog.ReplaceTableOptions{Schema: `{"v":2}`})
	require.NoError(t, err)
	require.NoError(t, txn.Commit(ctx))

	replaced, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, replaced.Schema)
	assert.Equal(t, created.UUID, replaced.UUID, "replace keeps the table UUID")
	assert.Contains(t, replaced.MetadataLocation, "/metadata/00001-")
}

func TestReplaceTableTransaction_MissingWithoutOrCreate(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	_, err := cat.NewReplaceTableTransaction(ctx, identEvents, catalog.ReplaceTableOptions{})
	require.Error(t, err)
	assert.True(t, catalog.IsTableNotFound(err))
}

func TestReplaceTableTransaction_OrCreate(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	txn, err := cat.NewReplaceTableTransaction(ctx, identEvents, catalog.ReplaceTableOptions{
		OrCreate: true,
		Schema:   `{"v":1}`,
	})
	require.NoError(t, err)
	require.NoError(t, txn.Commit(ctx))

	loaded, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, loaded.Schema)
}

func TestReplaceTableTransaction_DroppedBeforeCommit(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	_, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	txn, err := cat.NewReplaceTableTransaction(ctx, identEvents, catalog.ReplaceTableOptions{})
	require.NoError(t, err)

	_, err = cat.DropTable(ctx, identEvents, false)
	require.NoError(t, err)

	err = txn.Commit(ctx)
	require.Error(t, err)
	assert.True(t, catalog.IsTableNotFound(err))
}

func TestReplaceTableTransaction_ConcurrentReplacementConflicts(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)

	_, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{Schema: `{"v":1}`})
	require.NoError(t, err)

	stale, err := cat.NewReplaceTableTransaction(ctx, identEvents, catalog.ReplaceTableOptions{Schema: `{"v":2}`})
	require.NoError(t, err)

	// A competing replacement commits first and moves the metadata
	// location forward.
	winner, err := cat.NewReplaceTableTransaction(ctx, identEvents, catalog.ReplaceTableOptions{Schema: `{"v":3}`})
	require.NoError(t, err)
	require.NoError(t, winner.Commit(ctx))

	err = stale.Commit(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConflict, errors.GetCode(err))

	current, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.Equal(t, `{"v":3}`, current.Schema)
}
