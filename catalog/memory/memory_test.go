package memory_test

import (
	"context"
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzhuge/incubator-iceberg/catalog"
	"github.com/jzhuge/incubator-iceberg/catalog/memory"
)

var identEvents = catalog.NewTableIdentifier([]string{"db"}, "events")

func TestCreateTable(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	created, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{
		Schema:     `{"fields":[{"name":"id","type":"long"}]}`,
		Properties: map[string]string{"owner": "ops"},
	})
	require.NoError(t, err)

	assert.Equal(t, identEvents, created.Ident)
	assert.NotEmpty(t, created.UUID)
	assert.Equal(t, "memory://db.events", created.Location)
	assert.Contains(t, created.MetadataLocation, "memory://db.events/metadata/00000-")
	assert.Equal(t, "ops", created.Properties["owner"])
	assert.False(t, created.CreatedAt.IsZero())

	loaded, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.Equal(t, created.UUID, loaded.UUID)
	assert.Equal(t, created.MetadataLocation, loaded.MetadataLocation)
}

func TestCreateTable_CustomLocation(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	created, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{
		Location: "s3://warehouse/db/events",
	})
	require.NoError(t, err)
	assert.Equal(t, "s3://warehouse/db/events", created.Location)
	assert.Contains(t, created.MetadataLocation, "s3://warehouse/db/events/metadata/")
}

func TestCreateTable_AlreadyExists(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	_, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	_, err = cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.Error(t, err)
	assert.True(t, catalog.IsTableAlreadyExists(err))
}

func TestCreateTable_InvalidIdentifier(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	_, err := cat.CreateTable(ctx, catalog.NewTableIdentifier([]string{"db"}, ""), catalog.CreateTableOptions{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestLoadTable_NotFound(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	_, err := cat.LoadTable(ctx, identEvents)
	require.Error(t, err)
	assert.True(t, catalog.IsTableNotFound(err))
}

func TestLoadTable_ReturnsFreshInstances(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	_, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{
		Properties: map[string]string{"owner": "ops"},
	})
	require.NoError(t, err)

	first, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	second, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)

	assert.NotSame(t, first, second)

	// Mutating a returned copy must not leak into the catalog.
	first.Properties["owner"] = "someone-else"
	third, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.Equal(t, "ops", third.Properties["owner"])
}

func TestDropTable(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

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
	cat := memory.New()
	target := catalog.NewTableIdentifier([]string{"db"}, "events_v2")

	created, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	require.NoError(t, cat.RenameTable(ctx, identEvents, target))

	_, err = cat.LoadTable(ctx, identEvents)
	assert.True(t, catalog.IsTableNotFound(err))

	moved, err := cat.LoadTable(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, target, moved.Ident)
	assert.Equal(t, created.UUID, moved.UUID)
}

func TestRenameTable_SourceMissing(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	err := cat.RenameTable(ctx, identEvents, catalog.NewTableIdentifier([]string{"db"}, "events_v2"))
	require.Error(t, err)
	assert.True(t, catalog.IsTableNotFound(err))
}

func TestRenameTable_TargetExists(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()
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
	cat := memory.New()

	for _, name := range []string{"orders", "events", "users"} {
		_, err := cat.CreateTable(ctx, catalog.NewTableIdentifier([]string{"db"}, name), catalog.CreateTableOptions{})
		require.NoError(t, err)
	}
	_, err := cat.CreateTable(ctx, catalog.NewTableIdentifier([]string{"other"}, "misc"), catalog.CreateTableOptions{})
	require.NoError(t, err)
	_, err = cat.CreateTable(ctx, catalog.NewTableIdentifier([]string{"db", "sub"}, "nested"), catalog.CreateTableOptions{})
	require.NoError(t, err)

	idents, err := cat.ListTables(ctx, []string{"db"})
	require.NoError(t, err)

	want := []catalog.TableIdentifier{
		catalog.NewTableIdentifier([]string{"db"}, "events"),
		catalog.NewTableIdentifier([]string{"db"}, "orders"),
		catalog.NewTableIdentifier([]string{"db"}, "users"),
	}
	assert.Equal(t, want, idents)

	empty, err := cat.ListTables(ctx, []string{"missing"})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTableExists(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	exists, err := cat.TableExists(ctx, identEvents)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	exists, err = cat.TableExists(ctx, identEvents)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateTableTransaction(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	txn, err := cat.NewCreateTableTransaction(ctx, identEvents, catalog.CreateTableOptions{
		Properties: map[string]string{"owner": "ops"},
	})
	require.NoError(t, err)

	// Staged only: not visible through the catalog yet.
	exists, err := cat.TableExists(ctx, identEvents)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, txn.SetProperties(map[string]string{"retention": "30d"}))
	require.NoError(t, txn.Commit(ctx))

	loaded, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.Equal(t, "ops", loaded.Properties["owner"])
	assert.Equal(t, "30d", loaded.Properties["retention"])
}

func TestCreateTableTransaction_IdentifierTakenAtCommit(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	txn, err := cat.NewCreateTableTransaction(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	// Another path claims the identifier before the commit.
	_, err = cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	err = txn.Commit(ctx)
	require.Error(t, err)
	assert.True(t, catalog.IsTableAlreadyExists(err))
}

func TestCreateTableTransaction_CommitTwice(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	txn, err := cat.NewCreateTableTransaction(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	require.NoError(t, txn.Commit(ctx))
	err = txn.Commit(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestReplaceTableTransaction(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	created, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{
		Schema: `{"v":1}`,
	})
	require.NoError(t, err)

	txn, err := cat.NewReplaceTableTransaction(ctx, identEvents, catalog.ReplaceTableOptions{
		Schema: `{"v":2}`,
	})
	require.NoError(t, err)

	// Replacement stays invisible until commit.
	current, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, current.Schema)

	require.NoError(t, txn.Commit(ctx))

	replaced, err := cat.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, replaced.Schema)
	assert.Equal(t, created.UUID, replaced.UUID, "replace keeps the table UUID")
	assert.NotEqual(t, created.MetadataLocation, replaced.MetadataLocation)
}

func TestReplaceTableTransaction_MissingTable(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	_, err := cat.NewReplaceTableTransaction(ctx, identEvents, catalog.ReplaceTableOptions{})
	require.Error(t, err)
	assert.True(t, catalog.IsTableNotFound(err))
}

func TestReplaceTableTransaction_OrCreate(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

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

func TestReplaceTableTransaction_ConcurrentReplacementConflicts(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	_, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{Schema: `{"v":1}`})
	require.NoError(t, err)

	stale, err := cat.NewReplaceTableTransaction(ctx, identEvents, catalog.ReplaceTableOptions{Schema: `{"v":2}`})
	require.NoError(t, err)

	// A competing replacement commits first.
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

func TestReplaceTableTransaction_TableDroppedBeforeCommit(t *testing.T) {
	ctx := context.Background()
	cat := memory.New()

	_, err := cat.CreateTable(ctx, identEvents, catalog.CreateTableOptions{})
	require.NoError(t, err)

	txn, err := cat.NewReplaceTableTransaction(ctx, identEvents, catalog.ReplaceTableOptions{})
	require.NoError(t, err)

	_, err = cat.DropTable(ctx, identEvents, false)
	require.NoError(t, err)

	err = txn.Commit(ctx)
	require.Error(t, err)
	assert.True(t, catalog.IsTableNotFound(err))

	exists, err := cat.TableExists(ctx, identEvents)
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestWithCachingDecorator runs the core flows through catalog.Wrap to
// check the decorator against a real implementation rather than mocks.
func TestWithCachingDecorator(t *testing.T) {
	ctx := context.Background()
	cached := catalog.Wrap(memory.New())

	created, err := cached.CreateTable(ctx, identEvents, catalog.CreateTableOptions{Schema: `{"v":1}`})
	require.NoError(t, err)

	// The created instance is served back on load.
	loaded, err := cached.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.Same(t, created, loaded)

	// A replace transaction refreshes the cached handle on commit.
	txn, err := cached.NewReplaceTableTransaction(ctx, identEvents, catalog.ReplaceTableOptions{Schema: `{"v":2}`})
	require.NoError(t, err)
	require.NoError(t, txn.Commit(ctx))

	replaced, err := cached.LoadTable(ctx, identEvents)
	require.NoError(t, err)
	assert.NotSame(t, created, replaced)
	assert.Equal(t, `{"v":2}`, replaced.Schema)

	// Renames move the table and evict the stale source handle.
	target := catalog.NewTableIdentifier([]string{"db"}, "events_v2")
	require.NoError(t, cached.RenameTable(ctx, identEvents, target))

	_, err = cached.LoadTable(ctx, identEvents)
	assert.True(t, catalog.IsTableNotFound(err))

	moved, err := cached.LoadTable(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, replaced.UUID, moved.UUID)

	// Drops evict as well.
	dropped, err := cached.DropTable(ctx, target, false)
	require.NoError(t, err)
	assert.True(t, dropped)

	_, err = cached.LoadTable(ctx, target)
	assert.True(t, catalog.IsTableNotFound(err))
}
