package catalog

import "context"

//go:generate go run github.com/matryer/moq@latest -out mocks/catalog.go -pkg mocks . Catalog

// Catalog resolves and mutates named tables.
//
// Implementations include the in-memory catalog (memory subpackage),
// the file-backed catalog (file subpackage), and the SQL-backed
// catalog (sqldb subpackage). CachingCatalog implements Catalog as
// well, so it substitutes transparently anywhere a Catalog is
// expected.
//
// All methods accept a context.Context for cancellation and timeout
// control; this package introduces no timeouts or retries of its own.
type Catalog interface {
	// LoadTable resolves a table by identifier.
	// Returns an ErrCodeNotFound error if the table does not exist.
	LoadTable(ctx context.Context, ident TableIdentifier) (*Table, error)

	// CreateTable creates a new table and returns its handle.
	// Returns an ErrCodeAlreadyExists error if the identifier is
	// already taken.
	CreateTable(ctx context.Context, ident TableIdentifier, opts CreateTableOptions) (*Table, error)

	// NewCreateTableTransaction starts a transaction that will create
	// the table when committed. The table is not visible until commit;
	// committing fails with an ErrCodeAlreadyExists error if the
	// identifier was taken in the meantime.
	NewCreateTableTransaction(ctx context.Context, ident TableIdentifier, opts CreateTableOptions) (Transaction, error)

	// NewReplaceTableTransaction starts a transaction that will
	// replace the table's state when committed. Unless opts.OrCreate
	// is set, returns an ErrCodeNotFound error when the table does not
	// exist.
	NewReplaceTableTransaction(ctx context.Context, ident TableIdentifier, opts ReplaceTableOptions) (Transaction, error)

	// DropTable removes a table and reports whether a table was
	// actually dropped. Dropping an absent table returns false, not an
	// error. When purge is set the implementation also removes the
	// table's underlying data, where it has any.
	DropTable(ctx context.Context, ident TableIdentifier, purge bool) (bool, error)

	// RenameTable renames a table.
	// Returns an ErrCodeNotFound error if from does not exist and an
	// ErrCodeAlreadyExists error if to is already taken.
	RenameTable(ctx context.Context, from, to TableIdentifier) error

	// ListTables returns the identifiers of all tables in the given
	// namespace, sorted by name. An unknown namespace yields an empty
	// slice.
	ListTables(ctx context.Context, namespace []string) ([]TableIdentifier, error)

	// TableExists reports whether a table exists.
	TableExists(ctx context.Context, ident TableIdentifier) (bool, error)
}
