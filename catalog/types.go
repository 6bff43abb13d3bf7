package catalog

import (
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
)

// keySeparator joins identifier parts into cache and storage keys. It
// is a non-printable character so dots inside part names cannot
// collide with part boundaries.
const keySeparator = "\x1f"

// TableIdentifier names a table: a namespace path plus a table name.
//
// Identifiers are compared structurally; two identifiers with equal
// namespace elements and name refer to the same table regardless of
// how they were constructed.
type TableIdentifier struct {
	Namespace []string
	Name      string
}

// NewTableIdentifier builds an identifier from namespace elements and
// a table name.
func NewTableIdentifier(namespace []string, name string) TableIdentifier {
	return TableIdentifier{Namespace: namespace, Name: name}
}

// ParseIdentifier parses a dotted identifier such as "db.schema.events"
// into a TableIdentifier. The final element is the table name; any
// leading elements form the namespace.
func ParseIdentifier(s string) (TableIdentifier, error) {
	parts := strings.Split(s, ".")
	ident := TableIdentifier{
		Namespace: parts[:len(parts)-1],
		Name:      parts[len(parts)-1],
	}
	if err := ident.Validate(); err != nil {
		return TableIdentifier{}, err
	}
	return ident, nil
}

// Validate reports whether the identifier is well formed: a non-empty
// name and no empty namespace elements.
func (t TableIdentifier) Validate() error {
	if t.Name == "" {
		return errors.New(errors.CodeInvalidInput, "table name must not be empty")
	}
	for _, level := range t.Namespace {
		if level == "" {
			return errors.Newf(errors.CodeInvalidInput, "namespace of %q contains an empty element", t.Name)
		}
	}
	return nil
}

// Equal reports whether two identifiers name the same table.
func (t TableIdentifier) Equal(other TableIdentifier) bool {
	if t.Name != other.Name || len(t.Namespace) != len(other.Namespace) {
		return false
	}
	for i, level := range t.Namespace {
		if other.Namespace[i] != level {
			return false
		}
	}
	return true
}

// Key returns the canonical map key for the identifier. Two
// identifiers have equal keys exactly when they are Equal.
func (t TableIdentifier) Key() string {
	if len(t.Namespace) == 0 {
		return t.Name
	}
	return strings.Join(t.Namespace, keySeparator) + keySeparator + t.Name
}

// String renders the identifier in dotted form, e.g. "db.events".
func (t TableIdentifier) String() string {
	if len(t.Namespace) == 0 {
		return t.Name
	}
	return strings.Join(t.Namespace, ".") + "." + t.Name
}

// Table is a resolved table handle returned by a Catalog.
//
// Schema and partition spec are carried as opaque serialized documents;
// this package never interprets them. The metadata location points at
// the table's current metadata version in the catalog's backing store.
type Table struct {
	Ident            TableIdentifier
	UUID             string
	Location         string
	MetadataLocation string
	Schema           string
	PartitionSpec    string
	Properties       map[string]string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreateTableOptions carries the optional pieces of a table creation.
// A zero value is valid: providers fill in defaults for anything left
// unset.
type CreateTableOptions struct {
	// Schema is the serialized schema document for the new table.
	Schema string

	// PartitionSpec is the serialized partition spec document.
	PartitionSpec string

	// Location overrides the provider's default table location.
	Location string

	// Properties are free-form table properties.
	Properties map[string]string
}

// ReplaceTableOptions carries the pieces of a table replacement.
type ReplaceTableOptions struct {
	// Schema is the serialized schema document for the replacement.
	Schema string

	// PartitionSpec is the serialized partition spec document.
	PartitionSpec string

	// Location overrides the provider's default table location.
	Location string

	// Properties are free-form table properties.
	Properties map[string]string

	// OrCreate creates the table when it does not exist instead of
	// failing with a not-found error.
	OrCreate bool
}
