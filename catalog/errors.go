package catalog

import "github.com/jmgilman/go/errors"

// Catalog error codes (aliases into the shared errors library for
// readability in catalog context).
const (
	// ErrCodeNotFound indicates a table or namespace was not found.
	ErrCodeNotFound = errors.CodeNotFound

	// ErrCodeAlreadyExists indicates a table already exists.
	ErrCodeAlreadyExists = errors.CodeAlreadyExists

	// ErrCodeInvalidInput indicates a malformed identifier or argument.
	ErrCodeInvalidInput = errors.CodeInvalidInput

	// ErrCodeInternal indicates an unclassified catalog failure.
	ErrCodeInternal = errors.CodeInternal
)

// NewTableNotFoundError creates the standard not-found error for a
// table identifier. Catalog implementations should raise this from
// LoadTable so that callers can classify failures uniformly.
func NewTableNotFoundError(ident TableIdentifier) error {
	err := errors.Newf(errors.CodeNotFound, "table does not exist: %s", ident)
	return errors.WithContext(err, "table", ident.String())
}

// NewTableAlreadyExistsError creates the standard already-exists error
// for a table identifier.
func NewTableAlreadyExistsError(ident TableIdentifier) error {
	err := errors.Newf(errors.CodeAlreadyExists, "table already exists: %s", ident)
	return errors.WithContext(err, "table", ident.String())
}

// IsTableNotFound reports whether err carries the not-found code.
func IsTableNotFound(err error) bool {
	return errors.GetCode(err) == errors.CodeNotFound
}

// IsTableAlreadyExists reports whether err carries the already-exists
// code.
func IsTableAlreadyExists(err error) bool {
	return errors.GetCode(err) == errors.CodeAlreadyExists
}

// propagateOrWrap passes err through when it already carries a
// recognized platform code and otherwise wraps it as an internal
// failure for the given action ("load" or "create") and identifier.
// The original cause stays reachable through the error chain.
func propagateOrWrap(err error, ident TableIdentifier, action string) error {
	if errors.GetCode(err) != errors.CodeUnknown {
		return err
	}
	return errors.Wrapf(err, errors.CodeInternal, "failed to %s table: %s", action, ident)
}
