package file

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/jmgilman/go/errors"

	"github.com/jzhuge/incubator-iceberg/catalog"
)

func (r *tableRecord) key() string {
	return catalog.NewTableIdentifier(r.Namespace, r.Name).Key()
}

// createTransaction stages a table until Commit persists it.
type createTransaction struct {
	cat *Catalog

	mu        sync.Mutex
	staged    *tableRecord
	committed bool
}

var _ catalog.Transaction = (*createTransaction)(nil)

// Table returns the staged table.
func (t *createTransaction) Table() *catalog.Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.staged.toTable()
}

// SetProperties merges props into the staged table's properties.
func (t *createTransaction) SetProperties(props map[string]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}
	if t.staged.Properties == nil {
		t.staged.Properties = make(map[string]string, len(props))
	}
	maps.Copy(t.staged.Properties, props)
	return nil
}

// Commit installs the staged table and persists the catalog document.
// It fails with an already-exists error when the identifier was taken
// since the transaction began.
func (t *createTransaction) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}

	t.cat.mu.Lock()
	defer t.cat.mu.Unlock()

	key := t.staged.key()
	if _, ok := t.cat.doc.Tables[key]; ok {
		return catalog.NewTableAlreadyExistsError(catalog.NewTableIdentifier(t.staged.Namespace, t.staged.Name))
	}

	t.cat.doc.Tables[key] = t.staged
	if err := t.cat.save(); err != nil {
		delete(t.cat.doc.Tables, key)
		return err
	}
	t.committed = true
	return nil
}

// replaceTransaction stages a replacement until Commit persists it.
// baseMetadata is the metadata location current when the transaction
// was created; Commit refuses to overwrite a table that moved past it.
type replaceTransaction struct {
	cat          *Catalog
	orCreate     bool
	baseExists   bool
	baseMetadata string

	mu        sync.Mutex
	staged    *tableRecord
	committed bool
}

var _ catalog.Transaction = (*replaceTransaction)(nil)

// Table returns the staged replacement table.
func (t *replaceTransaction) Table() *catalog.Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.staged.toTable()
}

// SetProperties merges props into the staged table's properties.
func (t *replaceTransaction) SetProperties(props map[string]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}
	if t.staged.Properties == nil {
		t.staged.Properties = make(map[string]string, len(props))
	}
	maps.Copy(t.staged.Properties, props)
	return nil
}

// Commit swaps the staged table in and persists the catalog document,
// provided the table has not moved past the transaction's base: a
// replacement or creation committed in between surfaces as a conflict
// instead of being overwritten. The replaced table's UUID and creation
// time are preserved, and its metadata location is recorded as the
// previous one. Without OrCreate the commit fails with a not-found
// error when the table was dropped since the transaction began.
func (t *replaceTransaction) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}

	t.cat.mu.Lock()
	defer t.cat.mu.Unlock()

	ident := catalog.NewTableIdentifier(t.staged.Namespace, t.staged.Name)
	key := t.staged.key()
	current, exists := t.cat.doc.Tables[key]
	switch {
	case exists && !t.baseExists:
		return errors.Newf(errors.CodeConflict, "table %s was created concurrently", ident)
	case exists && current.MetadataLocation != t.baseMetadata:
		return errors.Newf(errors.CodeConflict, "table %s was modified concurrently", ident)
	case !exists && !t.orCreate:
		return catalog.NewTableNotFoundError(ident)
	}

	if exists {
		t.staged.UUID = current.UUID
		t.staged.CreatedAt = current.CreatedAt
		t.staged.TableVersion = current.TableVersion + 1
		t.staged.PreviousMetadataLocation = current.MetadataLocation
		t.staged.MetadataLocation = metadataLocation(t.staged.Location, t.staged.TableVersion, t.staged.UUID)
	}
	t.staged.UpdatedAt = time.Now().UTC()

	t.cat.doc.Tables[key] = t.staged
	if err := t.cat.save(); err != nil {
		if exists {
			t.cat.doc.Tables[key] = current
		} else {
			delete(t.cat.doc.Tables, key)
		}
		return err
	}
	t.committed = true
	return nil
}
