package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"maps"
	"sync"
	"time"

	"github.com/jmgilman/go/errors"

	"github.com/jzhuge/incubator-iceberg/catalog"
)

// setProperties merges props into the record, refreshing the encoded
// column alongside the map.
func (r *record) setProperties(props map[string]string) error {
	if r.properties == nil {
		r.properties = make(map[string]string, len(props))
	}
	maps.Copy(r.properties, props)

	data, err := json.Marshal(r.properties)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to encode table properties")
	}
	r.propertiesJSON = sql.NullString{String: string(data), Valid: true}
	return nil
}

// createTransaction stages a table until Commit inserts it.
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
	return t.staged.toTable()
}

// SetProperties merges props into the staged table's properties.
func (t *createTransaction) SetProperties(props map[string]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}
	return t.staged.setProperties(props)
}

// Commit inserts the staged table. The primary key resolves races: a
// concurrent claim of the identifier surfaces as an already-exists
// error.
func (t *createTransaction) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}
	if err := t.cat.insert(ctx, t.cat.db, t.staged); err != nil {
		return err
	}
	t.committed = true
	return nil
}

// replaceTransaction stages a replacement until Commit applies it.
// baseMetadata is the metadata location current when the transaction
// was created; Commit compares-and-swaps against it.
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
	return t.staged.toTable()
}

// SetProperties merges props into the staged table's properties.
func (t *replaceTransaction) SetProperties(props map[string]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}
	return t.staged.setProperties(props)
}

// Commit applies the replacement if the base metadata location is
// still current, so a replacement committed since the transaction
// began surfaces as a conflict instead of being overwritten. The
// replaced table's UUID and creation time are preserved and its
// metadata location is recorded as the previous one. Without OrCreate
// the commit fails with a not-found error when the table was dropped
// since the transaction began.
func (t *replaceTransaction) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return errors.New(errors.CodeInvalidInput, "transaction already committed")
	}

	c := t.cat
	ident := t.staged.ident

	if !t.baseExists {
		// Create-or-replace with no base: a table that appeared in
		// the meantime belongs to someone else's commit.
		if err := c.insert(ctx, c.db, t.staged); err != nil {
			if catalog.IsTableAlreadyExists(err) {
				return errors.Newf(errors.CodeConflict, "table %s was created concurrently", ident)
			}
			return err
		}
		t.committed = true
		return nil
	}

	t.staged.updatedAt = time.Now().UTC()

	update := c.rebind(`UPDATE catalog_tables
		SET table_uuid = ?, location = ?, metadata_location = ?, previous_metadata_location = ?,
			schema_json = ?, partition_spec_json = ?, properties_json = ?,
			table_version = ?, updated_at = ?
		WHERE catalog_name = ? AND table_namespace = ? AND table_name = ? AND metadata_location = ?`)

	res, err := c.db.ExecContext(ctx, update,
		t.staged.uuid, t.staged.location, t.staged.metadataLocation, t.staged.previousMetadata,
		nullable(t.staged.schema), nullable(t.staged.partitionSpec), t.staged.propertiesJSON,
		t.staged.tableVersion, t.staged.updatedAt.UnixMilli(),
		c.name, namespaceKey(ident.Namespace), ident.Name, t.baseMetadata,
	)
	if err != nil {
		return errors.Wrapf(err, errors.CodeDatabase, "failed to replace table %s", ident)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, errors.CodeDatabase, "failed to replace table %s", ident)
	}
	if affected > 0 {
		t.committed = true
		return nil
	}

	// The base moved. Distinguish a dropped table from a competing
	// replacement for the error code.
	exists, err := c.TableExists(ctx, ident)
	if err != nil {
		return err
	}
	if !exists {
		if !t.orCreate {
			return catalog.NewTableNotFoundError(ident)
		}
		if err := c.insert(ctx, c.db, t.staged); err != nil {
			return err
		}
		t.committed = true
		return nil
	}
	return errors.Newf(errors.CodeConflict, "table %s was modified concurrently", ident)
}
