// Package admin is the generic CRUD dispatcher behind the admin UI. It
// executes the canned statements carried by generated entity descriptors,
// filling auto-managed columns (keys, timestamps, soft-delete flags) so
// handlers never do.
package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Entity describes one admin-manageable table. Instances are generated;
// the four canned statements come straight from the table metadata.
type Entity struct {
	Name       string
	Table      string
	PrimaryKey string

	SelectAllSQL string
	SelectOneSQL string
	// UpdateSQL is empty for entities with no mutable columns; Update
	// refuses to run on those.
	UpdateSQL string
	DeleteSQL string

	// MutableFields is the admin-editable column list, in declaration order.
	MutableFields []string

	// Auto-managed columns; empty when the entity does not carry them.
	CreateTimestampColumn string
	UpdateTimestampColumn string
	SoftDeleteColumn      string
}

// Dispatcher runs entity operations against one database.
type Dispatcher struct {
	db *sqlx.DB
}

// NewDispatcher wraps an open database handle.
func NewDispatcher(db *sqlx.DB) *Dispatcher {
	return &Dispatcher{db: db}
}

// now is swapped out in tests.
var now = func() int64 { return time.Now().UnixMilli() }

// List returns the entity's rows as generic maps, using the canned
// select-all statement (creation-time descending where available).
func (d *Dispatcher) List(ctx context.Context, e Entity) ([]map[string]any, error) {
	rows, err := d.db.QueryxContext(ctx, e.SelectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", e.Name, err)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("list %s: %w", e.Name, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Get returns a single row by primary key.
func (d *Dispatcher) Get(ctx context.Context, e Entity, id any) (map[string]any, error) {
	row := map[string]any{}
	if err := d.db.QueryRowxContext(ctx, e.SelectOneSQL, id).MapScan(row); err != nil {
		return nil, fmt.Errorf("get %s %v: %w", e.Name, id, err)
	}
	return row, nil
}

// Insert writes a new row from the mutable field values, generating the
// primary key and stamping timestamp columns. It returns the new key.
// Fallback-key entities carry their key column in MutableFields; a
// caller-supplied value for it wins over the generated one.
func (d *Dispatcher) Insert(ctx context.Context, e Entity, values map[string]any) (string, error) {
	id := uuid.NewString()
	if v, ok := values[e.PrimaryKey].(string); ok && v != "" {
		id = v
	}
	ts := now()

	cols := []string{e.PrimaryKey}
	args := []any{id}
	for _, col := range e.MutableFields {
		if col == e.PrimaryKey {
			continue
		}
		cols = append(cols, col)
		args = append(args, values[col])
	}
	if e.CreateTimestampColumn != "" {
		cols = append(cols, e.CreateTimestampColumn)
		args = append(args, ts)
	}
	if e.UpdateTimestampColumn != "" {
		cols = append(cols, e.UpdateTimestampColumn)
		args = append(args, ts)
	}
	if e.SoftDeleteColumn != "" {
		cols = append(cols, e.SoftDeleteColumn)
		args = append(args, false)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		e.Table, strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert %s: %w", e.Name, err)
	}
	return id, nil
}

// Update rewrites the mutable columns of one row via the canned update
// statement, refreshing the update timestamp when the entity carries one.
func (d *Dispatcher) Update(ctx context.Context, e Entity, id any, values map[string]any) error {
	if e.UpdateSQL == "" {
		return fmt.Errorf("update %s: entity has no mutable columns", e.Name)
	}
	var args []any
	for _, col := range e.MutableFields {
		args = append(args, values[col])
	}
	if e.UpdateTimestampColumn != "" {
		args = append(args, now())
	}
	args = append(args, id)

	if _, err := d.db.ExecContext(ctx, e.UpdateSQL, args...); err != nil {
		return fmt.Errorf("update %s %v: %w", e.Name, id, err)
	}
	return nil
}

// Delete removes a row, or flags it when the entity soft-deletes.
func (d *Dispatcher) Delete(ctx context.Context, e Entity, id any) error {
	if e.SoftDeleteColumn != "" {
		query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?",
			e.Table, e.SoftDeleteColumn, e.PrimaryKey)
		if _, err := d.db.ExecContext(ctx, query, true, id); err != nil {
			return fmt.Errorf("soft-delete %s %v: %w", e.Name, id, err)
		}
		return nil
	}
	if _, err := d.db.ExecContext(ctx, e.DeleteSQL, id); err != nil {
		return fmt.Errorf("delete %s %v: %w", e.Name, id, err)
	}
	return nil
}
