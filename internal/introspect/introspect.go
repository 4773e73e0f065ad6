// Package introspect is the bridge to the live SQLite store: it lists
// tables, reads column inventories, and applies migration SQL. Failures are
// reported as IntrospectionError values so callers can tell a dead
// connection from output that did not look like a schema.
package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrorKind classifies an introspection failure.
type ErrorKind int

const (
	// KindProcess means the store itself failed: connection, query
	// execution, statement errors.
	KindProcess ErrorKind = iota
	// KindShape means the store answered but the result did not have the
	// expected shape.
	KindShape
)

// IntrospectionError wraps a bridge failure with its classification.
type IntrospectionError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *IntrospectionError) Error() string {
	switch e.Kind {
	case KindShape:
		return fmt.Sprintf("introspect %s: unexpected output shape: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("introspect %s: %v", e.Op, e.Err)
	}
}

func (e *IntrospectionError) Unwrap() error { return e.Err }

func processErr(op string, err error) error {
	return &IntrospectionError{Kind: KindProcess, Op: op, Err: err}
}

func shapeErr(op string, err error) error {
	return &IntrospectionError{Kind: KindShape, Op: op, Err: err}
}

// ColInfo is one introspected column.
type ColInfo struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// tableInfoRow maps a row of PRAGMA table_info().
type tableInfoRow struct {
	CID     int     `db:"cid"`
	Name    string  `db:"name"`
	Type    string  `db:"type"`
	NotNull int     `db:"notnull"`
	Default *string `db:"dflt_value"`
	PK      int     `db:"pk"`
}

// Bridge wraps one open store.
type Bridge struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at path.
func Open(path string) (*Bridge, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, processErr("open", err)
	}
	return &Bridge{db: db}, nil
}

// NewBridge wraps an already-open handle. Tests use this.
func NewBridge(db *sqlx.DB) *Bridge {
	return &Bridge{db: db}
}

// Close releases the connection.
func (b *Bridge) Close() error {
	return b.db.Close()
}

// ListTables returns user table names, excluding the store's own
// sqlite_-prefixed bookkeeping tables.
func (b *Bridge) ListTables(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`

	var names []string
	if err := b.db.SelectContext(ctx, &names, query); err != nil {
		return nil, processErr("list tables", err)
	}
	for _, n := range names {
		if n == "" {
			return nil, shapeErr("list tables", fmt.Errorf("empty table name in listing"))
		}
	}
	return names, nil
}

// TableColumns returns the column inventory of one table in declaration
// order: name, declared type, not-null flag, primary-key flag.
func (b *Bridge) TableColumns(ctx context.Context, table string) ([]ColInfo, error) {
	op := fmt.Sprintf("columns of %q", table)
	query := fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table))

	var rows []tableInfoRow
	if err := b.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, processErr(op, err)
	}
	if len(rows) == 0 {
		return nil, shapeErr(op, fmt.Errorf("no columns reported"))
	}

	cols := make([]ColInfo, 0, len(rows))
	for _, r := range rows {
		if r.Name == "" || r.Type == "" {
			return nil, shapeErr(op, fmt.Errorf("column %d has empty name or type", r.CID))
		}
		cols = append(cols, ColInfo{
			Name:       r.Name,
			Type:       r.Type,
			NotNull:    r.NotNull != 0,
			PrimaryKey: r.PK > 0,
		})
	}
	return cols, nil
}

// Apply executes one migration statement against the store.
func (b *Bridge) Apply(ctx context.Context, stmt string) error {
	if _, err := b.db.ExecContext(ctx, stmt); err != nil {
		return processErr("apply migration", fmt.Errorf("%w\nSQL: %s", err, stmt))
	}
	return nil
}

// quoteIdent wraps a SQL identifier in double quotes, escaping embedded
// quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
