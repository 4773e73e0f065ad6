package meta

import (
	"fmt"
	"strings"

	"github.com/justinTNT/hedge-sub000/internal/schema"
)

// Column is one derived table column.
type Column struct {
	Name    string
	SQLType string
	NotNull bool
	// PrimaryKey marks the key column; key columns skip the NOT NULL
	// qualifier because PRIMARY KEY already implies it.
	PrimaryKey bool
	// References is the referenced type's display name for foreign-key
	// columns, empty otherwise.
	References string
}

// TableMeta is the derived relational description of one domain type. It is
// a pure function of the TypeSchema, recomputed on every run and never
// hand-authored.
type TableMeta struct {
	DisplayName string
	TableName   string

	// DBFields is the declared fields minus list-typed ones; lists are
	// never persisted as columns.
	DBFields []schema.FieldSchema
	Columns  []Column

	PrimaryKeyColumn string
	// HasPrimaryKey is false when the key column fell back to the first db
	// field because no field was tagged. Callers surface this as a warning.
	HasPrimaryKey      bool
	HasCreateTimestamp bool
	HasUpdateTimestamp bool

	// MutableFields is DBFields minus auto-managed ones: the insert/update
	// column list and the admin-editable set.
	MutableFields    []schema.FieldSchema
	ForeignKeyFields []schema.FieldSchema

	SelectAllSQL string
	SelectOneSQL string
	// UpdateSQL is empty when every column is auto-managed; such tables
	// get no update surface in the generated artifacts.
	UpdateSQL string
	DeleteSQL string
}

// CreateTimestampColumn returns the created-at column name, empty when the
// type has no create timestamp.
func (m TableMeta) CreateTimestampColumn() string {
	for _, f := range m.DBFields {
		if f.HasAttr(schema.AttrCreateTimestamp) {
			return ColumnName(f)
		}
	}
	return ""
}

// UpdateTimestampColumn returns the updated-at column name, empty when absent.
func (m TableMeta) UpdateTimestampColumn() string {
	for _, f := range m.DBFields {
		if f.HasAttr(schema.AttrUpdateTimestamp) {
			return ColumnName(f)
		}
	}
	return ""
}

// SoftDeleteColumn returns the soft-delete column name, empty when absent.
func (m TableMeta) SoftDeleteColumn() string {
	for _, f := range m.DBFields {
		if f.HasAttr(schema.AttrSoftDelete) {
			return ColumnName(f)
		}
	}
	return ""
}

// ColumnNames returns the column names in declaration order.
func (m TableMeta) ColumnNames() []string {
	names := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnName is the column spelling of a field name.
func ColumnName(f schema.FieldSchema) string {
	return SnakeCase(f.Name)
}

// SQLType maps a classified field type to its column type. Options unwrap
// to the inner type; lists never reach storage; records are stored as
// serialized TEXT.
func SQLType(t schema.FieldType) string {
	switch t.Kind {
	case schema.KindString, schema.KindRecord:
		return "TEXT"
	case schema.KindInt, schema.KindBool:
		return "INTEGER"
	case schema.KindOption:
		return SQLType(*t.Elem)
	default:
		return "TEXT"
	}
}

// Compute derives the TableMeta for one type schema. pageSize bounds the
// select-all statement.
func Compute(ts schema.TypeSchema, pageSize int) TableMeta {
	m := TableMeta{
		DisplayName: ts.Name,
		TableName:   ts.TableOverride,
	}
	if m.TableName == "" {
		m.TableName = TableName(ts.Name)
	}

	for _, f := range ts.Fields {
		if f.Type.IsList() {
			continue
		}
		m.DBFields = append(m.DBFields, f)

		switch {
		case f.HasAttr(schema.AttrPrimaryKey):
			m.HasPrimaryKey = true
			m.PrimaryKeyColumn = ColumnName(f)
		case f.HasAttr(schema.AttrCreateTimestamp):
			m.HasCreateTimestamp = true
		case f.HasAttr(schema.AttrUpdateTimestamp):
			m.HasUpdateTimestamp = true
		}

		if f.HasAttr(schema.AttrForeignKey) {
			m.ForeignKeyFields = append(m.ForeignKeyFields, f)
		}
		if !f.AutoManaged() {
			m.MutableFields = append(m.MutableFields, f)
		}
	}

	// Undocumented legacy default: without a tagged key the first db field
	// serves as one. Kept for compatibility; reported by the caller.
	if m.PrimaryKeyColumn == "" && len(m.DBFields) > 0 {
		m.PrimaryKeyColumn = ColumnName(m.DBFields[0])
	}

	for _, f := range m.DBFields {
		col := Column{
			Name:       ColumnName(f),
			SQLType:    SQLType(f.Type),
			PrimaryKey: ColumnName(f) == m.PrimaryKeyColumn,
		}
		col.NotNull = !f.Type.IsOption() && !col.PrimaryKey
		if fk, ok := f.Attr(schema.AttrForeignKey); ok {
			col.References = fk.Ref
		}
		m.Columns = append(m.Columns, col)
	}

	cols := strings.Join(m.ColumnNames(), ", ")
	if created := m.CreateTimestampColumn(); created != "" {
		m.SelectAllSQL = fmt.Sprintf("SELECT %s FROM %s ORDER BY %s DESC LIMIT %d",
			cols, m.TableName, created, pageSize)
	} else {
		m.SelectAllSQL = fmt.Sprintf("SELECT %s FROM %s LIMIT %d", cols, m.TableName, pageSize)
	}
	m.SelectOneSQL = fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", cols, m.TableName, m.PrimaryKeyColumn)

	var sets []string
	for _, f := range m.MutableFields {
		sets = append(sets, ColumnName(f)+" = ?")
	}
	if updated := m.UpdateTimestampColumn(); updated != "" {
		sets = append(sets, updated+" = ?")
	}
	// A table whose columns are all auto-managed has nothing to update;
	// an empty statement tells the generators to skip the update surface.
	if len(sets) > 0 {
		m.UpdateSQL = fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
			m.TableName, strings.Join(sets, ", "), m.PrimaryKeyColumn)
	}
	m.DeleteSQL = fmt.Sprintf("DELETE FROM %s WHERE %s = ?", m.TableName, m.PrimaryKeyColumn)

	return m
}

// ComputeAll derives metadata for every type schema.
func ComputeAll(types []schema.TypeSchema, pageSize int) []TableMeta {
	metas := make([]TableMeta, 0, len(types))
	for _, ts := range types {
		metas = append(metas, Compute(ts, pageSize))
	}
	return metas
}
