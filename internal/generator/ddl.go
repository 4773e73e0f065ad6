package generator

import (
	"fmt"
	"strings"

	"github.com/justinTNT/hedge-sub000/internal/meta"
)

// sqlHeader opens every generated SQL file.
const sqlHeader = "-- Code generated by hedgegen. DO NOT EDIT.\n"

// PrimaryKeyColumns maps display names to primary-key column names, used to
// resolve foreign-key targets.
func PrimaryKeyColumns(metas []meta.TableMeta) map[string]string {
	out := make(map[string]string, len(metas))
	for _, m := range metas {
		out[m.DisplayName] = m.PrimaryKeyColumn
	}
	return out
}

// SchemaSQL emits one CREATE TABLE per table, in the order given (callers
// pass dependency order), plus secondary indexes on every foreign-key
// column and on the creation-timestamp column when present.
func SchemaSQL(metas []meta.TableMeta) string {
	pks := PrimaryKeyColumns(metas)

	var b strings.Builder
	b.WriteString(sqlHeader)
	for _, m := range metas {
		b.WriteString("\n")
		b.WriteString(CreateTableSQL(m, pks))
		for _, idx := range IndexSQL(m) {
			b.WriteString(idx)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// CreateTableSQL renders the CREATE TABLE statement for one table. pks
// resolves foreign-key target columns; unknown targets default to "id".
func CreateTableSQL(m meta.TableMeta, pks map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", m.TableName)

	var lines []string
	for _, c := range m.Columns {
		line := fmt.Sprintf("    %s %s", c.Name, c.SQLType)
		if c.PrimaryKey {
			line += " PRIMARY KEY"
		} else if c.NotNull {
			line += " NOT NULL"
		}
		lines = append(lines, line)
	}
	for _, c := range m.Columns {
		if c.References == "" {
			continue
		}
		target := pks[c.References]
		if target == "" {
			target = "id"
		}
		lines = append(lines, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s (%s)",
			c.Name, meta.TableName(c.References), target))
	}

	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);\n")
	return b.String()
}

// IndexSQL returns the secondary index statements for one table: one per
// foreign-key column, one for the creation timestamp.
func IndexSQL(m meta.TableMeta) []string {
	var out []string
	for _, f := range m.ForeignKeyFields {
		col := meta.ColumnName(f)
		out = append(out, fmt.Sprintf("CREATE INDEX idx_%s_%s ON %s (%s);",
			m.TableName, col, m.TableName, col))
	}
	if created := m.CreateTimestampColumn(); created != "" {
		out = append(out, fmt.Sprintf("CREATE INDEX idx_%s_%s ON %s (%s);",
			m.TableName, created, m.TableName, created))
	}
	return out
}
