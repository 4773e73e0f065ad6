package generator

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/justinTNT/hedge-sub000/internal/meta"
	"github.com/justinTNT/hedge-sub000/internal/schema"
)

// goHeader opens every generated Go file.
const goHeader = "// Code generated by hedgegen. DO NOT EDIT.\n"

// goType maps a classified field type to the Go type used in row structs.
// Records are stored serialized, so they surface as string here.
func goType(t schema.FieldType) string {
	switch t.Kind {
	case schema.KindString, schema.KindRecord:
		return "string"
	case schema.KindInt:
		return "int64"
	case schema.KindBool:
		return "bool"
	case schema.KindOption:
		return "*" + goType(*t.Elem)
	default:
		return "string"
	}
}

// pluralGoName is the exported plural form of a table's Go name
// (microblog_items -> MicroblogItems).
func pluralGoName(m meta.TableMeta) string {
	return strcase.ToCamel(m.TableName)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// insertSQL is derived here rather than in meta: only the row-access layer
// inserts full rows, everything else works from the four canned statements.
func insertSQL(m meta.TableMeta) string {
	cols := m.ColumnNames()
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		m.TableName, strings.Join(cols, ", "), placeholders(len(cols)))
}

func primaryKeyField(m meta.TableMeta) (schema.FieldSchema, bool) {
	for _, f := range m.DBFields {
		if meta.ColumnName(f) == m.PrimaryKeyColumn {
			return f, true
		}
	}
	return schema.FieldSchema{}, false
}

// RowsSource emits the row-access layer: one row struct, a create shape
// restricted to mutable fields, a scan helper, and typed statement wrappers
// over sqlx, plus a scoped selector per foreign-key field.
func RowsSource(metas []meta.TableMeta, pkg string) string {
	var b strings.Builder
	b.WriteString(goHeader)
	fmt.Fprintf(&b, "\npackage %s\n", pkg)
	if len(metas) == 0 {
		return b.String()
	}
	b.WriteString("\nimport (\n\t\"context\"\n\n\t\"github.com/jmoiron/sqlx\"\n)\n")

	for i := range metas {
		writeRowAccess(&b, metas[i])
	}
	return b.String()
}

func writeRowAccess(b *strings.Builder, m meta.TableMeta) {
	name := m.DisplayName
	plural := pluralGoName(m)

	pkField, ok := primaryKeyField(m)
	pkType := "string"
	if ok {
		pkType = goType(pkField.Type)
	}

	// Row struct: the full storage shape.
	fmt.Fprintf(b, "\n// %sRow is the storage shape of one %s row.\n", name, m.TableName)
	fmt.Fprintf(b, "type %sRow struct {\n", name)
	for _, f := range m.DBFields {
		fmt.Fprintf(b, "\t%s %s `db:%q`\n", f.Name, goType(f.Type), meta.ColumnName(f))
	}
	b.WriteString("}\n")

	// Create shape: caller-supplied fields only.
	fmt.Fprintf(b, "\n// New%s carries the caller-supplied fields for an insert;\n", name)
	b.WriteString("// auto-managed columns are filled by the engine.\n")
	fmt.Fprintf(b, "type New%s struct {\n", name)
	for _, f := range m.MutableFields {
		fmt.Fprintf(b, "\t%s %s `db:%q`\n", f.Name, goType(f.Type), meta.ColumnName(f))
	}
	b.WriteString("}\n")

	// Canned statements. Tables without settable columns get no update.
	fmt.Fprintf(b, "\nconst (\n")
	fmt.Fprintf(b, "\tselectAll%sSQL = %q\n", plural, m.SelectAllSQL)
	fmt.Fprintf(b, "\tselectOne%sSQL = %q\n", name, m.SelectOneSQL)
	fmt.Fprintf(b, "\tinsert%sSQL = %q\n", name, insertSQL(m))
	if m.UpdateSQL != "" {
		fmt.Fprintf(b, "\tupdate%sSQL = %q\n", name, m.UpdateSQL)
	}
	fmt.Fprintf(b, "\tdelete%sSQL = %q\n", name, m.DeleteSQL)
	b.WriteString(")\n")

	// Scan helper, usable with any *sql.Row-shaped scanner.
	fmt.Fprintf(b, "\n// Scan%s reads one row in column order.\n", name)
	fmt.Fprintf(b, "func Scan%s(scan func(...any) error) (*%sRow, error) {\n", name, name)
	fmt.Fprintf(b, "\tvar row %sRow\n", name)
	var targets []string
	for _, f := range m.DBFields {
		targets = append(targets, "&row."+f.Name)
	}
	fmt.Fprintf(b, "\tif err := scan(%s); err != nil {\n\t\treturn nil, err\n\t}\n", strings.Join(targets, ", "))
	b.WriteString("\treturn &row, nil\n}\n")

	// Select all.
	fmt.Fprintf(b, "\nfunc SelectAll%s(ctx context.Context, db *sqlx.DB) ([]%sRow, error) {\n", plural, name)
	fmt.Fprintf(b, "\tvar rows []%sRow\n", name)
	fmt.Fprintf(b, "\tif err := db.SelectContext(ctx, &rows, selectAll%sSQL); err != nil {\n\t\treturn nil, err\n\t}\n", plural)
	b.WriteString("\treturn rows, nil\n}\n")

	// Select one.
	fmt.Fprintf(b, "\nfunc Select%s(ctx context.Context, db *sqlx.DB, id %s) (*%sRow, error) {\n", name, pkType, name)
	fmt.Fprintf(b, "\tvar row %sRow\n", name)
	fmt.Fprintf(b, "\tif err := db.GetContext(ctx, &row, selectOne%sSQL, id); err != nil {\n\t\treturn nil, err\n\t}\n", name)
	b.WriteString("\treturn &row, nil\n}\n")

	// Insert.
	fmt.Fprintf(b, "\nfunc Insert%s(ctx context.Context, db *sqlx.DB, row *%sRow) error {\n", name, name)
	var args []string
	for _, f := range m.DBFields {
		args = append(args, "row."+f.Name)
	}
	fmt.Fprintf(b, "\t_, err := db.ExecContext(ctx, insert%sSQL, %s)\n", name, strings.Join(args, ", "))
	b.WriteString("\treturn err\n}\n")

	// Update: mutable fields, refreshed update timestamp when present.
	if m.UpdateSQL != "" {
		if m.HasUpdateTimestamp {
			fmt.Fprintf(b, "\nfunc Update%s(ctx context.Context, db *sqlx.DB, id %s, changes *New%s, updatedAt int64) error {\n", name, pkType, name)
		} else {
			fmt.Fprintf(b, "\nfunc Update%s(ctx context.Context, db *sqlx.DB, id %s, changes *New%s) error {\n", name, pkType, name)
		}
		args = args[:0]
		for _, f := range m.MutableFields {
			args = append(args, "changes."+f.Name)
		}
		if m.HasUpdateTimestamp {
			args = append(args, "updatedAt")
		}
		args = append(args, "id")
		fmt.Fprintf(b, "\t_, err := db.ExecContext(ctx, update%sSQL, %s)\n", name, strings.Join(args, ", "))
		b.WriteString("\treturn err\n}\n")
	}

	// Delete.
	fmt.Fprintf(b, "\nfunc Delete%s(ctx context.Context, db *sqlx.DB, id %s) error {\n", name, pkType)
	fmt.Fprintf(b, "\t_, err := db.ExecContext(ctx, delete%sSQL, id)\n", name)
	b.WriteString("\treturn err\n}\n")

	// Foreign-key-scoped selectors.
	for _, f := range m.ForeignKeyFields {
		col := meta.ColumnName(f)
		sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
			strings.Join(m.ColumnNames(), ", "), m.TableName, col)
		if created := m.CreateTimestampColumn(); created != "" {
			sql += fmt.Sprintf(" ORDER BY %s DESC", created)
		}
		fmt.Fprintf(b, "\nfunc Select%sBy%s(ctx context.Context, db *sqlx.DB, %s %s) ([]%sRow, error) {\n",
			plural, f.Name, lowerFirst(f.Name), goType(f.Type), name)
		fmt.Fprintf(b, "\tvar rows []%sRow\n", name)
		fmt.Fprintf(b, "\tif err := db.SelectContext(ctx, &rows, %q, %s); err != nil {\n\t\treturn nil, err\n\t}\n",
			sql, lowerFirst(f.Name))
		b.WriteString("\treturn rows, nil\n}\n")
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
