package generator

import (
	"fmt"
	"strings"

	"github.com/justinTNT/hedge-sub000/internal/meta"
)

// adminImport is the runtime package the generated descriptors bind to.
const adminImport = "github.com/justinTNT/hedge-sub000/pkg/admin"

// AdminSource emits one admin.Entity descriptor per table: its canned
// statements and mutable column list, consumed by the generic CRUD
// dispatcher at runtime.
func AdminSource(metas []meta.TableMeta, pkg string) string {
	var b strings.Builder
	b.WriteString(goHeader)
	fmt.Fprintf(&b, "\npackage %s\n\n", pkg)
	fmt.Fprintf(&b, "import %q\n\n", adminImport)

	b.WriteString("// Entities lists every admin-manageable table, in dependency order.\n")
	b.WriteString("var Entities = []admin.Entity{\n")
	for _, m := range metas {
		var mutable []string
		for _, f := range m.MutableFields {
			mutable = append(mutable, fmt.Sprintf("%q", meta.ColumnName(f)))
		}

		fmt.Fprintf(&b, "\t{\n")
		fmt.Fprintf(&b, "\t\tName:          %q,\n", m.DisplayName)
		fmt.Fprintf(&b, "\t\tTable:         %q,\n", m.TableName)
		fmt.Fprintf(&b, "\t\tPrimaryKey:    %q,\n", m.PrimaryKeyColumn)
		fmt.Fprintf(&b, "\t\tSelectAllSQL:  %q,\n", m.SelectAllSQL)
		fmt.Fprintf(&b, "\t\tSelectOneSQL:  %q,\n", m.SelectOneSQL)
		if m.UpdateSQL != "" {
			fmt.Fprintf(&b, "\t\tUpdateSQL:     %q,\n", m.UpdateSQL)
		}
		fmt.Fprintf(&b, "\t\tDeleteSQL:     %q,\n", m.DeleteSQL)
		fmt.Fprintf(&b, "\t\tMutableFields: []string{%s},\n", strings.Join(mutable, ", "))
		if col := m.CreateTimestampColumn(); col != "" {
			fmt.Fprintf(&b, "\t\tCreateTimestampColumn: %q,\n", col)
		}
		if col := m.UpdateTimestampColumn(); col != "" {
			fmt.Fprintf(&b, "\t\tUpdateTimestampColumn: %q,\n", col)
		}
		if col := m.SoftDeleteColumn(); col != "" {
			fmt.Fprintf(&b, "\t\tSoftDeleteColumn:      %q,\n", col)
		}
		fmt.Fprintf(&b, "\t},\n")
	}
	b.WriteString("}\n")
	return b.String()
}
