// Package meta derives relational table metadata from type schemas. The
// TableMeta produced here is the single shared fact base for every
// generator and for the live-schema differ.
package meta

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

// SnakeCase converts a declared Go name to its column/table spelling.
func SnakeCase(name string) string {
	return strcase.ToSnake(name)
}

// Pluralize applies the engine's fixed pluralization rule: names ending in
// "s" append "es", names ending in "y" swap it for "ies", everything else
// appends "s". Deliberately simpler than full English pluralization so the
// table name is predictable from the type name.
func Pluralize(name string) string {
	switch {
	case strings.HasSuffix(name, "s"):
		return name + "es"
	case strings.HasSuffix(name, "y"):
		return strings.TrimSuffix(name, "y") + "ies"
	default:
		return name + "s"
	}
}

// TableName derives a table name from a display name.
func TableName(displayName string) string {
	return Pluralize(SnakeCase(displayName))
}

// EntityName returns the singular CamelCase form of a table name, the
// model type name a table would correspond to.
func EntityName(name string) string {
	return inflection.Singular(strcase.ToCamel(name))
}
