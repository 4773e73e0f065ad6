// Package schema holds the normalized description of a domain model: field
// types, semantic attributes, and the classifier that maps declared wrapper
// types onto them. Everything downstream (table metadata, generators, the
// runtime validator) consumes these types and nothing else.
package schema

import "fmt"

// Kind enumerates the shapes a field type can take.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	// KindOption wraps another type to mark it nullable.
	KindOption
	// KindList wraps another type; list fields are never persisted as columns.
	KindList
	// KindRecord is an opaque reference to another named type.
	KindRecord
)

// FieldType is the classified type of a single field. Elem is set for
// Option and List wrappers, Ref for Record references.
type FieldType struct {
	Kind Kind
	Elem *FieldType
	Ref  string
}

// String returns a compact human-readable rendering, used in diagnostics.
func (t FieldType) String() string {
	switch t.Kind {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindOption:
		return fmt.Sprintf("option<%s>", t.Elem)
	case KindList:
		return fmt.Sprintf("list<%s>", t.Elem)
	case KindRecord:
		return fmt.Sprintf("record<%s>", t.Ref)
	default:
		return "unknown"
	}
}

// Unwrap returns the innermost non-Option, non-List type.
func (t FieldType) Unwrap() FieldType {
	for t.Kind == KindOption || t.Kind == KindList {
		t = *t.Elem
	}
	return t
}

// IsOption reports whether the type is nullable at the top level.
func (t FieldType) IsOption() bool { return t.Kind == KindOption }

// IsList reports whether the type is a list at the top level.
func (t FieldType) IsList() bool { return t.Kind == KindList }

// AttrKind enumerates the semantic roles a field can carry.
type AttrKind int

const (
	AttrPrimaryKey AttrKind = iota
	AttrCreateTimestamp
	AttrUpdateTimestamp
	AttrSoftDelete
	AttrForeignKey
	AttrRichContent
	AttrLink
	AttrRequired
	AttrTrim
	AttrInject
	AttrMinLength
	AttrMaxLength
)

// FieldAttr is one semantic attribute. Ref carries the referenced type name
// for AttrForeignKey; N carries the bound for AttrMinLength/AttrMaxLength.
type FieldAttr struct {
	Kind AttrKind
	Ref  string
	N    int
}

// FieldSchema describes one declared field. Field order in the containing
// TypeSchema is significant: it is preserved into column order, constructor
// argument order, and migration copy order.
type FieldSchema struct {
	Name  string
	Type  FieldType
	Attrs []FieldAttr
}

// HasAttr reports whether the field carries the given attribute kind.
func (f FieldSchema) HasAttr(kind AttrKind) bool {
	for _, a := range f.Attrs {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// Attr returns the first attribute of the given kind.
func (f FieldSchema) Attr(kind AttrKind) (FieldAttr, bool) {
	for _, a := range f.Attrs {
		if a.Kind == kind {
			return a, true
		}
	}
	return FieldAttr{}, false
}

// AutoManaged reports whether the engine computes this field's value, which
// excludes it from insert/update column lists and admin forms.
func (f FieldSchema) AutoManaged() bool {
	return f.HasAttr(AttrPrimaryKey) ||
		f.HasAttr(AttrCreateTimestamp) ||
		f.HasAttr(AttrUpdateTimestamp) ||
		f.HasAttr(AttrSoftDelete)
}

// TypeSchema is the normalized form of one domain type declaration.
type TypeSchema struct {
	Name   string
	Fields []FieldSchema
	// TableOverride is the explicit table name from a //hedgegen:table
	// directive, empty when the name should be derived.
	TableOverride string
}

// Field returns the field with the given name.
func (ts TypeSchema) Field(name string) (FieldSchema, bool) {
	for _, f := range ts.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSchema{}, false
}
