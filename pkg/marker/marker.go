// Package marker defines the wrapper types that domain declarations use to
// tag fields with semantic roles. The generator recognizes these purely by
// name; at runtime each is a plain carrier for its underlying primitive, so
// tagged models stay usable as ordinary Go values.
package marker

import "strings"

// PrimaryKey marks the row identifier. The engine assigns its value on
// insert; it never appears in mutable column lists.
type PrimaryKey string

// ForeignKey marks a reference to another domain type's primary key. The
// type argument names the referenced domain type.
type ForeignKey[T any] string

// CreateTimestamp is set once when the row is inserted, in unix milliseconds.
type CreateTimestamp int64

// UpdateTimestamp is refreshed on every update, in unix milliseconds.
type UpdateTimestamp int64

// SoftDelete flags the row as deleted instead of removing it.
type SoftDelete bool

// RichContent marks long-form content handled by the rich editor.
type RichContent string

// Link marks a URL field.
type Link string

// Required marks a request string that must be non-empty after trimming.
type Required string

// Trimmed marks a request string whose surrounding whitespace is stripped
// during decode.
type Trimmed string

// Inject marks a request field the server fills in (session identity and the
// like) rather than trusting the client to supply it.
type Inject[T any] struct {
	Value T
}

// TrimSpace trims a string-carrier value in place, whatever its named type.
// Generated validators call this so they never need per-type conversions.
func TrimSpace[T ~string](v *T) {
	*v = T(strings.TrimSpace(string(*v)))
}
