// Package runtime is the dynamic twin of the generated serde layer: it
// decodes and validates request payloads against a TypeSchema at runtime,
// applying exactly the rules the generated validators bake in. Both sides
// derive field meaning from schema.Classify, so they cannot drift.
package runtime

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/justinTNT/hedge-sub000/internal/meta"
	"github.com/justinTNT/hedge-sub000/internal/schema"
)

// FieldError is one validation failure. Validation never aborts the caller;
// it collects every violation.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return e.Message }

// Decode unmarshals a JSON payload and validates it against ts. The
// returned map uses column-name keys and has string fields trimmed where
// the schema says so.
func Decode(ts schema.TypeSchema, data []byte) (map[string]any, []FieldError, error) {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", ts.Name, err)
	}
	errs := Validate(ts, obj)
	return obj, errs, nil
}

// Validate applies the schema's field rules to a decoded object, trimming
// in place and returning one FieldError per violation.
func Validate(ts schema.TypeSchema, obj map[string]any) []FieldError {
	var errs []FieldError
	for _, f := range ts.Fields {
		if f.HasAttr(schema.AttrInject) {
			continue
		}
		if f.Type.Unwrap().Kind != schema.KindString || f.Type.IsList() {
			continue
		}
		key := meta.ColumnName(f)
		errs = append(errs, validateString(f, key, obj)...)
	}
	return errs
}

func validateString(f schema.FieldSchema, key string, obj map[string]any) []FieldError {
	raw, present := obj[key]

	var value string
	var isString bool
	if present && raw != nil {
		value, isString = raw.(string)
		if !isString {
			return []FieldError{{Field: f.Name, Message: f.Name + " must be a string"}}
		}
	}

	if f.HasAttr(schema.AttrTrim) && isString {
		value = strings.TrimSpace(value)
		obj[key] = value
	}

	var errs []FieldError
	missing := !present || raw == nil
	if f.HasAttr(schema.AttrRequired) && (missing || value == "") {
		errs = append(errs, FieldError{Field: f.Name, Message: f.Name + " is required"})
	}
	if missing {
		return errs
	}
	if min, ok := f.Attr(schema.AttrMinLength); ok && len(value) < min.N {
		errs = append(errs, FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("%s must be at least %d characters", f.Name, min.N),
		})
	}
	if max, ok := f.Attr(schema.AttrMaxLength); ok && len(value) > max.N {
		errs = append(errs, FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("%s must be at most %d characters", f.Name, max.N),
		})
	}
	return errs
}
