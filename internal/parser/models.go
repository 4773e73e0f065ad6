// Package parser loads the engine's two inputs: domain type declarations
// (ordinary Go structs tagged with pkg/marker wrapper types) and endpoint
// descriptors (a YAML file). Output is the normalized schema form consumed
// by metadata derivation and the generators.
package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/justinTNT/hedge-sub000/internal/schema"
)

// tableDirective is the doc-comment prefix that overrides a derived table name.
const tableDirective = "//hedgegen:table"

// LoadModels parses every non-test Go file in dir and returns a TypeSchema
// per exported struct declaration, in file order (files sorted by name so
// repeated runs see a stable order).
func LoadModels(dir string) ([]schema.TypeSchema, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read models dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)

	var out []schema.TypeSchema
	fset := token.NewFileSet()
	for _, file := range files {
		node, err := goparser.ParseFile(fset, file, nil, goparser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		types, err := collectTypes(node)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		out = append(out, types...)
	}
	return out, nil
}

func collectTypes(node *ast.File) ([]schema.TypeSchema, error) {
	var out []schema.TypeSchema
	for _, decl := range node.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || !ts.Name.IsExported() {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}

			typeSchema := schema.TypeSchema{
				Name:          ts.Name.Name,
				TableOverride: tableOverride(gen.Doc, ts.Doc),
			}
			for _, field := range st.Fields.List {
				if len(field.Names) == 0 {
					continue // embedded fields carry no role
				}
				ref, err := typeRef(field.Type)
				if err != nil {
					return nil, fmt.Errorf("type %s: %w", ts.Name.Name, err)
				}
				ft, attrs := schema.Classify(ref)
				// List fields never persist or validate, so they carry no attrs.
				if !ft.IsList() {
					attrs = append(attrs, boundsAttrs(field.Tag)...)
				}
				for _, name := range field.Names {
					if !name.IsExported() {
						continue
					}
					typeSchema.Fields = append(typeSchema.Fields, schema.FieldSchema{
						Name:  name.Name,
						Type:  ft,
						Attrs: attrs,
					})
				}
			}
			out = append(out, typeSchema)
		}
	}
	return out, nil
}

// typeRef normalizes a Go AST type expression into the classifier's input
// form: pointers become Option, slices become List, package qualifiers on
// marker types are dropped.
func typeRef(expr ast.Expr) (schema.TypeRef, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		return schema.TypeRef{Name: t.Name}, nil
	case *ast.SelectorExpr:
		return schema.TypeRef{Name: t.Sel.Name}, nil
	case *ast.StarExpr:
		inner, err := typeRef(t.X)
		if err != nil {
			return schema.TypeRef{}, err
		}
		return schema.TypeRef{Name: "Option", Args: []schema.TypeRef{inner}}, nil
	case *ast.ArrayType:
		inner, err := typeRef(t.Elt)
		if err != nil {
			return schema.TypeRef{}, err
		}
		return schema.TypeRef{Name: "List", Args: []schema.TypeRef{inner}}, nil
	case *ast.IndexExpr:
		base, err := typeRef(t.X)
		if err != nil {
			return schema.TypeRef{}, err
		}
		arg, err := typeRef(t.Index)
		if err != nil {
			return schema.TypeRef{}, err
		}
		base.Args = []schema.TypeRef{arg}
		return base, nil
	case *ast.IndexListExpr:
		base, err := typeRef(t.X)
		if err != nil {
			return schema.TypeRef{}, err
		}
		for _, idx := range t.Indices {
			arg, err := typeRef(idx)
			if err != nil {
				return schema.TypeRef{}, err
			}
			base.Args = append(base.Args, arg)
		}
		return base, nil
	default:
		return schema.TypeRef{}, fmt.Errorf("unsupported field type expression %T", expr)
	}
}

// boundsAttrs reads the `bounds:"min,max"` struct tag. Either side may be
// empty. Go has no type-level integers, so length bounds ride on a tag
// instead of a wrapper type.
func boundsAttrs(tag *ast.BasicLit) []schema.FieldAttr {
	if tag == nil {
		return nil
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return nil
	}
	bounds, ok := reflect.StructTag(raw).Lookup("bounds")
	if !ok {
		return nil
	}

	var attrs []schema.FieldAttr
	parts := strings.SplitN(bounds, ",", 2)
	if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
		attrs = append(attrs, schema.FieldAttr{Kind: schema.AttrMinLength, N: n})
	}
	if len(parts) == 2 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			attrs = append(attrs, schema.FieldAttr{Kind: schema.AttrMaxLength, N: n})
		}
	}
	return attrs
}

func tableOverride(docs ...*ast.CommentGroup) string {
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, c := range doc.List {
			if strings.HasPrefix(c.Text, tableDirective) {
				return strings.TrimSpace(strings.TrimPrefix(c.Text, tableDirective))
			}
		}
	}
	return ""
}
