package generator

import (
	"fmt"
	"strings"

	"github.com/justinTNT/hedge-sub000/internal/parser"
	"github.com/justinTNT/hedge-sub000/internal/schema"
)

// markerImport is where the generated validators find TrimSpace.
const markerImport = "github.com/justinTNT/hedge-sub000/pkg/marker"

// Options carry the import facts baked into generated Go sources.
type Options struct {
	// ModelsImport is the import path of the domain declarations package.
	ModelsImport string
	// ModelsPackage is its package name (the last path element by default).
	ModelsPackage string
	// HandlersImport is the import path of the handlers package, used by
	// the generated route table.
	HandlersImport string
	// GenImport is the import path of the generated packages, cited in
	// handler stub comments.
	GenImport string
}

func (o Options) modelsPkg() string {
	if o.ModelsPackage != "" {
		return o.ModelsPackage
	}
	parts := strings.Split(o.ModelsImport, "/")
	return parts[len(parts)-1]
}

// SerdeSource emits encode/decode pairs for every declared type and a
// validator per request type. Request decoding trims and validates by
// convention: Required means non-empty after trimming, bounds mean
// character-length limits.
func SerdeSource(types []schema.TypeSchema, endpoints []parser.Endpoint, pkg string, opts Options) string {
	requestTypes := map[string]bool{}
	for _, ep := range endpoints {
		if ep.Request != "" {
			requestTypes[ep.Request] = true
		}
	}

	needsValidation := false
	needsTrim := false
	for _, ts := range types {
		if !requestTypes[ts.Name] {
			continue
		}
		needsValidation = true
		for _, f := range ts.Fields {
			if f.HasAttr(schema.AttrTrim) && !f.HasAttr(schema.AttrInject) &&
				f.Type.Unwrap().Kind == schema.KindString {
				needsTrim = true
			}
		}
	}

	var b strings.Builder
	b.WriteString(goHeader)
	fmt.Fprintf(&b, "\npackage %s\n", pkg)
	if len(types) == 0 {
		return b.String()
	}
	b.WriteString("\nimport (\n\t\"encoding/json\"\n")
	if needsValidation {
		b.WriteString("\t\"fmt\"\n")
	}
	b.WriteString("\t\"io\"\n")
	if needsValidation {
		b.WriteString("\t\"strings\"\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "\t%q\n", opts.ModelsImport)
	if needsTrim {
		fmt.Fprintf(&b, "\t%q\n", markerImport)
	}
	b.WriteString(")\n")

	models := opts.modelsPkg()
	for _, ts := range types {
		fmt.Fprintf(&b, "\n// Encode%s writes v as JSON.\n", ts.Name)
		fmt.Fprintf(&b, "func Encode%s(w io.Writer, v *%s.%s) error {\n", ts.Name, models, ts.Name)
		b.WriteString("\treturn json.NewEncoder(w).Encode(v)\n}\n")

		fmt.Fprintf(&b, "\n// Decode%s reads v from JSON", ts.Name)
		if requestTypes[ts.Name] {
			b.WriteString(" and validates it")
		}
		b.WriteString(".\n")
		fmt.Fprintf(&b, "func Decode%s(r io.Reader) (*%s.%s, error) {\n", ts.Name, models, ts.Name)
		fmt.Fprintf(&b, "\tvar v %s.%s\n", models, ts.Name)
		b.WriteString("\tif err := json.NewDecoder(r).Decode(&v); err != nil {\n\t\treturn nil, err\n\t}\n")
		if requestTypes[ts.Name] {
			fmt.Fprintf(&b, "\tif err := Validate%s(&v); err != nil {\n\t\treturn nil, err\n\t}\n", ts.Name)
		}
		b.WriteString("\treturn &v, nil\n}\n")

		if requestTypes[ts.Name] {
			writeValidator(&b, ts, models)
		}
	}
	return b.String()
}

func writeValidator(b *strings.Builder, ts schema.TypeSchema, models string) {
	fmt.Fprintf(b, "\n// Validate%s trims tagged strings and collects every field violation.\n", ts.Name)
	fmt.Fprintf(b, "func Validate%s(v *%s.%s) error {\n", ts.Name, models, ts.Name)
	b.WriteString("\tvar errs []string\n")

	for _, f := range ts.Fields {
		// Same skip rule as the runtime validator: injected and list-typed
		// fields are never validated.
		if f.HasAttr(schema.AttrInject) || f.Type.IsList() ||
			f.Type.Unwrap().Kind != schema.KindString {
			continue
		}
		optional := f.Type.IsOption()
		expr := "v." + f.Name

		if f.HasAttr(schema.AttrTrim) {
			if optional {
				fmt.Fprintf(b, "\tif %s != nil {\n\t\tmarker.TrimSpace(%s)\n\t}\n", expr, expr)
			} else {
				fmt.Fprintf(b, "\tmarker.TrimSpace(&%s)\n", expr)
			}
		}
		if f.HasAttr(schema.AttrRequired) {
			if optional {
				fmt.Fprintf(b, "\tif %s == nil || *%s == \"\" {\n", expr, expr)
			} else {
				fmt.Fprintf(b, "\tif %s == \"\" {\n", expr)
			}
			fmt.Fprintf(b, "\t\terrs = append(errs, %q)\n\t}\n", f.Name+" is required")
		}
		if min, ok := f.Attr(schema.AttrMinLength); ok {
			cond := fmt.Sprintf("len(%s) < %d", expr, min.N)
			if optional {
				cond = fmt.Sprintf("%s != nil && len(*%s) < %d", expr, expr, min.N)
			}
			fmt.Fprintf(b, "\tif %s {\n\t\terrs = append(errs, %q)\n\t}\n",
				cond, fmt.Sprintf("%s must be at least %d characters", f.Name, min.N))
		}
		if max, ok := f.Attr(schema.AttrMaxLength); ok {
			cond := fmt.Sprintf("len(%s) > %d", expr, max.N)
			if optional {
				cond = fmt.Sprintf("%s != nil && len(*%s) > %d", expr, expr, max.N)
			}
			fmt.Fprintf(b, "\tif %s {\n\t\terrs = append(errs, %q)\n\t}\n",
				cond, fmt.Sprintf("%s must be at most %d characters", f.Name, max.N))
		}
	}

	b.WriteString("\tif len(errs) > 0 {\n")
	fmt.Fprintf(b, "\t\treturn fmt.Errorf(\"invalid %s: %%s\", strings.Join(errs, \"; \"))\n", ts.Name)
	b.WriteString("\t}\n\treturn nil\n}\n")
}
