package generator

import (
	"fmt"
	"strings"

	"github.com/justinTNT/hedge-sub000/internal/meta"
	"github.com/justinTNT/hedge-sub000/internal/parser"
)

// RoutesSource emits the dispatch table binding each declared method+path
// to its handler entry point.
func RoutesSource(endpoints []parser.Endpoint, pkg string, opts Options) string {
	var b strings.Builder
	b.WriteString(goHeader)
	fmt.Fprintf(&b, "\npackage %s\n\n", pkg)
	fmt.Fprintf(&b, "import (\n\t\"net/http\"\n\n\t\"github.com/go-chi/chi/v5\"\n\n\t%q\n)\n", opts.HandlersImport)

	b.WriteString("\n// Register wires every declared endpoint to its handler.\n")
	b.WriteString("func Register(r chi.Router) {\n")
	for _, ep := range endpoints {
		fmt.Fprintf(&b, "\tr.Method(%q, %q, http.HandlerFunc(handlers.%s))\n", ep.Method, ep.Path, ep.Name)
	}
	b.WriteString("}\n")
	return b.String()
}

// HandlerSource emits the write-once stub for one endpoint. The generator
// never rewrites these files, so developer-filled bodies survive reruns.
func HandlerSource(ep parser.Endpoint, pkg string, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("import \"net/http\"\n\n")
	fmt.Fprintf(&b, "// %s handles %s %s.\n", ep.Name, ep.Method, ep.Path)
	if opts.GenImport != "" {
		if ep.Request != "" {
			fmt.Fprintf(&b, "// Decode the body with %s/serde.Decode%s.\n", opts.GenImport, ep.Request)
		}
		fmt.Fprintf(&b, "// Row access lives in %s/rows.\n", opts.GenImport)
	}
	fmt.Fprintf(&b, "func %s(w http.ResponseWriter, r *http.Request) {\n", ep.Name)
	fmt.Fprintf(&b, "\thttp.Error(w, %q, http.StatusNotImplemented)\n", ep.Name+" not implemented")
	b.WriteString("}\n")
	return b.String()
}

// HandlerFileName returns the per-endpoint stub file name.
func HandlerFileName(ep parser.Endpoint) string {
	return meta.SnakeCase(ep.Name) + ".go"
}
