package generator

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/justinTNT/hedge-sub000/internal/meta"
	"github.com/justinTNT/hedge-sub000/internal/parser"
	"github.com/justinTNT/hedge-sub000/internal/schema"
)

// OpenAPISource renders an OpenAPI 3.1 document covering every declared
// endpoint, with a component schema per domain type. Serialized as indented
// JSON so reruns diff cleanly.
func OpenAPISource(types []schema.TypeSchema, endpoints []parser.Endpoint) (string, error) {
	doc := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "hedge API",
			Description: "Generated by hedgegen from the domain declarations. Do not hand-edit.",
			Version:     "1.0.0",
		},
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}
	doc.Components = &components

	declared := map[string]bool{}
	for _, ts := range types {
		declared[ts.Name] = true
	}
	for _, ts := range types {
		doc.Components.Schemas[ts.Name] = typeSchemaRef(ts, declared)
	}

	doc.Paths = openapi3.NewPaths()
	for _, ep := range endpoints {
		addEndpointPath(doc, ep, declared)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal openapi document: %w", err)
	}
	return string(data) + "\n", nil
}

func typeSchemaRef(ts schema.TypeSchema, declared map[string]bool) *openapi3.SchemaRef {
	properties := openapi3.Schemas{}
	var required []string
	for _, f := range ts.Fields {
		properties[meta.ColumnName(f)] = fieldSchemaRef(f.Type, declared)
		if !f.Type.IsOption() {
			required = append(required, meta.ColumnName(f))
		}
	}
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:       &openapi3.Types{"object"},
			Properties: properties,
			Required:   required,
		},
	}
}

func fieldSchemaRef(t schema.FieldType, declared map[string]bool) *openapi3.SchemaRef {
	switch t.Kind {
	case schema.KindString:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}
	case schema.KindInt:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}}
	case schema.KindBool:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}}
	case schema.KindOption:
		inner := fieldSchemaRef(*t.Elem, declared)
		if inner.Value != nil {
			inner.Value.Nullable = true
		}
		return inner
	case schema.KindList:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type:  &openapi3.Types{"array"},
			Items: fieldSchemaRef(*t.Elem, declared),
		}}
	case schema.KindRecord:
		if declared[t.Ref] {
			return &openapi3.SchemaRef{Ref: "#/components/schemas/" + t.Ref}
		}
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"object"}}}
	default:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}
	}
}

func addEndpointPath(doc *openapi3.T, ep parser.Endpoint, declared map[string]bool) {
	op := openapi3.NewOperation()
	op.OperationID = ep.Name
	op.Responses = openapi3.NewResponses()

	if ep.Request != "" && declared[ep.Request] {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithJSONSchemaRef(
				&openapi3.SchemaRef{Ref: "#/components/schemas/" + ep.Request}),
		}
	}

	result := ep.Response
	if result == "" {
		result = ep.View
	}
	if result != "" && declared[result] {
		resp := openapi3.NewResponse().
			WithDescription(result).
			WithJSONSchemaRef(&openapi3.SchemaRef{Ref: "#/components/schemas/" + result})
		op.Responses.Set("200", &openapi3.ResponseRef{Value: resp})
	} else {
		op.Responses.Set("204", &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("no content"),
		})
	}

	item := doc.Paths.Value(ep.Path)
	if item == nil {
		item = &openapi3.PathItem{}
		doc.Paths.Set(ep.Path, item)
	}
	item.SetOperation(ep.Method, op)
}
