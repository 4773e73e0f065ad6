package runtime

import (
	"testing"

	"github.com/justinTNT/hedge-sub000/internal/schema"
)

func requestSchema() schema.TypeSchema {
	title, titleAttrs := schema.Classify(schema.TypeRef{Name: "Required"})
	titleAttrs = append(titleAttrs,
		schema.FieldAttr{Kind: schema.AttrMinLength, N: 3},
		schema.FieldAttr{Kind: schema.AttrMaxLength, N: 10},
	)
	body, bodyAttrs := schema.Classify(schema.TypeRef{Name: "RichContent"})
	session, sessionAttrs := schema.Classify(schema.TypeRef{Name: "Inject", Args: []schema.TypeRef{{Name: "string"}}})

	return schema.TypeSchema{
		Name: "NewItemRequest",
		Fields: []schema.FieldSchema{
			{Name: "Title", Type: title, Attrs: titleAttrs},
			{Name: "Body", Type: body, Attrs: bodyAttrs},
			{Name: "SessionUser", Type: session, Attrs: sessionAttrs},
		},
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	errs := Validate(requestSchema(), map[string]any{
		"title": "  ",
		"body":  "hello",
	})

	if len(errs) != 2 {
		t.Fatalf("errs = %v, want required + min length", errs)
	}
	if errs[0].Message != "Title is required" {
		t.Errorf("errs[0] = %q", errs[0].Message)
	}
	if errs[1].Message != "Title must be at least 3 characters" {
		t.Errorf("errs[1] = %q", errs[1].Message)
	}
}

func TestValidateMaxLengthWording(t *testing.T) {
	errs := Validate(requestSchema(), map[string]any{
		"title": "a very long title indeed",
	})

	if len(errs) != 1 {
		t.Fatalf("errs = %v, want one", errs)
	}
	if errs[0].Message != "Title must be at most 10 characters" {
		t.Errorf("message = %q", errs[0].Message)
	}
}

func TestValidateTrimsInPlace(t *testing.T) {
	obj := map[string]any{"title": "  padded  "}
	errs := Validate(requestSchema(), obj)

	if len(errs) != 0 {
		t.Fatalf("errs = %v, want none", errs)
	}
	if obj["title"] != "padded" {
		t.Errorf("title = %q, want trimmed value", obj["title"])
	}
}

func TestValidateSkipsInjectedFields(t *testing.T) {
	// SessionUser is server-injected; its absence is not a client error.
	errs := Validate(requestSchema(), map[string]any{"title": "okay"})
	for _, e := range errs {
		if e.Field == "SessionUser" {
			t.Errorf("injected field validated: %v", e)
		}
	}
}

func TestValidateSkipsListFields(t *testing.T) {
	listType, _ := schema.Classify(schema.TypeRef{Name: "List", Args: []schema.TypeRef{{Name: "string"}}})
	ts := schema.TypeSchema{
		Name: "NewItemRequest",
		Fields: []schema.FieldSchema{
			{Name: "Tags", Type: listType, Attrs: []schema.FieldAttr{{Kind: schema.AttrMinLength, N: 3}}},
		},
	}

	if errs := Validate(ts, map[string]any{"tags": []any{"a"}}); len(errs) != 0 {
		t.Errorf("errs = %v, list fields are never validated", errs)
	}
}

func TestValidateRejectsWrongType(t *testing.T) {
	errs := Validate(requestSchema(), map[string]any{"title": 42})
	if len(errs) != 1 || errs[0].Message != "Title must be a string" {
		t.Errorf("errs = %v, want type violation", errs)
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	if _, _, err := Decode(requestSchema(), []byte("{nope")); err == nil {
		t.Fatal("expected a decode error")
	}
}
