package generator

import (
	"strings"
	"testing"

	"github.com/justinTNT/hedge-sub000/internal/meta"
	"github.com/justinTNT/hedge-sub000/internal/parser"
	"github.com/justinTNT/hedge-sub000/internal/schema"
)

func field(name string, ref schema.TypeRef, extra ...schema.FieldAttr) schema.FieldSchema {
	ft, attrs := schema.Classify(ref)
	return schema.FieldSchema{Name: name, Type: ft, Attrs: append(attrs, extra...)}
}

func ownerMeta() meta.TableMeta {
	return meta.Compute(schema.TypeSchema{
		Name: "Owner",
		Fields: []schema.FieldSchema{
			field("ID", schema.TypeRef{Name: "PrimaryKey"}),
			field("Name", schema.TypeRef{Name: "string"}),
		},
	}, 50)
}

func itemMeta() meta.TableMeta {
	return meta.Compute(schema.TypeSchema{
		Name: "MicroblogItem",
		Fields: []schema.FieldSchema{
			field("ID", schema.TypeRef{Name: "PrimaryKey"}),
			field("OwnerID", schema.TypeRef{Name: "ForeignKey", Args: []schema.TypeRef{{Name: "Owner"}}}),
			field("Title", schema.TypeRef{Name: "string"}),
			field("Tags", schema.TypeRef{Name: "List", Args: []schema.TypeRef{{Name: "string"}}}),
			field("Summary", schema.TypeRef{Name: "Option", Args: []schema.TypeRef{{Name: "string"}}}),
			field("CreatedAt", schema.TypeRef{Name: "CreateTimestamp"}),
			field("UpdatedAt", schema.TypeRef{Name: "UpdateTimestamp"}),
		},
	}, 50)
}

func TestSchemaSQL(t *testing.T) {
	metas, err := meta.Order([]meta.TableMeta{itemMeta(), ownerMeta()})
	if err != nil {
		t.Fatal(err)
	}
	sql := SchemaSQL(metas)

	if !strings.HasPrefix(sql, "-- Code generated by hedgegen. DO NOT EDIT.") {
		t.Error("missing do-not-edit marker")
	}
	ownerPos := strings.Index(sql, "CREATE TABLE owners")
	itemPos := strings.Index(sql, "CREATE TABLE microblog_items")
	if ownerPos < 0 || itemPos < 0 {
		t.Fatalf("missing create statements:\n%s", sql)
	}
	if ownerPos > itemPos {
		t.Error("referenced table must be created before its dependent")
	}

	for _, want := range []string{
		"id TEXT PRIMARY KEY",
		"owner_id TEXT NOT NULL",
		"summary TEXT,",
		"FOREIGN KEY (owner_id) REFERENCES owners (id)",
		"CREATE INDEX idx_microblog_items_owner_id ON microblog_items (owner_id);",
		"CREATE INDEX idx_microblog_items_created_at ON microblog_items (created_at);",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("schema missing %q:\n%s", want, sql)
		}
	}
	if strings.Contains(sql, "tags") {
		t.Error("list fields must not become columns")
	}
}

func TestRowsSource(t *testing.T) {
	src := RowsSource([]meta.TableMeta{itemMeta()}, "rows")

	for _, want := range []string{
		"// Code generated by hedgegen. DO NOT EDIT.",
		"package rows",
		"type MicroblogItemRow struct {",
		"Summary *string `db:\"summary\"`",
		"type NewMicroblogItem struct {",
		"func SelectAllMicroblogItems(ctx context.Context, db *sqlx.DB)",
		"func SelectMicroblogItem(ctx context.Context, db *sqlx.DB, id string)",
		"func UpdateMicroblogItem(ctx context.Context, db *sqlx.DB, id string, changes *NewMicroblogItem, updatedAt int64) error",
		"func SelectMicroblogItemsByOwnerID(ctx context.Context, db *sqlx.DB, ownerID string)",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("rows source missing %q", want)
		}
	}
	if strings.Contains(src, "Tags") {
		t.Error("list fields must not appear in row structs")
	}
	if strings.Contains(src, "changes.CreatedAt") {
		t.Error("auto-managed fields must not be in the create shape")
	}
}

func pkOnlyMeta() meta.TableMeta {
	return meta.Compute(schema.TypeSchema{
		Name: "Owner",
		Fields: []schema.FieldSchema{
			field("ID", schema.TypeRef{Name: "PrimaryKey"}),
		},
	}, 50)
}

func TestRowsSourceSkipsUpdateWithoutMutableColumns(t *testing.T) {
	src := RowsSource([]meta.TableMeta{pkOnlyMeta()}, "rows")

	if strings.Contains(src, "func UpdateOwner") {
		t.Error("update function emitted for a table with nothing to set")
	}
	if strings.Contains(src, "updateOwnerSQL") {
		t.Error("update statement emitted for a table with nothing to set")
	}
	if strings.Contains(src, "SET  WHERE") {
		t.Errorf("malformed update statement in output:\n%s", src)
	}
	if !strings.Contains(src, "func DeleteOwner") {
		t.Error("delete function should still be emitted")
	}
}

func TestRowsSourceEmptyModelHasNoImports(t *testing.T) {
	src := RowsSource(nil, "rows")
	if strings.Contains(src, "import") {
		t.Errorf("empty model must not import anything:\n%s", src)
	}
	if !strings.Contains(src, "package rows") {
		t.Errorf("output = %q", src)
	}
}

func TestAdminSource(t *testing.T) {
	src := AdminSource([]meta.TableMeta{itemMeta()}, "admin")

	for _, want := range []string{
		"var Entities = []admin.Entity{",
		`Table:         "microblog_items"`,
		`PrimaryKey:    "id"`,
		`MutableFields: []string{"owner_id", "title", "summary"}`,
		`UpdateTimestampColumn: "updated_at"`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("admin source missing %q:\n%s", want, src)
		}
	}
}

func TestAdminSourceOmitsUpdateWithoutMutableColumns(t *testing.T) {
	src := AdminSource([]meta.TableMeta{pkOnlyMeta()}, "admin")

	if strings.Contains(src, "UpdateSQL") {
		t.Errorf("descriptor carries an update statement with nothing to set:\n%s", src)
	}
	if !strings.Contains(src, "DeleteSQL") {
		t.Error("delete statement missing")
	}
}

func testEndpoints() []parser.Endpoint {
	return []parser.Endpoint{
		{Name: "NewItem", Method: "POST", Path: "/api/item", Request: "NewItemRequest", Response: "MicroblogItem"},
		{Name: "ListItems", Method: "GET", Path: "/api/items", View: "ItemListView"},
	}
}

func requestTypes() []schema.TypeSchema {
	return []schema.TypeSchema{
		{
			Name: "NewItemRequest",
			Fields: []schema.FieldSchema{
				field("Title", schema.TypeRef{Name: "Required"},
					schema.FieldAttr{Kind: schema.AttrMinLength, N: 3},
					schema.FieldAttr{Kind: schema.AttrMaxLength, N: 80}),
				field("Body", schema.TypeRef{Name: "RichContent"}),
			},
		},
		{
			Name: "MicroblogItem",
			Fields: []schema.FieldSchema{
				field("ID", schema.TypeRef{Name: "PrimaryKey"}),
				field("Title", schema.TypeRef{Name: "string"}),
			},
		},
		{
			Name: "ItemListView",
			Fields: []schema.FieldSchema{
				field("Items", schema.TypeRef{Name: "List", Args: []schema.TypeRef{{Name: "MicroblogItem"}}}),
			},
		},
	}
}

func TestSerdeSource(t *testing.T) {
	src := SerdeSource(requestTypes(), testEndpoints(), "serde", Options{ModelsImport: "app/models"})

	for _, want := range []string{
		"func DecodeNewItemRequest(r io.Reader) (*models.NewItemRequest, error)",
		"func ValidateNewItemRequest(v *models.NewItemRequest) error",
		"marker.TrimSpace(&v.Title)",
		`"Title is required"`,
		`"Title must be at least 3 characters"`,
		`"Title must be at most 80 characters"`,
		"func EncodeMicroblogItem(w io.Writer, v *models.MicroblogItem) error",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("serde source missing %q", want)
		}
	}
	if strings.Contains(src, "func ValidateMicroblogItem") {
		t.Error("non-request types must not get validators")
	}
}

func TestSerdeSourceSkipsListFields(t *testing.T) {
	// Even if a list field somehow carries a bound, the validator skips it,
	// matching the runtime validator's rule.
	types := []schema.TypeSchema{
		{
			Name: "NewItemRequest",
			Fields: []schema.FieldSchema{
				field("Title", schema.TypeRef{Name: "Required"}),
				field("Tags", schema.TypeRef{Name: "List", Args: []schema.TypeRef{{Name: "string"}}},
					schema.FieldAttr{Kind: schema.AttrMinLength, N: 3}),
			},
		},
	}
	src := SerdeSource(types, testEndpoints(), "serde", Options{ModelsImport: "app/models"})

	if strings.Contains(src, "v.Tags") {
		t.Errorf("validator touches a list field:\n%s", src)
	}
	if !strings.Contains(src, `"Title is required"`) {
		t.Error("string validation missing")
	}
}

func TestSerdeSourceEmptyModelHasNoImports(t *testing.T) {
	src := SerdeSource(nil, nil, "serde", Options{ModelsImport: "app/models"})
	if strings.Contains(src, "import") {
		t.Errorf("empty model must not import anything:\n%s", src)
	}
}

func TestClientSource(t *testing.T) {
	src := ClientSource(testEndpoints(), "client", Options{ModelsImport: "app/models"})

	for _, want := range []string{
		"func (c *Client) NewItem(ctx context.Context, req *models.NewItemRequest) (*models.MicroblogItem, error)",
		"func (c *Client) ListItems(ctx context.Context) (*models.ItemListView, error)",
		`c.BaseURL+"/api/item"`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("client source missing %q", want)
		}
	}
}

func TestRoutesSource(t *testing.T) {
	src := RoutesSource(testEndpoints(), "routes", Options{HandlersImport: "app/handlers"})

	for _, want := range []string{
		"func Register(r chi.Router) {",
		`r.Method("POST", "/api/item", http.HandlerFunc(handlers.NewItem))`,
		`r.Method("GET", "/api/items", http.HandlerFunc(handlers.ListItems))`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("routes source missing %q", want)
		}
	}
}

func TestHandlerSource(t *testing.T) {
	ep := testEndpoints()[0]
	src := HandlerSource(ep, "handlers", Options{GenImport: "app/gen"})

	for _, want := range []string{
		"package handlers",
		"// NewItem handles POST /api/item.",
		"// Decode the body with app/gen/serde.DecodeNewItemRequest.",
		"func NewItem(w http.ResponseWriter, r *http.Request)",
		"http.StatusNotImplemented",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("handler stub missing %q:\n%s", want, src)
		}
	}
	if strings.Contains(src, "DO NOT EDIT") {
		t.Error("handler stubs are developer-owned, not marked generated")
	}

	if got := HandlerFileName(ep); got != "new_item.go" {
		t.Errorf("file name = %q, want new_item.go", got)
	}
}

func TestOpenAPISource(t *testing.T) {
	doc, err := OpenAPISource(requestTypes(), testEndpoints())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`"/api/item"`,
		`"/api/items"`,
		`"#/components/schemas/NewItemRequest"`,
		`"operationId": "ListItems"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("openapi document missing %q", want)
		}
	}
}
