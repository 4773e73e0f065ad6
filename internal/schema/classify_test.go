package schema

import "testing"

func TestClassifyWrappers(t *testing.T) {
	tests := []struct {
		name     string
		ref      TypeRef
		wantKind Kind
		wantAttr AttrKind
		wantRef  string
	}{
		{"primary key", TypeRef{Name: "PrimaryKey"}, KindString, AttrPrimaryKey, ""},
		{"foreign key", TypeRef{Name: "ForeignKey", Args: []TypeRef{{Name: "Owner"}}}, KindString, AttrForeignKey, "Owner"},
		{"create timestamp", TypeRef{Name: "CreateTimestamp"}, KindInt, AttrCreateTimestamp, ""},
		{"update timestamp", TypeRef{Name: "UpdateTimestamp"}, KindInt, AttrUpdateTimestamp, ""},
		{"soft delete", TypeRef{Name: "SoftDelete"}, KindBool, AttrSoftDelete, ""},
		{"rich content", TypeRef{Name: "RichContent"}, KindString, AttrRichContent, ""},
		{"link", TypeRef{Name: "Link"}, KindString, AttrLink, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft, attrs := Classify(tt.ref)
			if ft.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", ft.Kind, tt.wantKind)
			}
			if len(attrs) == 0 {
				t.Fatal("expected at least one attr")
			}
			if attrs[0].Kind != tt.wantAttr {
				t.Errorf("attr = %v, want %v", attrs[0].Kind, tt.wantAttr)
			}
			if attrs[0].Ref != tt.wantRef {
				t.Errorf("attr ref = %q, want %q", attrs[0].Ref, tt.wantRef)
			}
		})
	}
}

func TestClassifyPrimitives(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"string", KindString},
		{"int", KindInt},
		{"int32", KindInt},
		{"int64", KindInt},
		{"bool", KindBool},
	}

	for _, tt := range tests {
		ft, attrs := Classify(TypeRef{Name: tt.in})
		if ft.Kind != tt.want {
			t.Errorf("Classify(%q) kind = %v, want %v", tt.in, ft.Kind, tt.want)
		}
		if len(attrs) != 0 {
			t.Errorf("Classify(%q) attrs = %v, want none", tt.in, attrs)
		}
	}
}

func TestClassifyOptionPreservesAttrs(t *testing.T) {
	ft, attrs := Classify(TypeRef{Name: "Option", Args: []TypeRef{
		{Name: "ForeignKey", Args: []TypeRef{{Name: "Owner"}}},
	}})

	if ft.Kind != KindOption {
		t.Fatalf("kind = %v, want option", ft.Kind)
	}
	if ft.Elem.Kind != KindString {
		t.Errorf("elem kind = %v, want string", ft.Elem.Kind)
	}
	if len(attrs) != 1 || attrs[0].Kind != AttrForeignKey || attrs[0].Ref != "Owner" {
		t.Errorf("attrs = %v, want preserved foreign key", attrs)
	}
}

func TestClassifyListDropsAttrs(t *testing.T) {
	ft, attrs := Classify(TypeRef{Name: "List", Args: []TypeRef{
		{Name: "Link"},
	}})

	if ft.Kind != KindList {
		t.Fatalf("kind = %v, want list", ft.Kind)
	}
	if ft.Elem.Kind != KindString {
		t.Errorf("elem kind = %v, want string", ft.Elem.Kind)
	}
	if len(attrs) != 0 {
		t.Errorf("attrs = %v, want none for list fields", attrs)
	}
}

func TestClassifyUnknownBecomesRecord(t *testing.T) {
	ft, attrs := Classify(TypeRef{Name: "GeoPoint"})
	if ft.Kind != KindRecord || ft.Ref != "GeoPoint" {
		t.Errorf("got %v (ref %q), want record reference", ft.Kind, ft.Ref)
	}
	if len(attrs) != 0 {
		t.Errorf("attrs = %v, want none", attrs)
	}
}

func TestClassifyRequiredImpliesTrim(t *testing.T) {
	_, attrs := Classify(TypeRef{Name: "Required"})
	var hasRequired, hasTrim bool
	for _, a := range attrs {
		switch a.Kind {
		case AttrRequired:
			hasRequired = true
		case AttrTrim:
			hasTrim = true
		}
	}
	if !hasRequired || !hasTrim {
		t.Errorf("attrs = %v, want required and trim", attrs)
	}
}
