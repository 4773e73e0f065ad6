package schema

// TypeRef is the declared shape of a field's type: a name plus type
// arguments. The declaration parser normalizes Go syntax before
// classification: pointers become "Option", slices become "List", and
// package qualifiers on marker types are stripped.
type TypeRef struct {
	Name string
	Args []TypeRef
}

// Wrapper type names recognized by the classifier. These match the exported
// types of pkg/marker.
const (
	wrapPrimaryKey      = "PrimaryKey"
	wrapForeignKey      = "ForeignKey"
	wrapCreateTimestamp = "CreateTimestamp"
	wrapUpdateTimestamp = "UpdateTimestamp"
	wrapSoftDelete      = "SoftDelete"
	wrapRichContent     = "RichContent"
	wrapLink            = "Link"
	wrapRequired        = "Required"
	wrapTrimmed         = "Trimmed"
	wrapInject          = "Inject"
	wrapOption          = "Option"
	wrapList            = "List"
)

// Classify maps a declared type onto its storage type and semantic
// attributes. It is the single source of truth for wrapper-type meaning:
// both the generators and the runtime validator call it.
//
// Resolution order: recognized wrapper names first, then Option/List
// recursion, then primitives, and finally an opaque record reference for
// anything unknown. Unknown names are never rejected, only under-specified.
func Classify(ref TypeRef) (FieldType, []FieldAttr) {
	switch ref.Name {
	case wrapPrimaryKey:
		return FieldType{Kind: KindString}, []FieldAttr{{Kind: AttrPrimaryKey}}
	case wrapForeignKey:
		attr := FieldAttr{Kind: AttrForeignKey}
		if len(ref.Args) > 0 {
			attr.Ref = ref.Args[0].Name
		}
		return FieldType{Kind: KindString}, []FieldAttr{attr}
	case wrapCreateTimestamp:
		return FieldType{Kind: KindInt}, []FieldAttr{{Kind: AttrCreateTimestamp}}
	case wrapUpdateTimestamp:
		return FieldType{Kind: KindInt}, []FieldAttr{{Kind: AttrUpdateTimestamp}}
	case wrapSoftDelete:
		return FieldType{Kind: KindBool}, []FieldAttr{{Kind: AttrSoftDelete}}
	case wrapRichContent:
		return FieldType{Kind: KindString}, []FieldAttr{{Kind: AttrRichContent}}
	case wrapLink:
		return FieldType{Kind: KindString}, []FieldAttr{{Kind: AttrLink}}
	case wrapRequired:
		return FieldType{Kind: KindString}, []FieldAttr{{Kind: AttrRequired}, {Kind: AttrTrim}}
	case wrapTrimmed:
		return FieldType{Kind: KindString}, []FieldAttr{{Kind: AttrTrim}}
	case wrapInject:
		inner := FieldType{Kind: KindString}
		var attrs []FieldAttr
		if len(ref.Args) > 0 {
			inner, attrs = Classify(ref.Args[0])
		}
		return inner, append(attrs, FieldAttr{Kind: AttrInject})
	case wrapOption:
		inner := FieldType{Kind: KindString}
		var attrs []FieldAttr
		if len(ref.Args) > 0 {
			inner, attrs = Classify(ref.Args[0])
		}
		// Attrs survive the Option wrapper: an optional foreign key is
		// still a foreign key.
		return FieldType{Kind: KindOption, Elem: &inner}, attrs
	case wrapList:
		inner := FieldType{Kind: KindString}
		if len(ref.Args) > 0 {
			// List fields are never persisted, so inner attrs are dropped.
			inner, _ = Classify(ref.Args[0])
		}
		return FieldType{Kind: KindList, Elem: &inner}, nil
	case "string":
		return FieldType{Kind: KindString}, nil
	case "int", "int32", "int64":
		return FieldType{Kind: KindInt}, nil
	case "bool":
		return FieldType{Kind: KindBool}, nil
	default:
		return FieldType{Kind: KindRecord, Ref: ref.Name}, nil
	}
}
