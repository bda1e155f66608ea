package domain

// Category groups related conversion operations. The set is fixed; requests
// naming any other category fail lookup.
type Category string

const (
	CategoryAIData    Category = "ai-data"
	CategoryMedia     Category = "media"
	CategoryFinance   Category = "finance"
	CategoryDeveloper Category = "developer"
	CategoryUtility   Category = "utility"
	CategoryEducation Category = "education"
)

// Categories lists all valid categories in wire order.
func Categories() []Category {
	return []Category{
		CategoryAIData,
		CategoryMedia,
		CategoryFinance,
		CategoryDeveloper,
		CategoryUtility,
		CategoryEducation,
	}
}

// FieldKind is the semantic type a request field is coerced to.
type FieldKind string

const (
	KindString FieldKind = "string"
	KindNumber FieldKind = "number"
	KindInt    FieldKind = "int"
	KindBool   FieldKind = "bool"
	KindEnum   FieldKind = "enum"
)

// FieldSpec describes one input field of an operation: its semantic type and
// the constraints the validator enforces, in declaration order.
type FieldSpec struct {
	Name     string
	Kind     FieldKind
	Required bool

	// Default is applied when an optional field is absent. Its concrete
	// type must already match the field kind.
	Default any

	// Min/Max bound numeric fields (inclusive) when non-nil.
	Min *float64
	Max *float64

	// MaxLen bounds string fields when positive.
	MaxLen int

	// Enum lists the allowed values for enum fields. FoldCase makes the
	// membership check case-insensitive; matches are normalized to the
	// declared casing.
	Enum     []string
	FoldCase bool
}

// OutputField names one field of an operation's result shape. Output schemas
// are descriptive: they document the wire contract and drive the operations
// listing endpoint.
type OutputField struct {
	Name string    `json:"name"`
	Kind FieldKind `json:"kind"`
}

// Descriptor is the immutable identity and schema of one operation. Built
// once at process start, never mutated, safe for unsynchronized reads.
type Descriptor struct {
	Category Category
	Name     string
	Summary  string

	Fields []FieldSpec

	// AcceptsPayload marks file-bearing operations. Their raw byte payload
	// is bounded by the configured ceiling, not by a FieldSpec.
	AcceptsPayload bool

	Outputs []OutputField
}

// Request is the untyped envelope handed to the dispatcher: identity plus
// raw field values (and the byte payload for file-bearing operations). Owned
// by the dispatcher for the duration of one call.
type Request struct {
	Category  Category
	Operation string
	Fields    map[string]any
	Payload   []byte
}

// Bound returns a pointer to v, for FieldSpec Min/Max literals.
func Bound(v float64) *float64 { return &v }
