package entity

// Type tags the kind of entity a search result refers to.
type Type string

// Entity type constants.
const (
	Parent  Type = "parent"
	Sitter  Type = "sitter"
	Product Type = "product"
)

// All returns every entity type in tie-break priority order.
func All() []Type {
	return []Type{Parent, Sitter, Product}
}

func (t Type) String() string { return string(t) }

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	return t == Parent || t == Sitter || t == Product
}

// Priority is the fixed tie-break rank of the type (lower sorts first).
// Unknown types sort after all known ones.
func (t Type) Priority() int {
	switch t {
	case Parent:
		return 0
	case Sitter:
		return 1
	case Product:
		return 2
	default:
		return 3
	}
}

// Ref identifies an entity across types. Ids are only unique within a type.
type Ref struct {
	Type Type
	ID   string
}

// String renders the ref as "type:id".
func (r Ref) String() string { return string(r.Type) + ":" + r.ID }
