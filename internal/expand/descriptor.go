package expand

import (
	"github.com/dave/jennifer/jen"
)

// PayloadShape is the structural classification of what a variant carries.
// It is computed once from the variant's declaration and never changes.
type PayloadShape int

const (
	// PayloadUnit is a variant with no payload (an empty struct).
	PayloadUnit PayloadShape = iota
	// PayloadSingle is a variant carrying exactly one payload value: a
	// one-field struct, or a defined type over a non-struct type.
	PayloadSingle
	// PayloadOther is any other shape (multi-field structs). Such variants
	// take part in the kind enum and get a predicate, nothing more.
	PayloadOther
)

func (s PayloadShape) String() string {
	switch s {
	case PayloadUnit:
		return "unit"
	case PayloadSingle:
		return "single"
	case PayloadOther:
		return "other"
	}
	return "unknown"
}

// Variant describes one member type of a union.
type Variant struct {
	// Name is the variant's type name.
	Name string

	// Str is the display string used by the kind enum's String method.
	// If empty, Name is used.
	Str string

	// Shape classifies the variant's payload.
	Shape PayloadShape

	// Payload is the rendered payload type. It must be set exactly when
	// Shape is PayloadSingle.
	Payload *jen.Statement

	// Field is the struct field holding the payload. Empty for defined-type
	// variants, whose payload is reached by conversion instead.
	Field string

	// Ptr marks variants that implement the union with a pointer receiver.
	// The union holds *Name for these, and Name for all others.
	Ptr bool
}

// Enum describes the union to expand: the sealed interface standing in for
// an enum, and its member types in declaration order.
type Enum struct {
	Name     string
	PkgName  string
	PkgPath  string
	Variants []Variant
}
