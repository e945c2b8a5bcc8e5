package expand

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"
)

func shapeEnum() Enum {
	return Enum{
		Name:    "Shape",
		PkgName: "example",
		PkgPath: "github.com/a-jentleman/go-kindgen/example",
		Variants: []Variant{
			{Name: "Circle", Shape: PayloadSingle, Payload: jen.Float64()},
			{Name: "Square", Shape: PayloadSingle, Payload: jen.Float64()},
			{Name: "Origin", Shape: PayloadUnit},
			{Name: "Label", Shape: PayloadSingle, Payload: jen.String(), Field: "Text", Ptr: true},
			{Name: "Rect", Shape: PayloadOther},
		},
	}
}

func render(t *testing.T, e Enum, receiver string) string {
	t.Helper()

	f, err := Expand(e, receiver, "go-kindgen --test")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf))
	return buf.String()
}

func TestExpandKindEnum(t *testing.T) {
	src := render(t, shapeEnum(), "")

	require.True(t, strings.HasPrefix(src, "// Code generated by go-kindgen; DO NOT EDIT."))

	require.Contains(t, src, "type ShapeKind int")
	require.Contains(t, src, "ShapeKindCircle ShapeKind = iota")
	require.Contains(t, src, "ShapeKindRect")

	require.Contains(t, src, "func (s ShapeKind) String() string")
	require.Contains(t, src, `return fmt.Sprintf("ShapeKind(%d)", int(s))`)
	require.Contains(t, src, "func (s ShapeKind) Defined() bool")
	require.Contains(t, src, "func (s ShapeKind) Next() ShapeKind")
}

func TestExpandKindOf(t *testing.T) {
	src := render(t, shapeEnum(), "")

	require.Contains(t, src, "func ShapeKindOf(v Shape) ShapeKind")
	require.Contains(t, src, "case Circle:")
	require.Contains(t, src, "case *Label:")
	require.Contains(t, src, "return ShapeKind(-1)")
}

func TestExpandPredicates(t *testing.T) {
	src := render(t, shapeEnum(), "")

	for _, name := range []string{"Circle", "Square", "Origin", "Label", "Rect"} {
		require.Contains(t, src, "func Is"+name+"(v Shape) bool")
		require.Contains(t, src, "return ShapeKindOf(v) == ShapeKind"+name)
	}
}

func TestExpandAccessors(t *testing.T) {
	src := render(t, shapeEnum(), "")

	require.Contains(t, src, "func AsCircle(v Shape) (float64, bool)")
	require.Contains(t, src, "return (float64)(x), true")
	require.Contains(t, src, "var zero float64")

	require.Contains(t, src, "func AsLabel(v Shape) (string, bool)")
	require.Contains(t, src, "return x.Text, true")

	require.Contains(t, src, "func AsLabelMut(v Shape) (*string, bool)")
	require.Contains(t, src, "return &x.Text, true")

	// Unit and multi-field variants get no accessors, and value-mode
	// variants get no mutable accessor.
	require.NotContains(t, src, "AsOrigin")
	require.NotContains(t, src, "AsRect")
	require.NotContains(t, src, "AsCircleMut")
	require.NotContains(t, src, "AsSquareMut")
}

func TestExpandUnionAssertions(t *testing.T) {
	src := render(t, shapeEnum(), "")

	require.Contains(t, src, "_ Shape = *new(Circle)")
	require.Contains(t, src, "_ Shape = (*Label)(nil)")
}

func TestExpandDoesNotMutateInput(t *testing.T) {
	e := shapeEnum()
	_, err := Expand(e, "", "go-kindgen --test")
	require.NoError(t, err)

	for _, v := range e.Variants {
		require.Empty(t, v.Str, "variant %s: display string defaulted into the caller's descriptor", v.Name)
	}
}

func TestExpandReceiverOverride(t *testing.T) {
	src := render(t, shapeEnum(), "kk")

	require.Contains(t, src, "func (kk ShapeKind) String() string")
	require.Contains(t, src, "func (kk ShapeKind) Defined() bool")
}

func TestExpandUnexportedUnion(t *testing.T) {
	src := render(t, Enum{
		Name:    "direction",
		PkgName: "example",
		Variants: []Variant{
			{Name: "North", Shape: PayloadUnit},
			{Name: "South", Shape: PayloadUnit, Str: "due south"},
		},
	}, "")

	require.Contains(t, src, "type directionKind int")
	require.Contains(t, src, "directionKindNorth directionKind = iota")
	require.Contains(t, src, "func directionKindOf(v direction) directionKind")
	require.Contains(t, src, "func isNorth(v direction) bool")
	require.Contains(t, src, "func isSouth(v direction) bool")
	require.Contains(t, src, `return "due south"`)
}

func TestExpandQualifiedPayload(t *testing.T) {
	src := render(t, Enum{
		Name:    "Event",
		PkgName: "example",
		PkgPath: "github.com/a-jentleman/go-kindgen/example",
		Variants: []Variant{
			{Name: "Raw", Shape: PayloadSingle, Payload: jen.Qual("encoding/json", "RawMessage")},
		},
	}, "")

	require.Contains(t, src, `"encoding/json"`)
	require.Contains(t, src, "func AsRaw(v Event) (json.RawMessage, bool)")
}

func TestExpandErrors(t *testing.T) {
	t.Run("NoVariants", func(t *testing.T) {
		_, err := Expand(Enum{Name: "Shape", PkgName: "example"}, "", "go-kindgen --test")
		require.ErrorIs(t, err, ErrNoVariants)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := Expand(Enum{PkgName: "example"}, "", "go-kindgen --test")
		require.Error(t, err)
	})

	t.Run("DuplicateString", func(t *testing.T) {
		_, err := Expand(Enum{
			Name:    "Shape",
			PkgName: "example",
			Variants: []Variant{
				{Name: "Circle", Shape: PayloadUnit, Str: "x"},
				{Name: "Square", Shape: PayloadUnit, Str: "x"},
			},
		}, "", "go-kindgen --test")
		require.ErrorContains(t, err, "duplicate string")
	})

	t.Run("StringCollidesWithName", func(t *testing.T) {
		_, err := Expand(Enum{
			Name:    "Shape",
			PkgName: "example",
			Variants: []Variant{
				{Name: "Circle", Shape: PayloadUnit, Str: "c"},
				{Name: "Square", Shape: PayloadUnit, Str: "Circle"},
			},
		}, "", "go-kindgen --test")
		require.ErrorContains(t, err, "collides")
	})

	t.Run("MissingPayload", func(t *testing.T) {
		_, err := Expand(Enum{
			Name:    "Shape",
			PkgName: "example",
			Variants: []Variant{
				{Name: "Circle", Shape: PayloadSingle},
			},
		}, "", "go-kindgen --test")
		require.ErrorContains(t, err, "single payload")
	})
}

func TestFragment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Circle", "Circle"},
		{"circle", "Circle"},
		{"HTTPError", "HttpError"},
		{"my_variant", "MyVariant"},
	}

	for _, test := range tests {
		require.Equal(t, test.want, Fragment(test.in), "Fragment(%q)", test.in)
	}
}

func TestPayloadShapeString(t *testing.T) {
	require.Equal(t, "unit", PayloadUnit.String())
	require.Equal(t, "single", PayloadSingle.String())
	require.Equal(t, "other", PayloadOther.String())
	require.Equal(t, "unknown", PayloadShape(42).String())
}
