// Package expand turns a union descriptor into the generated kind-enum
// source: a payload-free kind type mirroring the variant set, a total tag
// function, and per-variant predicates and payload accessors.
package expand

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"
	"github.com/stoewer/go-strcase"
)

// ErrNoVariants is returned when the union has no member types.
var ErrNoVariants = errors.New("union has no variants")

// Fragment is the case transform applied to a variant name before it is
// spliced into a generated identifier. Word boundaries follow go-strcase,
// so acronyms are normalized (HTTPError becomes HttpError). Names that
// collapse to the same fragment collide in the generated file and surface
// as duplicate-definition errors from the compiler.
func Fragment(name string) string {
	return strcase.UpperCamelCase(name)
}

// Expand generates the kind enum and accessor functions for e.
// It either returns a complete file or an error, never partial output.
func Expand(e Enum, receiver, reproCmd string) (f *jen.File, err error) {
	defer func() {
		if r := recover(); r != nil {
			f = nil
			err = r.(error)
		}
	}()

	if e.Name == "" {
		return nil, errors.New("union name is empty")
	}

	if len(e.Variants) == 0 {
		return nil, fmt.Errorf("%s: %w", e.Name, ErrNoVariants)
	}

	// Work on a copy so the caller's descriptor is never mutated.
	e.Variants = append([]Variant(nil), e.Variants...)

	uniqueStrings := make(map[string]bool, len(e.Variants))
	uniqueNames := make(map[string]bool, len(e.Variants))
	for i := range e.Variants {
		v := &e.Variants[i]
		if v.Str == "" {
			v.Str = v.Name
		}

		if v.Shape == PayloadSingle && v.Payload == nil {
			return nil, fmt.Errorf("variant %s: single payload without a payload type", v.Name)
		}

		if uniqueStrings[v.Str] {
			return nil, fmt.Errorf("duplicate string found: %q", v.Str)
		}

		if uniqueNames[v.Str] {
			return nil, fmt.Errorf("string collides with existing name: %q", v.Str)
		}

		uniqueStrings[v.Str] = true
		uniqueNames[v.Name] = true
	}

	if receiver == "" {
		receiver = defaultReceiverName(e.Name)
	}
	receiver = safeIdent(receiver)

	variantNames := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		variantNames[i] = v.Name
	}
	vParam := safeIdent("v", append([]string{receiver}, variantNames...)...)
	xVar := safeIdent("x", append([]string{receiver, vParam}, variantNames...)...)
	zeroVar := safeIdent("zero", append([]string{receiver, vParam, xVar}, variantNames...)...)

	n := names{
		enum:     e.Name,
		exported: ast.IsExported(e.Name),
		kind:     e.Name + "Kind",
		kindOf:   e.Name + "KindOf",
	}

	f = jen.NewFilePathName(e.PkgPath, e.PkgName)
	f.HeaderComment("Code generated by go-kindgen; DO NOT EDIT.")
	f.HeaderComment("Command: " + reproCmd)

	f.Line()
	generateKindType(f, n, e.Variants)

	f.Line()
	generateStringMethod(f, receiver, n, e.Variants)

	f.Line()
	generateDefinedMethod(f, receiver, n, e.Variants)

	f.Line()
	generateNextMethod(f, receiver, n, e.Variants)

	f.Line()
	generateKindOfFunction(f, vParam, n, e.Variants)

	f.Line()
	generatePredicates(f, vParam, n, e.Variants)

	f.Line()
	generateAccessors(f, vParam, xVar, zeroVar, n, e.Variants)

	f.Line()
	generateUnionAssertions(f, n, e.Variants)

	f.Line()

	return f, nil
}

// names holds the generated top-level identifiers, cased after the union.
type names struct {
	enum     string
	exported bool
	kind     string
	kindOf   string
}

// ident matches name's exportedness to the union's.
func (n names) ident(name string) string {
	if n.exported {
		return name
	}
	return unexportedName(name)
}

func (n names) constant(v Variant) string {
	return n.kind + Fragment(v.Name)
}

func (n names) is(v Variant) string {
	return n.ident("Is" + Fragment(v.Name))
}

func (n names) as(v Variant) string {
	return n.ident("As" + Fragment(v.Name))
}

func (n names) asMut(v Variant) string {
	return n.ident("As" + Fragment(v.Name) + "Mut")
}

// caseType is the type the union holds for v: *Name for pointer-receiver
// variants, Name otherwise.
func caseType(v Variant) *jen.Statement {
	if v.Ptr {
		return jen.Op("*").Id(v.Name)
	}
	return jen.Id(v.Name)
}

// generateKindType generates the kind type and its constants, one per
// variant, in declaration order.
func generateKindType(f *jen.File, n names, vs []Variant) {
	f.Commentf("%s identifies the variant held by a %s.", n.kind, n.enum)
	f.Type().Id(n.kind).Int()

	f.Line()
	f.Const().DefsFunc(func(g *jen.Group) {
		for i, v := range vs {
			if i == 0 {
				g.Id(n.constant(v)).Id(n.kind).Op("=").Iota()
				continue
			}
			g.Id(n.constant(v))
		}
	})
}

// generateStringMethod generates the String() method for the kind type.
func generateStringMethod(f *jen.File, receiver string, n names, vs []Variant) {
	f.Commentf("String implements [fmt.Stringer]. If !%s.Defined(), then a generated string is returned based on %s's value.", receiver, receiver)
	f.Func().Params(jen.Id(receiver).Id(n.kind)).Id("String").Params().String().Block(
		jen.Switch(jen.Id(receiver)).BlockFunc(func(g *jen.Group) {
			for _, v := range vs {
				g.Case(jen.Id(n.constant(v))).Block(jen.Return(jen.Lit(v.Str)))
			}
		}),
		jen.Return(jen.Qual("fmt", "Sprintf").Call(jen.Lit(fmt.Sprintf("%s(%%d)", n.kind)), jen.Int().Parens(jen.Id(receiver)))),
	)
}

// generateDefinedMethod generates the Defined() method for the kind type.
func generateDefinedMethod(f *jen.File, receiver string, n names, vs []Variant) {
	f.Commentf("Defined returns true if %s holds a defined %s value.", receiver, n.kind)
	f.Func().Params(jen.Id(receiver).Id(n.kind)).Id("Defined").Params().Bool().Block(
		jen.Switch(jen.Id(receiver)).Block(
			jen.CaseFunc(func(g *jen.Group) {
				for _, v := range vs {
					g.Id(n.constant(v))
				}
			}).Block(jen.Return(jen.True())),
			jen.Default().Block(jen.Return(jen.False())),
		),
	)
}

// generateNextMethod generates the Next() method for the kind type.
func generateNextMethod(f *jen.File, receiver string, n names, vs []Variant) {
	f.Commentf("Next returns the next defined %s. If %s is not defined, then Next returns the first defined value.", n.kind, receiver)
	f.Commentf("Next() can be used to loop through all variants of a %s.", n.enum)
	f.Func().Params(jen.Id(receiver).Id(n.kind)).Id("Next").Params().Id(n.kind).Block(
		jen.Switch(jen.Id(receiver)).BlockFunc(func(g *jen.Group) {
			for i, v := range vs {
				ni := (i + 1) % len(vs)
				g.Case(jen.Id(n.constant(v))).Block(jen.Return(jen.Id(n.constant(vs[ni]))))
			}
			g.Default().Block(jen.Return(jen.Id(n.constant(vs[0]))))
		}),
	)
}

// generateKindOfFunction generates the tag function. It is the single
// source of truth for tag identity; the predicates are defined in terms
// of it.
func generateKindOfFunction(f *jen.File, vParam string, n names, vs []Variant) {
	f.Commentf("%s returns the %s identifying the variant held by %s.", n.kindOf, n.kind, vParam)
	f.Commentf("A nil %s, or a variant added without re-running go-kindgen, yields an undefined %s.", n.enum, n.kind)
	f.Func().Id(n.kindOf).Params(jen.Id(vParam).Id(n.enum)).Id(n.kind).Block(
		jen.Switch(jen.Id(vParam).Assert(jen.Type())).BlockFunc(func(g *jen.Group) {
			for _, v := range vs {
				g.Case(caseType(v)).Block(jen.Return(jen.Id(n.constant(v))))
			}
		}),
		jen.Return(jen.Id(n.kind).Call(jen.Lit(-1))),
	)
}

// generatePredicates generates one Is<Variant> predicate per variant.
func generatePredicates(f *jen.File, vParam string, n names, vs []Variant) {
	for _, v := range vs {
		f.Commentf("%s reports whether %s holds the %s variant.", n.is(v), vParam, v.Name)
		f.Func().Id(n.is(v)).Params(jen.Id(vParam).Id(n.enum)).Bool().Block(
			jen.Return(jen.Id(n.kindOf).Call(jen.Id(vParam)).Op("==").Id(n.constant(v))),
		)
		f.Line()
	}
}

// generateAccessors generates the payload accessors for single-payload
// variants: As<Variant> for every one, As<Variant>Mut only for variants the
// union holds by pointer. Unit and multi-field variants get none.
func generateAccessors(f *jen.File, vParam, xVar, zeroVar string, n names, vs []Variant) {
	for _, v := range vs {
		if v.Shape != PayloadSingle {
			continue
		}

		f.Commentf("%s returns the payload of %s if it holds the %s variant.", n.as(v), vParam, v.Name)
		f.Func().Id(n.as(v)).Params(jen.Id(vParam).Id(n.enum)).Params(v.Payload.Clone(), jen.Bool()).Block(
			jen.If(
				jen.List(jen.Id(xVar), jen.Id("ok")).Op(":=").Id(vParam).Assert(caseType(v)),
				jen.Id("ok"),
			).Block(
				jen.Return(payloadValue(v, xVar), jen.True()),
			),
			jen.Var().Id(zeroVar).Add(v.Payload.Clone()),
			jen.Return(jen.Id(zeroVar), jen.False()),
		)
		f.Line()
	}

	for _, v := range vs {
		if v.Shape != PayloadSingle || !v.Ptr {
			continue
		}

		f.Commentf("%s returns a pointer to the payload of %s if it holds the %s variant.", n.asMut(v), vParam, v.Name)
		f.Commentf("Writes through the pointer are visible to other holders of %s.", vParam)
		f.Func().Id(n.asMut(v)).Params(jen.Id(vParam).Id(n.enum)).Params(jen.Op("*").Add(v.Payload.Clone()), jen.Bool()).Block(
			jen.If(
				jen.List(jen.Id(xVar), jen.Id("ok")).Op(":=").Id(vParam).Assert(caseType(v)),
				jen.Id("ok"),
			).Block(
				jen.Return(payloadPointer(v, xVar), jen.True()),
			),
			jen.Return(jen.Nil(), jen.False()),
		)
		f.Line()
	}
}

// payloadValue is the expression reading v's payload out of xVar.
func payloadValue(v Variant, xVar string) *jen.Statement {
	if v.Field != "" {
		return jen.Id(xVar).Dot(v.Field)
	}

	// Defined-type variant: the payload is the value itself, converted.
	if v.Ptr {
		return jen.Parens(v.Payload.Clone()).Parens(jen.Op("*").Id(xVar))
	}
	return jen.Parens(v.Payload.Clone()).Parens(jen.Id(xVar))
}

// payloadPointer is the expression producing a pointer to v's payload
// inside the pointer-mode value xVar.
func payloadPointer(v Variant, xVar string) *jen.Statement {
	if v.Field != "" {
		return jen.Op("&").Id(xVar).Dot(v.Field)
	}
	return jen.Parens(jen.Op("*").Add(v.Payload.Clone())).Parens(jen.Id(xVar))
}

// generateUnionAssertions pins every variant to the union, so a variant
// that stops implementing it breaks this file instead of the call sites.
func generateUnionAssertions(f *jen.File, n names, vs []Variant) {
	f.Var().DefsFunc(func(g *jen.Group) {
		for _, v := range vs {
			if v.Ptr {
				g.Id("_").Id(n.enum).Op("=").Parens(jen.Op("*").Id(v.Name)).Call(jen.Nil())
				continue
			}
			g.Id("_").Id(n.enum).Op("=").Op("*").New(jen.Id(v.Name))
		}
	})
}

// defaultReceiverName returns the default receiver name for the kind type's
// methods: the first letter of the union's name.
func defaultReceiverName(name string) string {
	s, _ := utf8.DecodeRuneInString(name)
	return unexportedName(string(s))
}

// safeIdent returns an identifier that is safe to use (not a keyword,
// and not already used). want is the requested identifier; not is a
// list of identifiers that are already used.
func safeIdent(want string, not ...string) string {
	if token.IsKeyword(want) {
		return safeIdent("_"+want, not...)
	}

	for _, s := range not {
		if want == s {
			return safeIdent("_"+want, not...)
		}
	}

	return want
}

// unexportedName returns s with the first character replaced
// with its lower case version if it is upper case.
func unexportedName(s string) string {
	if !ast.IsExported(s) {
		return s
	}

	start, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		panic("s is empty")
	}

	start = unicode.ToLower(start)
	return string(start) + s[size:]
}
