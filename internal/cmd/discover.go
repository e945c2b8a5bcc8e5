package cmd

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"math"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/stoewer/go-strcase"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/a-jentleman/go-kindgen/internal/expand"
)

// loadPackage loads the package of file inputFileName.
func loadPackage(pkgName, inputFileName string) (*packages.Package, error) {
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedTypesInfo |
			packages.NeedDeps |
			packages.NeedSyntax |
			packages.NeedImports},
		fmt.Sprintf("file=%s", inputFileName))
	if err != nil {
		return nil, err
	}

	var ret *packages.Package
	for _, pkg := range pkgs {
		if pkg.Name != pkgName {
			continue
		}

		if ret != nil {
			return nil, fmt.Errorf("multiple packages found with name %s", pkgName)
		}

		ret = pkg
	}

	if ret == nil {
		return nil, fmt.Errorf("no packages found with name %s", pkgName)
	}

	return ret, nil
}

// findUnionDecl finds the *types.TypeName of the union to expand.
// If name is passed, a type with that name is searched for.
// Otherwise, the first type after line in inputFileName is returned.
// The declaration must be an interface type; anything else is rejected.
func findUnionDecl(fset *token.FileSet, info *types.Info, name, inputFileName string, line int) (*types.TypeName, *types.Interface, error) {
	var tn *types.TypeName
	var err error
	if name != "" {
		tn, err = findTypeDeclByName(info, name)
	} else {
		tn, err = findTypeDeclByPosition(fset, info, inputFileName, line)
	}
	if err != nil {
		return nil, nil, err
	}

	iface, ok := tn.Type().Underlying().(*types.Interface)
	if !ok {
		return nil, nil, fmt.Errorf("type %q is not an interface: go-kindgen expands unions declared as marker-method interfaces", tn.Name())
	}

	if named, ok := tn.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
		return nil, nil, fmt.Errorf("type %q is generic: go-kindgen does not support type parameters", tn.Name())
	}

	return tn, iface, nil
}

// findTypeDeclByPosition finds the next *types.TypeName in inputFileName after line
func findTypeDeclByPosition(fset *token.FileSet, info *types.Info, inputFileName string, line int) (*types.TypeName, error) {
	var ret *types.TypeName
	var closestObject types.Object
	closest := math.MaxInt32
	for _, object := range info.Defs {
		if object == nil {
			continue
		}

		p := fset.Position(object.Pos())
		if !sameFile(p.Filename, inputFileName) {
			continue
		}

		if p.Line < line || closest < p.Line {
			continue
		}

		ret = nil // we found something closer than our current closest thing
		closestObject = object

		c, ok := object.(*types.TypeName)
		if !ok {
			continue
		}

		ret = c
		closest = p.Line
	}

	if ret == nil {
		if closestObject != nil {
			return nil, fmt.Errorf("failed to determine type: closest declaration is not a named type: %v", closestObject)
		}
		return nil, fmt.Errorf("failed to determine type")
	}

	return ret, nil
}

// findTypeDeclByName finds the *types.TypeName in info named name.
func findTypeDeclByName(info *types.Info, name string) (*types.TypeName, error) {
	for _, object := range info.Defs {
		if object == nil {
			continue
		}

		c, ok := object.(*types.TypeName)
		if !ok {
			continue
		}

		if c.Name() != name {
			continue
		}

		return c, nil
	}

	return nil, fmt.Errorf("type %q not found", name)
}

// findVariantsOfType finds all package-level types implementing union's
// interface and classifies their payload shapes. The result is ordered by
// source position, mainly to avoid significant differences in version
// control over time.
func findVariantsOfType(pkg *packages.Package, union *types.TypeName, iface *types.Interface, namingStrategy namingStrategyName) ([]expand.Variant, error) {
	type candidate struct {
		tn  *types.TypeName
		ptr bool
	}

	var found []candidate
	scope := pkg.Types.Scope()
	for _, object := range pkg.TypesInfo.Defs {
		if object == nil {
			continue
		}

		tn, ok := object.(*types.TypeName)
		if !ok || tn == union || tn.IsAlias() {
			continue
		}

		if tn.Parent() != scope {
			continue
		}

		if _, ok := tn.Type().Underlying().(*types.Interface); ok {
			continue
		}

		if named, ok := tn.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
			continue // generic types cannot be union members
		}

		switch {
		case types.Implements(tn.Type(), iface):
			found = append(found, candidate{tn: tn, ptr: false})
		case types.Implements(types.NewPointer(tn.Type()), iface):
			found = append(found, candidate{tn: tn, ptr: true})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		ip := pkg.Fset.Position(found[i].tn.Pos())
		jp := pkg.Fset.Position(found[j].tn.Pos())

		return ip.Filename < jp.Filename ||
			ip.Filename == jp.Filename && ip.Offset < jp.Offset
	})

	ret := make([]expand.Variant, 0, len(found))
	for _, c := range found {
		v, err := classifyVariant(pkg, c.tn, c.ptr, namingStrategy)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}

	return ret, nil
}

// classifyVariant derives a variant descriptor from tn's declaration.
// The classification is purely structural: an empty struct is a unit
// variant, a one-field struct or a defined type over a non-struct carries a
// single payload, and everything else is opaque to the generated accessors.
func classifyVariant(pkg *packages.Package, tn *types.TypeName, ptr bool, namingStrategy namingStrategyName) (expand.Variant, error) {
	v := expand.Variant{
		Name: tn.Name(),
		Ptr:  ptr,
	}

	ts, astFile := findTypeSpec(tn.Pos(), pkg.Syntax)
	if ts == nil {
		return v, fmt.Errorf("no type declaration found for variant %s", tn.Name())
	}

	if _, ok := ts.Type.(*ast.StructType); ok {
		st := tn.Type().Underlying().(*types.Struct)
		switch st.NumFields() {
		case 0:
			v.Shape = expand.PayloadUnit
		case 1:
			field := st.Field(0)
			payload, err := typeCode(field.Type())
			if err != nil {
				return v, fmt.Errorf("variant %s: %w", tn.Name(), err)
			}
			v.Shape = expand.PayloadSingle
			v.Payload = payload
			v.Field = field.Name()
		default:
			v.Shape = expand.PayloadOther
		}
	} else {
		// A defined type: the declared right-hand side is the payload.
		payload, err := typeCode(pkg.TypesInfo.TypeOf(ts.Type))
		if err != nil {
			return v, fmt.Errorf("variant %s: %w", tn.Name(), err)
		}
		v.Shape = expand.PayloadSingle
		v.Payload = payload
	}

	str, ok := findStringInLineComment(pkg.Fset, tn, astFile)
	if !ok {
		switch namingStrategy {
		case camelCase:
			str = strcase.LowerCamelCase(tn.Name())
		case pascalCase:
			str = strcase.UpperCamelCase(tn.Name())
		case snakeCase:
			str = strcase.SnakeCase(tn.Name())
		case upperSnakeCase:
			str = strcase.UpperSnakeCase(tn.Name())
		case kebabCase:
			str = strcase.KebabCase(tn.Name())
		default:
			str = tn.Name()
		}
	}
	v.Str = str

	return v, nil
}

// findTypeSpec locates the *ast.TypeSpec declaring the type at pos,
// along with its enclosing file.
func findTypeSpec(pos token.Pos, syntax []*ast.File) (*ast.TypeSpec, *ast.File) {
	astFile := findAstFileForToken(pos, syntax)
	if astFile == nil {
		return nil, nil
	}

	nodes, _ := astutil.PathEnclosingInterval(astFile, pos, pos)
	for _, node := range nodes {
		if ts, ok := node.(*ast.TypeSpec); ok {
			return ts, astFile
		}
	}

	return nil, astFile
}

func findAstFileForToken(pos token.Pos, syntax []*ast.File) *ast.File {
	for _, file := range syntax {
		if pos < file.FileStart {
			continue
		}
		if pos > file.FileEnd {
			continue
		}
		return file
	}
	return nil
}

// findStringInLineComment returns the text of a comment sitting on the same
// line as tn's declaration, to be used as the variant's display string.
func findStringInLineComment(fset *token.FileSet, tn *types.TypeName, astFile *ast.File) (string, bool) {
	if astFile == nil {
		return "", false
	}

	position := fset.Position(tn.Pos())
	for _, cg := range astFile.Comments {
		cgPosition := fset.Position(cg.Pos())
		if cgPosition.Line != position.Line {
			continue
		}

		text := strings.TrimFunc(cg.Text(), unicode.IsSpace)
		if text == "" {
			continue
		}

		return text, true
	}

	return "", false
}

// typeCode renders t for splicing into the generated file. Named types are
// emitted with their package qualifier; jennifer drops the qualifier when
// it matches the generated file's own package.
func typeCode(t types.Type) (*jen.Statement, error) {
	switch t := t.(type) {
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return jen.Qual("unsafe", "Pointer"), nil
		}
		return jen.Id(t.Name()), nil

	case *types.Named:
		obj := t.Obj()

		var ret *jen.Statement
		if obj.Pkg() == nil {
			ret = jen.Id(obj.Name()) // error, comparable, ...
		} else {
			ret = jen.Qual(obj.Pkg().Path(), obj.Name())
		}

		if args := t.TypeArgs(); args != nil && args.Len() > 0 {
			rendered := make([]jen.Code, args.Len())
			for i := 0; i < args.Len(); i++ {
				a, err := typeCode(args.At(i))
				if err != nil {
					return nil, err
				}
				rendered[i] = a
			}
			ret = ret.Index(jen.List(rendered...))
		}

		return ret, nil

	case *types.Pointer:
		elem, err := typeCode(t.Elem())
		if err != nil {
			return nil, err
		}
		return jen.Op("*").Add(elem), nil

	case *types.Slice:
		elem, err := typeCode(t.Elem())
		if err != nil {
			return nil, err
		}
		return jen.Index().Add(elem), nil

	case *types.Array:
		elem, err := typeCode(t.Elem())
		if err != nil {
			return nil, err
		}
		return jen.Index(jen.Lit(int(t.Len()))).Add(elem), nil

	case *types.Map:
		key, err := typeCode(t.Key())
		if err != nil {
			return nil, err
		}
		elem, err := typeCode(t.Elem())
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(elem), nil

	case *types.Chan:
		elem, err := typeCode(t.Elem())
		if err != nil {
			return nil, err
		}
		switch t.Dir() {
		case types.SendOnly:
			return jen.Chan().Op("<-").Add(elem), nil
		case types.RecvOnly:
			return jen.Op("<-").Chan().Add(elem), nil
		default:
			return jen.Chan().Add(elem), nil
		}

	case *types.Interface:
		if t.Empty() {
			return jen.Any(), nil
		}
		return nil, fmt.Errorf("unsupported payload type %s", t)

	default:
		return nil, fmt.Errorf("unsupported payload type %s", t)
	}
}

// sameFile determines if a and b point to the same file
func sameFile(a, b string) bool {
	as, err := os.Stat(a)
	if err != nil {
		panic(err)
	}

	bs, err := os.Stat(b)
	if err != nil {
		panic(err)
	}

	return os.SameFile(as, bs)
}
