package decl

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"

	"github.com/m4gshm/restruct/diag"
	"github.com/m4gshm/restruct/logger"
	"github.com/m4gshm/restruct/model/util"
)

// New builds the declaration model of a struct or sealed interface type of the package.
func New(pkg *packages.Package, typ util.TypeNamedOrAlias) (*Declaration, error) {
	obj := typ.Obj()
	named, ok := typ.(*types.Named)
	if !ok {
		return nil, diag.Errorf(diag.UnsupportedDeclaration, obj.Pos(), "alias %s is not supported, annotate the aliased type", obj.Name())
	}
	spec, doc, file := findTypeSpec(pkg, obj.Pos())
	if spec == nil {
		return nil, errors.Errorf("no syntax of type %s in package %s", obj.Name(), pkg.PkgPath)
	}

	d := &Declaration{
		Name:        obj.Name(),
		Doc:         docText(doc),
		Annotations: Directives(doc),
		Type:        named,
		Pkg:         obj.Pkg(),
		Pos:         obj.Pos(),
		Imports:     fileImports(pkg, file),
	}
	switch underlying := named.Underlying().(type) {
	case *types.Struct:
		d.Kind = Record
		structType, _ := spec.Type.(*ast.StructType)
		d.Fields = structFields(underlying, structType)
	case *types.Interface:
		d.Kind = Union
		if d.Generic() {
			return nil, diag.Errorf(diag.UnsupportedDeclaration, obj.Pos(), "generic union %s is not supported", obj.Name())
		} else if underlying.NumMethods() == 0 {
			return nil, diag.Errorf(diag.UnsupportedDeclaration, obj.Pos(), "union %s must declare a method to select its variants", obj.Name())
		}
		variants, err := findVariants(pkg, named, underlying)
		if err != nil {
			return nil, err
		}
		d.Variants = variants
	default:
		return nil, diag.Errorf(diag.UnsupportedDeclaration, obj.Pos(), "type %s must be a struct or an interface, got %s", obj.Name(), underlying)
	}
	logger.Debugf("declaration %s: kind %s, members %v", d.Name, d.Kind, d.Members())
	return d, nil
}

func findTypeSpec(pkg *packages.Package, pos token.Pos) (*ast.TypeSpec, *ast.CommentGroup, *ast.File) {
	for _, file := range pkg.Syntax {
		if pos < file.FileStart || pos > file.FileEnd {
			continue
		}
		for _, d := range file.Decls {
			genDecl, ok := d.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, s := range genDecl.Specs {
				if spec, ok := s.(*ast.TypeSpec); ok && spec.Name.Pos() == pos {
					doc := spec.Doc
					if doc == nil && !genDecl.Lparen.IsValid() {
						doc = genDecl.Doc
					}
					return spec, doc, file
				}
			}
		}
	}
	return nil, nil, nil
}

func docText(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}
	return strings.TrimRight(group.Text(), "\n")
}

func structFields(st *types.Struct, structType *ast.StructType) []Field {
	var docs []string
	if structType != nil && structType.Fields != nil {
		for _, f := range structType.Fields.List {
			doc := docText(f.Doc)
			if len(doc) == 0 {
				doc = docText(f.Comment)
			}
			for range max(1, len(f.Names)) {
				docs = append(docs, doc)
			}
		}
	}
	fields := make([]Field, 0, st.NumFields())
	for i := range st.NumFields() {
		v := st.Field(i)
		field := Field{
			Name:     v.Name(),
			Type:     v.Type(),
			Embedded: v.Embedded(),
			Tags:     ParseTags(st.Tag(i)),
			Pos:      v.Pos(),
		}
		if i < len(docs) {
			field.Doc = docs[i]
		}
		fields = append(fields, field)
	}
	return fields
}

// findVariants collects the package types implementing the union by value receivers, in source order.
func findVariants(pkg *packages.Package, union *types.Named, iface *types.Interface) ([]Variant, error) {
	scope := pkg.Types.Scope()
	var variants []Variant
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}
		named, ok := typeName.Type().(*types.Named)
		if !ok || named == union || named.TypeParams().Len() > 0 || types.IsInterface(named) {
			continue
		} else if !types.Implements(named, iface) {
			if types.Implements(types.NewPointer(named), iface) {
				logger.Warnf("%s implements %s by a pointer receiver and is not used as a variant", name, union.Obj().Name())
			}
			continue
		}
		variant, err := newVariant(pkg, named)
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant)
	}
	slices.SortFunc(variants, func(a, b Variant) int { return int(a.Pos) - int(b.Pos) })
	return variants, nil
}

func newVariant(pkg *packages.Package, named *types.Named) (Variant, error) {
	obj := named.Obj()
	spec, doc, _ := findTypeSpec(pkg, obj.Pos())
	if spec == nil {
		return Variant{}, errors.Errorf("no syntax of variant %s", obj.Name())
	}
	v := Variant{
		Name:        obj.Name(),
		Type:        named,
		Doc:         docText(doc),
		Annotations: Directives(doc),
		Pos:         obj.Pos(),
	}
	if structType, ok := spec.Type.(*ast.StructType); ok {
		st, _ := named.Underlying().(*types.Struct)
		if st == nil || st.NumFields() == 0 {
			v.Shape = Unit
		} else {
			v.Shape = Named
			v.Fields = structFields(st, structType)
		}
	} else if element := pkg.TypesInfo.TypeOf(spec.Type); element != nil {
		v.Shape = Positional
		v.Elements = []types.Type{element}
	} else {
		return Variant{}, errors.Errorf("cannot detect the type of variant %s", obj.Name())
	}
	return v, nil
}

func fileImports(pkg *packages.Package, file *ast.File) map[string]Import {
	imports := map[string]Import{}
	if file == nil {
		return imports
	}
	names := map[string]string{}
	for _, imported := range pkg.Types.Imports() {
		names[imported.Path()] = imported.Name()
	}
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name, ok := names[path]
		if !ok {
			name = util.GetPackageName(path)
		}
		qualifier := name
		if spec.Name != nil {
			if qualifier = spec.Name.Name; qualifier == "_" || qualifier == "." {
				continue
			}
		}
		imports[qualifier] = Import{Path: path, Name: name}
	}
	return imports
}
