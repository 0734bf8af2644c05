package generator

import (
	"bytes"
	"go/types"
	"slices"
	"strconv"
	"strings"

	"github.com/m4gshm/gollections/collection/mutable"
	"github.com/m4gshm/gollections/op"
	"github.com/pkg/errors"
	"golang.org/x/tools/imports"

	"github.com/m4gshm/restruct/logger"
	"github.com/m4gshm/restruct/model/util"
)

// Generator accumulates the imports, types and functions of one generated file.
type Generator struct {
	Name       string
	Args       []string
	OutPkgName string
	OutPkgPath string
	BuildTags  []string
	NoLint     bool

	imports      map[string]importAlias
	aliases      *mutable.Set[string]
	aliasCounter int
	unresolved   bool

	typeNames []string
	types     map[string]string
	funcNames []string
	funcs     map[string]string
	vars      []string
	derived   []Derived
}

type importAlias struct {
	alias, name string
}

func New(name string, args []string, outPkgName, outPkgPath string) *Generator {
	return &Generator{
		Name:       name,
		Args:       args,
		OutPkgName: outPkgName,
		OutPkgPath: outPkgPath,
		imports:    map[string]importAlias{},
		aliases:    mutable.NewSet[string](),
		types:      map[string]string{},
		funcs:      map[string]string{},
	}
}

// AddImport registers the package and returns the alias to qualify its members, the out package has no alias.
func (g *Generator) AddImport(pkgPath, name string) (string, error) {
	if len(pkgPath) == 0 {
		return "", errors.New("empty import path")
	} else if pkgPath == g.OutPkgPath {
		return "", nil
	} else if existed, ok := g.imports[pkgPath]; ok {
		return existed.alias, nil
	}
	pkgName := op.IfElse(len(name) > 0, name, util.GetPackageName(pkgPath))
	alias := pkgName
	for alias == g.OutPkgName || !g.aliases.AddNew(alias) {
		g.aliasCounter++
		alias = pkgName + strconv.Itoa(g.aliasCounter)
	}
	g.imports[pkgPath] = importAlias{alias: alias, name: pkgName}
	logger.Debugf("import %s as %s", pkgPath, alias)
	return alias, nil
}

// Imported returns the aliases of the registered imports.
func (g *Generator) Imported() []string {
	aliases := make([]string, 0, len(g.imports))
	for _, i := range g.imports {
		aliases = append(aliases, i.alias)
	}
	slices.Sort(aliases)
	return aliases
}

// Qualifier is the types.Qualifier of the out package.
func (g *Generator) Qualifier(pkg *types.Package) string {
	alias, _ := g.AddImport(pkg.Path(), pkg.Name())
	return alias
}

func (g *Generator) TypeString(typ types.Type) string {
	return types.TypeString(typ, g.Qualifier)
}

// ObjName is the qualified name of a package level object.
func (g *Generator) ObjName(obj types.Object) string {
	if pkg := obj.Pkg(); pkg != nil {
		if alias := g.Qualifier(pkg); len(alias) > 0 {
			return alias + "." + obj.Name()
		}
	}
	return obj.Name()
}

// Unresolved marks the file as referencing packages that must be found by the imports processor.
func (g *Generator) Unresolved() {
	g.unresolved = true
}

func (g *Generator) AddType(name, body string) error {
	if _, ok := g.types[name]; ok {
		return errors.Errorf("duplicated type %s", name)
	}
	g.typeNames = append(g.typeNames, name)
	g.types[name] = body
	return nil
}

func (g *Generator) AddFuncOrMethod(name, body string) error {
	if _, ok := g.funcs[name]; ok {
		return errors.Errorf("duplicated function %s", name)
	}
	g.funcNames = append(g.funcNames, name)
	g.funcs[name] = body
	return nil
}

func (g *Generator) AddMethod(typeName, name, body string) error {
	return g.AddFuncOrMethod(MethodName(typeName, name), body)
}

func (g *Generator) AddVar(body string) {
	if !slices.Contains(g.vars, body) {
		g.vars = append(g.vars, body)
	}
}

func (g *Generator) AddDerived(d Derived) {
	g.derived = append(g.derived, d)
}

// Derived returns the descriptions of the generated types in generation order.
func (g *Generator) Derived() []Derived {
	return g.derived
}

func (g *Generator) Empty() bool {
	return len(g.typeNames) == 0 && len(g.funcNames) == 0
}

func (g *Generator) Src() []byte {
	out := bytes.Buffer{}
	out.WriteString("// Code generated by '" + g.Name + op.IfElse(len(g.Args) > 0, " "+strings.Join(g.Args, " "), "") + "'; DO NOT EDIT.\n\n")
	if len(g.BuildTags) > 0 {
		out.WriteString("//go:build " + strings.Join(g.BuildTags, " && ") + "\n\n")
	}
	out.WriteString("package " + g.OutPkgName + "\n\n")

	if len(g.imports) > 0 {
		paths := make([]string, 0, len(g.imports))
		for pkgPath := range g.imports {
			paths = append(paths, pkgPath)
		}
		slices.Sort(paths)
		out.WriteString("import (\n")
		for _, pkgPath := range paths {
			i := g.imports[pkgPath]
			out.WriteString(op.IfElse(i.alias != i.name, i.alias+" ", "") + strconv.Quote(pkgPath) + "\n")
		}
		out.WriteString(")\n\n")
	}
	for _, name := range g.typeNames {
		out.WriteString(g.types[name] + "\n")
	}
	for _, v := range g.vars {
		out.WriteString(v + "\n")
	}
	if len(g.vars) > 0 {
		out.WriteString("\n")
	}
	for _, name := range g.funcNames {
		out.WriteString(g.funcs[name] + "\n")
	}
	return out.Bytes()
}

// FormatSrc formats the source, missing imports are resolved only if there are unresolved references.
func (g *Generator) FormatSrc(fileName string) ([]byte, error) {
	src := g.Src()
	fmtSrc, err := imports.Process(fileName, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: !g.unresolved,
	})
	if err != nil {
		return src, errors.Wrap(err, "format generated source")
	}
	return fmtSrc, nil
}
