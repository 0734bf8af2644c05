package util

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"github.com/m4gshm/gollections/c"
	"github.com/m4gshm/gollections/collection/mutable/ordered"
	"github.com/m4gshm/gollections/collection/mutable/ordered/set"
	"github.com/m4gshm/gollections/expr/use"
	"github.com/m4gshm/gollections/op"
	"github.com/m4gshm/gollections/slice"
	"golang.org/x/tools/go/packages"

	"github.com/m4gshm/restruct/logger"
)

const packageMode = packages.NeedSyntax | packages.NeedName | packages.NeedTypesInfo | packages.NeedTypes | packages.NeedModule | packages.NeedForTest

func ExtractPackages(fileSet *token.FileSet, buildTags []string, fileName string) (*ordered.Set[*packages.Package], error) {
	if dir, err := GetDir(fileName); err != nil {
		return nil, err
	} else if pkgs, err := packages.Load(&packages.Config{
		Dir:        dir,
		Fset:       fileSet,
		Mode:       packageMode,
		BuildFlags: buildTagsArg(buildTags),
		Tests:      true,
		Logf:       func(format string, args ...any) { logger.Debugf("packagesLoad: "+format, args...) },
	}, "."); err != nil {
		return nil, err
	} else {
		return set.Of(pkgs...), nil
	}
}

// LoadDirPackage returns the package of the directory or nil if there are no go files.
func LoadDirPackage(dir string, buildTags []string) (*packages.Package, error) {
	pkgs, err := packages.Load(&packages.Config{Dir: dir, Mode: packages.NeedName | packages.NeedModule, BuildFlags: buildTagsArg(buildTags)}, ".")
	if err != nil {
		return nil, err
	}
	pkg, _ := slice.First(pkgs, func(p *packages.Package) bool { return len(p.Name) > 0 })
	return pkg, nil
}

func buildTagsArg(buildTags []string) []string {
	return []string{fmt.Sprintf("-tags=%s", strings.Join(buildTags, " "))}
}

func GetDir(fileName string) (string, error) {
	fileStat, err := os.Stat(fileName)
	isNoExists := errors.Is(err, os.ErrNotExist)
	if !isNoExists && err != nil {
		return "", err
	}
	return use.If(!isNoExists && fileStat.IsDir(), fileName).ElseGet(func() string { return filepath.Dir(fileName) }), nil
}

func FindTypePackageFile(typeName string, fileSet *token.FileSet, pkgs c.Range[*packages.Package]) (TypeNamedOrAlias, *packages.Package, string, *ast.File, error) {
	for pkg := range pkgs.All {
		if lookup := pkg.Types.Scope().Lookup(typeName); lookup == nil {
			logger.Debugf("no type '%s' in package '%s'", typeName, pkg.Types.Name())
			continue
		} else if typeNamed, _ := GetTypeNamed(lookup.Type()); typeNamed == nil {
			return nil, nil, "", nil, fmt.Errorf("cannot detect type '%s'", typeName)
		} else {
			logger.Debugf("look package '%s', syntax file count %d", pkg.Name, len(pkg.Syntax))
			filePath, typFile, err := FindTypeFile(typeNamed, fileSet, pkg.Syntax)
			return typeNamed, pkg, filePath, typFile, err
		}
	}
	return nil, nil, "", nil, nil
}

func FindTypeFile(typeNamed TypeNamedOrAlias, fileSet *token.FileSet, files []*ast.File) (string, *ast.File, error) {
	typeObj := typeNamed.Obj()
	typTokenFile := fileSet.File(typeObj.Pos())
	if typTokenFile == nil {
		return "", nil, fmt.Errorf("no source position of type %s", typeObj.Id())
	}
	typFile, ok := FileOf(typeObj.Pos(), fileSet, files)
	f, err := op.IfElseGetErr(ok, typFile, func() error { return fmt.Errorf("type's file not found: type %s", typeObj.Id()) })
	return typTokenFile.Name(), f, err
}

// FileOf returns the syntax file that contains the position.
func FileOf(pos token.Pos, fileSet *token.FileSet, files []*ast.File) (*ast.File, bool) {
	tokenFile := fileSet.File(pos)
	if tokenFile == nil {
		return nil, false
	}
	start := tokenFile.Base()
	return slice.First(files, func(p *ast.File) bool {
		return p.FileStart == token.Pos(start) && p.FileEnd == token.Pos(start+tokenFile.Size())
	})
}

type TypeNamedOrAlias interface {
	types.Type
	Underlying() types.Type
	Obj() *types.TypeName
	TypeParams() *types.TypeParamList
}

var _ TypeNamedOrAlias = (*types.Named)(nil)
var _ TypeNamedOrAlias = (*types.Alias)(nil)

func GetTypeNamed(typ types.Type) (TypeNamedOrAlias, int) {
	switch ftt := typ.(type) {
	case *types.Named:
		return ftt, 0
	case *types.Alias:
		return ftt, 0
	case *types.Pointer:
		t, p := GetTypeNamed(ftt.Elem())
		return t, p + 1
	default:
		return nil, 0
	}
}

func GetPackageName(pkgPath string) string {
	j := len(pkgPath)
	i := j - 1
	for ; i >= 0; i-- {
		if pkgPath[i] == '/' {
			part := pkgPath[i+1 : j]
			if !isVersionElement(part) {
				return part
			}
			j = i
		}
	}
	return pkgPath[i+1 : j]
}

// isVersionElement reports whether s is a well-formed path version element:
// v2, v3, v10, etc, but not v0, v05, v1.
func isVersionElement(pkgName string) bool {
	if len(pkgName) < 2 || pkgName[0] != 'v' || pkgName[1] == '0' || pkgName[1] == '1' && len(pkgName) == 2 {
		return false
	}
	for i := 1; i < len(pkgName); i++ {
		if pkgName[i] < '0' || '9' < pkgName[i] {
			return false
		}
	}
	return true
}
