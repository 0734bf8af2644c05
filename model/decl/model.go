package decl

import (
	"go/token"
	"go/types"
	"slices"

	"github.com/m4gshm/gollections/slice"
)

type Kind int

const (
	Record Kind = iota + 1
	Union
)

func (k Kind) String() string {
	switch k {
	case Record:
		return "record"
	case Union:
		return "union"
	default:
		return "unknown"
	}
}

type Shape int

const (
	// Unit is a variant without data, struct{}.
	Unit Shape = iota + 1
	// Positional is a variant defined by another type, type Celsius float64.
	Positional
	// Named is a variant defined by a struct literal type.
	Named
)

func (s Shape) String() string {
	switch s {
	case Unit:
		return "unit"
	case Positional:
		return "positional"
	case Named:
		return "named"
	default:
		return "unknown"
	}
}

// Declaration is an annotated struct (record) or sealed interface (union) type.
type Declaration struct {
	Name        string
	Kind        Kind
	Doc         string
	Annotations []Annotation
	Fields      []Field
	Variants    []Variant
	Type        *types.Named
	Pkg         *types.Package
	Pos         token.Pos
	// Imports maps the package qualifiers of the declaring file to import paths.
	Imports map[string]Import
}

type Import struct {
	Path string
	Name string
}

type Field struct {
	Name     string
	Type     types.Type
	Embedded bool
	Doc      string
	Tags     []Annotation
	Pos      token.Pos
}

type Variant struct {
	Name        string
	Shape       Shape
	Type        *types.Named
	Elements    []types.Type
	Fields      []Field
	Doc         string
	Annotations []Annotation
	Pos         token.Pos
}

func (d *Declaration) TypeParams() *types.TypeParamList {
	return d.Type.TypeParams()
}

func (d *Declaration) Generic() bool {
	return d.TypeParams().Len() > 0
}

// Members returns the names of fields or variants in declaration order.
func (d *Declaration) Members() []string {
	if d.Kind == Union {
		return slice.Convert(d.Variants, func(v Variant) string { return v.Name })
	}
	return FieldNames(d.Fields)
}

func (d *Declaration) Directives(path ...string) []Annotation {
	return slice.Filter(d.Annotations, func(a Annotation) bool { return a.Is(path...) })
}

func FieldNames(fields []Field) []string {
	return slice.Convert(fields, func(f Field) string { return f.Name })
}

// Blank reports the _ field that cannot be read or written by name.
func (f Field) Blank() bool {
	return f.Name == "_"
}

// Optional reports a pointer typed field, it returns the pointed type.
func (f Field) Optional() (types.Type, bool) {
	if p, ok := types.Unalias(f.Type).(*types.Pointer); ok {
		return p.Elem(), true
	}
	return nil, false
}

func (f Field) Tag(key string) (Annotation, bool) {
	i := slices.IndexFunc(f.Tags, func(a Annotation) bool { return a.Is(key) })
	if i < 0 {
		return Annotation{}, false
	}
	return f.Tags[i], true
}

// Arity is the number of data elements of the variant.
func (v Variant) Arity() int {
	switch v.Shape {
	case Positional:
		return len(v.Elements)
	case Named:
		return len(v.Fields)
	default:
		return 0
	}
}
