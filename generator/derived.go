package generator

import (
	"go/types"

	"github.com/m4gshm/restruct/model/decl"
)

// Wrapper is how a derived field wraps the type of the original field.
type Wrapper int

const (
	WrapNone Wrapper = iota
	// WrapPointer is the plain optional patch field.
	WrapPointer
	// WrapTriState is the tristate.TriState patch field.
	WrapTriState
)

// Derived describes a generated type for exporters like the openapi schema builder.
type Derived struct {
	Name        string
	Kind        string
	Source      *decl.Declaration
	Doc         string
	Annotations []decl.Annotation
	Fields      []DerivedField
	Variants    []DerivedVariant
}

type DerivedField struct {
	Name     string
	Type     types.Type
	Wrapper  Wrapper
	Embedded bool
	Doc      string
	Tags     []decl.Annotation
}

// Optional reports whether the field may be omitted in a value of the derived type.
func (f DerivedField) Optional() bool {
	if f.Wrapper != WrapNone {
		return true
	}
	_, ok := types.Unalias(f.Type).(*types.Pointer)
	return ok
}

func (f DerivedField) Tag(key string) (decl.Annotation, bool) {
	return decl.Field{Tags: f.Tags}.Tag(key)
}

type DerivedVariant struct {
	Name     string
	Shape    decl.Shape
	Elements []types.Type
	Fields   []DerivedField
	Doc      string
}
