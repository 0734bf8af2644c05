// Package openapi exports the generated types as openapi component schemas.
package openapi

import (
	"context"
	"go/types"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/pkg/errors"

	"github.com/m4gshm/restruct/generator"
	"github.com/m4gshm/restruct/logger"
	"github.com/m4gshm/restruct/model/decl"
)

const (
	Version       = "3.0.3"
	ComponentsRef = "#/components/schemas/"
	Namespace     = "openapi"

	readOnly  = "readOnly"
	writeOnly = "writeOnly"
)

// Build makes the document with a component schema for every derived type and every variant of the derived unions.
func Build(ctx context.Context, title, version string, derived []generator.Derived) (*openapi3.T, error) {
	schemas, err := Schemas(derived)
	if err != nil {
		return nil, err
	}
	doc := &openapi3.T{
		OpenAPI:    Version,
		Info:       &openapi3.Info{Title: title, Version: version},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: schemas},
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, errors.Wrap(err, "validate openapi schema")
	}
	return doc, nil
}

func Schemas(derived []generator.Derived) (openapi3.Schemas, error) {
	b := &builder{schemas: openapi3.Schemas{}, visiting: map[*types.Named]bool{}}
	for _, d := range derived {
		if err := b.add(d); err != nil {
			return nil, err
		}
	}
	return b.schemas, nil
}

type builder struct {
	schemas  openapi3.Schemas
	visiting map[*types.Named]bool
}

func (b *builder) add(d generator.Derived) error {
	var schema *openapi3.Schema
	if len(d.Variants) > 0 || d.Source != nil && d.Source.Kind == decl.Union {
		schema = &openapi3.Schema{}
		for _, v := range d.Variants {
			variant := b.variantSchema(d, v)
			if err := b.component(v.Name, variant); err != nil {
				return err
			}
			schema.OneOf = append(schema.OneOf, openapi3.NewSchemaRef(ComponentsRef+v.Name, variant))
		}
	} else {
		schema = b.objectSchema(d.Fields, sourceFields(d), d.Kind == generator.ViewKind)
	}
	describe(schema, d)
	logger.Debugf("openapi schema %s of %s", d.Name, d.Kind)
	return b.component(d.Name, schema)
}

func (b *builder) component(name string, schema *openapi3.Schema) error {
	if _, ok := b.schemas[name]; ok {
		return errors.Errorf("duplicated openapi schema %s", name)
	}
	b.schemas[name] = openapi3.NewSchemaRef("", schema)
	return nil
}

func (b *builder) variantSchema(d generator.Derived, v generator.DerivedVariant) *openapi3.Schema {
	var schema *openapi3.Schema
	switch v.Shape {
	case decl.Unit:
		schema = openapi3.NewObjectSchema()
	case decl.Positional:
		schema = b.typeSchema(v.Elements[0])
	default:
		var source []decl.Field
		if d.Source != nil {
			if i := slices.IndexFunc(d.Source.Variants, func(sv decl.Variant) bool {
				return generator.VariantName(d.Name, d.Source.Name, sv.Name) == v.Name
			}); i >= 0 {
				source = d.Source.Variants[i].Fields
			}
		}
		schema = b.objectSchema(v.Fields, source, true)
	}
	if len(v.Doc) > 0 {
		schema.Description = v.Doc
	}
	return schema
}

// objectSchema builds the properties of the fields, only the fields of views may be required.
// The readOnly and writeOnly flags are taken from the openapi tags of the source fields.
func (b *builder) objectSchema(fields []generator.DerivedField, source []decl.Field, withRequired bool) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, f := range fields {
		name, omitEmpty, skip := jsonName(f)
		if skip {
			continue
		} else if f.Embedded && len(name) == 0 {
			embedded := b.typeSchema(f.Type)
			for propName, prop := range embedded.Properties {
				schema.WithPropertyRef(propName, prop)
			}
			schema.Required = append(schema.Required, embedded.Required...)
			continue
		} else if len(name) == 0 {
			name = f.Name
		}

		prop := b.fieldSchema(f)
		if len(f.Doc) > 0 {
			prop.Description = f.Doc
		}
		if i := slices.IndexFunc(source, func(sf decl.Field) bool { return sf.Name == f.Name }); i >= 0 {
			if tag, ok := source[i].Tag(Namespace); ok {
				for _, value := range decl.TagValues(tag) {
					switch strings.TrimSpace(value) {
					case readOnly:
						prop.ReadOnly = true
					case writeOnly:
						prop.WriteOnly = true
					}
				}
			}
		}
		schema.WithProperty(name, prop)
		if withRequired && !omitEmpty && !f.Optional() {
			schema.Required = append(schema.Required, name)
		}
	}
	return schema
}

func (b *builder) fieldSchema(f generator.DerivedField) *openapi3.Schema {
	if f.Wrapper == generator.WrapNone {
		return b.typeSchema(f.Type)
	}
	typ := f.Type
	if f.Wrapper == generator.WrapTriState {
		if elem, ok := (decl.Field{Type: typ}).Optional(); ok {
			typ = elem
		}
	}
	return nullable(b.typeSchema(typ))
}

func (b *builder) typeSchema(typ types.Type) *openapi3.Schema {
	switch t := types.Unalias(typ).(type) {
	case *types.Pointer:
		return nullable(b.typeSchema(t.Elem()))
	case *types.Basic:
		return basicSchema(t)
	case *types.Slice:
		if elem, ok := types.Unalias(t.Elem()).(*types.Basic); ok && elem.Kind() == types.Byte {
			return openapi3.NewBytesSchema()
		}
		return openapi3.NewArraySchema().WithItems(b.typeSchema(t.Elem()))
	case *types.Array:
		return openapi3.NewArraySchema().WithItems(b.typeSchema(t.Elem()))
	case *types.Map:
		return openapi3.NewObjectSchema().WithAdditionalProperties(b.typeSchema(t.Elem()))
	case *types.Struct:
		return b.structSchema(t)
	case *types.Named:
		return b.namedSchema(t)
	default:
		return &openapi3.Schema{}
	}
}

func (b *builder) namedSchema(t *types.Named) *openapi3.Schema {
	obj := t.Obj()
	if pkg := obj.Pkg(); pkg != nil {
		switch pkg.Path() + "." + obj.Name() {
		case "time.Time":
			return openapi3.NewDateTimeSchema()
		case generator.TriStatePackage + ".TriState":
			if args := t.TypeArgs(); args.Len() == 1 {
				return nullable(b.typeSchema(args.At(0)))
			}
		}
	}
	if b.visiting[t] {
		return openapi3.NewObjectSchema()
	}
	b.visiting[t] = true
	defer delete(b.visiting, t)
	return b.typeSchema(t.Underlying())
}

func (b *builder) structSchema(st *types.Struct) *openapi3.Schema {
	var (
		fields []generator.DerivedField
		source []decl.Field
	)
	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Exported() && !f.Embedded() {
			continue
		}
		tags := decl.ParseTags(st.Tag(i))
		fields = append(fields, generator.DerivedField{Name: f.Name(), Type: f.Type(), Embedded: f.Embedded(), Tags: tags})
		source = append(source, decl.Field{Name: f.Name(), Type: f.Type(), Tags: tags})
	}
	return b.objectSchema(fields, source, true)
}

func basicSchema(t *types.Basic) *openapi3.Schema {
	switch t.Kind() {
	case types.Bool, types.UntypedBool:
		return openapi3.NewBoolSchema()
	case types.Int, types.Int64, types.Uint, types.Uint64, types.Uintptr, types.UntypedInt:
		return openapi3.NewInt64Schema()
	case types.Int8, types.Int16, types.Int32, types.Uint8, types.Uint16, types.Uint32, types.UntypedRune:
		return openapi3.NewInt32Schema()
	case types.Float32, types.Float64, types.UntypedFloat:
		return openapi3.NewFloat64Schema()
	case types.String, types.UntypedString:
		return openapi3.NewStringSchema()
	default:
		return &openapi3.Schema{}
	}
}

// nullable marks a typed schema as nullable, an untyped one accepts null already.
func nullable(schema *openapi3.Schema) *openapi3.Schema {
	if schema.Type != nil {
		schema.Nullable = true
	}
	return schema
}

// jsonName returns the json property name of the field, an empty one means the default naming.
func jsonName(f generator.DerivedField) (name string, omitEmpty bool, skip bool) {
	tag, ok := f.Tag("json")
	if !ok {
		return "", false, false
	}
	values := decl.TagValues(tag)
	if values[0] == "-" && len(values) == 1 {
		return "", false, true
	}
	return values[0], slices.Contains(values[1:], "omitempty") || slices.Contains(values[1:], "omitzero"), false
}

func sourceFields(d generator.Derived) []decl.Field {
	if d.Source == nil {
		return nil
	}
	return d.Source.Fields
}

// describe fills the title and the description from the //openapi:title and //openapi:description directives
// of the source declaration, the description falls back to the doc comment.
func describe(schema *openapi3.Schema, d generator.Derived) {
	schema.Description = d.Doc
	if d.Source == nil {
		return
	}
	for _, a := range d.Source.Directives(Namespace) {
		switch {
		case a.Is(Namespace, "title"):
			schema.Title = a.Value
		case a.Is(Namespace, "description"):
			schema.Description = a.Value
		case a.Is(Namespace, "deprecated"):
			schema.Deprecated = true
		}
	}
}
