package generator

import (
	"slices"
	"strconv"
	"strings"

	"github.com/m4gshm/gollections/slice"

	"github.com/m4gshm/restruct/config"
	"github.com/m4gshm/restruct/diag"
	"github.com/m4gshm/restruct/logger"
	"github.com/m4gshm/restruct/model/decl"
	"github.com/m4gshm/restruct/typeparams"
)

// variantPair binds a variant of the original union to its counterpart in the derived one.
type variantPair struct {
	source  decl.Variant
	derived DerivedVariant
	// origin is the qualified name of the original variant type.
	origin string
}

func (g *Generator) generateUnionView(d *decl.Declaration, cfg *config.Resolved) error {
	if d.Generic() {
		return diag.Errorf(diag.UnsupportedDeclaration, d.Pos, "generic union %s is not supported", d.Name)
	}
	variants := RetainedVariants(d, cfg)
	pairs, err := g.pairVariants(d, cfg, variants)
	if err != nil {
		return err
	}
	logger.Debugf("view %s of union %s: variants %v", cfg.Name, d.Name, slice.Convert(variants, func(v decl.Variant) string { return v.Name }))

	marker := MarkerMethod(cfg.Name)
	annotations := TopAnnotations(cfg.AttributesWith, d.Annotations)
	if err := g.AddType(cfg.Name, DocComment(d.Doc, annotations)+"type "+cfg.Name+" interface {"+NoLint(g.NoLint)+"\n"+marker+"()\n}\n"); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := g.addVariantType(p, cfg, marker); err != nil {
			return err
		}
	}

	recv := g.uniqueNames(typeparams.New(d.TypeParams(), g.TypeString)).Get("v")
	origin := g.ObjName(d.Type.Obj())
	conv, err := g.AddImport(ConvPackage, "conv")
	if err != nil {
		return err
	}
	variantError := func(from, to string) string {
		return "default:\nreturn nil, " + conv + ".NewVariantError(" + strconv.Quote(from) + ", " + strconv.Quote(to) + ", " + recv + ")\n"
	}

	forward, reverse := "", ""
	for _, p := range pairs {
		forward += "case " + p.origin + ":\nreturn " + construct(p.derived.Name, p.source, recv) + ", nil\n" +
			"case *" + p.origin + ":\nif " + recv + " == nil {\nreturn nil, nil\n}\n" +
			"return " + construct(p.derived.Name, p.source, deref(p.source, recv)) + ", nil\n"
		reverse += "case " + p.derived.Name + ":\nreturn " + construct(p.origin, p.source, recv) + ", nil\n"
	}

	constructor := ConstructorName(cfg.Name)
	if err := g.AddFuncOrMethod(constructor, "func "+constructor+"("+recv+" "+origin+") ("+cfg.Name+", error) {"+NoLint(g.NoLint)+"\n"+
		typeSwitch(recv, forward+variantError(d.Name, cfg.Name))+"}\n",
	); err != nil {
		return err
	}
	toOrigin := cfg.Name + "To" + IdentName(d.Name, true)
	if err := g.AddFuncOrMethod(toOrigin, "func "+toOrigin+"("+recv+" "+cfg.Name+") ("+origin+", error) {"+NoLint(g.NoLint)+"\n"+
		typeSwitch(recv, reverse+variantError(cfg.Name, d.Name))+"}\n",
	); err != nil {
		return err
	}

	g.AddDerived(Derived{
		Name: cfg.Name, Kind: ViewKind, Source: d, Doc: d.Doc, Annotations: annotations,
		Variants: slice.Convert(pairs, func(p variantPair) DerivedVariant { return p.derived }),
	})
	return nil
}

// pairVariants checks that every retained variant can be mapped in both directions before any code is emitted.
func (g *Generator) pairVariants(d *decl.Declaration, cfg *config.Resolved, variants []decl.Variant) ([]variantPair, error) {
	foreign := d.Pkg != nil && d.Pkg.Path() != g.OutPkgPath
	if foreign && !IsExported(d.Name) {
		return nil, diag.Errorf(diag.UnsupportedDeclaration, d.Pos, "%s is not exported and cannot be used by package %s", d.Name, g.OutPkgPath)
	}
	pairs := make([]variantPair, 0, len(variants))
	for _, v := range variants {
		if v.Shape == decl.Named && slices.ContainsFunc(v.Fields, decl.Field.Blank) {
			return nil, diag.Errorf(diag.ShapeMismatch, v.Pos, "variant %s of %s has blank fields that cannot be bound by the %s conversions", v.Name, d.Name, cfg.Name)
		} else if foreign && !IsExported(v.Name) {
			return nil, diag.Errorf(diag.UnsupportedDeclaration, v.Pos, "variant %s of %s is not exported and cannot be used by package %s", v.Name, d.Name, g.OutPkgPath)
		} else if foreign {
			if f, ok := slice.First(v.Fields, func(f decl.Field) bool { return !IsExported(f.Name) }); ok {
				return nil, diag.Errorf(diag.UnsupportedDeclaration, f.Pos, "field %s of variant %s is not exported and cannot be used by package %s", f.Name, v.Name, g.OutPkgPath)
			}
		}
		derived := DerivedVariant{
			Name:     VariantName(cfg.Name, d.Name, v.Name),
			Shape:    v.Shape,
			Elements: v.Elements,
			Doc:      v.Doc,
			Fields: slice.Convert(v.Fields, func(f decl.Field) DerivedField {
				return DerivedField{Name: f.Name, Type: f.Type, Embedded: f.Embedded, Doc: f.Doc, Tags: FieldAnnotations(cfg.AttributesWith, f.Tags)}
			}),
		}
		if derived.Shape == decl.Positional && len(derived.Elements) != 1 {
			return nil, diag.Errorf(diag.ShapeMismatch, v.Pos, "variant %s of %s must have one element, got %d", v.Name, d.Name, len(derived.Elements))
		}
		pairs = append(pairs, variantPair{source: v, derived: derived, origin: g.ObjName(v.Type.Obj())})
	}
	return pairs, nil
}

func (g *Generator) addVariantType(p variantPair, cfg *config.Resolved, marker string) error {
	name := p.derived.Name
	body := DocComment(p.derived.Doc, TopAnnotations(cfg.AttributesWith, p.source.Annotations)) + "type " + name
	switch p.derived.Shape {
	case decl.Unit:
		body += " struct{}\n"
	case decl.Positional:
		body += " " + g.TypeString(p.derived.Elements[0]) + "\n"
	default:
		body += " struct {" + NoLint(g.NoLint) + "\n" + g.fieldsBody(p.derived.Fields, true) + "}\n"
	}
	if err := g.AddType(name, body); err != nil {
		return err
	}
	return g.AddMethod(name, marker, "func ("+name+") "+marker+"() {}\n")
}

// construct builds a variant value from the bound variable of the same shape.
func construct(typeName string, v decl.Variant, recv string) string {
	switch v.Shape {
	case decl.Unit:
		return typeName + "{}"
	case decl.Positional:
		return typeName + "(" + recv + ")"
	default:
		return typeName + "{\n" + fieldCopies(recv, v.Fields) + "}"
	}
}

// deref is the variant value held by a pointer, fields are promoted through the pointer.
func deref(v decl.Variant, recv string) string {
	if v.Shape == decl.Positional {
		return "*" + recv
	}
	return recv
}

func typeSwitch(recv, arms string) string {
	var out strings.Builder
	out.WriteString("switch " + recv + " := " + recv + ".(type) {\n")
	out.WriteString("case nil:\nreturn nil, nil\n")
	out.WriteString(arms)
	out.WriteString("}\n")
	return out.String()
}
