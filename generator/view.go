package generator

import (
	"strings"

	"github.com/m4gshm/gollections/collection/immutable"
	"github.com/m4gshm/gollections/op"
	"github.com/m4gshm/gollections/slice"

	"github.com/m4gshm/restruct/config"
	"github.com/m4gshm/restruct/diag"
	"github.com/m4gshm/restruct/logger"
	"github.com/m4gshm/restruct/model/decl"
	"github.com/m4gshm/restruct/typeparams"
	"github.com/m4gshm/restruct/unique"
)

const (
	ViewKind  = "view"
	PatchKind = "patch"

	ConvPackage     = "github.com/m4gshm/restruct/conv"
	TriStatePackage = "github.com/m4gshm/restruct/tristate"
)

// GenerateView generates the view of a record or of a union declaration.
func (g *Generator) GenerateView(d *decl.Declaration, cfg *config.Resolved) error {
	var err error
	if d.Kind == decl.Union {
		err = g.generateUnionView(d, cfg)
	} else {
		err = g.generateRecordView(d, cfg)
	}
	if err != nil {
		return err
	}
	return g.GenerateDerive(d, cfg)
}

func (g *Generator) generateRecordView(d *decl.Declaration, cfg *config.Resolved) error {
	fields := RetainedFields(d, cfg)
	if err := g.checkAccess(d, fields); err != nil {
		return err
	}
	logger.Debugf("view %s of %s: fields %v", cfg.Name, d.Name, decl.FieldNames(fields))

	params := typeparams.New(d.TypeParams(), g.TypeString)
	ident, paramsDecl := params.IdentDecl()
	origin := g.ObjName(d.Type.Obj()) + ident
	view := cfg.Name + ident
	recv := g.uniqueNames(params).Get("v")

	derivedFields := slice.Convert(fields, func(f decl.Field) DerivedField {
		return DerivedField{Name: f.Name, Type: f.Type, Embedded: f.Embedded, Doc: f.Doc, Tags: FieldAnnotations(cfg.AttributesWith, f.Tags)}
	})
	annotations := TopAnnotations(cfg.AttributesWith, d.Annotations)
	body := DocComment(d.Doc, annotations) + "type " + cfg.Name + paramsDecl + " struct {" + NoLint(g.NoLint) + "\n" +
		g.fieldsBody(derivedFields, true) + "}\n"
	if err := g.AddType(cfg.Name, body); err != nil {
		return err
	}

	constructor := ConstructorName(cfg.Name)
	if err := g.AddFuncOrMethod(constructor, "func "+constructor+paramsDecl+"("+recv+" "+origin+") "+view+" {"+NoLint(g.NoLint)+"\n"+
		"return "+view+"{\n"+fieldCopies(recv, fields)+"}\n}\n",
	); err != nil {
		return err
	}

	if all := slice.Filter(d.Fields, func(f decl.Field) bool { return !f.Blank() }); len(all) == len(fields) {
		toOrigin := "To" + IdentName(d.Name, true)
		if err := g.AddMethod(cfg.Name, toOrigin, "func ("+recv+" "+view+") "+toOrigin+"() "+origin+" {"+NoLint(g.NoLint)+"\n"+
			"return "+origin+"{\n"+fieldCopies(recv, fields)+"}\n}\n",
		); err != nil {
			return err
		}
	}

	g.AddDerived(Derived{Name: cfg.Name, Kind: ViewKind, Source: d, Doc: d.Doc, Annotations: annotations, Fields: derivedFields})
	return nil
}

// RetainedFields returns the fields kept by the preset and the selector in declaration order.
func RetainedFields(d *decl.Declaration, cfg *config.Resolved) []decl.Field {
	warnUnknownMembers(d, cfg)
	return slice.Filter(d.Fields, func(f decl.Field) bool {
		return !f.Blank() && cfg.Preset.Predicate(f) && cfg.Fields.Predicate(f.Name)
	})
}

// RetainedVariants returns the variants kept by the selector in declaration order.
func RetainedVariants(d *decl.Declaration, cfg *config.Resolved) []decl.Variant {
	warnUnknownMembers(d, cfg)
	return slice.Filter(d.Variants, func(v decl.Variant) bool { return cfg.Fields.Predicate(v.Name) })
}

func warnUnknownMembers(d *decl.Declaration, cfg *config.Resolved) {
	members := immutable.NewSet(d.Members()...)
	if unknown := slice.Filter(cfg.Fields.Names, func(name string) bool { return !members.Contains(name) }); len(unknown) > 0 {
		logger.Warnf("%s %s: %s has no members %v", cfg.Kind, cfg.Name, d.Name, unknown)
	}
}

func ConstructorName(typeName string) string {
	return op.IfElse(IsExported(typeName), "New", "new") + IdentName(typeName, true)
}

// checkAccess fails if the out package cannot refer to the declaration or its members.
func (g *Generator) checkAccess(d *decl.Declaration, fields []decl.Field) error {
	if d.Pkg == nil || d.Pkg.Path() == g.OutPkgPath {
		return nil
	} else if !IsExported(d.Name) {
		return diag.Errorf(diag.UnsupportedDeclaration, d.Pos, "%s is not exported and cannot be used by package %s", d.Name, g.OutPkgPath)
	}
	for _, f := range fields {
		if !IsExported(f.Name) {
			return diag.Errorf(diag.UnsupportedDeclaration, f.Pos, "field %s of %s is not exported and cannot be used by package %s", f.Name, d.Name, g.OutPkgPath)
		}
	}
	return nil
}

func (g *Generator) uniqueNames(params typeparams.TypeParams) *unique.Names {
	return unique.NewNamesWith(unique.PreInit(append(params.Names(), g.Imported()...)...))
}

func (g *Generator) fieldsBody(fields []DerivedField, keepEmbedded bool) string {
	var out strings.Builder
	for _, f := range fields {
		out.WriteString(DocComment(f.Doc, nil))
		if keepEmbedded && f.Embedded {
			out.WriteString(g.TypeString(f.Type))
		} else {
			out.WriteString(f.Name + " " + g.fieldType(f))
		}
		out.WriteString(StructTag(f.Tags) + "\n")
	}
	return out.String()
}

func (g *Generator) fieldType(f DerivedField) string {
	switch f.Wrapper {
	case WrapPointer:
		return "*" + g.TypeString(f.Type)
	case WrapTriState:
		elem, _ := decl.Field{Type: f.Type}.Optional()
		alias, _ := g.AddImport(TriStatePackage, "tristate")
		return alias + ".TriState[" + g.TypeString(elem) + "]"
	default:
		return g.TypeString(f.Type)
	}
}

func fieldCopies(recv string, fields []decl.Field) string {
	return strings.Join(slice.Convert(fields, func(f decl.Field) string { return f.Name + ": " + recv + "." + f.Name + ",\n" }), "")
}
