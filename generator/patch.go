package generator

import (
	"github.com/m4gshm/gollections/slice"

	"github.com/m4gshm/restruct/config"
	"github.com/m4gshm/restruct/diag"
	"github.com/m4gshm/restruct/logger"
	"github.com/m4gshm/restruct/model/decl"
	"github.com/m4gshm/restruct/typeparams"
)

// GeneratePatch generates the patch type of a record with the constructor from the record and the merge methods.
func (g *Generator) GeneratePatch(d *decl.Declaration, cfg *config.Resolved) error {
	if d.Kind == decl.Union {
		return diag.Errorf(diag.UnsupportedDeclaration, cfg.Pos, "patch of union %s is not supported, only structs can be patched", d.Name)
	}
	fields := RetainedFields(d, cfg)
	if err := g.checkAccess(d, fields); err != nil {
		return err
	}
	logger.Debugf("patch %s of %s: fields %v, option %s", cfg.Name, d.Name, decl.FieldNames(fields), cfg.Option)

	params := typeparams.New(d.TypeParams(), g.TypeString)
	ident, paramsDecl := params.IdentDecl()
	origin := g.ObjName(d.Type.Obj()) + ident
	patch := cfg.Name + ident
	names := g.uniqueNames(params)
	recv, target := names.Get(TypeReceiverVar(cfg.Name)), names.Get("v")

	derivedFields := slice.Convert(fields, func(f decl.Field) DerivedField {
		derived := DerivedField{Name: f.Name, Type: f.Type, Wrapper: wrapper(f, cfg.Option), Doc: f.Doc, Tags: FieldAnnotations(cfg.AttributesWith, f.Tags)}
		if derived.Wrapper == WrapTriState {
			derived.Tags = OmitUnset(derived.Tags)
		}
		return derived
	})
	annotations := TopAnnotations(cfg.AttributesWith, d.Annotations)
	body := DocComment(d.Doc, annotations) + "type " + cfg.Name + paramsDecl + " struct {" + NoLint(g.NoLint) + "\n" +
		g.fieldsBody(derivedFields, false) + "}\n"
	if err := g.AddType(cfg.Name, body); err != nil {
		return err
	}

	var values, merges string
	for _, f := range derivedFields {
		if f.Wrapper == WrapTriState {
			tristate, err := g.AddImport(TriStatePackage, "tristate")
			if err != nil {
				return err
			}
			values += f.Name + ": " + tristate + ".FromPtr(" + target + "." + f.Name + "),\n"
			merges += recv + "." + f.Name + ".Apply(&" + target + "." + f.Name + ")\n"
		} else {
			values += f.Name + ": &" + target + "." + f.Name + ",\n"
			merges += "if " + recv + "." + f.Name + " != nil {\n" + target + "." + f.Name + " = *" + recv + "." + f.Name + "\n}\n"
		}
	}

	constructor := ConstructorName(cfg.Name)
	if err := g.AddFuncOrMethod(constructor, "func "+constructor+paramsDecl+"("+target+" "+origin+") "+patch+" {"+NoLint(g.NoLint)+"\n"+
		"return "+patch+"{\n"+values+"}\n}\n",
	); err != nil {
		return err
	}
	if err := g.AddMethod(cfg.Name, "Merge", "// Merge returns the value with the patch applied.\n"+
		"func ("+recv+" "+patch+") Merge("+target+" "+origin+") "+origin+" {"+NoLint(g.NoLint)+"\n"+
		recv+".MergeInto(&"+target+")\nreturn "+target+"\n}\n",
	); err != nil {
		return err
	}
	if err := g.AddMethod(cfg.Name, "MergeInto", "// MergeInto applies the patch to the value, nil and unset fields leave the value fields untouched.\n"+
		"func ("+recv+" "+patch+") MergeInto("+target+" *"+origin+") {"+NoLint(g.NoLint)+"\n"+merges+"}\n",
	); err != nil {
		return err
	}

	g.AddDerived(Derived{Name: cfg.Name, Kind: PatchKind, Source: d, Doc: d.Doc, Annotations: annotations, Fields: derivedFields})
	return g.GenerateDerive(d, cfg)
}

// wrapper wraps optional fields into tristate.TriState under the TriState policy, every other field into a pointer.
func wrapper(f decl.Field, option config.OptionPolicy) Wrapper {
	if _, optional := f.Optional(); optional && option == config.OptionTriState {
		return WrapTriState
	}
	return WrapPointer
}
