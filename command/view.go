package command

import (
	"github.com/m4gshm/restruct/config"
	"github.com/m4gshm/restruct/generator"
)

const viewManual = `    //restruct:view Name[, fields(A, B) | omit(C)][, derive(fmt.Stringer)][, preset = "read"][, attributes_with = "all"]
    	a struct with the selected fields, the New<Name> constructor and the To<Type> method when no field is dropped;
    	for an interface union, an interface with the selected variants and the conversions in both directions,
    	pointers to variants are accepted by New<Name>, derive entries are asserted on every variant type`

func NewView() *Command {
	return New(generator.ViewKind, "generates a view of a struct or of an interface union", viewManual,
		func(ctx *Context, d Directive) error {
			cfg, _, err := config.Resolve(d.Kind, d.Args, ctx.Model, ctx.Capabilities, true)
			if err != nil {
				return err
			}
			return ctx.Generator.GenerateView(ctx.Declaration, cfg)
		},
	)
}
