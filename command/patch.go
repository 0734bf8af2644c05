package command

import (
	"github.com/m4gshm/restruct/config"
	"github.com/m4gshm/restruct/generator"
)

const patchManual = `    //restruct:patch Name[, fields(A, B) | omit(C)][, derive(fmt.Stringer)][, preset = "write"][, option = TriState]
    	a struct with optional fields, the New<Name> constructor and the Merge, MergeInto methods;
    	option Simple wraps the fields into pointers, TriState wraps optional fields into tristate.TriState`

func NewPatch() *Command {
	return New(generator.PatchKind, "generates a partial update of a struct", patchManual,
		func(ctx *Context, d Directive) error {
			cfg, rest, err := config.Resolve(d.Kind, d.Args, ctx.Model, ctx.Capabilities, false)
			if err != nil {
				return err
			}
			option, rest, err := config.TakeOption(rest, cfg.Preset)
			if err != nil {
				return err
			} else if err := rest.AssertExhausted(append(config.Expected, config.OptionArg)...); err != nil {
				return err
			}
			return ctx.Generator.GeneratePatch(ctx.Declaration, cfg.WithOption(option))
		},
	)
}
