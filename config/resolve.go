package config

import (
	"go/token"
	"slices"

	"github.com/m4gshm/gollections/collection/mutable"
	"github.com/m4gshm/gollections/slice"

	"github.com/m4gshm/restruct/args"
	"github.com/m4gshm/restruct/logger"
	"github.com/m4gshm/restruct/selector"
)

// Resolved is the configuration of one directive, it is not changed after construction.
type Resolved struct {
	Kind           string
	Name           string
	Fields         selector.Fields
	Derive         []args.Path
	Preset         Preset
	AttributesWith AttributesWith
	Option         OptionPolicy
	Pos            token.Pos
}

// WithOption returns a copy with the option policy replaced.
func (r Resolved) WithOption(option OptionPolicy) *Resolved {
	r.Option = option
	return &r
}

// Resolve builds the configuration of a directive layering the directive arguments over the model defaults and base.
// With strict all the arguments must be consumed, otherwise the rest is returned for the caller specific arguments.
func Resolve(kind string, a args.Args, model Model, caps Capabilities, strict bool) (*Resolved, args.Args, error) {
	name, rest, err := a.Name()
	if err != nil {
		return nil, a, err
	}
	var defaults Defaults
	if model.Defaults != nil {
		defaults = *model.Defaults
	}

	fields, rest, err := selector.Parse(rest)
	if err != nil {
		return nil, a, err
	}
	if !fields.Explicit {
		fields = defaults.Fields
	}
	if model.Base != nil {
		fields = selector.Merge(fields, model.Base.Fields)
	}

	derive, rest, ok, err := rest.TakePathList(DeriveArg)
	if err != nil {
		return nil, a, err
	} else if !ok {
		derive = defaults.Derive
	}
	if model.Base != nil {
		derive = append(slices.Clone(model.Base.Derive), derive...)
	}

	preset, rest, err := takePreset(rest, caps)
	if err != nil {
		return nil, a, err
	} else if preset == nil {
		preset = defaults.Preset
	}

	attributes, rest, err := takeAttributesWith(rest, caps)
	if err != nil {
		return nil, a, err
	}
	attributesWith := defaults.AttributesWith
	if attributes != nil {
		attributesWith = *attributes
	} else if preset != nil {
		attributesWith = preset.AttributesWith()
	}

	if strict {
		if err := rest.AssertExhausted(Expected...); err != nil {
			return nil, a, err
		}
	}

	resolved := &Resolved{
		Kind:           kind,
		Name:           name,
		Fields:         fields,
		Derive:         distinctPaths(derive),
		AttributesWith: attributesWith,
		Pos:            a.Pos(),
	}
	if preset != nil {
		resolved.Preset = *preset
	}
	resolved.Option = resolved.Preset.Option()
	logger.Dump("resolved "+kind+" "+name, resolved)
	return resolved, rest, nil
}

// TakeOption takes the patch option policy, the preset implied one is used when it is absent.
func TakeOption(a args.Args, preset Preset) (OptionPolicy, args.Args, error) {
	value, rest, ok, err := a.TakeIdent(OptionArg)
	if err != nil {
		return 0, a, err
	} else if !ok {
		return preset.Option(), rest, nil
	}
	option, err := ParseOption(value, a.PosOf(OptionArg))
	if err != nil {
		return 0, a, err
	}
	return option, rest, nil
}

func distinctPaths(paths []args.Path) []args.Path {
	uniques := mutable.NewSet[string]()
	return slice.Filter(paths, func(p args.Path) bool { return uniques.AddNew(p.String()) })
}
