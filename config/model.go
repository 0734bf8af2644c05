package config

import (
	"github.com/m4gshm/restruct/args"
	"github.com/m4gshm/restruct/diag"
	"github.com/m4gshm/restruct/model/decl"
	"github.com/m4gshm/restruct/selector"
)

const (
	Namespace = "restruct"
	ModelKind = "model"

	BaseArg           = "base"
	DefaultsArg       = "defaults"
	DeriveArg         = "derive"
	PresetArg         = "preset"
	AttributesWithArg = "attributes_with"
	OptionArg         = "option"
)

// Expected lists the arguments every view and patch directive accepts after the name.
var Expected = []string{selector.FieldsArg, selector.OmitArg, DeriveArg, AttributesWithArg, PresetArg}

// Base is merged into every directive of the declaration.
type Base struct {
	Fields selector.Fields
	Derive []args.Path
}

// Defaults is used by the directives that do not define their own values.
type Defaults struct {
	Fields selector.Fields
	Derive []args.Path
	Preset *Preset
	// AttributesWith is the explicit value, else the one implied by Preset, else none.
	AttributesWith AttributesWith
}

// Model is the type level configuration shared by the directives of one declaration.
type Model struct {
	Base     *Base
	Defaults *Defaults
}

// ModelOf parses the model directive of the declaration, a declaration without one gets the zero Model.
func ModelOf(directives []decl.Annotation, caps Capabilities) (Model, error) {
	switch len(directives) {
	case 0:
		return Model{}, nil
	case 1:
		directive := directives[0]
		a, err := args.Parse(directive.Value, directive.ValuePos)
		if err != nil {
			return Model{}, diag.In(err, directive.Directive())
		}
		model, err := ParseModel(a, caps)
		return model, diag.In(err, directive.Directive())
	default:
		return Model{}, diag.Errorf(diag.MalformedArgument, directives[1].Pos,
			"expected only one `%s` directive to derive defaults from", ModelKind).In(directives[1].Directive())
	}
}

// ParseModel parses base(...) and defaults(...) groups.
func ParseModel(a args.Args, caps Capabilities) (Model, error) {
	var model Model
	baseArgs, rest, ok, err := a.TakeGroup(BaseArg)
	if err != nil {
		return model, err
	} else if ok {
		base, err := parseBase(baseArgs)
		if err != nil {
			return model, err
		}
		model.Base = &base
	}
	defaultsArgs, rest, ok, err := rest.TakeGroup(DefaultsArg)
	if err != nil {
		return model, err
	} else if ok {
		defaults, err := parseDefaults(defaultsArgs, caps)
		if err != nil {
			return model, err
		}
		model.Defaults = &defaults
	}
	return model, rest.AssertExhausted(BaseArg, DefaultsArg)
}

func parseBase(a args.Args) (Base, error) {
	fields, rest, err := selector.Parse(a)
	if err != nil {
		return Base{}, err
	}
	derive, rest, _, err := rest.TakePathList(DeriveArg)
	if err != nil {
		return Base{}, err
	}
	return Base{Fields: fields, Derive: derive}, rest.AssertExhausted(selector.FieldsArg, selector.OmitArg, DeriveArg)
}

func parseDefaults(a args.Args, caps Capabilities) (Defaults, error) {
	fields, rest, err := selector.Parse(a)
	if err != nil {
		return Defaults{}, err
	}
	derive, rest, _, err := rest.TakePathList(DeriveArg)
	if err != nil {
		return Defaults{}, err
	}
	preset, rest, err := takePreset(rest, caps)
	if err != nil {
		return Defaults{}, err
	}
	attributes, rest, err := takeAttributesWith(rest, caps)
	if err != nil {
		return Defaults{}, err
	}
	defaults := Defaults{Fields: fields, Derive: derive, Preset: preset}
	if attributes != nil {
		defaults.AttributesWith = *attributes
	} else if preset != nil {
		defaults.AttributesWith = preset.AttributesWith()
	}
	return defaults, rest.AssertExhausted(Expected...)
}

func takePreset(a args.Args, caps Capabilities) (*Preset, args.Args, error) {
	value, rest, ok, err := a.TakeLiteral(PresetArg)
	if err != nil || !ok {
		return nil, rest, err
	}
	preset, err := ParsePreset(value, a.PosOf(PresetArg), caps)
	if err != nil {
		return nil, a, err
	}
	return &preset, rest, nil
}

func takeAttributesWith(a args.Args, caps Capabilities) (*AttributesWith, args.Args, error) {
	value, rest, ok, err := a.TakeLiteral(AttributesWithArg)
	if err != nil || !ok {
		return nil, rest, err
	}
	attributes, err := ParseAttributesWith(value, a.PosOf(AttributesWithArg), caps)
	if err != nil {
		return nil, a, err
	}
	return &attributes, rest, nil
}
