package config

import (
	"go/token"
	"slices"
	"strconv"
	"strings"

	"github.com/m4gshm/gollections/slice"

	"github.com/m4gshm/restruct/diag"
	"github.com/m4gshm/restruct/model/decl"
)

// Capability enables optional integrations.
type Capability string

const CapabilityOpenAPI Capability = "openapi"

var AllCapabilities = []Capability{CapabilityOpenAPI}

type Capabilities []Capability

func (c Capabilities) Has(capability Capability) bool {
	return slices.Contains(c, capability)
}

type Preset int

const (
	PresetNone Preset = iota
	// PresetRead keeps the fields visible on read.
	PresetRead
	// PresetWrite keeps the writable fields.
	PresetWrite
)

var presets = []enumValue[Preset]{
	{"none", PresetNone, ""},
	{"read", PresetRead, CapabilityOpenAPI},
	{"write", PresetWrite, CapabilityOpenAPI},
}

func ParsePreset(value string, pos token.Pos, caps Capabilities) (Preset, error) {
	return parseEnum(PresetArg, value, pos, caps, presets)
}

func (p Preset) String() string {
	return nameOf(p, presets)
}

// Predicate drops fields hidden by the preset, write only fields on read and read only fields on write.
func (p Preset) Predicate(field decl.Field) bool {
	switch p {
	case PresetRead:
		return !hasOpenAPIFlag(field, "writeOnly")
	case PresetWrite:
		return !hasOpenAPIFlag(field, "readOnly")
	default:
		return true
	}
}

// Option is the option policy implied by the preset.
func (p Preset) Option() OptionPolicy {
	if p == PresetNone {
		return OptionSimple
	}
	return OptionTriState
}

// AttributesWith is the attributes propagation implied by the preset.
func (p Preset) AttributesWith() AttributesWith {
	if p == PresetNone {
		return AttributesNone
	}
	return AttributesOpenAPI
}

func hasOpenAPIFlag(field decl.Field, flag string) bool {
	tag, ok := field.Tag(string(CapabilityOpenAPI))
	return ok && slices.Contains(slice.Convert(decl.TagValues(tag), strings.TrimSpace), flag)
}

// AttributesWith selects the annotations of the original copied to a derived type and its members.
type AttributesWith int

const (
	AttributesNone AttributesWith = iota
	// AttributesDeriveless copies everything except go:generate directives.
	AttributesDeriveless
	AttributesAll
	// AttributesOpenAPI copies only openapi directives and tags.
	AttributesOpenAPI
)

var attributesWith = []enumValue[AttributesWith]{
	{"none", AttributesNone, ""},
	{"deriveless", AttributesDeriveless, ""},
	{"all", AttributesAll, ""},
	{"openapi", AttributesOpenAPI, CapabilityOpenAPI},
}

func ParseAttributesWith(value string, pos token.Pos, caps Capabilities) (AttributesWith, error) {
	return parseEnum(AttributesWithArg, value, pos, caps, attributesWith)
}

func (a AttributesWith) String() string {
	return nameOf(a, attributesWith)
}

// OptionPolicy defines how patch fields are wrapped.
type OptionPolicy int

const (
	// OptionSimple wraps every field into a pointer.
	OptionSimple OptionPolicy = iota
	// OptionTriState wraps optional fields into tristate.TriState.
	OptionTriState
)

var options = []enumValue[OptionPolicy]{
	{"Simple", OptionSimple, ""},
	{"TriState", OptionTriState, ""},
}

func ParseOption(value string, pos token.Pos) (OptionPolicy, error) {
	return parseEnum(OptionArg, value, pos, nil, options)
}

func (o OptionPolicy) String() string {
	return nameOf(o, options)
}

type enumValue[T comparable] struct {
	name     string
	value    T
	requires Capability
}

func parseEnum[T comparable](arg, value string, pos token.Pos, caps Capabilities, values []enumValue[T]) (T, error) {
	enabled := slice.Filter(values, func(v enumValue[T]) bool { return len(v.requires) == 0 || caps.Has(v.requires) })
	for _, v := range enabled {
		if v.name == value {
			return v.value, nil
		}
	}
	var no T
	allowed := slice.Convert(enabled, func(v enumValue[T]) string { return strconv.Quote(v.name) })
	if i := slices.IndexFunc(values, func(v enumValue[T]) bool { return v.name == value }); i >= 0 {
		return no, diag.Errorf(diag.InvalidEnumValue, pos, "%s value %q requires the %q capability, allowed values are [%s]",
			arg, value, values[i].requires, strings.Join(allowed, ", "))
	}
	return no, diag.Errorf(diag.InvalidEnumValue, pos, "invalid %s value %q, allowed values are [%s]", arg, value, strings.Join(allowed, ", "))
}

func nameOf[T comparable](value T, values []enumValue[T]) string {
	for _, v := range values {
		if v.value == value {
			return v.name
		}
	}
	return "unknown"
}
