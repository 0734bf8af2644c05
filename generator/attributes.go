package generator

import (
	"strconv"
	"strings"

	"github.com/m4gshm/gollections/slice"

	"github.com/m4gshm/restruct/config"
	"github.com/m4gshm/restruct/model/decl"
)

const (
	goGenerate = "generate"
	jsonTag    = "json"
	omitEmpty  = "omitempty"
	omitZero   = "omitzero"
)

// TopAnnotations filters the type or variant level directives copied to a derived declaration.
func TopAnnotations(attributesWith config.AttributesWith, annotations []decl.Annotation) []decl.Annotation {
	switch attributesWith {
	case config.AttributesAll:
		return slice.Filter(annotations, func(a decl.Annotation) bool { return !a.Is(config.Namespace) })
	case config.AttributesDeriveless:
		return slice.Filter(annotations, func(a decl.Annotation) bool { return !a.Is(config.Namespace) && !a.Is("go", goGenerate) })
	case config.AttributesOpenAPI:
		return slice.Filter(annotations, func(a decl.Annotation) bool { return a.Is(string(config.CapabilityOpenAPI)) })
	default:
		return nil
	}
}

// FieldAnnotations filters the struct tags copied to a derived field.
func FieldAnnotations(attributesWith config.AttributesWith, tags []decl.Annotation) []decl.Annotation {
	switch attributesWith {
	case config.AttributesAll, config.AttributesDeriveless:
		return tags
	case config.AttributesOpenAPI:
		return slice.Filter(tags, func(a decl.Annotation) bool { return a.Is(string(config.CapabilityOpenAPI)) })
	default:
		return nil
	}
}

// OmitUnset rewrites the json tag of a tri-state field to skip the unset state on encoding.
// omitempty never skips a struct value, omitzero consults TriState.IsZero.
func OmitUnset(tags []decl.Annotation) []decl.Annotation {
	result := make([]decl.Annotation, 0, len(tags)+1)
	found := false
	for _, tag := range tags {
		if len(tag.Path) == 1 && tag.Is(jsonTag) {
			found = true
			if values := decl.TagValues(tag); values[0] != "-" || len(values) > 1 {
				options := slice.Filter(values[1:], func(o string) bool { return o != omitEmpty && o != omitZero })
				tag.Value = strings.Join(append(append([]string{values[0]}, options...), omitZero), ",")
			}
		}
		result = append(result, tag)
	}
	if !found {
		result = append(result, decl.Annotation{Path: []string{jsonTag}, Value: "," + omitZero})
	}
	return result
}

// DocComment renders documentation lines followed by directives.
func DocComment(doc string, directives []decl.Annotation) string {
	var out strings.Builder
	if len(doc) > 0 {
		for _, line := range strings.Split(doc, "\n") {
			out.WriteString(strings.TrimRight("// "+line, " ") + "\n")
		}
		if len(directives) > 0 {
			out.WriteString("//\n")
		}
	}
	for _, d := range directives {
		out.WriteString(d.Directive() + "\n")
	}
	return out.String()
}

// StructTag renders tags as a raw string literal, or a quoted one if a value contains a back quote.
func StructTag(tags []decl.Annotation) string {
	if len(tags) == 0 {
		return ""
	}
	tag := strings.Join(slice.Convert(tags, decl.Annotation.Tag), " ")
	if strings.Contains(tag, "`") {
		return " " + strconv.Quote(tag)
	}
	return " `" + tag + "`"
}
