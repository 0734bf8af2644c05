package generator

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/m4gshm/gollections/slice"
)

func MethodName(typ, fun string) string { return typ + "." + fun }

func NoLint(nolint bool) string {
	if nolint {
		return " //nolint"
	}
	return ""
}

func TypeReceiverVar(typeName string) string {
	if parts := strings.Split(typeName, "."); len(parts) > 1 {
		if converted := slice.Convert(parts, TypeReceiverVar); len(converted) > 1 {
			if len(converted[1]) > 0 {
				return converted[1]
			} else if len(converted[0]) > 0 {
				return converted[0]
			}
		}
	} else if f, ok := slice.First([]rune(typeName), unicode.IsLetter); ok {
		return string(unicode.ToLower(f))
	}
	return "r"
}

// IdentName changes the case of the first letter.
func IdentName(name string, export bool) string {
	if len(name) == 0 {
		return name
	}
	first, size := utf8.DecodeRuneInString(name)
	if export {
		first = unicode.ToUpper(first)
	} else {
		first = unicode.ToLower(first)
	}
	return string(first) + name[size:]
}

// VariantName names a variant of the derived union: the union prefix of the original variant name is replaced by the derived one.
// Shape, ShapeCircle -> ShapeView, ShapeViewCircle; Shape, Circle -> ShapeView, ShapeViewCircle.
func VariantName(derived, union, variant string) string {
	suffix := variant
	if trimmed, ok := strings.CutPrefix(variant, union); ok && len(trimmed) > 0 {
		suffix = trimmed
	}
	return derived + IdentName(suffix, true)
}

// MarkerMethod names the unexported method that seals a derived union.
func MarkerMethod(union string) string {
	return "is" + IdentName(union, true)
}

func IsExported(name string) bool {
	return token.IsExported(name)
}
