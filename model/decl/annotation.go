package decl

import (
	"go/ast"
	"go/token"
	"slices"
	"strconv"
	"strings"
)

// Annotation is a type level comment directive like //go:generate or a field level struct tag.
// Path is the structured name: ["go", "generate"] for a directive, ["json"] for a tag.
type Annotation struct {
	Path  []string
	Value string
	Pos   token.Pos
	// ValuePos is the position of the first byte of Value.
	ValuePos token.Pos
}

// Is reports whether the annotation path starts with the path.
func (a Annotation) Is(path ...string) bool {
	return len(path) <= len(a.Path) && slices.Equal(a.Path[:len(path)], path)
}

func (a Annotation) Name() string {
	return strings.Join(a.Path, ":")
}

// Directive renders the annotation as a comment directive line.
func (a Annotation) Directive() string {
	line := "//" + a.Name()
	if len(a.Value) > 0 {
		line += " " + a.Value
	}
	return line
}

// Tag renders the annotation as a struct tag element.
func (a Annotation) Tag() string {
	return a.Name() + ":" + strconv.Quote(a.Value)
}

// ParseDirective parses //ns:name value comment lines, other comments are not directives.
func ParseDirective(comment *ast.Comment) (Annotation, bool) {
	text := comment.Text
	if !strings.HasPrefix(text, "//") {
		return Annotation{}, false
	}
	line := text[2:]
	if !isDirective(line) {
		return Annotation{}, false
	}
	name, value, _ := strings.Cut(line, " ")
	valueOffset := len("//") + len(name)
	trimmed := strings.TrimLeft(value, " \t")
	if len(trimmed) > 0 {
		valueOffset += 1 + len(value) - len(trimmed)
	}
	return Annotation{
		Path:     strings.Split(name, ":"),
		Value:    strings.TrimRight(trimmed, " \t\r"),
		Pos:      comment.Slash,
		ValuePos: comment.Slash + token.Pos(valueOffset),
	}, true
}

// isDirective follows the go/ast convention: a //x:y comment without a space after the slashes.
func isDirective(line string) bool {
	colon := strings.Index(line, ":")
	if colon <= 0 || colon+1 >= len(line) {
		return false
	}
	for i := 0; i <= colon+1; i++ {
		if i == colon {
			continue
		}
		b := line[i]
		if !('a' <= b && b <= 'z' || '0' <= b && b <= '9') {
			return false
		}
	}
	return true
}

// Directives extracts the directive lines of a comment group in source order.
func Directives(group *ast.CommentGroup) []Annotation {
	if group == nil {
		return nil
	}
	var result []Annotation
	for _, comment := range group.List {
		if a, ok := ParseDirective(comment); ok {
			result = append(result, a)
		}
	}
	return result
}

// ParseTags splits a struct tag into key:"value" annotations keeping the key order.
// The malformed tail of a tag is dropped the same way reflect.StructTag.Lookup ignores it.
func ParseTags(tag string) []Annotation {
	var result []Annotation
	for tag != "" {
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}
		tag = tag[i:]
		if tag == "" {
			break
		}

		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}
		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			break
		}
		key := tag[:i]
		tag = tag[i+1:]

		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(tag) {
			break
		}
		quoted := tag[:i+1]
		tag = tag[i+1:]

		value, err := strconv.Unquote(quoted)
		if err != nil {
			break
		}
		result = append(result, Annotation{Path: []string{key}, Value: value})
	}
	return result
}

// TagValues splits a tag value on commas, json:"name,omitempty" gives [name omitempty].
func TagValues(tag Annotation) []string {
	return strings.Split(tag.Value, ",")
}
