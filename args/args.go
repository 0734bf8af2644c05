package args

import (
	"go/token"
	"strconv"
	"strings"

	"github.com/m4gshm/gollections/collection/immutable"
	"github.com/m4gshm/gollections/slice"

	"github.com/m4gshm/restruct/diag"
)

// Args is an unconsumed, order independent sequence of directive arguments.
// Every Take method leaves the receiver intact and returns the remaining sequence.
type Args []Token

// Path is a dotted identifier path like fmt.Stringer.
type Path []string

func (p Path) String() string {
	return strings.Join(p, ".")
}

func (a Args) Pos() token.Pos {
	if len(a) == 0 {
		return token.NoPos
	}
	return a[0].Pos
}

// Name takes the leading positional identifier and the comma after it.
func (a Args) Name() (string, Args, error) {
	if len(a) == 0 {
		return "", a, diag.Errorf(diag.MissingRequiredName, token.NoPos, "the first argument must be the name of the derived type")
	}
	first := a[0]
	if first.Kind != Ident {
		return "", a, diag.Errorf(diag.MissingRequiredName, first.Pos, "the first argument must be the name of the derived type, got `%s`", first)
	} else if len(a) > 1 {
		if next := a[1]; next.Kind == Group || next.isPunct("=") {
			return "", a, diag.Errorf(diag.MissingRequiredName, first.Pos, "the first argument must be the name of the derived type, got argument `%s`", first)
		} else if !next.isComma() {
			return "", a, diag.Errorf(diag.MalformedArgument, next.Pos, "expected `,` after the name `%s`, got `%s`", first, next)
		}
	}
	return first.Text, a.without(0, 1), nil
}

// TakeGroup takes `name(...)` and returns the group body.
func (a Args) TakeGroup(name string) (Args, Args, bool, error) {
	i := a.indexOf(name)
	if i < 0 {
		return nil, a, false, nil
	} else if i+1 >= len(a) || a[i+1].Kind != Group || a[i+1].Text != "(" {
		return nil, a, true, diag.Errorf(diag.MalformedArgument, a[i].Pos, "expected `%s(...)`", name)
	}
	return a[i+1].Inner, a.without(i, i+2), true, nil
}

// TakeLiteral takes `name = "value"` and returns the unquoted value.
func (a Args) TakeLiteral(name string) (string, Args, bool, error) {
	i := a.indexOf(name)
	if i < 0 {
		return "", a, false, nil
	}
	value, ok := a.assigned(i, Literal)
	if !ok || value.Lit != token.STRING {
		return "", a, true, diag.Errorf(diag.MalformedArgument, a[i].Pos, "expected `%s = \"value\"`", name)
	}
	s, err := strconv.Unquote(value.Text)
	if err != nil {
		return "", a, true, diag.Errorf(diag.MalformedArgument, value.Pos, "bad string literal %s: %v", value.Text, err)
	}
	return s, a.without(i, i+3), true, nil
}

// TakeIdent takes `name = Ident`.
func (a Args) TakeIdent(name string) (string, Args, bool, error) {
	i := a.indexOf(name)
	if i < 0 {
		return "", a, false, nil
	}
	value, ok := a.assigned(i, Ident)
	if !ok {
		return "", a, true, diag.Errorf(diag.MalformedArgument, a[i].Pos, "expected `%s = Identifier`", name)
	}
	return value.Text, a.without(i, i+3), true, nil
}

// TakePathList takes `name(a.B, c)`. An empty list is reported as absent.
func (a Args) TakePathList(name string) ([]Path, Args, bool, error) {
	inner, rest, ok, err := a.TakeGroup(name)
	if err != nil || !ok {
		return nil, rest, ok, err
	}
	paths, err := inner.Paths()
	if err != nil {
		return nil, a, true, err
	}
	return paths, rest, len(paths) > 0, nil
}

// Paths interprets the sequence as a comma separated list of dotted paths.
func (a Args) Paths() ([]Path, error) {
	var (
		paths       []Path
		current     Path
		expectIdent = true
	)
	for _, t := range a {
		switch {
		case expectIdent && t.Kind == Ident:
			current = append(current, t.Text)
			expectIdent = false
		case !expectIdent && t.isPunct("."):
			expectIdent = true
		case !expectIdent && t.isComma():
			paths = append(paths, current)
			current = nil
			expectIdent = true
		default:
			return nil, diag.Errorf(diag.MalformedArgument, t.Pos, "unexpected `%s` in path list `%s`", t, a)
		}
	}
	if len(current) > 0 {
		if expectIdent {
			return nil, diag.Errorf(diag.MalformedArgument, a[len(a)-1].Pos, "incomplete path `%s.`", current)
		}
		paths = append(paths, current)
	}
	return paths, nil
}

// Idents interprets the sequence as a comma separated list of identifiers.
func (a Args) Idents() ([]string, error) {
	names := make([]string, 0, (len(a)+1)/2)
	for i, t := range a {
		if i%2 == 0 {
			if t.Kind != Ident {
				return nil, diag.Errorf(diag.MalformedArgument, t.Pos, "expected identifier, got `%s`", t)
			}
			names = append(names, t.Text)
		} else if !t.isComma() {
			return nil, diag.Errorf(diag.MalformedArgument, t.Pos, "expected `,`, got `%s`", t)
		}
	}
	return names, nil
}

// AssertExhausted fails on the first leftover argument.
func (a Args) AssertExhausted(allowed ...string) error {
	if len(a) == 0 {
		return nil
	}
	t := a[0]
	if t.Kind != Ident {
		return diag.Errorf(diag.MalformedArgument, t.Pos, "unexpected `%s`", a)
	} else if immutable.NewSet(allowed...).Contains(t.Text) {
		return diag.Errorf(diag.MalformedArgument, t.Pos, "duplicated argument `%s`", t.Text)
	}
	return diag.Errorf(diag.UnknownArgument, t.Pos, "unknown argument `%s`, all known arguments are [%s]",
		t.Text, strings.Join(slice.Convert(allowed, strconv.Quote), ", "))
}

// PosOf returns the position of the argument name or NoPos.
func (a Args) PosOf(name string) token.Pos {
	if i := a.indexOf(name); i >= 0 {
		return a[i].Pos
	}
	return token.NoPos
}

func (a Args) indexOf(name string) int {
	for i, t := range a {
		if t.Kind == Ident && t.Text == name && (i == 0 || a[i-1].isComma()) {
			return i
		}
	}
	return -1
}

func (a Args) assigned(i int, kind Kind) (Token, bool) {
	if i+2 < len(a) && a[i+1].isPunct("=") && a[i+2].Kind == kind {
		return a[i+2], true
	}
	return Token{}, false
}

// without removes a[from:to] and the trailing comma after it.
func (a Args) without(from, to int) Args {
	if to < len(a) && a[to].isComma() {
		to++
	}
	rest := make(Args, 0, len(a)-(to-from))
	rest = append(rest, a[:from]...)
	return append(rest, a[to:]...)
}
