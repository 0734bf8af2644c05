package diag

import (
	"errors"
	"fmt"
	"go/token"
)

type Kind int

const (
	MalformedArgument Kind = iota + 1
	ConflictingSelector
	UnknownArgument
	MissingRequiredName
	InvalidEnumValue
	ShapeMismatch
	UnsupportedDeclaration
)

var kindNames = map[Kind]string{
	MalformedArgument:      "malformed argument",
	ConflictingSelector:    "conflicting selector",
	UnknownArgument:        "unknown argument",
	MissingRequiredName:    "missing required name",
	InvalidEnumValue:       "invalid enum value",
	ShapeMismatch:          "shape mismatch",
	UnsupportedDeclaration: "unsupported declaration",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func Errorf(kind Kind, pos token.Pos, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, message: fmt.Sprintf(format, args...)}
}

// Error is a fatal directive processing failure located at the offending annotation token.
type Error struct {
	Kind      Kind
	Pos       token.Pos
	Directive string
	message   string
}

var _ error = (*Error)(nil)

func (e *Error) Message() string {
	return e.message
}

func (e *Error) Error() string {
	m := e.Kind.String() + ": " + e.message
	if len(e.Directive) > 0 {
		m += ", directive: " + e.Directive
	}
	return m
}

// In binds the error to the directive it was raised for, the first binding wins.
func (e *Error) In(directive string) *Error {
	if len(e.Directive) == 0 {
		e.Directive = directive
	}
	return e
}

func (e *Error) Position(fileSet *token.FileSet) string {
	if fileSet == nil || !e.Pos.IsValid() {
		return e.Error()
	}
	return fileSet.Position(e.Pos).String() + ": " + e.Error()
}

func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// In binds a diagnostic error to the directive, other errors are returned as is.
func In(err error, directive string) error {
	var de *Error
	if errors.As(err, &de) {
		de.In(directive)
	}
	return err
}
