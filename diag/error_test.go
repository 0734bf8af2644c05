package diag

import (
	"go/token"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_ErrorPosition(t *testing.T) {
	fileSet := token.NewFileSet()
	file := fileSet.AddFile("user.go", -1, 100)
	file.SetLinesForContent([]byte("package model\n\n//restruct:view UserView, foo(a)\n"))

	pos := file.Pos(40)
	err := Errorf(UnknownArgument, pos, "unknown argument `%s`", "foo").In("view")

	assert.Equal(t, "unknown argument: unknown argument `foo`, directive: view", err.Error())
	assert.Equal(t, "user.go:3:26: unknown argument: unknown argument `foo`, directive: view", err.Position(fileSet))
	assert.Equal(t, "unknown argument `foo`", err.Message())
}

func Test_KindOfWrapped(t *testing.T) {
	err := errors.Wrap(Errorf(ConflictingSelector, token.NoPos, "both"), "resolve")

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, ConflictingSelector, kind)
	assert.True(t, Is(err, ConflictingSelector))
	assert.False(t, Is(err, ShapeMismatch))
	assert.False(t, Is(errors.New("plain"), ShapeMismatch))
}

func Test_InKeepsFirstDirective(t *testing.T) {
	err := Errorf(MissingRequiredName, token.NoPos, "no name").In("patch").In("view")
	assert.Equal(t, "patch", err.Directive)
	assert.Equal(t, "missing required name: no name, directive: patch", err.Position(nil))
}
