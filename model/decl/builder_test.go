package decl

import (
	"fmt"
	"go/token"
	"go/types"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4gshm/restruct/diag"
	"github.com/m4gshm/restruct/model/util"
)

// testUser is a user account.
//
//restruct:model base(derive(fmt.Stringer))
//restruct:view UserView, fields(Name)
type testUser struct {
	// ID is the identifier.
	ID         int `json:"id" openapi:"readOnly"`
	Name, Nick string
	Bio        *string `json:"bio,omitempty"` // optional biography
	testBase
}

type testBase struct{ Created int }

func (u testUser) String() string { return fmt.Sprint(u.ID) }

type testShape interface{ isTestShape() }

type testCircle float64

// testRect is a rectangle.
type testRect struct{ W, H float64 }

type testNone struct{}

type testByPointer struct{}

func (testCircle) isTestShape()     {}
func (testRect) isTestShape()       {}
func (testNone) isTestShape()       {}
func (*testByPointer) isTestShape() {}

type testAny interface{}

type testAlias = testRect

type testNumber int

func load(t *testing.T, typeName string) (*Declaration, error) {
	t.Helper()
	_, filename, _, _ := runtime.Caller(0)
	fileSet := token.NewFileSet()
	pkgs, err := util.ExtractPackages(fileSet, nil, filename)
	require.NoError(t, err)
	typ, pkg, _, _, err := util.FindTypePackageFile(typeName, fileSet, pkgs)
	require.NoError(t, err)
	require.NotNil(t, typ, typeName)
	return New(pkg, typ)
}

func TestNew_Record(t *testing.T) {
	d, err := load(t, "testUser")
	require.NoError(t, err)

	assert.Equal(t, Record, d.Kind)
	assert.Equal(t, "testUser is a user account.", d.Doc)
	assert.Equal(t, []string{"ID", "Name", "Nick", "Bio", "testBase"}, d.Members())
	require.Len(t, d.Directives("restruct"), 2)
	assert.Equal(t, "base(derive(fmt.Stringer))", d.Directives("restruct", "model")[0].Value)

	id := d.Fields[0]
	assert.Equal(t, "ID is the identifier.", id.Doc)
	jsonTag, ok := id.Tag("json")
	require.True(t, ok)
	assert.Equal(t, "id", jsonTag.Value)
	_, optional := id.Optional()
	assert.False(t, optional)

	bio := d.Fields[3]
	assert.Equal(t, "optional biography", bio.Doc)
	elem, optional := bio.Optional()
	assert.True(t, optional)
	assert.Equal(t, types.Typ[types.String], elem)

	assert.True(t, d.Fields[4].Embedded)
	assert.Equal(t, Import{Path: "fmt", Name: "fmt"}, d.Imports["fmt"])
}

func TestNew_Union(t *testing.T) {
	d, err := load(t, "testShape")
	require.NoError(t, err)

	assert.Equal(t, Union, d.Kind)
	assert.Equal(t, []string{"testCircle", "testRect", "testNone"}, d.Members())

	circle, rect, none := d.Variants[0], d.Variants[1], d.Variants[2]
	assert.Equal(t, Positional, circle.Shape)
	assert.Equal(t, 1, circle.Arity())
	assert.Equal(t, types.Typ[types.Float64], circle.Elements[0])

	assert.Equal(t, Named, rect.Shape)
	assert.Equal(t, []string{"W", "H"}, FieldNames(rect.Fields))
	assert.Equal(t, "testRect is a rectangle.", rect.Doc)

	assert.Equal(t, Unit, none.Shape)
	assert.Equal(t, 0, none.Arity())
}

func TestNew_Unsupported(t *testing.T) {
	for _, name := range []string{"testAny", "testAlias", "testNumber"} {
		_, err := load(t, name)
		assert.True(t, diag.Is(err, diag.UnsupportedDeclaration), "%s: %v", name, err)
	}
}
