package selector

import (
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4gshm/restruct/args"
	"github.com/m4gshm/restruct/diag"
)

var ignoreProvenance = cmpopts.IgnoreFields(Fields{}, "Explicit", "Pos")

func Test_MergeLaws(t *testing.T) {
	cases := []struct {
		name        string
		local, base Fields
		want        Fields
	}{
		{"default with default", Fields{}, Fields{}, Fields{Mode: Exclude, Names: []string{}}},
		{"include with exclude", IncludeOf("a", "b"), ExcludeOf("a"), IncludeOf("b")},
		{"exclude with include", ExcludeOf("a"), IncludeOf("a", "b"), IncludeOf("b")},
		{"include with include, base wins", IncludeOf("c", "a"), IncludeOf("a", "b"), IncludeOf("c", "a", "b")},
		{"exclude with exclude", ExcludeOf("c", "a"), ExcludeOf("a", "b"), ExcludeOf("a", "b", "c")},
		{"include with default base", IncludeOf("a"), Fields{}, IncludeOf("a")},
		{"exclude with default base", ExcludeOf("a"), Fields{}, ExcludeOf("a")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Merge(c.local, c.base)
			if diff := cmp.Diff(c.want, got, ignoreProvenance, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("merge mismatch (-want +got):\n%s", diff)
			}
		})
	}
	assert.True(t, Merge(Fields{}, Fields{}).IsDefault())
}

func Test_Predicate(t *testing.T) {
	assert.True(t, Fields{}.Predicate("ID"))
	assert.True(t, Fields{}.IsDefault())

	include := IncludeOf("Name", "Bio")
	assert.True(t, include.Predicate("Name"))
	assert.False(t, include.Predicate("ID"))
	assert.False(t, include.IsDefault())

	exclude := ExcludeOf("Password")
	assert.False(t, exclude.Predicate("Password"))
	assert.True(t, exclude.Predicate("Name"))

	explicitEmpty := ExcludeOf()
	assert.True(t, explicitEmpty.IsDefault())
	assert.True(t, explicitEmpty.Explicit)
	assert.Equal(t, "omit()", explicitEmpty.String())
	assert.Equal(t, "fields(Name, Bio)", include.String())
}

func Test_Parse(t *testing.T) {
	a, err := args.Parse(`derive(fmt.Stringer), fields(Name, Bio)`, token.Pos(1))
	require.NoError(t, err)

	fields, rest, err := Parse(a)
	require.NoError(t, err)
	assert.Equal(t, Include, fields.Mode)
	assert.Equal(t, []string{"Name", "Bio"}, fields.Names)
	assert.True(t, fields.Explicit)
	assert.Equal(t, "derive(fmt.Stringer),", rest.String())

	a, err = args.Parse(`omit()`, token.Pos(1))
	require.NoError(t, err)
	fields, rest, err = Parse(a)
	require.NoError(t, err)
	assert.True(t, fields.IsDefault())
	assert.True(t, fields.Explicit)
	assert.Empty(t, rest)

	a, err = args.Parse(`derive(fmt.Stringer)`, token.Pos(1))
	require.NoError(t, err)
	fields, _, err = Parse(a)
	require.NoError(t, err)
	assert.False(t, fields.Explicit)
	assert.True(t, fields.IsDefault())
}

func Test_ParseConflict(t *testing.T) {
	a, err := args.Parse(`fields(Name), omit(ID)`, token.Pos(1))
	require.NoError(t, err)

	_, _, err = Parse(a)
	assert.True(t, diag.Is(err, diag.ConflictingSelector))
}
