package typeparams

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func typeParams(constraints ...string) *types.TypeParamList {
	names := []string{"K", "V", "E"}
	params := make([]*types.TypeParam, 0, len(constraints))
	for i, constraint := range constraints {
		params = append(params, types.NewTypeParam(types.NewTypeName(token.NoPos, nil, names[i], nil), types.Universe.Lookup(constraint).Type()))
	}
	named := types.NewNamed(types.NewTypeName(token.NoPos, nil, "Pair", nil), types.NewStruct(nil, nil), nil)
	named.SetTypeParams(params)
	return named.TypeParams()
}

func typeString(typ types.Type) string { return types.TypeString(typ, nil) }

func Test_IdentDecl(t *testing.T) {
	for name, tc := range map[string]struct {
		constraints  []string
		ident, decl string
	}{
		"none":     {nil, "", ""},
		"one":      {[]string{"any"}, "[K]", "[K any]"},
		"distinct": {[]string{"comparable", "any"}, "[K, V]", "[K comparable, V any]"},
		"shared":   {[]string{"any", "any", "comparable"}, "[K, V, E]", "[K, V any, E comparable]"},
	} {
		t.Run(name, func(t *testing.T) {
			ident, decl := New(typeParams(tc.constraints...), typeString).IdentDecl()
			assert.Equal(t, tc.ident, ident)
			assert.Equal(t, tc.decl, decl)
		})
	}
}

func Test_Names(t *testing.T) {
	assert.Equal(t, []string{"K", "V"}, New(typeParams("comparable", "any"), typeString).Names())
}
