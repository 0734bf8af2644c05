package tristate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ExactlyOneState(t *testing.T) {
	for name, s := range map[string]TriState[string]{
		"unset": Unset[string](),
		"null":  Null[string](),
		"value": Value("x"),
	} {
		count := 0
		for _, on := range []bool{s.IsUnset(), s.IsNull(), s.IsSet()} {
			if on {
				count++
			}
		}
		assert.Equal(t, 1, count, name)
	}
	var zero TriState[int]
	assert.True(t, zero.IsUnset())
	assert.True(t, zero.IsZero())
}

func Test_FromPtr(t *testing.T) {
	assert.True(t, FromPtr[string](nil).IsNull())

	s := "bio"
	fromValue := FromPtr(&s)
	v, ok := fromValue.Get()
	assert.True(t, ok)
	assert.Equal(t, "bio", v)

	s = "changed"
	v, _ = fromValue.Get()
	assert.Equal(t, "bio", v)
}

func Test_Apply(t *testing.T) {
	old := "old"

	target := &old
	Unset[string]().Apply(&target)
	require.NotNil(t, target)
	assert.Equal(t, "old", *target)

	Null[string]().Apply(&target)
	assert.Nil(t, target)

	Value("new").Apply(&target)
	require.NotNil(t, target)
	assert.Equal(t, "new", *target)
	assert.Equal(t, "old", old)
}

func Test_Ptr(t *testing.T) {
	assert.Nil(t, Null[int]().Ptr())
	assert.Nil(t, Unset[int]().Ptr())
	p := Value(5).Ptr()
	require.NotNil(t, p)
	assert.Equal(t, 5, *p)
}

func Test_JSON(t *testing.T) {
	type patch struct {
		Bio  TriState[string] `json:"bio,omitzero"`
		Name TriState[string] `json:"name"`
	}

	data, err := json.Marshal(patch{Name: Value("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x"}`, string(data))

	data, err = json.Marshal(patch{Bio: Null[string](), Name: Value("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"bio":null,"name":"x"}`, string(data))

	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"bio":null}`), &p))
	assert.True(t, p.Bio.IsNull())
	assert.True(t, p.Name.IsUnset())

	require.NoError(t, json.Unmarshal([]byte(`{"name":"y"}`), &p))
	name, ok := p.Name.Get()
	assert.True(t, ok)
	assert.Equal(t, "y", name)

	assert.Error(t, json.Unmarshal([]byte(`{"name":1}`), &p))
}

func Test_String(t *testing.T) {
	assert.Equal(t, "unset", Unset[int]().String())
	assert.Equal(t, "null", Null[int]().String())
	assert.Equal(t, "1", Value(1).String())
}
