package usage

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4gshm/restruct/conv"
	"github.com/m4gshm/restruct/tristate"
)

func ptr[T any](v T) *T { return &v }

func account() Account {
	return Account{ID: 1, Email: "first@example.com", Name: ptr("First"), Password: "secret"}
}

func Test_AccountView(t *testing.T) {
	view := NewAccountView(account())

	assert.Equal(t, AccountView{ID: 1, Email: "first@example.com", Name: ptr("First")}, view)
	assert.Equal(t, "1 first@example.com", fmt.Sprint(view))

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"email":"first@example.com","name":"First"}`, string(data))
}

func Test_AccountPatchMerge(t *testing.T) {
	patch := AccountPatch{Email: ptr("second@example.com"), Name: tristate.Null[string]()}

	merged := patch.Merge(account())

	assert.Equal(t, Account{ID: 1, Email: "second@example.com", Password: "secret"}, merged)
	assert.Equal(t, merged, patch.Merge(merged), "a patch applied twice changes nothing")
}

func Test_AccountPatchEmpty(t *testing.T) {
	origin := account()
	assert.Equal(t, origin, AccountPatch{}.Merge(origin))
}

func Test_AccountPatchRoundTrip(t *testing.T) {
	source := Account{ID: 2, Email: "source@example.com", Password: "other"}
	target := account()

	merged := NewAccountPatch(source).Merge(target)

	assert.Equal(t, Account{ID: 1, Email: "source@example.com", Password: "other"}, merged)
}

func Test_AccountPatchMergeInto(t *testing.T) {
	a := account()
	AccountPatch{Name: tristate.Value("Renamed")}.MergeInto(&a)

	require.NotNil(t, a.Name)
	assert.Equal(t, "Renamed", *a.Name)
	assert.Equal(t, "first@example.com", a.Email)
}

func Test_AccountPatchJSON(t *testing.T) {
	for name, tc := range map[string]struct {
		json     string
		expected *string
	}{
		"absent": {`{}`, ptr("First")},
		"null":   {`{"name":null}`, nil},
		"value":  {`{"name":"Second"}`, ptr("Second")},
	} {
		t.Run(name, func(t *testing.T) {
			var patch AccountPatch
			require.NoError(t, json.Unmarshal([]byte(tc.json), &patch))
			assert.Equal(t, tc.expected, patch.Merge(account()).Name)
		})
	}
}

func Test_AccountPatchJSONRoundTrip(t *testing.T) {
	for name, patch := range map[string]AccountPatch{
		"unset": {},
		"null":  {Name: tristate.Null[string]()},
		"value": {Email: ptr("second@example.com"), Name: tristate.Value("Second")},
	} {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(patch)
			require.NoError(t, err)
			var decoded AccountPatch
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, patch.Merge(account()), decoded.Merge(account()))
		})
	}

	data, err := json.Marshal(AccountPatch{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":null,"password":null}`, string(data))
}

func Test_AccountCopyRoundTrip(t *testing.T) {
	for _, a := range []Account{account(), {}, {ID: 3, Email: "third@example.com"}} {
		assert.Equal(t, a, NewAccountCopy(a).ToAccount())
	}
}

func Test_FigurePointerVariant(t *testing.T) {
	figure, err := NewFigure(&Rect{W: 2, H: 3})
	require.NoError(t, err)
	assert.Equal(t, FigureRect{W: 2, H: 3}, figure)

	circle := Circle(1.5)
	figure, err = NewFigure(&circle)
	require.NoError(t, err)
	assert.Equal(t, FigureCircle(1.5), figure)

	figure, err = NewFigure((*Rect)(nil))
	assert.NoError(t, err)
	assert.Nil(t, figure)
}

func Test_FigureRoundTrip(t *testing.T) {
	for _, shape := range []Shape{Circle(1.5), Rect{W: 2, H: 3}} {
		figure, err := NewFigure(shape)
		require.NoError(t, err)
		back, err := FigureToShape(figure)
		require.NoError(t, err)
		assert.Equal(t, shape, back)
	}
	figure, err := NewFigure(Rect{W: 2, H: 3})
	require.NoError(t, err)
	assert.Equal(t, FigureRect{W: 2, H: 3}, figure)
}

func Test_FigureNil(t *testing.T) {
	figure, err := NewFigure(nil)
	assert.NoError(t, err)
	assert.Nil(t, figure)

	shape, err := FigureToShape(nil)
	assert.NoError(t, err)
	assert.Nil(t, shape)
}

func Test_FigureUnmappedVariant(t *testing.T) {
	_, err := NewFigure(Point{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, conv.ErrUnmappedVariant))

	var variantErr *conv.VariantError
	require.ErrorAs(t, err, &variantErr)
	assert.Equal(t, "Shape", variantErr.Source)
	assert.Equal(t, "Figure", variantErr.Target)
	assert.Equal(t, Point{}, variantErr.Variant)
}
