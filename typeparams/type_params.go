package typeparams

import (
	"errors"
	"fmt"
	"go/types"

	"github.com/m4gshm/gollections/c"
	"github.com/m4gshm/gollections/k"
	"github.com/m4gshm/gollections/op/delay/string_/join"
	"github.com/m4gshm/gollections/op/string_"
	"github.com/m4gshm/gollections/seq"
	"github.com/m4gshm/gollections/seq2"
	"github.com/m4gshm/gollections/slice"
)

var ErrNilTypeParam = errors.New("nil type parameter")

// TypeParams renders the type parameters of a generic declaration for the derived declarations.
type TypeParams struct {
	seq.Seq[*types.TypeParam]
	TypeString
}
type NameType = c.KV[string, string]
type NameTypes = []NameType
type TypeString = func(typ types.Type) string

func New(tparams *types.TypeParamList, typeString TypeString) TypeParams {
	return TypeParams{Seq: seq.OfIndexed(tparams.Len(), tparams.At), TypeString: typeString}
}

func (params TypeParams) nameTypePairs() NameTypes {
	return seq.Slice(seq2.ToSeq(seq.Conv(params.Seq, params.elemToNameTypeConv()), func(pair NameType, err error) NameType {
		if err != nil {
			return k.V(fmt.Sprintf("/*error: %s*/", err.Error()), "")
		}
		return pair
	}))
}

func (params TypeParams) elemToNameTypeConv() func(elem *types.TypeParam) (NameType, error) {
	typeString := params.TypeString
	return func(elem *types.TypeParam) (NameType, error) {
		if elem == nil {
			return k.V("", ""), ErrNilTypeParam
		}
		return k.V(typeString(elem), typeString(elem.Constraint())), nil
	}
}

// IdentDecl returns the instantiation [T, K] and the declaration [T any, K comparable] strings.
func (params TypeParams) IdentDecl() (string, string) {
	pairs := params.nameTypePairs()
	return identString(names(pairs)), declarationString(pairs)
}

func (params TypeParams) Names() []string {
	return names(params.nameTypePairs())
}

func names(pairs NameTypes) []string {
	return slice.Convert(pairs, c.KV[string, string].Key)
}

func identString(names []string) string {
	return string_.WrapNonEmpty("[", slice.Reduce(names, join.NonEmpty(", ")), "]")
}

func declarationString(pairs NameTypes) string {
	joinedStr := slice.Reduce(pairs, func(prev NameType, pair NameType) NameType {
		prevType := prev.V
		prevName := prev.K
		delim := ", "
		name := pair.K
		typ := pair.V
		if typ != prevType {
			delim = " " + prevType + ", "
		}
		name = prevName + delim + name
		return k.V(name, typ)
	})
	return string_.WrapNonEmpty("[", string_.JoinNonEmpty(joinedStr.K, " ", joinedStr.V), "]")
}
