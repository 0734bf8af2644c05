package selector

import (
	"go/token"
	"slices"
	"strings"

	"github.com/m4gshm/gollections/collection/immutable"
	"github.com/m4gshm/gollections/collection/mutable"
	"github.com/m4gshm/gollections/slice"

	"github.com/m4gshm/restruct/args"
	"github.com/m4gshm/restruct/diag"
)

type Mode int

const (
	// Exclude is a blacklist, the zero value.
	Exclude Mode = iota
	// Include is a whitelist.
	Include
)

const (
	FieldsArg = "fields"
	OmitArg   = "omit"
)

// Fields selects declaration members by name. The zero value is the default selector, Exclude of nothing.
type Fields struct {
	Mode  Mode
	Names []string
	// Explicit marks a selector written by the user, even an empty omit().
	Explicit bool
	Pos      token.Pos
}

func IncludeOf(names ...string) Fields {
	return Fields{Mode: Include, Names: names, Explicit: true}
}

func ExcludeOf(names ...string) Fields {
	return Fields{Mode: Exclude, Names: names, Explicit: true}
}

// Parse takes fields(...) or omit(...) from the arguments.
func Parse(a args.Args) (Fields, args.Args, error) {
	include, rest, withFields, err := a.TakeGroup(FieldsArg)
	if err != nil {
		return Fields{}, a, err
	}
	exclude, rest, withOmit, err := rest.TakeGroup(OmitArg)
	if err != nil {
		return Fields{}, a, err
	}
	switch {
	case withFields && withOmit:
		return Fields{}, a, diag.Errorf(diag.ConflictingSelector, a.Pos(), "cannot have both `%s` and `%s` arguments", FieldsArg, OmitArg)
	case withFields:
		names, err := include.Idents()
		if err != nil {
			return Fields{}, a, err
		}
		return Fields{Mode: Include, Names: names, Explicit: true, Pos: include.Pos()}, rest, nil
	case withOmit:
		names, err := exclude.Idents()
		if err != nil {
			return Fields{}, a, err
		}
		return Fields{Mode: Exclude, Names: names, Explicit: true, Pos: exclude.Pos()}, rest, nil
	default:
		return Fields{}, rest, nil
	}
}

func (f Fields) Predicate(name string) bool {
	contains := slices.Contains(f.Names, name)
	if f.Mode == Include {
		return contains
	}
	return !contains
}

// IsDefault is true for Exclude of nothing, whatever the provenance.
func (f Fields) IsDefault() bool {
	return f.Mode == Exclude && len(f.Names) == 0
}

func (f Fields) String() string {
	mode := OmitArg
	if f.Mode == Include {
		mode = FieldsArg
	}
	return mode + "(" + strings.Join(f.Names, ", ") + ")"
}

// Merge combines a local selector with the base overlay one. Base members win on overlap and follow the local only ones.
func Merge(local, base Fields) Fields {
	var (
		localOnly = minus(local.Names, base.Names)
		result    Fields
	)
	switch {
	case local.Mode == Include && base.Mode == Include:
		result = Fields{Mode: Include, Names: append(localOnly, base.Names...)}
	case local.Mode == Include && base.Mode == Exclude:
		result = Fields{Mode: Include, Names: localOnly}
	case local.Mode == Exclude && base.Mode == Include:
		result = Fields{Mode: Include, Names: minus(base.Names, local.Names)}
	default:
		result = Fields{Mode: Exclude, Names: append(slices.Clone(base.Names), localOnly...)}
	}
	result.Names = distinct(result.Names)
	result.Explicit = local.Explicit || base.Explicit
	result.Pos = local.Pos
	return result
}

func minus(from, subtrahend []string) []string {
	exclude := immutable.NewSet(subtrahend...)
	return slice.Filter(from, func(name string) bool { return !exclude.Contains(name) })
}

func distinct(names []string) []string {
	uniques := mutable.NewSet[string]()
	result := make([]string, 0, len(names))
	for _, name := range names {
		if uniques.AddNew(name) {
			result = append(result, name)
		}
	}
	return result
}
