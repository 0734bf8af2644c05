// Package unique picks variable names of generated functions that do not shadow type parameters or imports.
package unique

import (
	"strconv"

	"github.com/m4gshm/gollections/collection/mutable"
	"github.com/m4gshm/gollections/seq"
)

func NewNamesWith(opts ...func(*Names)) *Names {
	u := &Names{calc: increment(1, 1)}
	for _, o := range opts {
		o(u)
	}
	return u
}

// PreInit reserves the names.
func PreInit(names ...string) func(*Names) {
	return func(un *Names) {
		seq.ForEach(seq.Of(names...), un.Add)
	}
}

type Names struct {
	uniques *mutable.Set[string]
	calc    func(u *Names, varName string) string
}

// Get returns the name or the name with a numeric suffix if it is already taken, and reserves the result.
func (u *Names) Get(varName string) string {
	if u != nil {
		if u.uniques == nil {
			u.uniques = mutable.NewSet[string]()
		}
		varName = u.calc(u, varName)
	}
	return varName
}

func (u *Names) Add(varName string) {
	u.Get(varName)
}

func increment(first, delta int) func(u *Names, varName string) string {
	return func(u *Names, varName string) string {
		base := varName
		for i := first; !u.uniques.AddNew(varName); i += delta {
			varName = base + strconv.Itoa(i)
		}
		return varName
	}
}
