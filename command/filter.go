package command

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"

	"github.com/m4gshm/restruct/model/decl"
)

// FilterEnv is the environment of a directive filter expression.
type FilterEnv struct {
	Kind   string   `expr:"kind"`
	Name   string   `expr:"name"`
	Type   string   `expr:"type"`
	Fields []string `expr:"fields"`
}

// DirectiveFilter selects the directives to run by a boolean expression,
// for example: kind == "view" && name startsWith "User".
type DirectiveFilter struct {
	code    string
	program *vm.Program
}

func NewDirectiveFilter(code string) (*DirectiveFilter, error) {
	program, err := expr.Compile(code, expr.Env(FilterEnv{}), expr.AsBool())
	if err != nil {
		return nil, errors.Wrapf(err, "compile directive filter %q", code)
	}
	return &DirectiveFilter{code: code, program: program}, nil
}

// Match evaluates the filter for the directive of the declaration.
// A directive without a name is matched by an empty name, its command reports the missing name.
func (f *DirectiveFilter) Match(d Directive, declaration *decl.Declaration) (bool, error) {
	name, _, err := d.Args.Name()
	if err != nil {
		name = ""
	}
	out, err := expr.Run(f.program, FilterEnv{Kind: d.Kind, Name: name, Type: declaration.Name, Fields: declaration.Members()})
	if err != nil {
		return false, errors.Wrapf(err, "run directive filter %q", f.code)
	}
	matched, _ := out.(bool)
	return matched, nil
}
