package command

import (
	"fmt"
	"io"

	"github.com/m4gshm/gollections/slice"
)

func New(name, description, manual string, op func(c *Context, d Directive) error) *Command {
	return &Command{name: name, description: description, manual: manual, op: op}
}

// Command generates the code of one directive kind.
type Command struct {
	name, description, manual string
	op                        func(c *Context, d Directive) error
}

func (c *Command) Name() string {
	return c.name
}

func (c *Command) PrintUsage(out io.Writer) {
	_, _ = fmt.Fprintln(out, "  "+c.name+"\n    \t"+c.description)
	if len(c.manual) > 0 {
		_, _ = fmt.Fprintln(out, c.manual)
	}
}

func (c *Command) Run(ctx *Context, d Directive) error {
	return c.op(ctx, d)
}

// Get returns the command of the directive kind or nil.
func Get(name string) *Command {
	if cmd, ok := index[name]; ok {
		return cmd()
	}
	return nil
}

func Supported() []string {
	return slice.Convert(commands, func(cmd func() *Command) string { return cmd().name })
}

func PrintUsage(out io.Writer) {
	_, _ = fmt.Fprintln(out, "Directives:")
	for _, cmd := range commands {
		cmd().PrintUsage(out)
	}
}

var commands = []func() *Command{
	NewView,
	NewPatch,
}

var index = toMap(commands)

func toMap(commands []func() *Command) map[string]func() *Command {
	index := map[string]func() *Command{}
	for _, c := range commands {
		index[c().name] = c
	}
	return index
}
