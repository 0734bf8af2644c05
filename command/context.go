package command

import (
	"strings"

	"github.com/m4gshm/restruct/args"
	"github.com/m4gshm/restruct/config"
	"github.com/m4gshm/restruct/diag"
	"github.com/m4gshm/restruct/generator"
	"github.com/m4gshm/restruct/logger"
	"github.com/m4gshm/restruct/model/decl"
)

type Context struct {
	Generator    *generator.Generator
	Declaration  *decl.Declaration
	Model        config.Model
	Capabilities config.Capabilities
	// Filter skips the directives it does not match, nil runs all of them.
	Filter *DirectiveFilter
}

// Directive is a parsed restruct directive of the declaration.
type Directive struct {
	decl.Annotation
	Kind string
	Args args.Args
}

// Process runs the restruct directives of the declaration in source order.
// The model directive is parsed first, the first failed directive aborts the processing.
func Process(ctx *Context) error {
	d := ctx.Declaration
	model, err := config.ModelOf(d.Directives(config.Namespace, config.ModelKind), ctx.Capabilities)
	if err != nil {
		return err
	}
	ctx.Model = model

	processed := 0
	for _, a := range d.Directives(config.Namespace) {
		if a.Is(config.Namespace, config.ModelKind) {
			continue
		}
		directive, err := parse(a)
		if err != nil {
			return diag.In(err, a.Directive())
		}
		if ctx.Filter != nil {
			if ok, err := ctx.Filter.Match(directive, d); err != nil {
				return diag.In(err, a.Directive())
			} else if !ok {
				logger.Debugf("directive skipped by filter: %s", a.Directive())
				continue
			}
		}
		if err := Get(directive.Kind).Run(ctx, directive); err != nil {
			return diag.In(err, a.Directive())
		}
		processed++
	}
	logger.Debugf("%s: %d directives processed", d.Name, processed)
	return nil
}

func parse(a decl.Annotation) (Directive, error) {
	kind := strings.Join(a.Path[1:], ":")
	if len(a.Path) != 2 || Get(kind) == nil {
		return Directive{}, diag.Errorf(diag.UnknownArgument, a.Pos, "unknown directive %s, supported are %s",
			a.Name(), strings.Join(Supported(), ", "))
	}
	parsed, err := args.Parse(a.Value, a.ValuePos)
	if err != nil {
		return Directive{}, err
	}
	return Directive{Annotation: a, Kind: kind, Args: parsed}, nil
}
