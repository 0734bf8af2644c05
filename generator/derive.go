package generator

import (
	"go/token"
	"go/types"

	"github.com/m4gshm/gollections/slice"

	"github.com/m4gshm/restruct/args"
	"github.com/m4gshm/restruct/config"
	"github.com/m4gshm/restruct/diag"
	"github.com/m4gshm/restruct/logger"
	"github.com/m4gshm/restruct/model/decl"
)

// GenerateDerive asserts that the derived type implements every derive entry: var _ fmt.Stringer = (*UserView)(nil).
// The entries are interface names qualified by the imports of the declaring file.
// A union view is asserted by each of its variant types, the view interface has only the marker method.
func (g *Generator) GenerateDerive(d *decl.Declaration, cfg *config.Resolved) error {
	if len(cfg.Derive) == 0 {
		return nil
	} else if d.Generic() {
		logger.Warnf("derive of generic %s is not asserted: %v", cfg.Name, cfg.Derive)
		return nil
	}
	targets := []string{cfg.Name}
	if d.Kind == decl.Union {
		targets = g.variantNames(cfg.Name)
	}
	for _, path := range cfg.Derive {
		iface, err := g.deriveRef(d, path, cfg.Pos)
		if err != nil {
			return err
		}
		for _, target := range targets {
			g.AddVar("var _ " + iface + " = (*" + target + ")(nil)")
		}
	}
	return nil
}

func (g *Generator) variantNames(union string) []string {
	derived, ok := slice.First(g.Derived(), func(d Derived) bool { return d.Name == union })
	if !ok {
		return nil
	}
	return slice.Convert(derived.Variants, func(v DerivedVariant) string { return v.Name })
}

func (g *Generator) deriveRef(d *decl.Declaration, path args.Path, pos token.Pos) (string, error) {
	switch len(path) {
	case 1:
		if d.Pkg == nil || types.Universe.Lookup(path[0]) != nil {
			return path[0], nil
		}
		alias, err := g.AddImport(d.Pkg.Path(), d.Pkg.Name())
		if err != nil {
			return "", err
		} else if len(alias) > 0 {
			return alias + "." + path[0], nil
		}
		return path[0], nil
	case 2:
		qualifier, name := path[0], path[1]
		imported, ok := d.Imports[qualifier]
		if !ok {
			logger.Debugf("derive %s: qualifier %s is not imported by the declaration file", path, qualifier)
			g.Unresolved()
			return path.String(), nil
		}
		alias, err := g.AddImport(imported.Path, imported.Name)
		if err != nil {
			return "", err
		} else if len(alias) > 0 {
			return alias + "." + name, nil
		}
		return name, nil
	default:
		return "", diag.Errorf(diag.MalformedArgument, pos, "derive entry %s must be an interface name or a package qualified one", path)
	}
}
