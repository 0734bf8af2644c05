package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"go/token"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/m4gshm/gollections/slice"
	"golang.org/x/tools/go/packages"

	"github.com/m4gshm/restruct/command"
	"github.com/m4gshm/restruct/config"
	"github.com/m4gshm/restruct/diag"
	"github.com/m4gshm/restruct/generator"
	"github.com/m4gshm/restruct/logger"
	"github.com/m4gshm/restruct/model/decl"
	"github.com/m4gshm/restruct/model/util"
	"github.com/m4gshm/restruct/openapi"
	"github.com/m4gshm/restruct/params"
)

const schemaVersion = "1.0.0"

func usage() {
	out := flag.CommandLine.Output()
	_, _ = fmt.Fprintln(out, "Usage of "+params.Name+":")
	_, _ = fmt.Fprintln(out, "\t"+params.Name+" [flags] -type T [directory]")
	_, _ = fmt.Fprintln(out, "Flags:")
	flag.PrintDefaults()
	command.PrintUsage(out)
}

func main() {
	log.SetPrefix(params.Name + ": ")
	log.SetFlags(0)

	cfg, err := params.NewConfig(flag.CommandLine)
	if err != nil {
		log.Fatal(err)
	}
	flag.Usage = usage
	flag.Parse()

	if fileName := *cfg.File; len(fileName) > 0 {
		fileConfig, err := params.LoadFile(fileName)
		if err != nil {
			log.Fatal(err)
		}
		cfg = cfg.MergeWith(fileConfig)
	}
	logger.Init(*cfg.Debug)
	logger.Debugw("using", "config", cfg)

	if outputDir := outDir(flag.Args()); len(outputDir) > 0 {
		if err := os.Chdir(outputDir); err != nil {
			log.Fatalf("out dir error: %v", err)
		}
	}

	if len(*cfg.Type) == 0 {
		log.Print("no type arg")
		flag.Usage()
		os.Exit(2)
	}

	fileSet := token.NewFileSet()
	if err := run(context.Background(), cfg, fileSet); err != nil {
		var de *diag.Error
		if errors.As(err, &de) {
			log.Fatal(de.Position(fileSet))
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *params.Config, fileSet *token.FileSet) error {
	typeName := *cfg.Type
	capabilities := config.Capabilities(*cfg.Capabilities)
	if len(*cfg.Schema) > 0 && !capabilities.Has(config.CapabilityOpenAPI) {
		return fmt.Errorf("the -schema flag requires the %s capability", config.CapabilityOpenAPI)
	}

	pkgs, err := util.ExtractPackages(fileSet, *cfg.BuildTags, *cfg.PackagePattern)
	if err != nil {
		return err
	}
	typ, pkg, filePath, _, err := util.FindTypePackageFile(typeName, fileSet, pkgs)
	if err != nil {
		return err
	} else if typ == nil {
		return fmt.Errorf("type not found, %s", typeName)
	}
	d, err := decl.New(pkg, typ)
	if err != nil {
		return err
	}

	outputName := *cfg.Output
	if len(outputName) == 0 {
		outputName = filepath.Join(filepath.Dir(filePath), strings.ToLower(typeName)+params.DefaultFileSuffix)
	}
	if outputName, err = filepath.Abs(outputName); err != nil {
		return err
	}
	outPkg, err := outPackage(outputName, filepath.Dir(filePath), pkg, fileSet, *cfg.BuildTags)
	if err != nil {
		return err
	}

	g := generator.New(params.Name, os.Args[1:], outPkg.Name, outPkg.PkgPath)
	g.BuildTags = *cfg.OutBuildTags
	g.NoLint = *cfg.Nolint

	c := &command.Context{Generator: g, Declaration: d, Capabilities: capabilities}
	if code := *cfg.Select; len(code) > 0 {
		if c.Filter, err = command.NewDirectiveFilter(code); err != nil {
			return err
		}
	}
	if err := command.Process(c); err != nil {
		return err
	} else if g.Empty() {
		logger.Infof("no %s directives on %s", params.Name, typeName)
		return nil
	}

	if err := writeSrc(g, outputName); err != nil {
		return err
	}
	logger.Debugf("generated %s", outputName)

	if schema := *cfg.Schema; len(schema) > 0 {
		doc, err := openapi.Build(ctx, d.Pkg.Path(), schemaVersion, g.Derived())
		if err != nil {
			return err
		} else if err := openapi.Write(schema, doc); err != nil {
			return err
		}
		logger.Debugf("generated %s", schema)
	}
	return nil
}

// writeSrc writes the formatted source, an unformattable source leaves the output untouched.
func writeSrc(g *generator.Generator, outputName string) error {
	src, err := g.FormatSrc(outputName)
	if err != nil {
		return fmt.Errorf("go src code formatting error: %w", err)
	}
	const userWriteOtherRead = fs.FileMode(0644)
	if err := os.WriteFile(outputName, src, userWriteOtherRead); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// outPackage returns the type package for an output file next to the type file or in the package sources,
// otherwise the package of the output directory.
func outPackage(outputName, typeDir string, pkg *packages.Package, fileSet *token.FileSet, buildTags []string) (*packages.Package, error) {
	if _, ok := slice.First(pkg.Syntax, func(file *ast.File) bool {
		return fileSet.File(file.Pos()).Name() == outputName
	}); ok || filepath.Dir(outputName) == typeDir {
		return pkg, nil
	}
	dir := filepath.Dir(outputName)
	outPkg, err := util.LoadDirPackage(dir, buildTags)
	if err != nil {
		return nil, err
	} else if outPkg == nil {
		return nil, fmt.Errorf("cannot determine output package, path '%v'", dir)
	}
	return outPkg, nil
}

func outDir(args []string) string {
	if len(args) > 0 && isDir(args[len(args)-1]) {
		return args[len(args)-1]
	}
	return ""
}

func isDir(name string) bool {
	info, err := os.Stat(name)
	if err != nil {
		log.Fatal(err)
	}
	return info.IsDir()
}
